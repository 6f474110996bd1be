package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ganot/taskboard/internal/domain/task"
	"github.com/ganot/taskboard/internal/repository"
)

// LabelRepository implements task.LabelRepository for SQLite
type LabelRepository struct {
	db *DB
}

// NewLabelRepository creates a new LabelRepository
func NewLabelRepository(db *DB) *LabelRepository {
	return &LabelRepository{db: db}
}

// Create inserts a new label. (ProjectID, Name) is unique; a duplicate
// reports ErrConflict so callers can fall back to the existing label.
func (r *LabelRepository) Create(ctx context.Context, l *task.Label) error {
	query := `
		INSERT INTO board_labels (id, project_id, name, color)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, l.ID, l.ProjectID, l.Name, l.Color)
	if err != nil {
		if violatesConstraint(err, "UNIQUE") {
			return repository.ErrConflict
		}
		if violatesConstraint(err, "FOREIGN KEY") {
			return repository.ErrNotFound
		}
		return fmt.Errorf("failed to create label: %w", err)
	}

	return nil
}

// GetByName retrieves a label by its project-scoped name
func (r *LabelRepository) GetByName(ctx context.Context, projectID, name string) (*task.Label, error) {
	query := `
		SELECT id, project_id, name, color
		FROM board_labels
		WHERE project_id = ? AND name = ?
	`

	var l task.Label
	err := r.db.QueryRowContext(ctx, query, projectID, name).Scan(
		&l.ID,
		&l.ProjectID,
		&l.Name,
		&l.Color,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get label: %w", err)
	}

	return &l, nil
}

// CountByProject returns how many labels a project has
func (r *LabelRepository) CountByProject(ctx context.Context, projectID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM board_labels WHERE project_id = ?`, projectID,
	).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("failed to count labels: %w", err)
	}

	return count, nil
}

// Attach links a label to a task. Attaching twice is a no-op.
func (r *LabelRepository) Attach(ctx context.Context, taskID, labelID string) error {
	query := `
		INSERT OR IGNORE INTO task_labels (task_id, label_id)
		VALUES (?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, taskID, labelID)
	if err != nil {
		if violatesConstraint(err, "FOREIGN KEY") {
			return repository.ErrNotFound
		}
		return fmt.Errorf("failed to attach label: %w", err)
	}

	return nil
}

// ListByTask returns a task's labels sorted by name
func (r *LabelRepository) ListByTask(ctx context.Context, taskID string) ([]task.Label, error) {
	query := `
		SELECT l.id, l.project_id, l.name, l.color
		FROM board_labels l
		JOIN task_labels tl ON tl.label_id = l.id
		WHERE tl.task_id = ?
		ORDER BY l.name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	defer rows.Close()

	labels := []task.Label{}
	for rows.Next() {
		var l task.Label
		if err := rows.Scan(&l.ID, &l.ProjectID, &l.Name, &l.Color); err != nil {
			return nil, fmt.Errorf("failed to scan label: %w", err)
		}
		labels = append(labels, l)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating label rows: %w", err)
	}

	return labels, nil
}
