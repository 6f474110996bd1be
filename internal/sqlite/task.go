package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ganot/taskboard/internal/domain/task"
	"github.com/ganot/taskboard/internal/repository"
)

// TaskRepository implements task.Repository for SQLite
type TaskRepository struct {
	db *DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `
	id, project_id, column_id, title, description, status, ord,
	archived, archived_at, start_at, end_at, assigned_to, created_at
`

// Create inserts a new task
func (r *TaskRepository) Create(ctx context.Context, t *task.Task) error {
	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.ProjectID,
		t.ColumnID,
		t.Title,
		t.Description,
		t.Status,
		t.Order,
		t.Archived,
		t.ArchivedAt,
		t.StartAt,
		t.EndAt,
		t.AssignedToUser,
		t.CreatedAt,
	)

	if err != nil {
		if violatesConstraint(err, "FOREIGN KEY") {
			return repository.ErrNotFound
		}
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// Get retrieves a task by ID
func (r *TaskRepository) Get(ctx context.Context, id string) (*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`

	t, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return t, nil
}

// Update writes all mutable task fields
func (r *TaskRepository) Update(ctx context.Context, t *task.Task) error {
	query := `
		UPDATE tasks
		SET column_id = ?, title = ?, description = ?, status = ?, ord = ?,
			archived = ?, archived_at = ?, start_at = ?, end_at = ?, assigned_to = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		t.ColumnID,
		t.Title,
		t.Description,
		t.Status,
		t.Order,
		t.Archived,
		t.ArchivedAt,
		t.StartAt,
		t.EndAt,
		t.AssignedToUser,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// ListActiveByColumn returns a column's unarchived tasks sorted by order.
// Ties, possible after archive/restore left gaps, break by insertion
// order to keep the display sort stable.
func (r *TaskRepository) ListActiveByColumn(ctx context.Context, columnID string) ([]task.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE column_id = ? AND archived = 0
		ORDER BY ord ASC, rowid ASC
	`

	return r.queryTasks(ctx, query, columnID)
}

// ListByProject returns every task in a project, archived included,
// sorted by column then order.
func (r *TaskRepository) ListByProject(ctx context.Context, projectID string) ([]task.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE project_id = ?
		ORDER BY column_id ASC, ord ASC, rowid ASC
	`

	return r.queryTasks(ctx, query, projectID)
}

// MaxOrder returns the highest order among a column's active tasks, or -1
// when the column has none.
func (r *TaskRepository) MaxOrder(ctx context.Context, columnID string) (int, error) {
	var maxOrder sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT MAX(ord) FROM tasks WHERE column_id = ? AND archived = 0`, columnID,
	).Scan(&maxOrder)

	if err != nil {
		return 0, fmt.Errorf("failed to get max task order: %w", err)
	}
	if !maxOrder.Valid {
		return -1, nil
	}

	return int(maxOrder.Int64), nil
}

// Reorder assigns each listed task to the column with order equal to its
// position in the slice, in one transaction. Every row in the sequence is
// rewritten, moved or not, so the column comes out dense 0..n-1.
func (r *TaskRepository) Reorder(ctx context.Context, columnID string, orderedTaskIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`UPDATE tasks SET column_id = ?, ord = ? WHERE id = ?`,
	)
	if err != nil {
		return fmt.Errorf("failed to prepare reorder: %w", err)
	}
	defer stmt.Close()

	for i, taskID := range orderedTaskIDs {
		result, err := stmt.ExecContext(ctx, columnID, i, taskID)
		if err != nil {
			if violatesConstraint(err, "FOREIGN KEY") {
				return repository.ErrNotFound
			}
			return fmt.Errorf("failed to reorder task %s: %w", taskID, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if affected == 0 {
			return repository.ErrNotFound
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reorder: %w", err)
	}

	return nil
}

// AddImage appends an image attachment record
func (r *TaskRepository) AddImage(ctx context.Context, img *task.Image) error {
	query := `
		INSERT INTO task_images (id, task_id, file_path, original_name, uploaded_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		img.ID,
		img.TaskID,
		img.FilePath,
		img.OriginalName,
		img.UploadedAt,
	)
	if err != nil {
		if violatesConstraint(err, "FOREIGN KEY") {
			return repository.ErrNotFound
		}
		return fmt.Errorf("failed to add image: %w", err)
	}

	return nil
}

// ListImages returns a task's image attachments in upload order
func (r *TaskRepository) ListImages(ctx context.Context, taskID string) ([]task.Image, error) {
	query := `
		SELECT id, task_id, file_path, original_name, uploaded_at
		FROM task_images
		WHERE task_id = ?
		ORDER BY uploaded_at ASC, rowid ASC
	`

	rows, err := r.db.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	defer rows.Close()

	images := []task.Image{}
	for rows.Next() {
		var img task.Image
		var originalName sql.NullString
		if err := rows.Scan(&img.ID, &img.TaskID, &img.FilePath, &originalName, &img.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		img.OriginalName = originalName.String
		images = append(images, img)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating image rows: %w", err)
	}

	return images, nil
}

func (r *TaskRepository) queryTasks(ctx context.Context, query string, args ...any) ([]task.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}

	return tasks, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*task.Task, error) {
	var t task.Task
	var columnID, assignedTo sql.NullString
	var archivedAt sql.NullTime

	err := row.Scan(
		&t.ID,
		&t.ProjectID,
		&columnID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.Order,
		&t.Archived,
		&archivedAt,
		&t.StartAt,
		&t.EndAt,
		&assignedTo,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if columnID.Valid {
		t.ColumnID = &columnID.String
	}
	if archivedAt.Valid {
		t.ArchivedAt = &archivedAt.Time
	}
	if assignedTo.Valid {
		t.AssignedToUser = &assignedTo.String
	}

	return &t, nil
}
