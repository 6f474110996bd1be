package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ganot/taskboard/internal/domain/board"
	"github.com/ganot/taskboard/internal/repository"
)

// ColumnRepository implements board.ColumnRepository for SQLite
type ColumnRepository struct {
	db *DB
}

// NewColumnRepository creates a new ColumnRepository
func NewColumnRepository(db *DB) *ColumnRepository {
	return &ColumnRepository{db: db}
}

// Create inserts a new column
func (r *ColumnRepository) Create(ctx context.Context, c *board.Column) error {
	query := `
		INSERT INTO board_columns (id, project_id, title, ord, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, c.ID, c.ProjectID, c.Title, c.Order, c.CreatedAt)
	if err != nil {
		if violatesConstraint(err, "FOREIGN KEY") {
			return repository.ErrNotFound
		}
		return fmt.Errorf("failed to create column: %w", err)
	}

	return nil
}

// Get retrieves a column by ID
func (r *ColumnRepository) Get(ctx context.Context, id string) (*board.Column, error) {
	query := `
		SELECT id, project_id, title, ord, created_at
		FROM board_columns
		WHERE id = ?
	`

	var c board.Column
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID,
		&c.ProjectID,
		&c.Title,
		&c.Order,
		&c.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get column: %w", err)
	}

	return &c, nil
}

// ListByProject returns a project's columns in display order. Order
// values need not be dense; ties sort by insertion order.
func (r *ColumnRepository) ListByProject(ctx context.Context, projectID string) ([]board.Column, error) {
	query := `
		SELECT id, project_id, title, ord, created_at
		FROM board_columns
		WHERE project_id = ?
		ORDER BY ord ASC, rowid ASC
	`

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", err)
	}
	defer rows.Close()

	var columns []board.Column
	for rows.Next() {
		var c board.Column
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.Title, &c.Order, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		columns = append(columns, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column rows: %w", err)
	}

	return columns, nil
}

// MaxOrder returns the highest column order for a project, or -1 when the
// project has no columns.
func (r *ColumnRepository) MaxOrder(ctx context.Context, projectID string) (int, error) {
	var maxOrder sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT MAX(ord) FROM board_columns WHERE project_id = ?`, projectID,
	).Scan(&maxOrder)

	if err != nil {
		return 0, fmt.Errorf("failed to get max column order: %w", err)
	}
	if !maxOrder.Valid {
		return -1, nil
	}

	return int(maxOrder.Int64), nil
}
