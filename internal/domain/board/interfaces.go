package board

import "context"

// ColumnRepository provides persistence for board columns.
type ColumnRepository interface {
	Create(ctx context.Context, c *Column) error
	Get(ctx context.Context, id string) (*Column, error)
	ListByProject(ctx context.Context, projectID string) ([]Column, error)
	MaxOrder(ctx context.Context, projectID string) (int, error)
}

// ProjectSource supplies the project fields a board snapshot needs.
type ProjectSource interface {
	Title(ctx context.Context, projectID string) (string, error)
}
