package board

import (
	"time"

	"github.com/ganot/taskboard/internal/domain/task"
)

// Column is an ordered lane on a project board. Column order is
// append-only: values are unique per project but not required to be
// dense, and ties sort by insertion order.
type Column struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Title     string    `json:"title"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
}

// View is an authorized board snapshot.
type View struct {
	ProjectID string       `json:"project_id"`
	Title     string       `json:"title"`
	Columns   []ColumnView `json:"columns"`
}

// ColumnView is a column with its active cards in display order.
type ColumnView struct {
	ID    string     `json:"id"`
	Title string     `json:"title"`
	Order int        `json:"order"`
	Tasks []TaskView `json:"tasks"`
}

// TaskView is a card as rendered on the board.
type TaskView struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      task.Status  `json:"status"`
	Completed   bool         `json:"completed"`
	Order       int          `json:"order"`
	AssignedTo  *string      `json:"assigned_to,omitempty"`
	Labels      []task.Label `json:"labels"`
	Images      []task.Image `json:"images"`
}
