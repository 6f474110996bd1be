package task

import "time"

// Status is the workflow state of a card. It is the single source of
// truth for completion: the displayed completion flag is derived from it
// and never stored separately.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Completed reports whether the status counts as done.
func (s Status) Completed() bool {
	return s == StatusCompleted
}

// Toggled returns the status after a completion toggle: a completed card
// drops back to in-progress, anything else becomes completed.
func (s Status) Toggled() Status {
	if s == StatusCompleted {
		return StatusInProgress
	}
	return StatusCompleted
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Task is a card on a project board. Order is dense over the active tasks
// of a column; archived tasks keep a stale order that no longer
// participates in the sequence.
type Task struct {
	ID             string     `json:"id"`
	ProjectID      string     `json:"project_id"`
	ColumnID       *string    `json:"column_id,omitempty"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Status         Status     `json:"status"`
	Order          int        `json:"order"`
	Archived       bool       `json:"archived"`
	ArchivedAt     *time.Time `json:"archived_at,omitempty"`
	StartAt        time.Time  `json:"start_at"`
	EndAt          time.Time  `json:"end_at"`
	AssignedToUser *string    `json:"assigned_to,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Label is a project-scoped tag. Color is assigned once at creation and
// never reassigned.
type Label struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
}

// Image is attachment metadata for a card. The list is append-only.
type Image struct {
	ID           string    `json:"id"`
	TaskID       string    `json:"task_id"`
	FilePath     string    `json:"file_path"`
	OriginalName string    `json:"original_name"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// Detail is the card view returned by detail fetches.
type Detail struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      Status  `json:"status"`
	Completed   bool    `json:"completed"`
	Archived    bool    `json:"archived"`
	Labels      []Label `json:"labels"`
	Images      []Image `json:"images"`
}
