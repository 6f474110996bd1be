package task

import "context"

// Repository provides persistence for cards and their image attachments.
type Repository interface {
	Create(ctx context.Context, t *Task) error
	Get(ctx context.Context, id string) (*Task, error)
	Update(ctx context.Context, t *Task) error
	ListActiveByColumn(ctx context.Context, columnID string) ([]Task, error)
	ListByProject(ctx context.Context, projectID string) ([]Task, error)
	MaxOrder(ctx context.Context, columnID string) (int, error)
	Reorder(ctx context.Context, columnID string, orderedTaskIDs []string) error
	AddImage(ctx context.Context, img *Image) error
	ListImages(ctx context.Context, taskID string) ([]Image, error)
}

// LabelRepository provides persistence for project-scoped labels.
type LabelRepository interface {
	Create(ctx context.Context, l *Label) error
	GetByName(ctx context.Context, projectID, name string) (*Label, error)
	CountByProject(ctx context.Context, projectID string) (int, error)
	Attach(ctx context.Context, taskID, labelID string) error
	ListByTask(ctx context.Context, taskID string) ([]Label, error)
}

// MembershipSource answers assignment eligibility questions.
type MembershipSource interface {
	OrganizerID(ctx context.Context, projectID string) (string, error)
	IsMember(ctx context.Context, projectID, userID string) (bool, error)
}

// FileStore is the external collaborator that persists uploaded image
// bytes and returns a servable relative path.
type FileStore interface {
	Save(ctx context.Context, name string, data []byte) (path string, err error)
}
