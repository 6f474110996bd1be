package project

import (
	"context"
	"time"
)

// Repository provides persistence for projects and membership edges.
type Repository interface {
	Create(ctx context.Context, proj *Project) error
	Get(ctx context.Context, id string) (*Project, error)
	Update(ctx context.Context, proj *Project) error
	Delete(ctx context.Context, id string) error
	ListVisible(ctx context.Context, userID string, admin bool) ([]Summary, error)
	OrganizerID(ctx context.Context, projectID string) (string, error)
	AddMember(ctx context.Context, m *Member) error
	RemoveMember(ctx context.Context, projectID, userID string) error
	ListMembers(ctx context.Context, projectID string) ([]Member, error)
	IsMember(ctx context.Context, projectID, userID string) (bool, error)
	SetInsights(ctx context.Context, projectID, summary string, at time.Time) error
}

// UserDirectory resolves users when managing membership.
type UserDirectory interface {
	LookupEmail(ctx context.Context, email string) (userID string, err error)
	Exists(ctx context.Context, userID string) (bool, error)
}
