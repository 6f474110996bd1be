package access

import (
	"context"
	"errors"
	"fmt"
)

// Role is the level of access a principal holds on a project.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleOrganizer Role = "organizer"
	RoleMember    Role = "member"
	RoleDenied    Role = "denied"
)

// ErrDenied indicates the principal lacks the required role.
var ErrDenied = errors.New("access denied")

// Principal identifies the calling user as resolved by the identity gateway.
type Principal struct {
	UserID string
	Admin  bool
}

// Resolve derives the principal's role on a project from the organizer id
// and membership set. Platform admins win unconditionally, then the
// organizer, then listed members.
func Resolve(p Principal, organizerID string, isMember bool) Role {
	switch {
	case p.Admin:
		return RoleAdmin
	case p.UserID != "" && p.UserID == organizerID:
		return RoleOrganizer
	case isMember:
		return RoleMember
	default:
		return RoleDenied
	}
}

// CanMutateBoard reports whether the role allows board mutations
// (cards, columns, moves, labels).
func (r Role) CanMutateBoard() bool {
	return r == RoleAdmin || r == RoleOrganizer || r == RoleMember
}

// CanManageProject reports whether the role allows project-level
// management (edit, delete, membership changes).
func (r Role) CanManageProject() bool {
	return r == RoleAdmin || r == RoleOrganizer
}

// Repository supplies the two joins a role derivation needs.
type Repository interface {
	OrganizerID(ctx context.Context, projectID string) (string, error)
	IsMember(ctx context.Context, projectID, userID string) (bool, error)
}

// Guard re-derives a principal's role on every call. Membership can change
// between requests and no session-scoped permission cache exists, so
// nothing here is memoized.
type Guard struct {
	repo Repository
}

// NewGuard creates a Guard backed by the given repository.
func NewGuard(repo Repository) *Guard {
	return &Guard{repo: repo}
}

// Authorize resolves the principal's role on the project. A repository
// not-found error propagates unchanged so callers can distinguish a
// missing project from a denied one.
func (g *Guard) Authorize(ctx context.Context, p Principal, projectID string) (Role, error) {
	organizerID, err := g.repo.OrganizerID(ctx, projectID)
	if err != nil {
		return RoleDenied, fmt.Errorf("loading organizer: %w", err)
	}

	if p.Admin {
		return RoleAdmin, nil
	}
	if p.UserID == organizerID {
		return RoleOrganizer, nil
	}

	isMember, err := g.repo.IsMember(ctx, projectID, p.UserID)
	if err != nil {
		return RoleDenied, fmt.Errorf("loading membership: %w", err)
	}

	return Resolve(p, organizerID, isMember), nil
}
