package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ganot/taskboard/internal/domain/access"
	"github.com/ganot/taskboard/internal/domain/activity"
	"github.com/ganot/taskboard/internal/repository"
)

// Service handles project and membership operations.
type Service struct {
	repo       Repository
	users      UserDirectory
	guard      *access.Guard
	activities activity.Repository
	logger     *slog.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, users UserDirectory, guard *access.Guard, activities activity.Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		users:      users,
		guard:      guard,
		activities: activities,
		logger:     logger,
	}
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	Title       string
	Description string
}

// UpdateRequest defines project edit inputs.
type UpdateRequest struct {
	Title       string
	Description string
}

// Create creates a project owned by the calling principal. The creator
// also receives a membership edge so the project shows up in their
// member-scoped listings.
func (s *Service) Create(ctx context.Context, p access.Principal, req CreateRequest) (*Project, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrInvalidInput
	}

	proj := &Project{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		OrganizerID: p.UserID,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	member := &Member{
		ProjectID: proj.ID,
		UserID:    p.UserID,
		JoinedAt:  proj.CreatedAt,
	}
	if err := s.repo.AddMember(ctx, member); err != nil {
		return nil, fmt.Errorf("adding organizer membership: %w", err)
	}

	s.log(ctx, proj.ID, p, activity.TypeProjectCreated, fmt.Sprintf("created project %q", proj.Title))
	return proj, nil
}

// Get returns a project with its membership edges. Any role on the
// project, including plain membership, may view it.
func (s *Service) Get(ctx context.Context, p access.Principal, id string) (*Project, []Member, error) {
	role, err := s.authorize(ctx, p, id)
	if err != nil {
		return nil, nil, err
	}
	if !role.CanMutateBoard() {
		return nil, nil, access.ErrDenied
	}

	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, nil, s.mapNotFound(err)
	}

	members, err := s.repo.ListMembers(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("listing members: %w", err)
	}

	return proj, members, nil
}

// List returns project summaries visible to the principal. Admins see
// every project; everyone else sees projects they organize or joined.
func (s *Service) List(ctx context.Context, p access.Principal) ([]Summary, error) {
	return s.repo.ListVisible(ctx, p.UserID, p.Admin)
}

// Update edits a project's title and description. Organizer or admin only.
func (s *Service) Update(ctx context.Context, p access.Principal, id string, req UpdateRequest) (*Project, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrInvalidInput
	}

	role, err := s.authorize(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if !role.CanManageProject() {
		return nil, access.ErrDenied
	}

	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, s.mapNotFound(err)
	}

	proj.Title = req.Title
	proj.Description = req.Description
	if err := s.repo.Update(ctx, proj); err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}

	s.log(ctx, id, p, activity.TypeProjectEdited, fmt.Sprintf("edited project %q", proj.Title))
	return proj, nil
}

// Delete removes a project and everything under it: columns, tasks,
// memberships, labels, images. Organizer or admin only.
func (s *Service) Delete(ctx context.Context, p access.Principal, id string) error {
	role, err := s.authorize(ctx, p, id)
	if err != nil {
		return err
	}
	if !role.CanManageProject() {
		return access.ErrDenied
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapNotFound(err)
	}

	if s.logger != nil {
		s.logger.Info("project deleted", "project_id", id, "actor", p.UserID)
	}
	return nil
}

// AddMember grants board access to the user registered under email.
// Organizer or admin only.
func (s *Service) AddMember(ctx context.Context, p access.Principal, projectID, email string) (*Member, error) {
	if strings.TrimSpace(email) == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidInput
	}

	role, err := s.authorize(ctx, p, projectID)
	if err != nil {
		return nil, err
	}
	if !role.CanManageProject() {
		return nil, access.ErrDenied
	}

	userID, err := s.users.LookupEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("resolving email: %w", err)
	}

	member := &Member{
		ProjectID: projectID,
		UserID:    userID,
		Email:     email,
		JoinedAt:  time.Now(),
	}
	if err := s.repo.AddMember(ctx, member); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrAlreadyMember
		}
		return nil, fmt.Errorf("adding member: %w", err)
	}

	s.log(ctx, projectID, p, activity.TypeMemberAdded, fmt.Sprintf("added member %s", email))
	return member, nil
}

// RemoveMember revokes a user's membership edge. Organizer or admin only;
// the organizer keeps their implicit access and cannot remove themself.
func (s *Service) RemoveMember(ctx context.Context, p access.Principal, projectID, userID string) error {
	role, err := s.authorize(ctx, p, projectID)
	if err != nil {
		return err
	}
	if !role.CanManageProject() {
		return access.ErrDenied
	}

	organizerID, err := s.repo.OrganizerID(ctx, projectID)
	if err != nil {
		return s.mapNotFound(err)
	}
	if userID == organizerID {
		return ErrSelfRemoval
	}

	if err := s.repo.RemoveMember(ctx, projectID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotMember
		}
		return fmt.Errorf("removing member: %w", err)
	}

	s.log(ctx, projectID, p, activity.TypeMemberRemoved, fmt.Sprintf("removed member %s", userID))
	return nil
}

func (s *Service) authorize(ctx context.Context, p access.Principal, projectID string) (access.Role, error) {
	role, err := s.guard.Authorize(ctx, p, projectID)
	if err != nil {
		return access.RoleDenied, s.mapNotFound(err)
	}
	return role, nil
}

func (s *Service) mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrProjectNotFound
	}
	return err
}

func (s *Service) log(ctx context.Context, projectID string, p access.Principal, typ activity.Type, summary string) {
	if s.activities == nil {
		return
	}
	_ = s.activities.Log(ctx, &activity.Entry{
		ProjectID: projectID,
		ActorID:   p.UserID,
		Type:      typ,
		Summary:   summary,
	})
}
