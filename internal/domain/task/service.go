package task

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

// Unassigned is the sentinel assignee value that clears an assignment.
const Unassigned = "unassigned"

// Service handles card lifecycle and attachment operations.
type Service struct {
	tasks      Repository
	labels     LabelRepository
	members    MembershipSource
	guard      *access.Guard
	files      FileStore
	activities activity.Repository
	logger     *slog.Logger
}

// NewService creates a new task service.
func NewService(
	tasks Repository,
	labels LabelRepository,
	members MembershipSource,
	guard *access.Guard,
	files FileStore,
	activities activity.Repository,
	logger *slog.Logger,
) *Service {
	return &Service{
		tasks:      tasks,
		labels:     labels,
		members:    members,
		guard:      guard,
		files:      files,
		activities: activities,
		logger:     logger,
	}
}

// Toggle flips a card's completion. A completed card drops to in-progress,
// anything else becomes completed. Each call flips state; it is a toggle,
// not a set.
func (s *Service) Toggle(ctx context.Context, p access.Principal, taskID string) (*Task, error) {
	t, err := s.loadAuthorized(ctx, p, taskID)
	if err != nil {
		return nil, err
	}

	t.Status = t.Status.Toggled()
	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}

	s.log(ctx, t, p, activity.TypeCardToggled, fmt.Sprintf("toggled card %q to %s", t.Title, t.Status))
	return t, nil
}

// Archive removes a card from the active ordering domain. Already-archived
// cards are a no-op. Remaining active tasks in the source column keep
// their order values; gaps are closed by the next move into that column.
func (s *Service) Archive(ctx context.Context, p access.Principal, taskID string) (*Task, error) {
	t, err := s.loadAuthorized(ctx, p, taskID)
	if err != nil {
		return nil, err
	}
	if t.Archived {
		return t, nil
	}

	now := time.Now()
	t.Archived = true
	t.ArchivedAt = &now
	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("archiving task: %w", err)
	}

	s.log(ctx, t, p, activity.TypeCardArchived, fmt.Sprintf("archived card %q", t.Title))
	return t, nil
}

// Restore returns an archived card to the board. Active cards are a
// no-op. The card reappears with its stale order value and sorts by
// relative order until a move renumbers the column.
func (s *Service) Restore(ctx context.Context, p access.Principal, taskID string) (*Task, error) {
	t, err := s.loadAuthorized(ctx, p, taskID)
	if err != nil {
		return nil, err
	}
	if !t.Archived {
		return t, nil
	}

	t.Archived = false
	t.ArchivedAt = nil
	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("restoring task: %w", err)
	}

	s.log(ctx, t, p, activity.TypeCardRestored, fmt.Sprintf("restored card %q", t.Title))
	return t, nil
}

// Assign sets or clears a card's assignee. The assignee must be the
// project's organizer or a member; Unassigned (or empty) clears it.
func (s *Service) Assign(ctx context.Context, p access.Principal, taskID, userID string) (*Task, error) {
	t, err := s.loadAuthorized(ctx, p, taskID)
	if err != nil {
		return nil, err
	}

	if userID == "" || userID == Unassigned {
		t.AssignedToUser = nil
	} else {
		eligible, err := s.assigneeEligible(ctx, t.ProjectID, userID)
		if err != nil {
			return nil, err
		}
		if !eligible {
			return nil, ErrAssigneeNotEligible
		}
		t.AssignedToUser = &userID
	}

	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("assigning task: %w", err)
	}

	s.log(ctx, t, p, activity.TypeCardAssigned, fmt.Sprintf("assigned card %q", t.Title))
	return t, nil
}

// AttachLabel attaches a project-scoped label to a card, creating the
// label on first use. Attach is idempotent and the color never changes
// after creation.
func (s *Service) AttachLabel(ctx context.Context, p access.Principal, taskID, name string) (*Label, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	t, err := s.loadAuthorized(ctx, p, taskID)
	if err != nil {
		return nil, err
	}

	label, err := s.findOrCreateLabel(ctx, t.ProjectID, name)
	if err != nil {
		return nil, err
	}
	if label.ProjectID != t.ProjectID {
		return nil, ErrLabelProjectMismatch
	}

	if err := s.labels.Attach(ctx, taskID, label.ID); err != nil {
		return nil, fmt.Errorf("attaching label: %w", err)
	}

	s.log(ctx, t, p, activity.TypeLabelAttached, fmt.Sprintf("labeled card %q with %q", t.Title, label.Name))
	return label, nil
}

// AttachImage stores the uploaded bytes through the file store and appends
// an image record to the card. There is no replace or delete path.
func (s *Service) AttachImage(ctx context.Context, p access.Principal, taskID, originalName string, data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, ErrInvalidInput
	}

	t, err := s.loadAuthorized(ctx, p, taskID)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	path, err := s.files.Save(ctx, id+sanitizeExt(originalName), data)
	if err != nil {
		return nil, fmt.Errorf("storing image: %w", err)
	}

	img := &Image{
		ID:           id,
		TaskID:       t.ID,
		FilePath:     path,
		OriginalName: originalName,
		UploadedAt:   time.Now(),
	}
	if err := s.tasks.AddImage(ctx, img); err != nil {
		return nil, fmt.Errorf("recording image: %w", err)
	}

	s.log(ctx, t, p, activity.TypeImageAttached, fmt.Sprintf("attached image to card %q", t.Title))
	return img, nil
}

// Detail returns the card view with labels and images.
func (s *Service) Detail(ctx context.Context, p access.Principal, taskID string) (*Detail, error) {
	t, err := s.loadAuthorized(ctx, p, taskID)
	if err != nil {
		return nil, err
	}

	labels, err := s.labels.ListByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing labels: %w", err)
	}
	images, err := s.tasks.ListImages(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing images: %w", err)
	}

	return &Detail{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Completed:   t.Status.Completed(),
		Archived:    t.Archived,
		Labels:      labels,
		Images:      images,
	}, nil
}

func (s *Service) findOrCreateLabel(ctx context.Context, projectID, name string) (*Label, error) {
	return FindOrCreateLabel(ctx, s.labels, projectID, name)
}

// FindOrCreateLabel looks up a label by name within a project, creating it
// with the next palette color when absent. Every label-creating path goes
// through here so color assignment stays deterministic.
func FindOrCreateLabel(ctx context.Context, labels LabelRepository, projectID, name string) (*Label, error) {
	label, err := labels.GetByName(ctx, projectID, name)
	if err == nil {
		return label, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("looking up label: %w", err)
	}

	count, err := labels.CountByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("counting labels: %w", err)
	}

	label = &Label{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Name:      name,
		Color:     PaletteColor(count),
	}
	if err := labels.Create(ctx, label); err != nil {
		// Lost a create race: someone else made the label first.
		if errors.Is(err, repository.ErrConflict) {
			return labels.GetByName(ctx, projectID, name)
		}
		return nil, fmt.Errorf("creating label: %w", err)
	}
	return label, nil
}

func (s *Service) assigneeEligible(ctx context.Context, projectID, userID string) (bool, error) {
	organizerID, err := s.members.OrganizerID(ctx, projectID)
	if err != nil {
		return false, fmt.Errorf("loading organizer: %w", err)
	}
	if userID == organizerID {
		return true, nil
	}
	isMember, err := s.members.IsMember(ctx, projectID, userID)
	if err != nil {
		return false, fmt.Errorf("loading membership: %w", err)
	}
	return isMember, nil
}

func (s *Service) loadAuthorized(ctx context.Context, p access.Principal, taskID string) (*Task, error) {
	t, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("loading task: %w", err)
	}

	role, err := s.guard.Authorize(ctx, p, t.ProjectID)
	if err != nil {
		return nil, err
	}
	if !role.CanMutateBoard() {
		return nil, access.ErrDenied
	}

	return t, nil
}

func (s *Service) log(ctx context.Context, t *Task, p access.Principal, typ activity.Type, summary string) {
	if s.activities == nil {
		return
	}
	taskID := t.ID
	_ = s.activities.Log(ctx, &activity.Entry{
		ProjectID: t.ProjectID,
		TaskID:    &taskID,
		ActorID:   p.UserID,
		Type:      typ,
		Summary:   summary,
	})
}

func sanitizeExt(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 && i < len(name)-1 {
		ext := name[i:]
		clean := true
		for _, r := range ext[1:] {
			if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
				clean = false
				break
			}
		}
		if clean {
			return ext
		}
	}
	return ""
}
