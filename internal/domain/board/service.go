package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ganot/taskboard/internal/domain/access"
	"github.com/ganot/taskboard/internal/domain/activity"
	"github.com/ganot/taskboard/internal/domain/task"
	"github.com/ganot/taskboard/internal/repository"
)

// defaultColumns are seeded the first time an empty board is viewed.
var defaultColumns = []string{"To Do", "Doing", "Done"}

// Service owns column layout and the dense ordering of active cards.
type Service struct {
	columns    ColumnRepository
	tasks      task.Repository
	labels     task.LabelRepository
	projects   ProjectSource
	guard      *access.Guard
	activities activity.Repository
	logger     *slog.Logger
	locks      *projectLocks
}

// NewService creates a new board service.
func NewService(
	columns ColumnRepository,
	tasks task.Repository,
	labels task.LabelRepository,
	projects ProjectSource,
	guard *access.Guard,
	activities activity.Repository,
	logger *slog.Logger,
) *Service {
	return &Service{
		columns:    columns,
		tasks:      tasks,
		labels:     labels,
		projects:   projects,
		guard:      guard,
		activities: activities,
		logger:     logger,
		locks:      newProjectLocks(),
	}
}

// AddColumnRequest defines column creation inputs.
type AddColumnRequest struct {
	ProjectID string
	Title     string
}

// AddCardRequest defines card creation inputs.
type AddCardRequest struct {
	ProjectID   string
	ColumnID    string
	Title       string
	Description string
	Labels      []string
}

// MoveCardRequest defines a card move.
type MoveCardRequest struct {
	TaskID         string
	TargetColumnID string
	Index          int
}

// Snapshot returns the authorized board view: columns sorted by order
// with their active cards, labels, images, and assignee. An empty board
// gets the default columns seeded on first view.
func (s *Service) Snapshot(ctx context.Context, p access.Principal, projectID string) (*View, error) {
	role, err := s.authorize(ctx, p, projectID)
	if err != nil {
		return nil, err
	}
	if !role.CanMutateBoard() {
		return nil, access.ErrDenied
	}

	title, err := s.projects.Title(ctx, projectID)
	if err != nil {
		return nil, s.mapProjectErr(err)
	}

	cols, err := s.columns.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing columns: %w", err)
	}

	if len(cols) == 0 {
		cols, err = s.seedColumns(ctx, projectID)
		if err != nil {
			return nil, err
		}
	}

	view := &View{
		ProjectID: projectID,
		Title:     title,
		Columns:   make([]ColumnView, 0, len(cols)),
	}

	for _, col := range cols {
		cv := ColumnView{
			ID:    col.ID,
			Title: col.Title,
			Order: col.Order,
			Tasks: []TaskView{},
		}

		active, err := s.tasks.ListActiveByColumn(ctx, col.ID)
		if err != nil {
			return nil, fmt.Errorf("listing tasks for column %s: %w", col.ID, err)
		}
		for _, t := range active {
			labels, err := s.labels.ListByTask(ctx, t.ID)
			if err != nil {
				return nil, fmt.Errorf("listing labels: %w", err)
			}
			images, err := s.tasks.ListImages(ctx, t.ID)
			if err != nil {
				return nil, fmt.Errorf("listing images: %w", err)
			}
			cv.Tasks = append(cv.Tasks, TaskView{
				ID:          t.ID,
				Title:       t.Title,
				Description: t.Description,
				Status:      t.Status,
				Completed:   t.Status.Completed(),
				Order:       t.Order,
				AssignedTo:  t.AssignedToUser,
				Labels:      labels,
				Images:      images,
			})
		}

		view.Columns = append(view.Columns, cv)
	}

	return view, nil
}

// AddColumn appends a column after the current highest order. Existing
// columns are never renumbered.
func (s *Service) AddColumn(ctx context.Context, p access.Principal, req AddColumnRequest) (*Column, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrInvalidInput
	}

	role, err := s.authorize(ctx, p, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if !role.CanMutateBoard() {
		return nil, access.ErrDenied
	}

	unlock := s.locks.acquire(req.ProjectID)
	defer unlock()

	maxOrder, err := s.columns.MaxOrder(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("finding column order: %w", err)
	}

	col := &Column{
		ID:        uuid.NewString(),
		ProjectID: req.ProjectID,
		Title:     req.Title,
		Order:     maxOrder + 1,
		CreatedAt: time.Now(),
	}
	if err := s.columns.Create(ctx, col); err != nil {
		return nil, fmt.Errorf("creating column: %w", err)
	}

	s.log(ctx, req.ProjectID, nil, p, activity.TypeColumnAdded, fmt.Sprintf("added column %q", col.Title))
	return col, nil
}

// AddCard appends a card at the end of a column's active sequence:
// order = max existing active order + 1. Insertion never renumbers;
// only a move does.
func (s *Service) AddCard(ctx context.Context, p access.Principal, req AddCardRequest) (*task.Task, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		return nil, ErrInvalidInput
	}

	role, err := s.authorize(ctx, p, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if !role.CanMutateBoard() {
		return nil, access.ErrDenied
	}

	col, err := s.loadColumn(ctx, req.ColumnID, req.ProjectID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.acquire(req.ProjectID)
	defer unlock()

	maxOrder, err := s.tasks.MaxOrder(ctx, col.ID)
	if err != nil {
		return nil, fmt.Errorf("finding task order: %w", err)
	}

	now := time.Now()
	columnID := col.ID
	t := &task.Task{
		ID:          uuid.NewString(),
		ProjectID:   req.ProjectID,
		ColumnID:    &columnID,
		Title:       req.Title,
		Description: req.Description,
		Status:      task.StatusNotStarted,
		Order:       maxOrder + 1,
		StartAt:     now,
		EndAt:       now.Add(24 * time.Hour),
		CreatedAt:   now,
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}

	for _, name := range req.Labels {
		label, err := task.FindOrCreateLabel(ctx, s.labels, req.ProjectID, name)
		if err != nil {
			return nil, err
		}
		if err := s.labels.Attach(ctx, t.ID, label.ID); err != nil {
			return nil, fmt.Errorf("attaching label: %w", err)
		}
	}

	s.log(ctx, req.ProjectID, &t.ID, p, activity.TypeCardAdded, fmt.Sprintf("added card %q to %q", t.Title, col.Title))
	return t, nil
}

// MoveCard places a card at an exact index in the target column and
// renumbers the whole destination sequence back to dense 0..n-1.
// Same-column moves take the identical path: the card is excluded from
// the loaded sequence and reinserted at the requested index.
func (s *Service) MoveCard(ctx context.Context, p access.Principal, req MoveCardRequest) error {
	t, err := s.tasks.Get(ctx, req.TaskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return task.ErrTaskNotFound
		}
		return fmt.Errorf("loading task: %w", err)
	}

	role, err := s.authorize(ctx, p, t.ProjectID)
	if err != nil {
		return err
	}
	if !role.CanMutateBoard() {
		return access.ErrDenied
	}
	if t.ArchivedAt != nil {
		return ErrCardArchived
	}

	// A missing target column, or one belonging to another project, is a
	// hard failure: the column reference must never dangle.
	col, err := s.loadColumn(ctx, req.TargetColumnID, t.ProjectID)
	if err != nil {
		return err
	}

	unlock := s.locks.acquire(t.ProjectID)
	defer unlock()

	others, err := s.tasks.ListActiveByColumn(ctx, col.ID)
	if err != nil {
		return fmt.Errorf("listing target column: %w", err)
	}

	sequence := make([]string, 0, len(others)+1)
	for _, other := range others {
		if other.ID == t.ID {
			continue
		}
		sequence = append(sequence, other.ID)
	}

	index := req.Index
	if index < 0 {
		index = 0
	}
	if index > len(sequence) {
		index = len(sequence)
	}

	sequence = append(sequence, "")
	copy(sequence[index+1:], sequence[index:])
	sequence[index] = t.ID

	if err := s.tasks.Reorder(ctx, col.ID, sequence); err != nil {
		return fmt.Errorf("renumbering column: %w", err)
	}

	s.log(ctx, t.ProjectID, &t.ID, p, activity.TypeCardMoved, fmt.Sprintf("moved card %q to %q at %d", t.Title, col.Title, index))
	return nil
}

func (s *Service) seedColumns(ctx context.Context, projectID string) ([]Column, error) {
	cols := make([]Column, 0, len(defaultColumns))
	now := time.Now()
	for i, title := range defaultColumns {
		col := Column{
			ID:        uuid.NewString(),
			ProjectID: projectID,
			Title:     title,
			Order:     i,
			CreatedAt: now,
		}
		if err := s.columns.Create(ctx, &col); err != nil {
			return nil, fmt.Errorf("seeding column %q: %w", title, err)
		}
		cols = append(cols, col)
	}
	sort.SliceStable(cols, func(i, j int) bool { return cols[i].Order < cols[j].Order })
	return cols, nil
}

func (s *Service) loadColumn(ctx context.Context, columnID, projectID string) (*Column, error) {
	col, err := s.columns.Get(ctx, columnID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrColumnNotFound
		}
		return nil, fmt.Errorf("loading column: %w", err)
	}
	if col.ProjectID != projectID {
		return nil, ErrColumnNotFound
	}
	return col, nil
}

func (s *Service) authorize(ctx context.Context, p access.Principal, projectID string) (access.Role, error) {
	role, err := s.guard.Authorize(ctx, p, projectID)
	if err != nil {
		return access.RoleDenied, s.mapProjectErr(err)
	}
	return role, nil
}

func (s *Service) mapProjectErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrProjectNotFound
	}
	return err
}

func (s *Service) log(ctx context.Context, projectID string, taskID *string, p access.Principal, typ activity.Type, summary string) {
	if s.activities == nil {
		return
	}
	_ = s.activities.Log(ctx, &activity.Entry{
		ProjectID: projectID,
		TaskID:    taskID,
		ActorID:   p.UserID,
		Type:      typ,
		Summary:   summary,
	})
}
