// Package mocks provides hand-written testify mocks for the repository
// interfaces consumed by the domain services.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/ganot/taskboard/internal/domain/activity"
	"github.com/ganot/taskboard/internal/domain/board"
	"github.com/ganot/taskboard/internal/domain/project"
	"github.com/ganot/taskboard/internal/domain/task"
	"github.com/ganot/taskboard/internal/identity"
)

// ProjectRepository is a mock for project.Repository, board.ProjectSource,
// and access.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProjectRepository) ListVisible(ctx context.Context, userID string, admin bool) ([]project.Summary, error) {
	args := m.Called(ctx, userID, admin)
	if list, ok := args.Get(0).([]project.Summary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) OrganizerID(ctx context.Context, projectID string) (string, error) {
	args := m.Called(ctx, projectID)
	return args.String(0), args.Error(1)
}

func (m *ProjectRepository) AddMember(ctx context.Context, member *project.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *ProjectRepository) RemoveMember(ctx context.Context, projectID, userID string) error {
	args := m.Called(ctx, projectID, userID)
	return args.Error(0)
}

func (m *ProjectRepository) ListMembers(ctx context.Context, projectID string) ([]project.Member, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]project.Member); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) IsMember(ctx context.Context, projectID, userID string) (bool, error) {
	args := m.Called(ctx, projectID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *ProjectRepository) SetInsights(ctx context.Context, projectID, summary string, at time.Time) error {
	args := m.Called(ctx, projectID, summary, at)
	return args.Error(0)
}

func (m *ProjectRepository) Title(ctx context.Context, projectID string) (string, error) {
	args := m.Called(ctx, projectID)
	return args.String(0), args.Error(1)
}

// ColumnRepository is a mock for board.ColumnRepository.
type ColumnRepository struct {
	mock.Mock
}

func (m *ColumnRepository) Create(ctx context.Context, c *board.Column) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *ColumnRepository) Get(ctx context.Context, id string) (*board.Column, error) {
	args := m.Called(ctx, id)
	if col, ok := args.Get(0).(*board.Column); ok {
		return col, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ColumnRepository) ListByProject(ctx context.Context, projectID string) ([]board.Column, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]board.Column); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ColumnRepository) MaxOrder(ctx context.Context, projectID string) (int, error) {
	args := m.Called(ctx, projectID)
	return args.Int(0), args.Error(1)
}

// TaskRepository is a mock for task.Repository.
type TaskRepository struct {
	mock.Mock
}

func (m *TaskRepository) Create(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *TaskRepository) Get(ctx context.Context, id string) (*task.Task, error) {
	args := m.Called(ctx, id)
	if t, ok := args.Get(0).(*task.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) Update(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *TaskRepository) ListActiveByColumn(ctx context.Context, columnID string) ([]task.Task, error) {
	args := m.Called(ctx, columnID)
	if list, ok := args.Get(0).([]task.Task); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) ListByProject(ctx context.Context, projectID string) ([]task.Task, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]task.Task); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) MaxOrder(ctx context.Context, columnID string) (int, error) {
	args := m.Called(ctx, columnID)
	return args.Int(0), args.Error(1)
}

func (m *TaskRepository) Reorder(ctx context.Context, columnID string, orderedTaskIDs []string) error {
	args := m.Called(ctx, columnID, orderedTaskIDs)
	return args.Error(0)
}

func (m *TaskRepository) AddImage(ctx context.Context, img *task.Image) error {
	args := m.Called(ctx, img)
	return args.Error(0)
}

func (m *TaskRepository) ListImages(ctx context.Context, taskID string) ([]task.Image, error) {
	args := m.Called(ctx, taskID)
	if list, ok := args.Get(0).([]task.Image); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// LabelRepository is a mock for task.LabelRepository.
type LabelRepository struct {
	mock.Mock
}

func (m *LabelRepository) Create(ctx context.Context, l *task.Label) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *LabelRepository) GetByName(ctx context.Context, projectID, name string) (*task.Label, error) {
	args := m.Called(ctx, projectID, name)
	if l, ok := args.Get(0).(*task.Label); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *LabelRepository) CountByProject(ctx context.Context, projectID string) (int, error) {
	args := m.Called(ctx, projectID)
	return args.Int(0), args.Error(1)
}

func (m *LabelRepository) Attach(ctx context.Context, taskID, labelID string) error {
	args := m.Called(ctx, taskID, labelID)
	return args.Error(0)
}

func (m *LabelRepository) ListByTask(ctx context.Context, taskID string) ([]task.Label, error) {
	args := m.Called(ctx, taskID)
	if list, ok := args.Get(0).([]task.Label); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// UserRepository is a mock for identity.Repository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, u *identity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepository) Get(ctx context.Context, id string) (*identity.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*identity.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*identity.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// UserDirectory is a mock for project.UserDirectory.
type UserDirectory struct {
	mock.Mock
}

func (m *UserDirectory) LookupEmail(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *UserDirectory) Exists(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// FileStore is a mock for task.FileStore.
type FileStore struct {
	mock.Mock
}

func (m *FileStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	args := m.Called(ctx, name, data)
	return args.String(0), args.Error(1)
}
