package task_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ganot/taskboard/internal/domain/access"
	"github.com/ganot/taskboard/internal/domain/task"
	"github.com/ganot/taskboard/internal/repository"
	"github.com/ganot/taskboard/internal/repository/mocks"
)

func newTaskService(tasks *mocks.TaskRepository, labels *mocks.LabelRepository, projects *mocks.ProjectRepository, files *mocks.FileStore) *task.Service {
	return task.NewService(tasks, labels, projects, access.NewGuard(projects), files, nil, nil)
}

func organizerProjects(ctx context.Context, projectID, organizerID string) *mocks.ProjectRepository {
	projects := &mocks.ProjectRepository{}
	projects.On("OrganizerID", ctx, projectID).Return(organizerID, nil)
	return projects
}

func TestToggle(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		from task.Status
		want task.Status
	}{
		{"not started becomes completed", task.StatusNotStarted, task.StatusCompleted},
		{"in progress becomes completed", task.StatusInProgress, task.StatusCompleted},
		{"completed drops to in progress", task.StatusCompleted, task.StatusInProgress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			projects := organizerProjects(ctx, "p1", "u1")
			tasks := &mocks.TaskRepository{}
			tasks.On("Get", ctx, "t1").Return(&task.Task{ID: "t1", ProjectID: "p1", Status: tt.from}, nil)
			tasks.On("Update", ctx, mock.Anything).Return(nil)

			svc := newTaskService(tasks, nil, projects, nil)
			got, err := svc.Toggle(ctx, access.Principal{UserID: "u1"}, "t1")
			require.NoError(t, err)
			require.Equal(t, tt.want, got.Status)
		})
	}
}

func TestToggleTwiceRestoresCompletion(t *testing.T) {
	ctx := context.Background()
	projects := organizerProjects(ctx, "p1", "u1")

	state := &task.Task{ID: "t1", ProjectID: "p1", Status: task.StatusInProgress}
	tasks := &mocks.TaskRepository{}
	tasks.On("Get", ctx, "t1").Return(state, nil)
	tasks.On("Update", ctx, mock.Anything).Return(nil)

	svc := newTaskService(tasks, nil, projects, nil)
	first, err := svc.Toggle(ctx, access.Principal{UserID: "u1"}, "t1")
	require.NoError(t, err)
	require.True(t, first.Status.Completed())

	second, err := svc.Toggle(ctx, access.Principal{UserID: "u1"}, "t1")
	require.NoError(t, err)
	require.False(t, second.Status.Completed())
	require.Equal(t, task.StatusInProgress, second.Status)
}

func TestArchiveRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	projects := organizerProjects(ctx, "p1", "u1")

	state := &task.Task{ID: "t1", ProjectID: "p1", Order: 3}
	tasks := &mocks.TaskRepository{}
	tasks.On("Get", ctx, "t1").Return(state, nil)
	tasks.On("Update", ctx, mock.Anything).Return(nil)

	svc := newTaskService(tasks, nil, projects, nil)

	archived, err := svc.Archive(ctx, access.Principal{UserID: "u1"}, "t1")
	require.NoError(t, err)
	require.True(t, archived.Archived)
	require.NotNil(t, archived.ArchivedAt)
	require.Equal(t, 3, archived.Order, "archive keeps the stale order value")

	restored, err := svc.Restore(ctx, access.Principal{UserID: "u1"}, "t1")
	require.NoError(t, err)
	require.False(t, restored.Archived)
	require.Nil(t, restored.ArchivedAt)
	require.Equal(t, 3, restored.Order)
}

func TestArchiveAlreadyArchivedIsNoOp(t *testing.T) {
	ctx := context.Background()
	projects := organizerProjects(ctx, "p1", "u1")

	tasks := &mocks.TaskRepository{}
	tasks.On("Get", ctx, "t1").Return(&task.Task{ID: "t1", ProjectID: "p1", Archived: true}, nil)

	svc := newTaskService(tasks, nil, projects, nil)
	got, err := svc.Archive(ctx, access.Principal{UserID: "u1"}, "t1")
	require.NoError(t, err)
	require.True(t, got.Archived)
	tasks.AssertNotCalled(t, "Update", ctx, mock.Anything)
}

func TestRestoreActiveIsNoOp(t *testing.T) {
	ctx := context.Background()
	projects := organizerProjects(ctx, "p1", "u1")

	tasks := &mocks.TaskRepository{}
	tasks.On("Get", ctx, "t1").Return(&task.Task{ID: "t1", ProjectID: "p1"}, nil)

	svc := newTaskService(tasks, nil, projects, nil)
	got, err := svc.Restore(ctx, access.Principal{UserID: "u1"}, "t1")
	require.NoError(t, err)
	require.False(t, got.Archived)
	tasks.AssertNotCalled(t, "Update", ctx, mock.Anything)
}

func TestAssign(t *testing.T) {
	ctx := context.Background()

	t.Run("member is eligible", func(t *testing.T) {
		projects := organizerProjects(ctx, "p1", "owner")
		projects.On("IsMember", ctx, "p1", "u2").Return(true, nil)

		tasks := &mocks.TaskRepository{}
		tasks.On("Get", ctx, "t1").Return(&task.Task{ID: "t1", ProjectID: "p1"}, nil)
		tasks.On("Update", ctx, mock.Anything).Return(nil)

		svc := newTaskService(tasks, nil, projects, nil)
		got, err := svc.Assign(ctx, access.Principal{UserID: "owner"}, "t1", "u2")
		require.NoError(t, err)
		require.NotNil(t, got.AssignedToUser)
		require.Equal(t, "u2", *got.AssignedToUser)
	})

	t.Run("organizer is eligible without membership edge", func(t *testing.T) {
		projects := organizerProjects(ctx, "p1", "owner")

		tasks := &mocks.TaskRepository{}
		tasks.On("Get", ctx, "t1").Return(&task.Task{ID: "t1", ProjectID: "p1"}, nil)
		tasks.On("Update", ctx, mock.Anything).Return(nil)

		svc := newTaskService(tasks, nil, projects, nil)
		got, err := svc.Assign(ctx, access.Principal{UserID: "owner"}, "t1", "owner")
		require.NoError(t, err)
		require.Equal(t, "owner", *got.AssignedToUser)
		projects.AssertNotCalled(t, "IsMember", ctx, "p1", "owner")
	})

	t.Run("outsider is rejected", func(t *testing.T) {
		projects := organizerProjects(ctx, "p1", "owner")
		projects.On("IsMember", ctx, "p1", "stranger").Return(false, nil)

		tasks := &mocks.TaskRepository{}
		tasks.On("Get", ctx, "t1").Return(&task.Task{ID: "t1", ProjectID: "p1"}, nil)

		svc := newTaskService(tasks, nil, projects, nil)
		_, err := svc.Assign(ctx, access.Principal{UserID: "owner"}, "t1", "stranger")
		require.ErrorIs(t, err, task.ErrAssigneeNotEligible)
	})

	t.Run("unassigned sentinel clears", func(t *testing.T) {
		projects := organizerProjects(ctx, "p1", "owner")

		current := "u2"
		tasks := &mocks.TaskRepository{}
		tasks.On("Get", ctx, "t1").Return(&task.Task{ID: "t1", ProjectID: "p1", AssignedToUser: &current}, nil)
		tasks.On("Update", ctx, mock.Anything).Return(nil)

		svc := newTaskService(tasks, nil, projects, nil)
		got, err := svc.Assign(ctx, access.Principal{UserID: "owner"}, "t1", task.Unassigned)
		require.NoError(t, err)
		require.Nil(t, got.AssignedToUser)
	})
}

func TestAttachLabel(t *testing.T) {
	ctx := context.Background()

	t.Run("creates on first use with palette color", func(t *testing.T) {
		projects := organizerProjects(ctx, "p1", "u1")
		tasks := &mocks.TaskRepository{}
		tasks.On("Get", ctx, "t1").Return(&task.Task{ID: "t1", ProjectID: "p1"}, nil)

		labels := &mocks.LabelRepository{}
		labels.On("GetByName", ctx, "p1", "bug").Return(nil, repository.ErrNotFound)
		labels.On("CountByProject", ctx, "p1").Return(2, nil)
		labels.On("Create", ctx, mock.MatchedBy(func(l *task.Label) bool {
			return l.Name == "bug" && l.Color == task.PaletteColor(2)
		})).Return(nil)
		labels.On("Attach", ctx, "t1", mock.Anything).Return(nil)

		svc := newTaskService(tasks, labels, projects, nil)
		label, err := svc.AttachLabel(ctx, access.Principal{UserID: "u1"}, "t1", "bug")
		require.NoError(t, err)
		require.Equal(t, task.PaletteColor(2), label.Color)
	})

	t.Run("reuses existing label and color", func(t *testing.T) {
		projects := organizerProjects(ctx, "p1", "u1")
		tasks := &mocks.TaskRepository{}
		tasks.On("Get", ctx, "t1").Return(&task.Task{ID: "t1", ProjectID: "p1"}, nil)

		existing := &task.Label{ID: "l1", ProjectID: "p1", Name: "bug", Color: "#e11d48"}
		labels := &mocks.LabelRepository{}
		labels.On("GetByName", ctx, "p1", "bug").Return(existing, nil)
		labels.On("Attach", ctx, "t1", "l1").Return(nil)

		svc := newTaskService(tasks, labels, projects, nil)
		label, err := svc.AttachLabel(ctx, access.Principal{UserID: "u1"}, "t1", "bug")
		require.NoError(t, err)
		require.Equal(t, "#e11d48", label.Color)
		labels.AssertNotCalled(t, "Create", ctx, mock.Anything)
	})

	t.Run("create race falls back to winner", func(t *testing.T) {
		projects := organizerProjects(ctx, "p1", "u1")
		tasks := &mocks.TaskRepository{}
		tasks.On("Get", ctx, "t1").Return(&task.Task{ID: "t1", ProjectID: "p1"}, nil)

		winner := &task.Label{ID: "l-won", ProjectID: "p1", Name: "bug", Color: "#0ea5e9"}
		labels := &mocks.LabelRepository{}
		labels.On("GetByName", ctx, "p1", "bug").Return(nil, repository.ErrNotFound).Once()
		labels.On("CountByProject", ctx, "p1").Return(0, nil)
		labels.On("Create", ctx, mock.Anything).Return(repository.ErrConflict)
		labels.On("GetByName", ctx, "p1", "bug").Return(winner, nil)
		labels.On("Attach", ctx, "t1", "l-won").Return(nil)

		svc := newTaskService(tasks, labels, projects, nil)
		label, err := svc.AttachLabel(ctx, access.Principal{UserID: "u1"}, "t1", "bug")
		require.NoError(t, err)
		require.Equal(t, "l-won", label.ID)
	})

	t.Run("blank name", func(t *testing.T) {
		svc := newTaskService(&mocks.TaskRepository{}, &mocks.LabelRepository{}, &mocks.ProjectRepository{}, nil)
		_, err := svc.AttachLabel(ctx, access.Principal{UserID: "u1"}, "t1", "   ")
		require.ErrorIs(t, err, task.ErrInvalidInput)
	})
}

func TestAttachImage(t *testing.T) {
	ctx := context.Background()
	projects := organizerProjects(ctx, "p1", "u1")

	tasks := &mocks.TaskRepository{}
	tasks.On("Get", ctx, "t1").Return(&task.Task{ID: "t1", ProjectID: "p1"}, nil)
	tasks.On("AddImage", ctx, mock.Anything).Return(nil)

	files := &mocks.FileStore{}
	files.On("Save", ctx, mock.MatchedBy(func(name string) bool {
		return len(name) > 4 && name[len(name)-4:] == ".png"
	}), []byte{0x89, 0x50}).Return("uploads/x.png", nil)

	svc := newTaskService(tasks, nil, projects, files)
	img, err := svc.AttachImage(ctx, access.Principal{UserID: "u1"}, "t1", "screenshot.png", []byte{0x89, 0x50})
	require.NoError(t, err)
	require.Equal(t, "uploads/x.png", img.FilePath)
	require.Equal(t, "screenshot.png", img.OriginalName)
}

func TestAttachImageRejectsEmpty(t *testing.T) {
	ctx := context.Background()
	svc := newTaskService(&mocks.TaskRepository{}, nil, &mocks.ProjectRepository{}, nil)
	_, err := svc.AttachImage(ctx, access.Principal{UserID: "u1"}, "t1", "x.png", nil)
	require.ErrorIs(t, err, task.ErrInvalidInput)
}

func TestDetailDerivesCompletion(t *testing.T) {
	ctx := context.Background()
	projects := organizerProjects(ctx, "p1", "u1")

	tasks := &mocks.TaskRepository{}
	tasks.On("Get", ctx, "t1").Return(&task.Task{ID: "t1", ProjectID: "p1", Status: task.StatusCompleted, Archived: true}, nil)
	tasks.On("ListImages", ctx, "t1").Return([]task.Image{}, nil)

	labels := &mocks.LabelRepository{}
	labels.On("ListByTask", ctx, "t1").Return([]task.Label{}, nil)

	svc := newTaskService(tasks, labels, projects, nil)
	detail, err := svc.Detail(ctx, access.Principal{UserID: "u1"}, "t1")
	require.NoError(t, err)
	require.True(t, detail.Completed)
	require.True(t, detail.Archived)
}

func TestMissingTask(t *testing.T) {
	ctx := context.Background()
	tasks := &mocks.TaskRepository{}
	tasks.On("Get", ctx, "ghost").Return(nil, repository.ErrNotFound)

	svc := newTaskService(tasks, nil, &mocks.ProjectRepository{}, nil)
	_, err := svc.Toggle(ctx, access.Principal{UserID: "u1"}, "ghost")
	require.ErrorIs(t, err, task.ErrTaskNotFound)
}
