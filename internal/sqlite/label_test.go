package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ganot/taskboard/internal/domain/task"
	"github.com/ganot/taskboard/internal/repository"
)

func TestLabelRepository_CreateAndGetByName(t *testing.T) {
	db := NewTestDB(t)
	repo := NewLabelRepository(db)
	ctx := context.Background()

	seedUser(t, db, "u1", "u1@example.com")
	seedProject(t, db, "p1", "u1")
	seedProject(t, db, "p2", "u1")

	label := &task.Label{ID: "l1", ProjectID: "p1", Name: "bug", Color: "#eb5a46"}
	require.NoError(t, repo.Create(ctx, label))

	got, err := repo.GetByName(ctx, "p1", "bug")
	require.NoError(t, err)
	require.Equal(t, "l1", got.ID)
	require.Equal(t, "#eb5a46", got.Color)

	// Name is scoped per project, not global.
	_, err = repo.GetByName(ctx, "p2", "bug")
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.NoError(t, repo.Create(ctx, &task.Label{ID: "l2", ProjectID: "p2", Name: "bug", Color: "#61bd4f"}))

	// Duplicate name within a project is a conflict.
	err = repo.Create(ctx, &task.Label{ID: "l3", ProjectID: "p1", Name: "bug", Color: "#f2d600"})
	require.ErrorIs(t, err, repository.ErrConflict)
}

func TestLabelRepository_CountByProject(t *testing.T) {
	db := NewTestDB(t)
	repo := NewLabelRepository(db)
	ctx := context.Background()

	seedUser(t, db, "u1", "u1@example.com")
	seedProject(t, db, "p1", "u1")

	count, err := repo.CountByProject(ctx, "p1")
	require.NoError(t, err)
	require.Zero(t, count)

	require.NoError(t, repo.Create(ctx, &task.Label{ID: "l1", ProjectID: "p1", Name: "bug", Color: "#eb5a46"}))
	require.NoError(t, repo.Create(ctx, &task.Label{ID: "l2", ProjectID: "p1", Name: "ui", Color: "#61bd4f"}))

	count, err = repo.CountByProject(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestLabelRepository_AttachIdempotent(t *testing.T) {
	db := NewTestDB(t)
	repo := NewLabelRepository(db)
	ctx := context.Background()

	seedUser(t, db, "u1", "u1@example.com")
	seedProject(t, db, "p1", "u1")
	seedColumn(t, db, "c1", "p1", 0)
	seedTask(t, db, "t1", "p1", "c1", 0)

	require.NoError(t, repo.Create(ctx, &task.Label{ID: "l1", ProjectID: "p1", Name: "bug", Color: "#eb5a46"}))

	require.NoError(t, repo.Attach(ctx, "t1", "l1"))
	require.NoError(t, repo.Attach(ctx, "t1", "l1"), "second attach is a no-op")

	labels, err := repo.ListByTask(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, labels, 1)
}

func TestLabelRepository_ListByTaskSortsByName(t *testing.T) {
	db := NewTestDB(t)
	repo := NewLabelRepository(db)
	ctx := context.Background()

	seedUser(t, db, "u1", "u1@example.com")
	seedProject(t, db, "p1", "u1")
	seedColumn(t, db, "c1", "p1", 0)
	seedTask(t, db, "t1", "p1", "c1", 0)

	require.NoError(t, repo.Create(ctx, &task.Label{ID: "l1", ProjectID: "p1", Name: "zeta", Color: "#eb5a46"}))
	require.NoError(t, repo.Create(ctx, &task.Label{ID: "l2", ProjectID: "p1", Name: "alpha", Color: "#61bd4f"}))
	require.NoError(t, repo.Attach(ctx, "t1", "l1"))
	require.NoError(t, repo.Attach(ctx, "t1", "l2"))

	labels, err := repo.ListByTask(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, labels, 2)
	require.Equal(t, "alpha", labels[0].Name)
	require.Equal(t, "zeta", labels[1].Name)
}
