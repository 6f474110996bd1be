package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ganot/taskboard/internal/domain/project"
	"github.com/ganot/taskboard/internal/repository"
)

func TestProjectRepository_CreateGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	seedUser(t, db, "u1", "u1@example.com")

	proj := &project.Project{
		ID:          "p1",
		Title:       "Launch",
		Description: "Ship the thing",
		OrganizerID: "u1",
		CreatedAt:   time.Now(),
	}
	require.NoError(t, repo.Create(ctx, proj))

	got, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "Launch", got.Title)
	require.Equal(t, "Ship the thing", got.Description)
	require.Equal(t, "u1", got.OrganizerID)
	require.Nil(t, got.AISummary)

	_, err = repo.Get(ctx, "nonexistent")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectRepository_Update(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	seedUser(t, db, "u1", "u1@example.com")
	seedProject(t, db, "p1", "u1")

	proj, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	proj.Title = "Renamed"
	proj.Description = "New description"
	require.NoError(t, repo.Update(ctx, proj))

	got, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "Renamed", got.Title)

	require.ErrorIs(t, repo.Update(ctx, &project.Project{ID: "ghost", Title: "x"}), repository.ErrNotFound)
}

func TestProjectRepository_Delete(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	seedUser(t, db, "u1", "u1@example.com")
	seedProject(t, db, "p1", "u1")

	require.NoError(t, repo.Delete(ctx, "p1"))
	_, err := repo.Get(ctx, "p1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.ErrorIs(t, repo.Delete(ctx, "p1"), repository.ErrNotFound)
}

func TestProjectRepository_ListVisible(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	seedUser(t, db, "owner", "owner@example.com")
	seedUser(t, db, "member", "member@example.com")
	seedUser(t, db, "outsider", "outsider@example.com")
	seedProject(t, db, "p1", "owner")
	seedProject(t, db, "p2", "outsider")

	require.NoError(t, repo.AddMember(ctx, &project.Member{ProjectID: "p1", UserID: "member", JoinedAt: time.Now()}))

	t.Run("organizer sees own project", func(t *testing.T) {
		summaries, err := repo.ListVisible(ctx, "owner", false)
		require.NoError(t, err)
		require.Len(t, summaries, 1)
		require.Equal(t, "p1", summaries[0].ID)
	})

	t.Run("member sees joined project", func(t *testing.T) {
		summaries, err := repo.ListVisible(ctx, "member", false)
		require.NoError(t, err)
		require.Len(t, summaries, 1)
		require.Equal(t, "p1", summaries[0].ID)
		require.Equal(t, 1, summaries[0].MemberCount)
	})

	t.Run("admin sees everything", func(t *testing.T) {
		summaries, err := repo.ListVisible(ctx, "whoever", true)
		require.NoError(t, err)
		require.Len(t, summaries, 2)
	})

	t.Run("stranger sees nothing of others", func(t *testing.T) {
		summaries, err := repo.ListVisible(ctx, "member2", false)
		require.NoError(t, err)
		require.Empty(t, summaries)
	})
}

func TestProjectRepository_Membership(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	seedUser(t, db, "owner", "owner@example.com")
	seedUser(t, db, "member", "member@example.com")
	seedProject(t, db, "p1", "owner")

	edge := &project.Member{ProjectID: "p1", UserID: "member", JoinedAt: time.Now()}
	require.NoError(t, repo.AddMember(ctx, edge))

	// Duplicate edge is a conflict.
	require.ErrorIs(t, repo.AddMember(ctx, edge), repository.ErrConflict)

	isMember, err := repo.IsMember(ctx, "p1", "member")
	require.NoError(t, err)
	require.True(t, isMember)

	members, err := repo.ListMembers(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.Equal(t, "member@example.com", members[0].Email)

	require.NoError(t, repo.RemoveMember(ctx, "p1", "member"))
	require.ErrorIs(t, repo.RemoveMember(ctx, "p1", "member"), repository.ErrNotFound)

	isMember, err = repo.IsMember(ctx, "p1", "member")
	require.NoError(t, err)
	require.False(t, isMember)
}

func TestProjectRepository_OrganizerIDAndTitle(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	seedUser(t, db, "u1", "u1@example.com")
	seedProject(t, db, "p1", "u1")

	organizerID, err := repo.OrganizerID(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "u1", organizerID)

	title, err := repo.Title(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "Project p1", title)

	_, err = repo.OrganizerID(ctx, "ghost")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectRepository_SetInsights(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	seedUser(t, db, "u1", "u1@example.com")
	seedProject(t, db, "p1", "u1")

	at := time.Now()
	require.NoError(t, repo.SetInsights(ctx, "p1", "Summary text", at))

	got, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, got.AISummary)
	require.Equal(t, "Summary text", *got.AISummary)
	require.NotNil(t, got.AISummaryAt)

	require.ErrorIs(t, repo.SetInsights(ctx, "ghost", "x", at), repository.ErrNotFound)
}
