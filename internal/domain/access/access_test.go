package access_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ganot/taskboard/internal/domain/access"
	"github.com/ganot/taskboard/internal/repository"
	"github.com/ganot/taskboard/internal/repository/mocks"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		principal   access.Principal
		organizerID string
		isMember    bool
		want        access.Role
	}{
		{"admin wins over everything", access.Principal{UserID: "u1", Admin: true}, "u2", false, access.RoleAdmin},
		{"admin wins even as organizer", access.Principal{UserID: "u1", Admin: true}, "u1", true, access.RoleAdmin},
		{"organizer", access.Principal{UserID: "u1"}, "u1", false, access.RoleOrganizer},
		{"member", access.Principal{UserID: "u1"}, "u2", true, access.RoleMember},
		{"stranger", access.Principal{UserID: "u1"}, "u2", false, access.RoleDenied},
		{"empty user id never matches organizer", access.Principal{}, "", false, access.RoleDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, access.Resolve(tt.principal, tt.organizerID, tt.isMember))
		})
	}
}

func TestRoleCapabilities(t *testing.T) {
	require.True(t, access.RoleAdmin.CanMutateBoard())
	require.True(t, access.RoleOrganizer.CanMutateBoard())
	require.True(t, access.RoleMember.CanMutateBoard())
	require.False(t, access.RoleDenied.CanMutateBoard())

	require.True(t, access.RoleAdmin.CanManageProject())
	require.True(t, access.RoleOrganizer.CanManageProject())
	require.False(t, access.RoleMember.CanManageProject())
	require.False(t, access.RoleDenied.CanManageProject())
}

func TestGuardAuthorize(t *testing.T) {
	ctx := context.Background()

	t.Run("organizer skips membership lookup", func(t *testing.T) {
		repo := &mocks.ProjectRepository{}
		repo.On("OrganizerID", ctx, "p1").Return("u1", nil)

		guard := access.NewGuard(repo)
		role, err := guard.Authorize(ctx, access.Principal{UserID: "u1"}, "p1")
		require.NoError(t, err)
		require.Equal(t, access.RoleOrganizer, role)
		repo.AssertNotCalled(t, "IsMember", ctx, "p1", "u1")
	})

	t.Run("member", func(t *testing.T) {
		repo := &mocks.ProjectRepository{}
		repo.On("OrganizerID", ctx, "p1").Return("owner", nil)
		repo.On("IsMember", ctx, "p1", "u1").Return(true, nil)

		guard := access.NewGuard(repo)
		role, err := guard.Authorize(ctx, access.Principal{UserID: "u1"}, "p1")
		require.NoError(t, err)
		require.Equal(t, access.RoleMember, role)
	})

	t.Run("stranger is denied without error", func(t *testing.T) {
		repo := &mocks.ProjectRepository{}
		repo.On("OrganizerID", ctx, "p1").Return("owner", nil)
		repo.On("IsMember", ctx, "p1", "u1").Return(false, nil)

		guard := access.NewGuard(repo)
		role, err := guard.Authorize(ctx, access.Principal{UserID: "u1"}, "p1")
		require.NoError(t, err)
		require.Equal(t, access.RoleDenied, role)
	})

	t.Run("missing project surfaces not found", func(t *testing.T) {
		repo := &mocks.ProjectRepository{}
		repo.On("OrganizerID", ctx, "missing").Return("", repository.ErrNotFound)

		guard := access.NewGuard(repo)
		_, err := guard.Authorize(ctx, access.Principal{UserID: "u1"}, "missing")
		require.ErrorIs(t, err, repository.ErrNotFound)
	})
}
