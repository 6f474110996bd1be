package activity_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ganot/taskboard/internal/domain/activity"
	"github.com/ganot/taskboard/internal/repository/mocks"
)

func TestActivityService_LogStampsTime(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ActivityRepository{}
	repo.On("Log", ctx, mock.MatchedBy(func(e *activity.Entry) bool {
		return !e.CreatedAt.IsZero()
	})).Return(nil)

	svc := activity.NewService(repo, nil)
	err := svc.Log(ctx, &activity.Entry{
		ProjectID: "p1",
		ActorID:   "u1",
		Type:      activity.TypeCardMoved,
		Summary:   "moved a card",
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestActivityService_LogValidation(t *testing.T) {
	ctx := context.Background()
	svc := activity.NewService(&mocks.ActivityRepository{}, nil)

	require.ErrorIs(t, svc.Log(ctx, nil), activity.ErrInvalidInput)
	require.ErrorIs(t, svc.Log(ctx, &activity.Entry{Summary: "no project"}), activity.ErrInvalidInput)
}

func TestActivityService_Recent(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ActivityRepository{}
	opts := activity.ListOptions{ProjectID: "p1", Limit: 10}
	repo.On("List", ctx, opts).Return([]activity.Entry{{ID: 2}, {ID: 1}}, nil)

	svc := activity.NewService(repo, nil)
	entries, err := svc.Recent(ctx, opts)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}
