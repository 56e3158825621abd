package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vidtube/backend/internal/domain/entity"
	repo "github.com/vidtube/backend/internal/domain/repository"
	"github.com/vidtube/backend/pkg/apperr"
)

func newChannelService(users *mockUserRepo, subs *mockSubRepo, videos *mockVideoRepo) *ChannelService {
	return NewChannelService(users, subs, videos, testLogger())
}

func TestGetChannelProfileAggregatesCounts(t *testing.T) {
	users := &mockUserRepo{}
	subs := &mockSubRepo{}
	svc := newChannelService(users, subs, &mockVideoRepo{})

	users.On("GetByUsername", mock.Anything, "alice").Return(&entity.User{
		ID: "u1", Username: "alice", Fullname: "Alice Anders",
		AvatarURL: "https://cdn/a", CoverImageURL: "https://cdn/c",
	}, nil)
	subs.On("CountSubscribers", mock.Anything, "u1").Return(int64(42), nil)
	subs.On("CountSubscriptions", mock.Anything, "u1").Return(int64(7), nil)
	subs.On("Exists", mock.Anything, "u9", "u1").Return(true, nil)

	p, err := svc.GetChannelProfile(context.Background(), "alice", "u9")
	require.NoError(t, err)
	assert.Equal(t, int64(42), p.SubscribersCount)
	assert.Equal(t, int64(7), p.SubscriptionsCount)
	assert.True(t, p.IsSubscribed)
	assert.Equal(t, "alice", p.Username)
}

func TestGetChannelProfileAnonymousRequester(t *testing.T) {
	users := &mockUserRepo{}
	subs := &mockSubRepo{}
	svc := newChannelService(users, subs, &mockVideoRepo{})

	users.On("GetByUsername", mock.Anything, "alice").Return(&entity.User{ID: "u1", Username: "alice"}, nil)
	subs.On("CountSubscribers", mock.Anything, "u1").Return(int64(0), nil)
	subs.On("CountSubscriptions", mock.Anything, "u1").Return(int64(0), nil)

	p, err := svc.GetChannelProfile(context.Background(), "alice", "")
	require.NoError(t, err)
	assert.False(t, p.IsSubscribed)
	subs.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetChannelProfileUnknownChannel(t *testing.T) {
	users := &mockUserRepo{}
	svc := newChannelService(users, &mockSubRepo{}, &mockVideoRepo{})

	users.On("GetByUsername", mock.Anything, "ghost").Return(nil, repo.ErrNotFound)
	_, err := svc.GetChannelProfile(context.Background(), "ghost", "u9")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestGetWatchHistoryPreservesStoredOrder(t *testing.T) {
	users := &mockUserRepo{}
	videos := &mockVideoRepo{}
	svc := newChannelService(users, &mockSubRepo{}, videos)

	users.On("GetByUsername", mock.Anything, "alice").Return(&entity.User{
		ID: "u1", Username: "alice", WatchHistory: []string{"v3", "v1", "v2"},
	}, nil)
	videos.On("FindWithOwners", mock.Anything, []string{"v3", "v1", "v2"}).Return(map[string]repo.VideoWithOwner{
		"v1": {Video: entity.Video{ID: "v1", Title: "first"}, Owner: entity.OwnerSummary{ID: "o1"}},
		"v2": {Video: entity.Video{ID: "v2", Title: "second"}, Owner: entity.OwnerSummary{ID: "o2"}},
		"v3": {Video: entity.Video{ID: "v3", Title: "third"}, Owner: entity.OwnerSummary{ID: "o3"}},
	}, nil)

	got, err := svc.GetWatchHistory(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "v3", got[0].ID)
	assert.Equal(t, "v1", got[1].ID)
	assert.Equal(t, "v2", got[2].ID)
	assert.Equal(t, "o1", got[1].Owner.ID)
}

func TestGetWatchHistorySkipsDeletedVideos(t *testing.T) {
	users := &mockUserRepo{}
	videos := &mockVideoRepo{}
	svc := newChannelService(users, &mockSubRepo{}, videos)

	users.On("GetByUsername", mock.Anything, "alice").Return(&entity.User{
		ID: "u1", WatchHistory: []string{"v1", "gone", "v2"},
	}, nil)
	videos.On("FindWithOwners", mock.Anything, []string{"v1", "gone", "v2"}).Return(map[string]repo.VideoWithOwner{
		"v1": {Video: entity.Video{ID: "v1"}},
		"v2": {Video: entity.Video{ID: "v2"}},
	}, nil)

	got, err := svc.GetWatchHistory(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "v1", got[0].ID)
	assert.Equal(t, "v2", got[1].ID)
}

func TestGetWatchHistoryEmpty(t *testing.T) {
	users := &mockUserRepo{}
	videos := &mockVideoRepo{}
	svc := newChannelService(users, &mockSubRepo{}, videos)

	users.On("GetByUsername", mock.Anything, "alice").Return(&entity.User{ID: "u1"}, nil)
	videos.On("FindWithOwners", mock.Anything, mock.Anything).Return(map[string]repo.VideoWithOwner{}, nil)

	got, err := svc.GetWatchHistory(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSubscribeRejectsSelf(t *testing.T) {
	users := &mockUserRepo{}
	subs := &mockSubRepo{}
	svc := newChannelService(users, subs, &mockVideoRepo{})

	users.On("GetByUsername", mock.Anything, "alice").Return(&entity.User{ID: "u1", Username: "alice"}, nil)

	_, err := svc.Subscribe(context.Background(), "u1", "alice")
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
	subs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubscribeDuplicateIsConflict(t *testing.T) {
	users := &mockUserRepo{}
	subs := &mockSubRepo{}
	svc := newChannelService(users, subs, &mockVideoRepo{})

	users.On("GetByUsername", mock.Anything, "alice").Return(&entity.User{ID: "u1"}, nil)
	subs.On("Create", mock.Anything, mock.Anything).Return(repo.ErrDuplicate)

	_, err := svc.Subscribe(context.Background(), "u9", "alice")
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
}

func TestSubscribeCreatesEdge(t *testing.T) {
	users := &mockUserRepo{}
	subs := &mockSubRepo{}
	svc := newChannelService(users, subs, &mockVideoRepo{})

	users.On("GetByUsername", mock.Anything, "alice").Return(&entity.User{ID: "u1"}, nil)
	subs.On("Create", mock.Anything, mock.MatchedBy(func(s *entity.Subscription) bool {
		return s.SubscriberID == "u9" && s.ChannelID == "u1"
	})).Return(nil)

	sub, err := svc.Subscribe(context.Background(), "u9", "alice")
	require.NoError(t, err)
	assert.Equal(t, "u1", sub.ChannelID)
	subs.AssertExpectations(t)
}

func TestUnsubscribeMissingEdge(t *testing.T) {
	users := &mockUserRepo{}
	subs := &mockSubRepo{}
	svc := newChannelService(users, subs, &mockVideoRepo{})

	users.On("GetByUsername", mock.Anything, "alice").Return(&entity.User{ID: "u1"}, nil)
	subs.On("Delete", mock.Anything, "u9", "u1").Return(repo.ErrNotFound)

	err := svc.Unsubscribe(context.Background(), "u9", "alice")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}
