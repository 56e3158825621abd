package application

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/vidtube/backend/internal/domain/entity"
	repo "github.com/vidtube/backend/internal/domain/repository"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*entity.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*entity.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	if u, ok := args.Get(0).(*entity.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	args := m.Called(ctx, email, username)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) UpdateRefreshToken(ctx context.Context, id, token string) error {
	return m.Called(ctx, id, token).Error(0)
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *mockUserRepo) UpdateFullname(ctx context.Context, id, fullname string) error {
	return m.Called(ctx, id, fullname).Error(0)
}

func (m *mockUserRepo) UpdateAvatarURL(ctx context.Context, id, url string) error {
	return m.Called(ctx, id, url).Error(0)
}

func (m *mockUserRepo) AppendWatchHistory(ctx context.Context, id, videoID string) error {
	return m.Called(ctx, id, videoID).Error(0)
}

type mockSubRepo struct{ mock.Mock }

func (m *mockSubRepo) Create(ctx context.Context, sub *entity.Subscription) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *mockSubRepo) Delete(ctx context.Context, subscriberID, channelID string) error {
	return m.Called(ctx, subscriberID, channelID).Error(0)
}

func (m *mockSubRepo) CountSubscribers(ctx context.Context, channelID string) (int64, error) {
	args := m.Called(ctx, channelID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSubRepo) CountSubscriptions(ctx context.Context, subscriberID string) (int64, error) {
	args := m.Called(ctx, subscriberID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSubRepo) Exists(ctx context.Context, subscriberID, channelID string) (bool, error) {
	args := m.Called(ctx, subscriberID, channelID)
	return args.Bool(0), args.Error(1)
}

type mockVideoRepo struct{ mock.Mock }

func (m *mockVideoRepo) GetByID(ctx context.Context, id string) (*entity.Video, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*entity.Video); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockVideoRepo) FindWithOwners(ctx context.Context, ids []string) (map[string]repo.VideoWithOwner, error) {
	args := m.Called(ctx, ids)
	if r, ok := args.Get(0).(map[string]repo.VideoWithOwner); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockAssetGateway struct{ mock.Mock }

func (m *mockAssetGateway) Upload(ctx context.Context, r io.Reader, folder, filename, contentType string) (entity.AssetReference, error) {
	args := m.Called(ctx, r, folder, filename, contentType)
	return args.Get(0).(entity.AssetReference), args.Error(1)
}

func (m *mockAssetGateway) Delete(ctx context.Context, publicID string) error {
	return m.Called(ctx, publicID).Error(0)
}

func (m *mockAssetGateway) PublicIDFromURL(url string) string {
	return m.Called(url).String(0)
}
