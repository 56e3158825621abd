package repository

import (
	"context"
	"errors"

	"github.com/vidtube/backend/internal/domain/entity"
)

var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned on unique-constraint violations. The store's
	// unique indexes are the race-breaker for concurrent creations.
	ErrDuplicate = errors.New("duplicate entry")
)

// UserRepository defines the user-document operations backed by the store.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// ExistsByEmailOrUsername checks both identities; username matching is
	// case-insensitive.
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)

	// UpdateRefreshToken overwrites the persisted refresh token; an empty
	// token revokes it. Single-field update, no document re-validation.
	UpdateRefreshToken(ctx context.Context, id, token string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateFullname(ctx context.Context, id, fullname string) error
	UpdateAvatarURL(ctx context.Context, id, url string) error
	AppendWatchHistory(ctx context.Context, id, videoID string) error
}
