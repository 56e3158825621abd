package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vidtube/backend/internal/domain/entity"
	"github.com/vidtube/backend/internal/domain/repository"
)

const userColumns = `id, username, email, fullname, password, avatar_url, cover_image_url, watch_history, refresh_token, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var refresh *string
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Fullname, &u.Password,
		&u.AvatarURL, &u.CoverImageURL, &u.WatchHistory, &refresh,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if refresh != nil {
		u.RefreshToken = *refresh
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, fullname, password, avatar_url, cover_image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, u.Username, u.Email, u.Fullname, u.Password, u.AvatarURL, u.CoverImageURL)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE email = $1
	`, email))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE username = lower($1)
	`, username))
}

func (r *UserRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM users WHERE email = $1 OR username = lower($2)
		)
	`, email, username).Scan(&exists)
	return exists, err
}

func (r *UserRepository) UpdateRefreshToken(ctx context.Context, id, token string) error {
	var val *string
	if token != "" {
		val = &token
	}
	return r.exec(ctx, `
		UPDATE users SET refresh_token = $2, updated_at = now() WHERE id = $1
	`, id, val)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.exec(ctx, `
		UPDATE users SET password = $2, updated_at = now() WHERE id = $1
	`, id, passwordHash)
}

func (r *UserRepository) UpdateFullname(ctx context.Context, id, fullname string) error {
	return r.exec(ctx, `
		UPDATE users SET fullname = $2, updated_at = now() WHERE id = $1
	`, id, fullname)
}

func (r *UserRepository) UpdateAvatarURL(ctx context.Context, id, url string) error {
	return r.exec(ctx, `
		UPDATE users SET avatar_url = $2, updated_at = now() WHERE id = $1
	`, id, url)
}

func (r *UserRepository) AppendWatchHistory(ctx context.Context, id, videoID string) error {
	return r.exec(ctx, `
		UPDATE users SET watch_history = array_append(watch_history, $2), updated_at = now()
		WHERE id = $1
	`, id, videoID)
}

func (r *UserRepository) exec(ctx context.Context, sql string, args ...any) error {
	res, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ repository.UserRepository = (*UserRepository)(nil)
