package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vidtube/backend/internal/domain/entity"
	"github.com/vidtube/backend/internal/domain/repository"
)

type VideoRepository struct {
	pool *pgxpool.Pool
}

func NewVideoRepository(pool *pgxpool.Pool) *VideoRepository {
	return &VideoRepository{pool: pool}
}

func (r *VideoRepository) GetByID(ctx context.Context, id string) (*entity.Video, error) {
	v := &entity.Video{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, owner_id, title, description, thumbnail_url, video_url, duration, views, created_at, updated_at
		FROM videos WHERE id = $1
	`, id)
	if err := row.Scan(&v.ID, &v.OwnerID, &v.Title, &v.Description, &v.ThumbnailURL,
		&v.VideoURL, &v.Duration, &v.Views, &v.CreatedAt, &v.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

// FindWithOwners joins each video with its owner summary in one round trip.
func (r *VideoRepository) FindWithOwners(ctx context.Context, ids []string) (map[string]repository.VideoWithOwner, error) {
	out := make(map[string]repository.VideoWithOwner, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT v.id, v.owner_id, v.title, v.description, v.thumbnail_url, v.video_url,
		       v.duration, v.views, v.created_at, v.updated_at,
		       o.id, o.username, o.fullname, o.avatar_url
		FROM videos v
		JOIN users o ON o.id = v.owner_id
		WHERE v.id = ANY($1)
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var rec repository.VideoWithOwner
		v := &rec.Video
		o := &rec.Owner
		if err := rows.Scan(&v.ID, &v.OwnerID, &v.Title, &v.Description, &v.ThumbnailURL,
			&v.VideoURL, &v.Duration, &v.Views, &v.CreatedAt, &v.UpdatedAt,
			&o.ID, &o.Username, &o.Fullname, &o.AvatarURL); err != nil {
			return nil, err
		}
		out[v.ID] = rec
	}
	return out, rows.Err()
}

var _ repository.VideoRepository = (*VideoRepository)(nil)
