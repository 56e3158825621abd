package repository

import (
	"context"

	"github.com/vidtube/backend/internal/domain/entity"
)

// VideoWithOwner is a video row joined with its owner's summary.
type VideoWithOwner struct {
	Video entity.Video
	Owner entity.OwnerSummary
}

// VideoRepository provides the read side of the video collection.
type VideoRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Video, error)
	// FindWithOwners resolves ids to videos with their owner join flattened.
	// Unknown ids are simply absent from the result; callers decide ordering.
	FindWithOwners(ctx context.Context, ids []string) (map[string]VideoWithOwner, error)
}
