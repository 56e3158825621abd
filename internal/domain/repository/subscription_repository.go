package repository

import (
	"context"

	"github.com/vidtube/backend/internal/domain/entity"
)

// SubscriptionRepository manages the directed subscriber->channel edges.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *entity.Subscription) error
	Delete(ctx context.Context, subscriberID, channelID string) error
	CountSubscribers(ctx context.Context, channelID string) (int64, error)
	CountSubscriptions(ctx context.Context, subscriberID string) (int64, error)
	Exists(ctx context.Context, subscriberID, channelID string) (bool, error)
}
