package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/vidtube/backend/internal/domain/entity"
	repo "github.com/vidtube/backend/internal/domain/repository"
	"github.com/vidtube/backend/pkg/apperr"
)

// ChannelService composes the read-side graph queries: per-channel social
// metrics and denormalized watch history. Match -> join -> project, executed
// against the repository interfaces.
type ChannelService struct {
	Users  repo.UserRepository
	Subs   repo.SubscriptionRepository
	Videos repo.VideoRepository
	Logger *logrus.Logger
}

func NewChannelService(users repo.UserRepository, subs repo.SubscriptionRepository, videos repo.VideoRepository, logger *logrus.Logger) *ChannelService {
	return &ChannelService{Users: users, Subs: subs, Videos: videos, Logger: logger}
}

// GetChannelProfile aggregates the channel view of a user: subscriber and
// subscription cardinalities, plus whether the requester subscribes to it.
func (s *ChannelService) GetChannelProfile(ctx context.Context, username, requesterID string) (entity.ChannelProfile, error) {
	var zero entity.ChannelProfile
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return zero, apperr.New(apperr.NotFound, "channel does not exist")
		}
		return zero, apperr.Wrap(apperr.Internal, "failed to load channel", err)
	}

	subscribers, err := s.Subs.CountSubscribers(ctx, u.ID)
	if err != nil {
		return zero, apperr.Wrap(apperr.Internal, "failed to count subscribers", err)
	}
	subscriptions, err := s.Subs.CountSubscriptions(ctx, u.ID)
	if err != nil {
		return zero, apperr.Wrap(apperr.Internal, "failed to count subscriptions", err)
	}

	isSubscribed := false
	if requesterID != "" {
		isSubscribed, err = s.Subs.Exists(ctx, requesterID, u.ID)
		if err != nil {
			return zero, apperr.Wrap(apperr.Internal, "failed to check subscription", err)
		}
	}

	return entity.ChannelProfile{
		ID:                 u.ID,
		Username:           u.Username,
		Fullname:           u.Fullname,
		AvatarURL:          u.AvatarURL,
		CoverImageURL:      u.CoverImageURL,
		SubscribersCount:   subscribers,
		SubscriptionsCount: subscriptions,
		IsSubscribed:       isSubscribed,
	}, nil
}

// GetWatchHistory denormalizes the user's stored video-id sequence: each id is
// joined to its video and the video's owner flattened to a summary. Output
// order follows the stored sequence, not the join order; ids that no longer
// resolve to a video are skipped.
func (s *ChannelService) GetWatchHistory(ctx context.Context, username string) ([]entity.WatchEntry, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "user not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "failed to load user", err)
	}

	joined, err := s.Videos.FindWithOwners(ctx, u.WatchHistory)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to load watch history", err)
	}

	out := make([]entity.WatchEntry, 0, len(u.WatchHistory))
	for _, id := range u.WatchHistory {
		rec, ok := joined[id]
		if !ok {
			continue
		}
		out = append(out, entity.WatchEntry{
			ID:           rec.Video.ID,
			Title:        rec.Video.Title,
			ThumbnailURL: rec.Video.ThumbnailURL,
			Duration:     rec.Video.Duration,
			Views:        rec.Video.Views,
			Owner:        rec.Owner,
		})
	}
	return out, nil
}

// Subscribe creates the directed edge requester -> channel.
func (s *ChannelService) Subscribe(ctx context.Context, subscriberID, channelUsername string) (*entity.Subscription, error) {
	ch, err := s.Users.GetByUsername(ctx, channelUsername)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "channel does not exist")
		}
		return nil, apperr.Wrap(apperr.Internal, "failed to load channel", err)
	}
	if ch.ID == subscriberID {
		return nil, apperr.New(apperr.Validation, "cannot subscribe to your own channel")
	}

	sub := &entity.Subscription{SubscriberID: subscriberID, ChannelID: ch.ID}
	if err := s.Subs.Create(ctx, sub); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperr.New(apperr.Conflict, "already subscribed")
		}
		return nil, apperr.Wrap(apperr.Internal, "failed to create subscription", err)
	}
	return sub, nil
}

// Unsubscribe removes the edge requester -> channel.
func (s *ChannelService) Unsubscribe(ctx context.Context, subscriberID, channelUsername string) error {
	ch, err := s.Users.GetByUsername(ctx, channelUsername)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperr.New(apperr.NotFound, "channel does not exist")
		}
		return apperr.Wrap(apperr.Internal, "failed to load channel", err)
	}
	if err := s.Subs.Delete(ctx, subscriberID, ch.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperr.New(apperr.NotFound, "subscription not found")
		}
		return apperr.Wrap(apperr.Internal, "failed to delete subscription", err)
	}
	return nil
}
