package entity

import "time"

// Subscription is the directed edge "SubscriberID subscribes to ChannelID".
// Edges are owned independently of either endpoint user.
type Subscription struct {
	ID           string
	SubscriberID string
	ChannelID    string
	CreatedAt    time.Time
}

// ChannelProfile is the aggregated view of a user seen as a channel.
type ChannelProfile struct {
	ID                 string `json:"id"`
	Username           string `json:"username"`
	Fullname           string `json:"fullname"`
	AvatarURL          string `json:"avatar_url"`
	CoverImageURL      string `json:"cover_image_url,omitempty"`
	SubscribersCount   int64  `json:"subscribers_count"`
	SubscriptionsCount int64  `json:"subscriptions_count"`
	IsSubscribed       bool   `json:"is_subscribed"`
}
