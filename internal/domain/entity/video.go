package entity

import "time"

type Video struct {
	ID           string
	OwnerID      string
	Title        string
	Description  string
	ThumbnailURL string
	VideoURL     string
	Duration     float64 // seconds
	Views        int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OwnerSummary is the flattened owner join embedded in watch-history entries.
type OwnerSummary struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Fullname  string `json:"fullname"`
	AvatarURL string `json:"avatar_url"`
}

// WatchEntry is one denormalized watch-history element.
type WatchEntry struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	ThumbnailURL string       `json:"thumbnail_url"`
	Duration     float64      `json:"duration"`
	Views        int64        `json:"views"`
	Owner        OwnerSummary `json:"owner"`
}
