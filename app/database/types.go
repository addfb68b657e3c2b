package database

import (
	"time"
)

type Campaign struct {
	ID          string // Database UUID
	Topic       string
	Description string
	Language    string
	CreatedAt   time.Time
}

type Keyword struct {
	ID           string
	CampaignID   string
	Keyword      string
	SearchVolume int
	Competition  float64
	CPC          float64
	CreatedAt    time.Time
}

type Article struct {
	ID          string
	CampaignID  string
	Title       string
	Slug        string
	Excerpt     string
	Content     string // HTML
	Category    string
	Tags        []string
	ImageURL    string
	PublishedAt time.Time
	CreatedAt   time.Time
}

// Queue item statuses. Transitions are monotonic:
// pending -> processing -> completed|failed. Failed items are not retried.
const (
	QueueStatusPending    = "pending"
	QueueStatusProcessing = "processing"
	QueueStatusCompleted  = "completed"
	QueueStatusFailed     = "failed"
)

type QueueItem struct {
	ID          string
	CampaignID  string
	Keyword     string
	ScheduledAt time.Time
	Status      string
	CreatedAt   time.Time
}
