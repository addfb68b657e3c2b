package database

import (
	"context"
	"time"
)

type CampaignRepository interface {
	CreateCampaign(ctx context.Context, topic, description, language string) (*Campaign, error)
	GetCampaign(ctx context.Context, id string) (*Campaign, error)
	InsertKeywords(ctx context.Context, campaignID string, keywords []Keyword) error
	GetKeywords(ctx context.Context, campaignID string) ([]Keyword, error)
	GetCampaignCount(ctx context.Context) (int, error)
}

type ArticleRepository interface {
	InsertArticle(ctx context.Context, article Article) (string, error)
	GetArticles(ctx context.Context, campaignID string, limit int) ([]Article, error)
	GetArticleCount(ctx context.Context) (int, error)
}

type QueueRepository interface {
	EnqueueItem(ctx context.Context, campaignID, keyword string, scheduledAt time.Time) (string, error)
	GetDueItems(ctx context.Context, now time.Time, limit int) ([]QueueItem, error)
	UpdateItemStatus(ctx context.Context, itemID, status string) error
	GetQueueStats(ctx context.Context) (map[string]int, error)
}
