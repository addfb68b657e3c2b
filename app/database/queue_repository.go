package database

import (
	"context"
	"fmt"
	"time"
)

// QueueRepo handles database operations for the article drip-feed queue
type QueueRepo struct {
	db *DB
}

var _ QueueRepository = (*QueueRepo)(nil)

func NewQueueRepository(db *DB) *QueueRepo {
	return &QueueRepo{db: db}
}

func (r *QueueRepo) EnqueueItem(ctx context.Context, campaignID, keyword string, scheduledAt time.Time) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO article_queue (campaign_id, keyword, scheduled_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, campaignID, keyword, scheduledAt).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to enqueue item: %w", err)
	}

	return id, nil
}

// GetDueItems returns pending items whose publication time has passed.
// No ordering is guaranteed beyond the status/scheduled_at filter.
func (r *QueueRepo) GetDueItems(ctx context.Context, now time.Time, limit int) ([]QueueItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, campaign_id, keyword, scheduled_at, status, created_at
		FROM article_queue
		WHERE status = $1
		  AND scheduled_at <= $2
		LIMIT $3
	`, QueueStatusPending, now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get due queue items: %w", err)
	}
	defer rows.Close()

	var items []QueueItem
	for rows.Next() {
		var item QueueItem
		err := rows.Scan(&item.ID, &item.CampaignID, &item.Keyword, &item.ScheduledAt, &item.Status, &item.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan queue item row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating queue item rows: %w", err)
	}

	return items, nil
}

func (r *QueueRepo) UpdateItemStatus(ctx context.Context, itemID, status string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE article_queue
		SET status = $2
		WHERE id = $1
	`, itemID, status)
	if err != nil {
		return fmt.Errorf("failed to update queue item status: %w", err)
	}

	return nil
}

func (r *QueueRepo) GetQueueStats(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT status, COUNT(*)
		FROM article_queue
		GROUP BY status
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get queue stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan queue stats row: %w", err)
		}
		stats[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating queue stats rows: %w", err)
	}

	return stats, nil
}
