package database

import (
	"context"
	"database/sql"
	"fmt"
)

// CampaignRepo handles database operations for campaigns and their keywords
type CampaignRepo struct {
	db *DB
}

var _ CampaignRepository = (*CampaignRepo)(nil)

func NewCampaignRepository(db *DB) *CampaignRepo {
	return &CampaignRepo{db: db}
}

func (r *CampaignRepo) CreateCampaign(ctx context.Context, topic, description, language string) (*Campaign, error) {
	var campaign Campaign
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO campaigns (topic, description, language)
		VALUES ($1, $2, $3)
		RETURNING id, topic, description, language, created_at
	`, topic, description, language).Scan(
		&campaign.ID, &campaign.Topic, &campaign.Description, &campaign.Language, &campaign.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	return &campaign, nil
}

func (r *CampaignRepo) GetCampaign(ctx context.Context, id string) (*Campaign, error) {
	var campaign Campaign
	err := r.db.QueryRowContext(ctx, `
		SELECT id, topic, description, language, created_at
		FROM campaigns
		WHERE id = $1
	`, id).Scan(
		&campaign.ID, &campaign.Topic, &campaign.Description, &campaign.Language, &campaign.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	return &campaign, nil
}

// InsertKeywords stores analyzed keywords for a campaign. Inserts run one
// statement per row; there is no transaction spanning the batch, so a
// failure may leave a partial keyword set behind.
func (r *CampaignRepo) InsertKeywords(ctx context.Context, campaignID string, keywords []Keyword) error {
	for _, kw := range keywords {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO keywords (campaign_id, keyword, search_volume, competition, cpc)
			VALUES ($1, $2, $3, $4, $5)
		`, campaignID, kw.Keyword, kw.SearchVolume, kw.Competition, kw.CPC)
		if err != nil {
			return fmt.Errorf("failed to insert keyword %q: %w", kw.Keyword, err)
		}
	}

	return nil
}

func (r *CampaignRepo) GetKeywords(ctx context.Context, campaignID string) ([]Keyword, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, campaign_id, keyword, search_volume, competition, cpc, created_at
		FROM keywords
		WHERE campaign_id = $1
		ORDER BY search_volume DESC, competition ASC
	`, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to get keywords: %w", err)
	}
	defer rows.Close()

	var keywords []Keyword
	for rows.Next() {
		var kw Keyword
		err := rows.Scan(&kw.ID, &kw.CampaignID, &kw.Keyword, &kw.SearchVolume, &kw.Competition, &kw.CPC, &kw.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan keyword row: %w", err)
		}
		keywords = append(keywords, kw)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating keyword rows: %w", err)
	}

	return keywords, nil
}

func (r *CampaignRepo) GetCampaignCount(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM campaigns").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get campaign count: %w", err)
	}
	return count, nil
}
