package database

import (
	"context"
	"fmt"

	"github.com/lib/pq"
)

// ArticleRepo handles database operations for published articles
type ArticleRepo struct {
	db *DB
}

var _ ArticleRepository = (*ArticleRepo)(nil)

func NewArticleRepository(db *DB) *ArticleRepo {
	return &ArticleRepo{db: db}
}

func (r *ArticleRepo) InsertArticle(ctx context.Context, article Article) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO articles (campaign_id, title, slug, excerpt, content, category, tags, image_url, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, article.CampaignID, article.Title, article.Slug, article.Excerpt, article.Content,
		article.Category, pq.Array(article.Tags), article.ImageURL, article.PublishedAt).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to insert article: %w", err)
	}

	return id, nil
}

func (r *ArticleRepo) GetArticles(ctx context.Context, campaignID string, limit int) ([]Article, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, campaign_id, title, slug, COALESCE(excerpt, ''), content,
		       COALESCE(category, ''), COALESCE(tags, '{}'), COALESCE(image_url, ''),
		       published_at, created_at
		FROM articles
		WHERE campaign_id = $1
		ORDER BY published_at DESC
		LIMIT $2
	`, campaignID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get articles: %w", err)
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		var article Article
		err := rows.Scan(
			&article.ID, &article.CampaignID, &article.Title, &article.Slug, &article.Excerpt,
			&article.Content, &article.Category, pq.Array(&article.Tags), &article.ImageURL,
			&article.PublishedAt, &article.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article row: %w", err)
		}
		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating article rows: %w", err)
	}

	return articles, nil
}

func (r *ArticleRepo) GetArticleCount(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get article count: %w", err)
	}
	return count, nil
}
