package dripfeed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fabriziochiappini/adseo/app/ai"
	"github.com/fabriziochiappini/adseo/app/articles"
	"github.com/fabriziochiappini/adseo/app/database"
)

// BatchSize caps the number of queue items processed per run so a
// single invocation stays within cron execution limits.
const BatchSize = 5

// ContentGenerator produces the long-form article for a queued keyword.
type ContentGenerator interface {
	GenerateLongFormArticle(ctx context.Context, keyword, language string) (*ai.GeneratedArticle, error)
}

var _ ContentGenerator = (*ai.Client)(nil)

// Report summarizes one drip-feed run.
type Report struct {
	Processed int            `json:"processed"`
	Completed int            `json:"completed"`
	Failed    int            `json:"failed"`
	Queue     map[string]int `json:"queue,omitempty"`
}

// Runner drains due queue items in small batches, generating and
// persisting one article per item. Item failures are terminal: the
// item is marked failed and never retried, and the run moves on.
type Runner struct {
	generator    ContentGenerator
	campaignRepo database.CampaignRepository
	articleRepo  database.ArticleRepository
	queueRepo    database.QueueRepository
}

func NewRunner(generator ContentGenerator, campaignRepo database.CampaignRepository,
	articleRepo database.ArticleRepository, queueRepo database.QueueRepository) *Runner {
	return &Runner{
		generator:    generator,
		campaignRepo: campaignRepo,
		articleRepo:  articleRepo,
		queueRepo:    queueRepo,
	}
}

// Run processes at most BatchSize due items. The returned error covers
// run-level failures only (fetching the batch); per-item failures are
// counted in the report.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	now := time.Now().UTC()

	items, err := r.queueRepo.GetDueItems(ctx, now, BatchSize)
	if err != nil {
		return nil, fmt.Errorf("fetch due queue items: %w", err)
	}

	report := &Report{}
	languages := make(map[string]string)

	for _, item := range items {
		report.Processed++

		if err := r.processItem(ctx, item, languages); err != nil {
			slog.Error("Drip-feed item failed", "item_id", item.ID, "keyword", item.Keyword, "error", err)
			if err := r.queueRepo.UpdateItemStatus(ctx, item.ID, database.QueueStatusFailed); err != nil {
				slog.Error("Failed to mark queue item failed", "item_id", item.ID, "error", err)
			}
			report.Failed++
			continue
		}

		if err := r.queueRepo.UpdateItemStatus(ctx, item.ID, database.QueueStatusCompleted); err != nil {
			slog.Error("Failed to mark queue item completed", "item_id", item.ID, "error", err)
		}
		report.Completed++
		slog.Info("Drip-feed article published", "item_id", item.ID, "keyword", item.Keyword)
	}

	if stats, err := r.queueRepo.GetQueueStats(ctx); err == nil {
		report.Queue = stats
	}

	return report, nil
}

func (r *Runner) processItem(ctx context.Context, item database.QueueItem, languages map[string]string) error {
	if err := r.queueRepo.UpdateItemStatus(ctx, item.ID, database.QueueStatusProcessing); err != nil {
		return fmt.Errorf("mark processing: %w", err)
	}

	language, err := r.campaignLanguage(ctx, item.CampaignID, languages)
	if err != nil {
		return err
	}

	generated, err := r.generator.GenerateLongFormArticle(ctx, item.Keyword, language)
	if err != nil {
		return fmt.Errorf("generate article: %w", err)
	}

	article := articles.Build(item.CampaignID, generated, time.Now().UTC())
	if _, err := r.articleRepo.InsertArticle(ctx, article); err != nil {
		return fmt.Errorf("persist article: %w", err)
	}

	return nil
}

// campaignLanguage resolves the campaign's content language, cached for
// the duration of the run since a batch usually shares one campaign.
func (r *Runner) campaignLanguage(ctx context.Context, campaignID string, cache map[string]string) (string, error) {
	if language, ok := cache[campaignID]; ok {
		return language, nil
	}

	campaign, err := r.campaignRepo.GetCampaign(ctx, campaignID)
	if err != nil {
		return "", fmt.Errorf("load campaign: %w", err)
	}
	if campaign == nil {
		return "", fmt.Errorf("campaign %s not found", campaignID)
	}

	cache[campaignID] = campaign.Language
	return campaign.Language, nil
}
