package dripfeed

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fabriziochiappini/adseo/app/ai"
	"github.com/fabriziochiappini/adseo/app/database"
)

// MockGenerator implements ContentGenerator for testing
type MockGenerator struct {
	failKeywords map[string]error
	calls        []string
}

func (m *MockGenerator) GenerateLongFormArticle(ctx context.Context, keyword, language string) (*ai.GeneratedArticle, error) {
	m.calls = append(m.calls, keyword)
	if err, ok := m.failKeywords[keyword]; ok {
		return nil, err
	}
	return &ai.GeneratedArticle{
		Title:   "Guida: " + keyword,
		Content: "<p>Articolo su " + keyword + "</p>",
	}, nil
}

// MockCampaignRepo implements database.CampaignRepository for testing
type MockCampaignRepo struct {
	campaigns map[string]*database.Campaign
	getCalls  int
}

func (m *MockCampaignRepo) CreateCampaign(ctx context.Context, topic, description, language string) (*database.Campaign, error) {
	return nil, errors.New("not implemented")
}

func (m *MockCampaignRepo) GetCampaign(ctx context.Context, id string) (*database.Campaign, error) {
	m.getCalls++
	// Missing rows come back as (nil, nil), matching the repository.
	return m.campaigns[id], nil
}

func (m *MockCampaignRepo) InsertKeywords(ctx context.Context, campaignID string, keywords []database.Keyword) error {
	return nil
}

func (m *MockCampaignRepo) GetKeywords(ctx context.Context, campaignID string) ([]database.Keyword, error) {
	return nil, nil
}

func (m *MockCampaignRepo) GetCampaignCount(ctx context.Context) (int, error) {
	return len(m.campaigns), nil
}

// MockArticleRepo implements database.ArticleRepository for testing
type MockArticleRepo struct {
	articles []database.Article
}

func (m *MockArticleRepo) InsertArticle(ctx context.Context, article database.Article) (string, error) {
	m.articles = append(m.articles, article)
	return fmt.Sprintf("article-%d", len(m.articles)), nil
}

func (m *MockArticleRepo) GetArticles(ctx context.Context, campaignID string, limit int) ([]database.Article, error) {
	return m.articles, nil
}

func (m *MockArticleRepo) GetArticleCount(ctx context.Context) (int, error) {
	return len(m.articles), nil
}

// MockQueueRepo implements database.QueueRepository for testing
type MockQueueRepo struct {
	due         []database.QueueItem
	dueErr      error
	statuses    map[string][]string
	statsCalled bool
}

func (m *MockQueueRepo) EnqueueItem(ctx context.Context, campaignID, keyword string, scheduledAt time.Time) (string, error) {
	return "", errors.New("not implemented")
}

func (m *MockQueueRepo) GetDueItems(ctx context.Context, now time.Time, limit int) ([]database.QueueItem, error) {
	if m.dueErr != nil {
		return nil, m.dueErr
	}
	if len(m.due) > limit {
		return m.due[:limit], nil
	}
	return m.due, nil
}

func (m *MockQueueRepo) UpdateItemStatus(ctx context.Context, itemID, status string) error {
	if m.statuses == nil {
		m.statuses = make(map[string][]string)
	}
	m.statuses[itemID] = append(m.statuses[itemID], status)
	return nil
}

func (m *MockQueueRepo) GetQueueStats(ctx context.Context) (map[string]int, error) {
	m.statsCalled = true
	return map[string]int{"pending": len(m.due)}, nil
}

func dueItems(n int) []database.QueueItem {
	items := make([]database.QueueItem, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, database.QueueItem{
			ID:          fmt.Sprintf("item-%d", i),
			CampaignID:  "campaign-1",
			Keyword:     fmt.Sprintf("keyword %d", i),
			ScheduledAt: time.Now().Add(-time.Hour),
			Status:      database.QueueStatusPending,
		})
	}
	return items
}

func testCampaignRepo() *MockCampaignRepo {
	return &MockCampaignRepo{
		campaigns: map[string]*database.Campaign{
			"campaign-1": {ID: "campaign-1", Topic: "traslochi", Language: "it"},
		},
	}
}

func TestRunner_ProcessesBatch(t *testing.T) {
	queueRepo := &MockQueueRepo{due: dueItems(3)}
	articleRepo := &MockArticleRepo{}
	runner := NewRunner(&MockGenerator{}, testCampaignRepo(), articleRepo, queueRepo)

	report, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.Processed != 3 || report.Completed != 3 || report.Failed != 0 {
		t.Errorf("Expected 3 processed/completed, got %+v", report)
	}
	if len(articleRepo.articles) != 3 {
		t.Errorf("Expected 3 articles persisted, got %d", len(articleRepo.articles))
	}
	for _, id := range []string{"item-1", "item-2", "item-3"} {
		transitions := queueRepo.statuses[id]
		expected := []string{database.QueueStatusProcessing, database.QueueStatusCompleted}
		if len(transitions) != 2 || transitions[0] != expected[0] || transitions[1] != expected[1] {
			t.Errorf("Item %s transitions = %v, expected %v", id, transitions, expected)
		}
	}
}

func TestRunner_RespectsBatchSize(t *testing.T) {
	queueRepo := &MockQueueRepo{due: dueItems(8)}
	runner := NewRunner(&MockGenerator{}, testCampaignRepo(), &MockArticleRepo{}, queueRepo)

	report, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.Processed != BatchSize {
		t.Errorf("Expected %d processed, got %d", BatchSize, report.Processed)
	}
}

func TestRunner_ItemFailureDoesNotAbortBatch(t *testing.T) {
	queueRepo := &MockQueueRepo{due: dueItems(5)}
	articleRepo := &MockArticleRepo{}
	generator := &MockGenerator{
		failKeywords: map[string]error{"keyword 3": errors.New("model overloaded")},
	}
	runner := NewRunner(generator, testCampaignRepo(), articleRepo, queueRepo)

	report, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run should not fail on a single bad item: %v", err)
	}

	if report.Processed != 5 || report.Completed != 4 || report.Failed != 1 {
		t.Errorf("Expected 5 processed, 4 completed, 1 failed; got %+v", report)
	}
	if len(articleRepo.articles) != 4 {
		t.Errorf("Expected 4 articles persisted, got %d", len(articleRepo.articles))
	}

	transitions := queueRepo.statuses["item-3"]
	if len(transitions) != 2 || transitions[1] != database.QueueStatusFailed {
		t.Errorf("Failed item transitions = %v, expected ending in failed", transitions)
	}
}

func TestRunner_MissingCampaignMarksItemFailed(t *testing.T) {
	items := dueItems(2)
	items[1].CampaignID = "campaign-gone"
	queueRepo := &MockQueueRepo{due: items}
	articleRepo := &MockArticleRepo{}
	runner := NewRunner(&MockGenerator{}, testCampaignRepo(), articleRepo, queueRepo)

	report, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run should survive an orphaned queue item: %v", err)
	}

	if report.Completed != 1 || report.Failed != 1 {
		t.Errorf("Expected 1 completed and 1 failed, got %+v", report)
	}
	transitions := queueRepo.statuses["item-2"]
	if len(transitions) != 2 || transitions[1] != database.QueueStatusFailed {
		t.Errorf("Orphaned item transitions = %v, expected ending in failed", transitions)
	}
	if len(articleRepo.articles) != 1 {
		t.Errorf("Expected 1 article persisted, got %d", len(articleRepo.articles))
	}
}

func TestRunner_EmptyQueueIsNoop(t *testing.T) {
	queueRepo := &MockQueueRepo{}
	runner := NewRunner(&MockGenerator{}, testCampaignRepo(), &MockArticleRepo{}, queueRepo)

	report, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.Processed != 0 {
		t.Errorf("Expected empty report, got %+v", report)
	}
}

func TestRunner_CampaignLanguageCachedPerRun(t *testing.T) {
	queueRepo := &MockQueueRepo{due: dueItems(5)}
	campaignRepo := testCampaignRepo()
	runner := NewRunner(&MockGenerator{}, campaignRepo, &MockArticleRepo{}, queueRepo)

	if _, err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if campaignRepo.getCalls != 1 {
		t.Errorf("Expected 1 campaign lookup for a single-campaign batch, got %d", campaignRepo.getCalls)
	}
}

func TestRunner_QueueFetchErrorIsFatal(t *testing.T) {
	queueRepo := &MockQueueRepo{dueErr: errors.New("connection refused")}
	runner := NewRunner(&MockGenerator{}, testCampaignRepo(), &MockArticleRepo{}, queueRepo)

	if _, err := runner.Run(context.Background()); err == nil {
		t.Error("Expected error when the due-item query fails")
	}
}
