package api

import (
	"context"
	"time"

	"github.com/fabriziochiappini/adseo/app/ai"
	"github.com/fabriziochiappini/adseo/app/database"
	"github.com/fabriziochiappini/adseo/app/deploy"
	"github.com/fabriziochiappini/adseo/app/domains"
	"github.com/fabriziochiappini/adseo/app/dripfeed"
	"github.com/fabriziochiappini/adseo/app/keyword"
)

type AnalyzerInterface interface {
	Run(ctx context.Context, topic, description, language string) ([]keyword.Keyword, error)
	ResolveLanguage(description, language string) string
}

var _ AnalyzerInterface = (*keyword.Analyzer)(nil)

type ContentGeneratorInterface interface {
	GenerateLandingPageContent(ctx context.Context, domain, keyword, language string) (*ai.LandingContent, error)
}

var _ ContentGeneratorInterface = (*ai.Client)(nil)

type DomainGeneratorInterface interface {
	Run(ctx context.Context, topic string, keywords []string) ([]string, error)
}

var _ DomainGeneratorInterface = (*domains.Generator)(nil)

type DomainCheckerInterface interface {
	CheckAll(ctx context.Context, candidates []string) []domains.Availability
}

var _ DomainCheckerInterface = (*domains.Checker)(nil)

type OrchestratorInterface interface {
	Run(ctx context.Context, campaign *database.Campaign, interval time.Duration, sites []deploy.SiteRequest) []deploy.SiteResult
}

var _ OrchestratorInterface = (*deploy.Orchestrator)(nil)

type DripFeedRunnerInterface interface {
	Run(ctx context.Context) (*dripfeed.Report, error)
}

var _ DripFeedRunnerInterface = (*dripfeed.Runner)(nil)

type Handler struct {
	campaignRepo    database.CampaignRepository
	articleRepo     database.ArticleRepository
	queueRepo       database.QueueRepository
	analyzer        AnalyzerInterface
	contentGen      ContentGeneratorInterface
	domainGenerator DomainGeneratorInterface
	domainChecker   DomainCheckerInterface
	orchestrator    OrchestratorInterface
	dripFeed        DripFeedRunnerInterface
}
