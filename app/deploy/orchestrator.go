package deploy

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fabriziochiappini/adseo/app/articles"
	"github.com/fabriziochiappini/adseo/app/database"
	"github.com/fabriziochiappini/adseo/app/vercel"
)

const (
	// PillarArticleCount articles are generated and persisted before
	// the first deployment, so a site is never live without content.
	PillarArticleCount = 3

	// Delay between domain purchase and the DNS update, to tolerate
	// registrar propagation latency.
	dnsPropagationDelay = 5 * time.Second
)

var vercelNameservers = []string{"ns1.vercel-dns.com", "ns2.vercel-dns.com"}

// Orchestrator launches lander sites one by one. Sites are independent:
// a failure is recorded in that site's result and never aborts the rest
// of the batch.
type Orchestrator struct {
	platform        Platform
	registrar       Registrar
	generator       ContentGenerator
	articleRepo     database.ArticleRepository
	queueRepo       database.QueueRepository
	templateRepo    string
	siteDatabaseURL string
	propagationWait time.Duration
}

func NewOrchestrator(platform Platform, registrar Registrar, generator ContentGenerator,
	articleRepo database.ArticleRepository, queueRepo database.QueueRepository,
	templateRepo, siteDatabaseURL string) *Orchestrator {
	return &Orchestrator{
		platform:        platform,
		registrar:       registrar,
		generator:       generator,
		articleRepo:     articleRepo,
		queueRepo:       queueRepo,
		templateRepo:    templateRepo,
		siteDatabaseURL: siteDatabaseURL,
		propagationWait: dnsPropagationDelay,
	}
}

// Run deploys every requested site and always returns one result per
// site, in request order.
func (o *Orchestrator) Run(ctx context.Context, campaign *database.Campaign, interval time.Duration, sites []SiteRequest) []SiteResult {
	results := make([]SiteResult, 0, len(sites))

	for _, site := range sites {
		result := o.deploySite(ctx, campaign, interval, site)
		if result.Status == SiteStatusError {
			slog.Error("Site deployment failed", "domain", site.Domain, "error", result.Error)
		} else {
			slog.Info("Site deployed", "domain", site.Domain, "project_id", result.ProjectID,
				"pillar_articles", result.PillarArticles, "queued_articles", result.QueuedArticles)
		}
		results = append(results, result)
	}

	return results
}

func (o *Orchestrator) deploySite(ctx context.Context, campaign *database.Campaign, interval time.Duration, site SiteRequest) SiteResult {
	result := SiteResult{Domain: site.Domain, DomainStatus: DomainStatusSkipped}

	projectName := ProjectName(site.Domain)

	project, err := o.platform.CreateProject(ctx, projectName, o.templateRepo)
	if err != nil {
		return o.fail(result, fmt.Errorf("create project: %w", err))
	}
	result.ProjectID = project.ID
	result.URL = fmt.Sprintf("https://%s.vercel.app", projectName)

	if err := o.injectEnvironment(ctx, project.ID, campaign.ID, site); err != nil {
		return o.fail(result, err)
	}

	pillarCount, err := o.publishPillarArticles(ctx, campaign, site)
	result.PillarArticles = pillarCount
	if err != nil {
		return o.fail(result, err)
	}

	if _, err := o.platform.TriggerDeployment(ctx, project.ID, projectName, o.templateRepo, "main"); err != nil {
		return o.fail(result, fmt.Errorf("trigger deployment: %w", err))
	}

	result.QueuedArticles = o.enqueueDripFeed(ctx, campaign.ID, site, interval)

	if err := o.platform.AddDomain(ctx, project.ID, site.Domain); err != nil {
		return o.fail(result, fmt.Errorf("add domain: %w", err))
	}

	if site.PurchaseDomain {
		result.DomainStatus = o.purchaseAndConfigure(ctx, site.Domain)
	}

	result.Status = SiteStatusDeployed
	return result
}

func (o *Orchestrator) injectEnvironment(ctx context.Context, projectID, campaignID string, site SiteRequest) error {
	content, err := json.Marshal(map[string]string{
		"brandName":          site.BrandName,
		"heroTitle":          site.HeroTitle,
		"heroSubtitle":       site.HeroSubtitle,
		"serviceDescription": site.ServiceDescription,
		"ctaText":            site.CTAText,
		"keyword":            site.Keyword,
	})
	if err != nil {
		return fmt.Errorf("serialize site content: %w", err)
	}

	env := map[string]string{
		"SITE_CONTENT": string(content),
		"CAMPAIGN_ID":  campaignID,
	}
	if o.siteDatabaseURL != "" {
		env["DATABASE_URL"] = o.siteDatabaseURL
	}

	for key, value := range env {
		if err := o.platform.SetEnvVariable(ctx, projectID, key, value, vercel.AllTargets); err != nil {
			return fmt.Errorf("inject environment: %w", err)
		}
	}

	return nil
}

// publishPillarArticles generates and persists the first few articles
// eagerly so the site has content at first deploy.
func (o *Orchestrator) publishPillarArticles(ctx context.Context, campaign *database.Campaign, site SiteRequest) (int, error) {
	pillars := site.Keywords
	if len(pillars) > PillarArticleCount {
		pillars = pillars[:PillarArticleCount]
	}
	if len(pillars) == 0 && site.Keyword != "" {
		pillars = []string{site.Keyword}
	}

	published := 0
	for _, kw := range pillars {
		generated, err := o.generator.GenerateLongFormArticle(ctx, kw, campaign.Language)
		if err != nil {
			return published, fmt.Errorf("pillar article for %q: %w", kw, err)
		}

		article := articles.Build(campaign.ID, generated, time.Now().UTC())
		if _, err := o.articleRepo.InsertArticle(ctx, article); err != nil {
			return published, fmt.Errorf("persist pillar article for %q: %w", kw, err)
		}
		published++
	}

	return published, nil
}

// enqueueDripFeed schedules the remaining keywords at deploy time plus
// N times the publishing interval, 1-indexed. Enqueue failures are
// logged and skipped; the queue is best-effort relative to the deploy.
func (o *Orchestrator) enqueueDripFeed(ctx context.Context, campaignID string, site SiteRequest, interval time.Duration) int {
	if len(site.Keywords) <= PillarArticleCount {
		return 0
	}

	deployTime := time.Now().UTC()
	queued := 0
	for i, kw := range site.Keywords[PillarArticleCount:] {
		scheduledAt := deployTime.Add(time.Duration(i+1) * interval)
		if _, err := o.queueRepo.EnqueueItem(ctx, campaignID, kw, scheduledAt); err != nil {
			slog.Warn("Failed to enqueue drip-feed keyword", "keyword", kw, "error", err)
			continue
		}
		queued++
	}

	return queued
}

func (o *Orchestrator) purchaseAndConfigure(ctx context.Context, domain string) string {
	if !o.registrar.Configured() {
		slog.Warn("Domain purchase requested but registrar credentials missing", "domain", domain)
		return DomainStatusSkipped
	}

	if err := o.registrar.Register(ctx, domain); err != nil {
		slog.Error("Domain purchase failed", "domain", domain, "error", err)
		return DomainStatusPurchaseFailed
	}

	// Give the registrar a moment before pointing DNS at the platform.
	time.Sleep(o.propagationWait)

	if err := o.registrar.SetCustomDNS(ctx, domain, vercelNameservers); err != nil {
		slog.Error("DNS configuration failed", "domain", domain, "error", err)
		return DomainStatusDNSFailed
	}

	return DomainStatusConfigured
}

func (o *Orchestrator) fail(result SiteResult, err error) SiteResult {
	result.Status = SiteStatusError
	result.Error = err.Error()
	return result
}

// ProjectName normalizes a domain into a platform project name.
func ProjectName(domain string) string {
	return strings.ToLower(strings.ReplaceAll(domain, ".", "-"))
}
