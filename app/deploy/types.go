package deploy

import (
	"context"
	"fmt"
	"time"

	"github.com/fabriziochiappini/adseo/app/ai"
	"github.com/fabriziochiappini/adseo/app/vercel"
)

// SiteRequest describes one lander to launch. Branding fields come from
// the content-generation step; Keywords carries the site's keyword
// budget (pillar keywords first, the rest is drip-fed).
type SiteRequest struct {
	Domain             string   `json:"domain"`
	BrandName          string   `json:"brandName"`
	HeroTitle          string   `json:"heroTitle"`
	HeroSubtitle       string   `json:"heroSubtitle"`
	ServiceDescription string   `json:"serviceDescription"`
	CTAText            string   `json:"ctaText"`
	Keyword            string   `json:"keyword"`
	Keywords           []string `json:"keywords"`
	PurchaseDomain     bool     `json:"purchaseDomain"`
}

const (
	SiteStatusDeployed = "deployed"
	SiteStatusError    = "error"
)

// Domain configuration outcomes for the optional purchase/DNS step.
const (
	DomainStatusSkipped        = "skipped"
	DomainStatusConfigured     = "configured"
	DomainStatusPurchaseFailed = "purchase_failed"
	DomainStatusDNSFailed      = "dns_failed"
)

// SiteResult is the per-site outcome; a batch always returns one entry
// per requested site.
type SiteResult struct {
	Domain         string `json:"domain"`
	ProjectID      string `json:"projectId,omitempty"`
	Status         string `json:"status"`
	URL            string `json:"url,omitempty"`
	DomainStatus   string `json:"domainStatus,omitempty"`
	PillarArticles int    `json:"pillarArticles"`
	QueuedArticles int    `json:"queuedArticles"`
	Error          string `json:"error,omitempty"`
}

// Platform is the deployment-platform collaborator surface.
type Platform interface {
	CreateProject(ctx context.Context, name, templateRepo string) (*vercel.Project, error)
	SetEnvVariable(ctx context.Context, projectID, key, value string, targets []string) error
	AddDomain(ctx context.Context, projectID, domain string) error
	TriggerDeployment(ctx context.Context, projectID, name, repo, ref string) (*vercel.Deployment, error)
}

var _ Platform = (*vercel.Client)(nil)

// Registrar is the registrar collaborator surface for the optional
// purchase step.
type Registrar interface {
	Configured() bool
	Register(ctx context.Context, domain string) error
	SetCustomDNS(ctx context.Context, domain string, nameservers []string) error
}

// ContentGenerator produces the pillar articles.
type ContentGenerator interface {
	GenerateLongFormArticle(ctx context.Context, keyword, language string) (*ai.GeneratedArticle, error)
}

// ParseInterval maps the supported publishing interval literals to
// durations. Only the four literals are accepted.
func ParseInterval(literal string) (time.Duration, error) {
	switch literal {
	case "5m":
		return 5 * time.Minute, nil
	case "1d":
		return 24 * time.Hour, nil
	case "7d":
		return 7 * 24 * time.Hour, nil
	case "30d":
		return 30 * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unsupported publishing interval %q (want 5m, 1d, 7d or 30d)", literal)
	}
}
