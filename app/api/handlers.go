package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fabriziochiappini/adseo/app/ai"
	"github.com/fabriziochiappini/adseo/app/database"
	"github.com/fabriziochiappini/adseo/app/deploy"
	"github.com/fabriziochiappini/adseo/app/keyword"
)

func NewHandler(campaignRepo database.CampaignRepository, articleRepo database.ArticleRepository,
	queueRepo database.QueueRepository, analyzer AnalyzerInterface, contentGen ContentGeneratorInterface,
	domainGenerator DomainGeneratorInterface, domainChecker DomainCheckerInterface,
	orchestrator OrchestratorInterface, dripFeed DripFeedRunnerInterface) *Handler {
	return &Handler{
		campaignRepo:    campaignRepo,
		articleRepo:     articleRepo,
		queueRepo:       queueRepo,
		analyzer:        analyzer,
		contentGen:      contentGen,
		domainGenerator: domainGenerator,
		domainChecker:   domainChecker,
		orchestrator:    orchestrator,
		dripFeed:        dripFeed,
	}
}

type analyzeRequest struct {
	Topic       string `json:"topic" binding:"required"`
	Description string `json:"description"`
	Language    string `json:"language"`
}

func (h *Handler) AnalyzeCampaign(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	language := h.analyzer.ResolveLanguage(req.Description, req.Language)

	keywords, err := h.analyzer.Run(c.Request.Context(), req.Topic, req.Description, language)
	if err != nil {
		h.renderAnalysisError(c, req.Topic, err)
		return
	}

	// Persistence is best-effort: the analysis result has already been
	// computed and is returned even when the store is unavailable. A
	// failed save just leaves the campaign out of the response.
	response := gin.H{"keywords": keywords}

	campaign, err := h.campaignRepo.CreateCampaign(c.Request.Context(), req.Topic, req.Description, language)
	if err != nil {
		slog.Error("Database error", "operation", "create_campaign", "topic", req.Topic, "error", err)
		c.JSON(http.StatusOK, response)
		return
	}

	dbKeywords := make([]database.Keyword, 0, len(keywords))
	for _, kw := range keywords {
		dbKeywords = append(dbKeywords, database.Keyword{
			CampaignID:   campaign.ID,
			Keyword:      kw.Keyword,
			SearchVolume: kw.SearchVolume,
			Competition:  kw.Competition,
			CPC:          kw.CPC,
		})
	}
	if err := h.campaignRepo.InsertKeywords(c.Request.Context(), campaign.ID, dbKeywords); err != nil {
		slog.Error("Database error", "operation", "insert_keywords", "campaign_id", campaign.ID, "error", err)
	}

	response["campaign"] = gin.H{
		"id":       campaign.ID,
		"topic":    campaign.Topic,
		"language": campaign.Language,
	}
	c.JSON(http.StatusOK, response)
}

func (h *Handler) renderAnalysisError(c *gin.Context, topic string, err error) {
	var malformed *ai.MalformedOutputError
	switch {
	case errors.Is(err, keyword.ErrNoKeywords):
		slog.Warn("Keyword analysis produced no keywords", "topic", topic)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No usable keywords found for this topic"})
	case errors.As(err, &malformed):
		slog.Error("Model returned malformed output", "topic", topic, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Text generation returned malformed output"})
	default:
		slog.Error("Keyword analysis failed", "topic", topic, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Keyword analysis failed", "details": err.Error()})
	}
}

type contentRequest struct {
	Domain   string `json:"domain"`
	Keyword  string `json:"keyword" binding:"required"`
	Language string `json:"language"`
}

func (h *Handler) GenerateContent(c *gin.Context) {
	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	content, err := h.contentGen.GenerateLandingPageContent(c.Request.Context(), req.Domain, req.Keyword, req.Language)
	if err != nil {
		var malformed *ai.MalformedOutputError
		if errors.As(err, &malformed) {
			slog.Error("Model returned malformed output", "keyword", req.Keyword, "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Text generation returned malformed output"})
			return
		}
		slog.Error("Landing content generation failed", "keyword", req.Keyword, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Content generation failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, content)
}

type domainGenerateRequest struct {
	Topic    string   `json:"topic" binding:"required"`
	Keywords []string `json:"keywords"`
}

func (h *Handler) GenerateDomains(c *gin.Context) {
	var req domainGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	// The prompt only needs a handful of seed keywords.
	seeds := req.Keywords
	if len(seeds) > 5 {
		seeds = seeds[:5]
	}

	candidates, err := h.domainGenerator.Run(c.Request.Context(), req.Topic, seeds)
	if err != nil {
		slog.Error("Domain idea generation failed", "topic", req.Topic, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Domain generation failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"domains": candidates,
		"total":   len(candidates),
	})
}

type domainCheckRequest struct {
	Domains []string `json:"domains" binding:"required,min=1"`
}

func (h *Handler) CheckDomains(c *gin.Context) {
	var req domainCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	results := h.domainChecker.CheckAll(c.Request.Context(), req.Domains)

	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"total":   len(results),
	})
}

type deployRequest struct {
	CampaignID         string               `json:"campaignId" binding:"required"`
	PublishingInterval string               `json:"publishingInterval" binding:"required"`
	PurchaseDomains    bool                 `json:"purchaseDomains"`
	Sites              []deploy.SiteRequest `json:"sites" binding:"required,min=1"`
}

func (h *Handler) DeployCampaign(c *gin.Context) {
	var req deployRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	interval, err := deploy.ParseInterval(req.PublishingInterval)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for i, site := range req.Sites {
		if site.Domain == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Every site needs a domain"})
			return
		}
		// The batch-level flag turns purchase on for every site.
		if req.PurchaseDomains {
			req.Sites[i].PurchaseDomain = true
		}
	}

	campaign, err := h.campaignRepo.GetCampaign(c.Request.Context(), req.CampaignID)
	if err != nil {
		slog.Error("Database error", "operation", "get_campaign", "campaign_id", req.CampaignID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if campaign == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		return
	}

	results := h.orchestrator.Run(c.Request.Context(), campaign, interval, req.Sites)

	deployed := 0
	for _, r := range results {
		if r.Status == deploy.SiteStatusDeployed {
			deployed++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"campaignId": campaign.ID,
		"deployed":   deployed,
		"failed":     len(results) - deployed,
		"sites":      results,
	})
}

func (h *Handler) RunDripFeed(c *gin.Context) {
	report, err := h.dripFeed.Run(c.Request.Context())
	if err != nil {
		slog.Error("Drip-feed run failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Drip-feed run failed", "details": err.Error()})
		return
	}

	if report.Processed == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No articles due", "processed": 0, "queue": report.Queue})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if campaignCount, err := h.campaignRepo.GetCampaignCount(c.Request.Context()); err == nil {
		health["campaigns"] = campaignCount
	}
	if articleCount, err := h.articleRepo.GetArticleCount(c.Request.Context()); err == nil {
		health["articles"] = articleCount
	}
	if stats, err := h.queueRepo.GetQueueStats(c.Request.Context()); err == nil {
		health["queue"] = stats
	}

	c.JSON(http.StatusOK, health)
}
