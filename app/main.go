package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fabriziochiappini/adseo/app/ai"
	"github.com/fabriziochiappini/adseo/app/api"
	"github.com/fabriziochiappini/adseo/app/cfg"
	"github.com/fabriziochiappini/adseo/app/database"
	"github.com/fabriziochiappini/adseo/app/dataforseo"
	"github.com/fabriziochiappini/adseo/app/deploy"
	"github.com/fabriziochiappini/adseo/app/domains"
	"github.com/fabriziochiappini/adseo/app/dripfeed"
	"github.com/fabriziochiappini/adseo/app/keyword"
	"github.com/fabriziochiappini/adseo/app/namecheap"
	"github.com/fabriziochiappini/adseo/app/tasks"
	"github.com/fabriziochiappini/adseo/app/vercel"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting adseo server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBHost, appCfg.DBPort, appCfg.DBUser,
		appCfg.DBPassword, appCfg.DBName)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations applied", "version", version, "dirty", dirty)

	campaignRepo := database.NewCampaignRepository(db)
	articleRepo := database.NewArticleRepository(db)
	queueRepo := database.NewQueueRepository(db)

	aiClient := ai.NewClient(appCfg.GeminiEndpoint, appCfg.GeminiModel, appCfg.GeminiAPIKey)

	var metrics keyword.MetricsFetcher
	if appCfg.UseDataForSEO {
		metrics = dataforseo.NewClient(appCfg.DataForSEOBaseURL, appCfg.DataForSEOUsername, appCfg.DataForSEOPassword)
		slog.Info("Keyword metrics source: DataForSEO", "location_code", appCfg.LocationCode)
	} else {
		slog.Info("Keyword metrics source: AI estimation")
	}
	analyzer := keyword.NewAnalyzer(aiClient, metrics, appCfg.LocationCode, appCfg.LanguageCode)

	contact, err := namecheap.LoadContactProfile(appCfg.RegistrantProfile)
	if err != nil {
		slog.Error("Failed to load registrant profile", "path", appCfg.RegistrantProfile, "error", err)
		os.Exit(1)
	}
	registrar := namecheap.NewClient(appCfg.NamecheapUser, appCfg.NamecheapKey,
		appCfg.NamecheapClientIP, appCfg.NamecheapSandbox, contact)

	domainGenerator := domains.NewGenerator(aiClient, appCfg.LanguageCode)
	domainChecker := domains.NewChecker(registrar)

	platform := vercel.NewClient(appCfg.VercelToken, appCfg.VercelTeamID)
	orchestrator := deploy.NewOrchestrator(platform, registrar, aiClient,
		articleRepo, queueRepo, appCfg.TemplateRepo, appCfg.SiteDatabaseURL)

	dripRunner := dripfeed.NewRunner(aiClient, campaignRepo, articleRepo, queueRepo)

	if appCfg.DripFeedInterval > 0 {
		slog.Info("Starting internal drip-feed scheduler", "interval_seconds", appCfg.DripFeedInterval)
		scheduler := tasks.NewScheduler(dripRunner)
		scheduler.Start()
		defer scheduler.Stop()
	} else {
		slog.Info("Internal drip-feed scheduler disabled, relying on external cron")
	}

	handler := api.NewHandler(campaignRepo, articleRepo, queueRepo, analyzer,
		aiClient, domainGenerator, domainChecker, orchestrator, dripRunner)
	server := api.NewServer(handler)

	// Deploy and generation endpoints hold the connection open while
	// talking to the model, so the write timeout is generous.
	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received shutdown signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}
