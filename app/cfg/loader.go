package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
	"golang.org/x/text/language"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Database configuration
	DBHost     string `long:"db-host" env:"DB_HOST" default:"localhost" description:"Database host"`
	DBPort     string `long:"db-port" env:"DB_PORT" default:"5432" description:"Database port"`
	DBUser     string `long:"db-user" env:"DB_USER" default:"adseo_user" description:"Database user"`
	DBPassword string `long:"db-password" env:"DB_PASSWORD" default:"adseo_password" description:"Database password (required)" required:"true"`
	DBName     string `long:"db-name" env:"DB_NAME" default:"adseo" description:"Database name"`

	// Application configuration
	Port             string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIAccessKey     string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`
	CronSecret       string `long:"cron-secret" env:"CRON_SECRET" description:"Shared secret for the drip-feed cron endpoint"`
	DripFeedInterval int    `long:"drip-feed-interval" env:"DRIP_FEED_INTERVAL" default:"0" description:"Internal drip-feed scheduler interval in seconds (0 disables, rely on external cron)"`

	// Gemini (text generation)
	GeminiAPIKey   string `long:"gemini-api-key" env:"GEMINI_API_KEY" description:"Gemini API key"`
	GeminiModel    string `long:"gemini-model" env:"GEMINI_MODEL" default:"gemini-1.5-flash" description:"Gemini model name"`
	GeminiEndpoint string `long:"gemini-endpoint" env:"GEMINI_ENDPOINT" default:"https://generativelanguage.googleapis.com" description:"Gemini API base URL"`

	// DataForSEO (keyword metrics)
	UseDataForSEO      bool   `long:"use-dataforseo" env:"USE_DATAFORSEO" description:"Fetch keyword metrics from DataForSEO instead of AI estimation"`
	DataForSEOUsername string `long:"dataforseo-username" env:"DATAFORSEO_USERNAME" description:"DataForSEO API username"`
	DataForSEOPassword string `long:"dataforseo-password" env:"DATAFORSEO_PASSWORD" description:"DataForSEO API password"`
	DataForSEOBaseURL  string `long:"dataforseo-base-url" env:"DATAFORSEO_BASE_URL" default:"https://api.dataforseo.com" description:"DataForSEO API base URL"`
	LocationCode       int    `long:"location-code" env:"LOCATION_CODE" default:"2380" description:"DataForSEO location code (2380 = Italy)"`
	LanguageCode       string `long:"language-code" env:"LANGUAGE_CODE" default:"it" description:"Default campaign language code"`

	// Namecheap (registrar)
	NamecheapUser     string `long:"namecheap-user" env:"NAMECHEAP_USER" description:"Namecheap API user (availability checks are mocked when unset)"`
	NamecheapKey      string `long:"namecheap-key" env:"NAMECHEAP_KEY" description:"Namecheap API key"`
	NamecheapClientIP string `long:"namecheap-client-ip" env:"NAMECHEAP_CLIENT_IP" default:"0.0.0.0" description:"Whitelisted client IP for the Namecheap API"`
	NamecheapSandbox  bool   `long:"namecheap-sandbox" env:"NAMECHEAP_SANDBOX" description:"Use the Namecheap sandbox endpoint"`
	RegistrantProfile string `long:"registrant-profile" env:"REGISTRANT_PROFILE" default:"./registrant.yml" description:"YAML file with registrant contact details for domain registration"`

	// Vercel (deployment platform)
	VercelToken  string `long:"vercel-token" env:"VERCEL_API_TOKEN" description:"Vercel API token"`
	VercelTeamID string `long:"vercel-team-id" env:"VERCEL_TEAM_ID" description:"Vercel team ID (optional)"`
	TemplateRepo string `long:"template-repo" env:"LANDER_TEMPLATE_REPO" default:"Fabriziochiappini/lander-template" description:"GitHub repository used as the lander template"`

	SiteDatabaseURL string `long:"site-database-url" env:"SITE_DATABASE_URL" description:"DATABASE_URL value injected into deployed lander projects"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Europe/Rome)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if _, err := language.Parse(raw.LanguageCode); err != nil {
		return nil, fmt.Errorf("invalid language code %q: %w", raw.LanguageCode, err)
	}

	cfg := &Cfg{
		DBHost:             raw.DBHost,
		DBPort:             raw.DBPort,
		DBUser:             raw.DBUser,
		DBPassword:         raw.DBPassword,
		DBName:             raw.DBName,
		Port:               raw.Port,
		APIAccessKey:       raw.APIAccessKey,
		CronSecret:         raw.CronSecret,
		DripFeedInterval:   raw.DripFeedInterval,
		GeminiAPIKey:       raw.GeminiAPIKey,
		GeminiModel:        raw.GeminiModel,
		GeminiEndpoint:     raw.GeminiEndpoint,
		UseDataForSEO:      raw.UseDataForSEO,
		DataForSEOUsername: raw.DataForSEOUsername,
		DataForSEOPassword: raw.DataForSEOPassword,
		DataForSEOBaseURL:  raw.DataForSEOBaseURL,
		LocationCode:       raw.LocationCode,
		LanguageCode:       raw.LanguageCode,
		NamecheapUser:      raw.NamecheapUser,
		NamecheapKey:       raw.NamecheapKey,
		NamecheapClientIP:  raw.NamecheapClientIP,
		NamecheapSandbox:   raw.NamecheapSandbox,
		RegistrantProfile:  raw.RegistrantProfile,
		VercelToken:        raw.VercelToken,
		VercelTeamID:       raw.VercelTeamID,
		TemplateRepo:       raw.TemplateRepo,
		SiteDatabaseURL:    raw.SiteDatabaseURL,
		Timezone:           raw.Timezone,
		Debug:              raw.Debug,
		Version:            GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
