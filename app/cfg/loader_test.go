package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestConfigFields(t *testing.T) {
	cfg := &Cfg{
		Port:             "8080",
		APIAccessKey:     "test-key",
		CronSecret:       "cron-secret",
		DripFeedInterval: 300,
		GeminiAPIKey:     "gemini-key",
		GeminiModel:      "gemini-1.5-flash",
		LanguageCode:     "it",
		LocationCode:     2380,
		TemplateRepo:     "Fabriziochiappini/lander-template",
		DBHost:           "localhost",
		DBPort:           "5432",
		DBUser:           "test_user",
		DBPassword:       "test_password",
		DBName:           "test_db",
		Timezone:         "UTC",
		Debug:            true,
		Version:          "test-version",
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.CronSecret != "cron-secret" {
		t.Errorf("Expected cron secret 'cron-secret', got '%s'", cfg.CronSecret)
	}
	if cfg.LanguageCode != "it" {
		t.Errorf("Expected language code 'it', got '%s'", cfg.LanguageCode)
	}
	if cfg.LocationCode != 2380 {
		t.Errorf("Expected location code 2380, got %d", cfg.LocationCode)
	}
	if cfg.DripFeedInterval != 300 {
		t.Errorf("Expected drip feed interval 300, got %d", cfg.DripFeedInterval)
	}
}

func TestGetPanicsWhenNotLoaded(t *testing.T) {
	saved := globalCfg
	globalCfg = nil
	defer func() {
		globalCfg = saved
		if r := recover(); r == nil {
			t.Error("Get should panic when configuration is not loaded")
		}
	}()
	Get()
}
