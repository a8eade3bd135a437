package config

import (
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("API_KEY", "secret")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if cfg.Server.Port != "3000" {
		t.Errorf("unexpected port: %q", cfg.Server.Port)
	}
	if cfg.Server.Timeout != 0 {
		t.Errorf("timeout should be disabled by default, got %v", cfg.Server.Timeout)
	}
	if cfg.Server.ThrottleLimit != 0 {
		t.Errorf("throttle should be disabled by default, got %d", cfg.Server.ThrottleLimit)
	}
	if cfg.Server.MaxUploadBytes() != 20<<20 {
		t.Errorf("unexpected upload limit: %d", cfg.Server.MaxUploadBytes())
	}
	if cfg.Model.Provider != "gemini" || cfg.Model.Name != "gemini-1.5-flash" {
		t.Errorf("unexpected model config: %+v", cfg.Model)
	}
	if cfg.Model.APIKey != "secret" {
		t.Errorf("unexpected api key: %q", cfg.Model.APIKey)
	}
	if cfg.RedisConfig.TTL != 10*time.Minute {
		t.Errorf("unexpected redis ttl: %v", cfg.RedisConfig.TTL)
	}
	if cfg.RedisConfig.KeyPrefix != "relay:result:" {
		t.Errorf("unexpected redis key prefix: %q", cfg.RedisConfig.KeyPrefix)
	}
	if cfg.CacheEnable {
		t.Errorf("cache should be disabled by default")
	}
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("API_KEY", "secret")
	t.Setenv("PORT", "8081")
	t.Setenv("MODEL_PROVIDER", "openai")
	t.Setenv("MAX_UPLOAD_MB", "5")
	t.Setenv("SERVER_TIMEOUT", "30s")
	t.Setenv("CACHE_ENABLE", "true")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if cfg.Server.Port != "8081" {
		t.Errorf("unexpected port: %q", cfg.Server.Port)
	}
	if cfg.Model.Provider != "openai" {
		t.Errorf("unexpected provider: %q", cfg.Model.Provider)
	}
	if cfg.Server.MaxUploadBytes() != 5<<20 {
		t.Errorf("unexpected upload limit: %d", cfg.Server.MaxUploadBytes())
	}
	if cfg.Server.Timeout != 30*time.Second {
		t.Errorf("unexpected timeout: %v", cfg.Server.Timeout)
	}
	if !cfg.CacheEnable {
		t.Errorf("cache should be enabled")
	}
}

func TestParseRequiresAPIKey(t *testing.T) {
	t.Setenv("API_KEY", "")

	if _, err := Parse(); err == nil {
		t.Fatalf("expected error without API_KEY")
	}
}

func TestParseRejectsNonPositiveUploadLimit(t *testing.T) {
	t.Setenv("API_KEY", "secret")
	t.Setenv("MAX_UPLOAD_MB", "0")

	if _, err := Parse(); err == nil {
		t.Fatalf("expected error for MAX_UPLOAD_MB=0")
	}
}
