package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Cache.Type != "memory" {
			t.Errorf("Cache.Type = %s, want memory", cfg.Cache.Type)
		}
		if cfg.Cache.TTL != 24*time.Hour {
			t.Errorf("Cache.TTL = %v, want 24h", cfg.Cache.TTL)
		}
		if cfg.Recognition.ProviderTimeout != 15*time.Second {
			t.Errorf("Recognition.ProviderTimeout = %v, want 15s", cfg.Recognition.ProviderTimeout)
		}
		if cfg.AI.Timeout != 30*time.Second {
			t.Errorf("AI.Timeout = %v, want 30s", cfg.AI.Timeout)
		}
		if len(cfg.Recognition.ProviderOrder) != 7 || cfg.Recognition.ProviderOrder[0] != "logmeal" {
			t.Errorf("Recognition.ProviderOrder = %v, want logmeal first and ai last", cfg.Recognition.ProviderOrder)
		}
		if !cfg.Providers.Clarifai.Enabled {
			t.Error("Providers.Clarifai.Enabled = false, want true")
		}
		if cfg.Providers.Clarifai.APIKey != "" {
			t.Errorf("Providers.Clarifai.APIKey = %s, want empty", cfg.Providers.Clarifai.APIKey)
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("Logging.Level = %s, want info", cfg.Logging.Level)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		t.Setenv("HEALTHSNAP_SERVER_PORT", "9090")
		t.Setenv("HEALTHSNAP_SERVER_ENVIRONMENT", "production")
		t.Setenv("HEALTHSNAP_CACHE_TYPE", "none")
		t.Setenv("HEALTHSNAP_CACHE_TTL", "1h")
		t.Setenv("HEALTHSNAP_RATELIMIT_PER_IP", "5")
		t.Setenv("HEALTHSNAP_RECOGNITION_PROVIDER_ORDER", "clarifai,logmeal,ai")
		t.Setenv("HEALTHSNAP_RECOGNITION_PROVIDER_TIMEOUT", "3s")
		t.Setenv("HEALTHSNAP_PROVIDERS_LOGMEAL_API_KEY", "lm-secret")
		t.Setenv("HEALTHSNAP_PROVIDERS_GOOGLE_VISION_ENABLED", "false")
		t.Setenv("HEALTHSNAP_PROVIDERS_REKOGNITION_REGION", "us-east-1")
		t.Setenv("HEALTHSNAP_AI_ENDPOINT", "https://ai.example.com/llm")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Cache.Type != "none" {
			t.Errorf("Cache.Type = %s, want none", cfg.Cache.Type)
		}
		if cfg.Cache.TTL != time.Hour {
			t.Errorf("Cache.TTL = %v, want 1h", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerIP != 5 {
			t.Errorf("RateLimit.PerIP = %d, want 5", cfg.RateLimit.PerIP)
		}
		if got := cfg.Recognition.ProviderOrder; len(got) != 3 || got[0] != "clarifai" {
			t.Errorf("Recognition.ProviderOrder = %v, want [clarifai logmeal ai]", got)
		}
		if cfg.Recognition.ProviderTimeout != 3*time.Second {
			t.Errorf("Recognition.ProviderTimeout = %v, want 3s", cfg.Recognition.ProviderTimeout)
		}
		if cfg.Providers.LogMeal.APIKey != "lm-secret" {
			t.Errorf("Providers.LogMeal.APIKey = %s, want lm-secret", cfg.Providers.LogMeal.APIKey)
		}
		if cfg.Providers.GoogleVision.Enabled {
			t.Error("Providers.GoogleVision.Enabled = true, want false")
		}
		if cfg.Providers.ByName()["rekognition"].Region != "us-east-1" {
			t.Errorf("rekognition region = %s, want us-east-1", cfg.Providers.Rekognition.Region)
		}
		if cfg.AI.Endpoint != "https://ai.example.com/llm" {
			t.Errorf("AI.Endpoint = %s, want https://ai.example.com/llm", cfg.AI.Endpoint)
		}
	})

	t.Run("fails validation for invalid cache type", func(t *testing.T) {
		t.Setenv("HEALTHSNAP_CACHE_TYPE", "redis")

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for invalid cache type")
		}
	})

	t.Run("fails validation for unknown provider", func(t *testing.T) {
		t.Setenv("HEALTHSNAP_RECOGNITION_PROVIDER_ORDER", "logmeal,openai")

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for unknown provider")
		}
	})
}

func validConfig() *Config {
	return &Config{
		Cache:     CacheConfig{Type: "memory", TTL: time.Hour},
		RateLimit: RateLimitConfig{PerIP: 10, Provider: 10},
		Recognition: RecognitionConfig{
			ProviderOrder:   []string{"logmeal", "ai"},
			ProviderTimeout: time.Second,
			Timezone:        "America/Sao_Paulo",
		},
		AI: AIConfig{Timeout: time.Second},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"no cache", func(c *Config) { c.Cache.Type = "none" }, false},
		{"invalid cache type", func(c *Config) { c.Cache.Type = "disk" }, true},
		{"zero ttl", func(c *Config) { c.Cache.TTL = 0 }, true},
		{"zero provider timeout", func(c *Config) { c.Recognition.ProviderTimeout = 0 }, true},
		{"negative ai timeout", func(c *Config) { c.AI.Timeout = -time.Second }, true},
		{"zero rate limit", func(c *Config) { c.RateLimit.PerIP = 0 }, true},
		{"unknown provider", func(c *Config) { c.Recognition.ProviderOrder = []string{"vision-x"} }, true},
		{"provider name case", func(c *Config) { c.Recognition.ProviderOrder = []string{"Google_Vision"} }, false},
		{"threshold out of range", func(c *Config) { c.Providers.Roboflow.MinConfidence = 1.5 }, true},
		{"bad timezone", func(c *Config) { c.Recognition.Timezone = "Mars/Olympus" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr && err == nil {
				t.Error("validate() error = nil, want error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("validate() error = %v, want nil", err)
			}
		})
	}
}

func TestLocation(t *testing.T) {
	loc := RecognitionConfig{Timezone: "America/Sao_Paulo"}.Location()
	if loc.String() != "America/Sao_Paulo" {
		t.Errorf("Location() = %s, want America/Sao_Paulo", loc)
	}

	if got := (RecognitionConfig{Timezone: "nowhere"}).Location(); got != time.Local {
		t.Errorf("Location() = %s, want Local for an invalid zone", got)
	}
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("returns nil when .env file doesn't exist", func(t *testing.T) {
		err := loadEnvFile(filepath.Join(t.TempDir(), ".env"))
		if err != nil {
			t.Errorf("loadEnvFile() error = %v, want nil when file doesn't exist", err)
		}
	})

	t.Run("loads variables and skips comments", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		envContent := `
# Comment line
HS_TEST_VAR_1=value1

HS_TEST_VAR_2="value2"
# HS_TEST_COMMENTED=should_not_load
`
		if err := os.WriteFile(path, []byte(envContent), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}
		t.Setenv("HS_TEST_VAR_1", "")
		os.Unsetenv("HS_TEST_VAR_1")
		t.Setenv("HS_TEST_VAR_2", "")
		os.Unsetenv("HS_TEST_VAR_2")
		t.Setenv("HS_TEST_COMMENTED", "")
		os.Unsetenv("HS_TEST_COMMENTED")

		if err := loadEnvFile(path); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("HS_TEST_VAR_1") != "value1" {
			t.Errorf("HS_TEST_VAR_1 = %s, want value1", os.Getenv("HS_TEST_VAR_1"))
		}
		if os.Getenv("HS_TEST_VAR_2") != "value2" {
			t.Errorf("HS_TEST_VAR_2 = %s, want value2", os.Getenv("HS_TEST_VAR_2"))
		}
		if _, ok := os.LookupEnv("HS_TEST_COMMENTED"); ok {
			t.Error("HS_TEST_COMMENTED should not be loaded from comment")
		}
	})

	t.Run("doesn't override existing environment variables", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		t.Setenv("HS_TEST_OVERRIDE", "existing-value")

		if err := os.WriteFile(path, []byte("HS_TEST_OVERRIDE=new-value"), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		if err := loadEnvFile(path); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("HS_TEST_OVERRIDE") != "existing-value" {
			t.Errorf("HS_TEST_OVERRIDE = %s, want existing-value (should not override)", os.Getenv("HS_TEST_OVERRIDE"))
		}
	})
}
