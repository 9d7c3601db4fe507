package main

import (
	"context"
	"fmt"
	"time"

	"github.com/Escudopt/rork-healthsnap-sub000/config"
	httpDelivery "github.com/Escudopt/rork-healthsnap-sub000/internal/delivery/http"
	"github.com/Escudopt/rork-healthsnap-sub000/internal/domain"
	"github.com/Escudopt/rork-healthsnap-sub000/internal/infrastructure/cache"
	"github.com/Escudopt/rork-healthsnap-sub000/internal/infrastructure/llm"
	"github.com/Escudopt/rork-healthsnap-sub000/internal/infrastructure/nutritiondb"
	"github.com/Escudopt/rork-healthsnap-sub000/internal/infrastructure/vision"
	"github.com/Escudopt/rork-healthsnap-sub000/internal/logger"
	"github.com/Escudopt/rork-healthsnap-sub000/internal/usecase"
	"github.com/rs/zerolog/log"
)

func main() {
	// .env values never override the real environment
	if err := config.LoadEnvFile(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load .env file")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.Logging.Level, cfg.Server.Environment)
	serverLog := logger.Component("server")

	serverLog.Info().
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Str("cache", cfg.Cache.Type).
		Dur("cache_ttl", cfg.Cache.TTL).
		Msg("Starting HealthSnap Backend v1.0.0")

	// Initialize infrastructure dependencies
	var resultCache domain.CacheRepository = cache.NoopCache{}
	if cfg.Cache.Type == "memory" {
		memoryCache := cache.NewMemoryCache()
		defer memoryCache.Close()
		resultCache = memoryCache
	}

	debug := cfg.Recognition.Debug || cfg.Server.Environment == "development"

	aiClient := llm.NewClient(cfg.AI.Endpoint, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.Timeout)
	aiClient.SetDebug(debug)
	if !aiClient.Configured() {
		serverLog.Warn().Msg("AI endpoint not configured - vision fallback and suggestions use built-in defaults")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	slots := vision.Build(ctx, cfg.Recognition.ProviderOrder, providerSettings(cfg.Providers), vision.BuildOptions{
		Timeout:           cfg.Recognition.ProviderTimeout,
		RequestsPerMinute: cfg.RateLimit.Provider,
		Debug:             debug,
	})
	cancel()

	active := 0
	for _, slot := range slots {
		if slot.State == domain.ProviderActive {
			active++
		}
	}
	serverLog.Info().Int("providers", len(slots)).Int("active", active).Msg("Vision providers resolved")

	// Initialize usecase layer
	location := cfg.Recognition.Location()
	now := func() time.Time { return time.Now().In(location) }

	nutritionService := usecase.NewNutritionService(nutritiondb.Default(), usecase.NutritionServiceConfig{
		EnableDebugLogging: debug,
	})
	aiVisionService := usecase.NewAIVisionService(aiClient, nutritionService, cfg.AI.Timeout, now)
	recognitionService := usecase.NewRecognitionService(slots, nutritionService, aiVisionService, resultCache, usecase.RecognitionServiceConfig{
		CacheTTL:        cfg.Cache.TTL,
		ProviderTimeout: cfg.Recognition.ProviderTimeout,
		Location:        location,
	})
	suggestionService := usecase.NewSuggestionService(aiClient, cfg.AI.Timeout)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(recognitionService, suggestionService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	serverLog.Info().Str("addr", addr).Msg("Server listening")

	if err := router.Run(addr); err != nil {
		serverLog.Fatal().Err(err).Msg("Failed to start server")
	}
}

// providerSettings converts provider configuration into adapter settings
func providerSettings(p config.ProvidersConfig) map[string]vision.Settings {
	settings := make(map[string]vision.Settings)
	for name, pc := range p.ByName() {
		settings[name] = vision.Settings{
			Enabled:       pc.Enabled,
			APIKey:        pc.APIKey,
			Endpoint:      pc.Endpoint,
			Region:        pc.Region,
			MinConfidence: pc.MinConfidence,
		}
	}
	return settings
}
