package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Escudopt/rork-healthsnap-sub000/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

const (
	fallbackFoodName = "Refeição mista (análise manual necessária)"
	fallbackNotes    = "Não foi possível identificar os alimentos automaticamente. Revise os itens e ajuste as quantidades manualmente."
)

var (
	dataURLPrefixRegex = regexp.MustCompile(`^data:[\w.+-]+/[\w.+-]+;base64,`)
	base64Regex        = regexp.MustCompile(`^[A-Za-z0-9+/=]+$`)
	whitespaceRegex    = regexp.MustCompile(`\s+`)
)

// RecognitionServiceConfig holds configuration for the recognition service
type RecognitionServiceConfig struct {
	CacheTTL        time.Duration
	ProviderTimeout time.Duration
	Location        *time.Location
}

// RecognitionService runs the provider cascade for a meal photo
type RecognitionService struct {
	slots           []domain.ProviderSlot
	nutrition       *NutritionService
	aiVision        *AIVisionService
	cache           domain.CacheRepository
	cacheTTL        time.Duration
	providerTimeout time.Duration
	now             func() time.Time
	group           singleflight.Group
}

// cascadeOutcome is what a single analysis produced, shared between collapsed callers
type cascadeOutcome struct {
	result   *domain.AnalysisResult
	attempts []domain.Attempt
}

// NewRecognitionService creates a new recognition service. slots are tried in order.
// cache must not be nil; pass cache.NoopCache{} to disable caching.
func NewRecognitionService(
	slots []domain.ProviderSlot,
	nutrition *NutritionService,
	aiVision *AIVisionService,
	cache domain.CacheRepository,
	config RecognitionServiceConfig,
) *RecognitionService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	providerTimeout := config.ProviderTimeout
	if providerTimeout <= 0 {
		providerTimeout = 15 * time.Second
	}

	loc := config.Location
	if loc == nil {
		loc = time.Local
	}

	return &RecognitionService{
		slots:           slots,
		nutrition:       nutrition,
		aiVision:        aiVision,
		cache:           cache,
		cacheTTL:        cacheTTL,
		providerTimeout: providerTimeout,
		now:             func() time.Time { return time.Now().In(loc) },
	}
}

// Providers returns the configured cascade slots in priority order
func (s *RecognitionService) Providers() []domain.ProviderSlot {
	out := make([]domain.ProviderSlot, len(s.slots))
	copy(out, s.slots)
	return out
}

// RecognizeFood identifies the foods in a base64 meal photo.
// The only error it returns is domain.ErrInvalidImage; every other failure
// degrades to the AI fallback or the fixed low-confidence result.
func (s *RecognitionService) RecognizeFood(ctx context.Context, imageBase64 string) (*domain.AnalysisResult, error) {
	result, _, err := s.RecognizeFoodWithAttempts(ctx, imageBase64)
	return result, err
}

// RecognizeFoodWithAttempts is RecognizeFood plus the per-provider outcomes of the cascade.
// Attempts are nil when the result came from the cache.
func (s *RecognitionService) RecognizeFoodWithAttempts(ctx context.Context, imageBase64 string) (*domain.AnalysisResult, []domain.Attempt, error) {
	cleaned, err := CleanBase64Image(imageBase64)
	if err != nil {
		return nil, nil, err
	}

	key := generateCacheKey(cleaned)
	if cached, err := s.getFromCache(ctx, key); err == nil {
		log.Debug().Str("component", "cascade").Str("key", key).Msg("cache hit")
		return cached, nil, nil
	}

	// The shared run outlives any single caller; provider and AI timeouts bound it.
	v, _, _ := s.group.Do(key, func() (interface{}, error) {
		sharedCtx := context.WithoutCancel(ctx)
		result, attempts := s.analyze(sharedCtx, cleaned)
		if result.Source != domain.SourceFallback {
			if err := s.cache.Set(sharedCtx, key, result, s.cacheTTL); err != nil {
				log.Warn().Str("component", "cascade").Err(err).Msg("failed to cache result")
			}
		}
		return cascadeOutcome{result: result, attempts: attempts}, nil
	})

	outcome := v.(cascadeOutcome)
	return outcome.result, outcome.attempts, nil
}

// analyze runs the provider cascade, then the AI model, then the fixed fallback
func (s *RecognitionService) analyze(ctx context.Context, imageBase64 string) (*domain.AnalysisResult, []domain.Attempt) {
	candidates, provider, attempts := s.runCascade(ctx, imageBase64)
	if provider != "" {
		return s.buildProviderResult(provider, candidates), attempts
	}

	if s.aiVision == nil {
		attempts = append(attempts, domain.Attempt{Provider: domain.SourceAIVision, Skipped: true, Error: domain.ErrAIUnavailable.Error()})
		return FallbackResult(s.now()), attempts
	}

	result, err := s.aiVision.Analyze(ctx, imageBase64)
	if err == nil {
		attempts = append(attempts, domain.Attempt{Provider: domain.SourceAIVision})
		return result, attempts
	}

	log.Error().Str("component", "cascade").Err(err).Msg("AI vision failed, returning fallback result")
	attempts = append(attempts, domain.Attempt{Provider: domain.SourceAIVision, Error: err.Error()})
	return FallbackResult(s.now()), attempts
}

// runCascade folds over the provider slots in order and stops at the first success.
// Disabled and unconfigured providers are skipped without a network call.
func (s *RecognitionService) runCascade(ctx context.Context, imageBase64 string) ([]domain.FoodCandidate, string, []domain.Attempt) {
	attempts := make([]domain.Attempt, 0, len(s.slots)+1)

	for _, slot := range s.slots {
		if slot.State != domain.ProviderActive || slot.Recognizer == nil {
			attempts = append(attempts, domain.Attempt{
				Provider: slot.Name,
				Skipped:  true,
				Error:    fmt.Sprintf("%s: %s", domain.ErrProviderSkipped, slot.State),
			})
			continue
		}

		candidates, err := s.tryProvider(ctx, slot, imageBase64)
		if err != nil {
			log.Warn().Str("component", "cascade").Str("provider", slot.Name).Err(err).Msg("provider failed, trying next")
			attempts = append(attempts, domain.Attempt{Provider: slot.Name, Error: err.Error()})
			continue
		}

		log.Info().Str("component", "cascade").Str("provider", slot.Name).Int("detections", len(candidates)).Msg("provider succeeded")
		attempts = append(attempts, domain.Attempt{Provider: slot.Name})
		return candidates, slot.Name, attempts
	}

	return nil, "", attempts
}

// tryProvider calls one adapter under the provider timeout, converting panics to errors
func (s *RecognitionService) tryProvider(ctx context.Context, slot domain.ProviderSlot, imageBase64 string) (candidates []domain.FoodCandidate, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s panicked: %v", domain.ErrProviderFailure, slot.Name, r)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, s.providerTimeout)
	defer cancel()

	candidates, err = slot.Recognizer.Recognize(ctx, imageBase64)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %s returned no foods", domain.ErrNoDetections, slot.Name)
	}
	return candidates, nil
}

// buildProviderResult enhances provider detections into a full result
func (s *RecognitionService) buildProviderResult(provider string, candidates []domain.FoodCandidate) *domain.AnalysisResult {
	now := s.now()
	foods := s.nutrition.BuildFoods(candidates)

	result := &domain.AnalysisResult{
		ID:         uuid.NewString(),
		MealName:   mealNameFromFoods(foods),
		Foods:      foods,
		MealType:   MealTypeForTime(now),
		Confidence: domain.ConfidenceMedium,
		Source:     provider,
		AnalyzedAt: now,
	}
	result.RecomputeTotals()
	return result
}

// FallbackResult is the fixed single-item result returned when every analysis path failed
func FallbackResult(now time.Time) *domain.AnalysisResult {
	result := &domain.AnalysisResult{
		ID:       uuid.NewString(),
		MealName: "Refeição",
		Foods: []domain.FoodItem{{
			Name:          fallbackFoodName,
			WeightInGrams: 200,
			Calories:      150,
			Protein:       8,
			Carbs:         18,
			Fat:           5,
			Portion:       "1 prato",
		}},
		MealType:   MealTypeForTime(now),
		Confidence: domain.ConfidenceLow,
		Notes:      fallbackNotes,
		Source:     domain.SourceFallback,
		AnalyzedAt: now,
	}
	result.RecomputeTotals()
	return result
}

// CleanBase64Image strips a data URL prefix and whitespace and checks the base64 alphabet
func CleanBase64Image(image string) (string, error) {
	cleaned := strings.TrimSpace(image)
	cleaned = dataURLPrefixRegex.ReplaceAllString(cleaned, "")
	cleaned = whitespaceRegex.ReplaceAllString(cleaned, "")

	if cleaned == "" {
		return "", fmt.Errorf("%w: empty image", domain.ErrInvalidImage)
	}
	if !base64Regex.MatchString(cleaned) {
		return "", fmt.Errorf("%w: not base64 encoded", domain.ErrInvalidImage)
	}
	return cleaned, nil
}

// generateCacheKey creates a cache key from the image content.
// Format: "recognition:{sha256 hex}"
func generateCacheKey(imageBase64 string) string {
	sum := sha256.Sum256([]byte(imageBase64))
	return "recognition:" + hex.EncodeToString(sum[:])
}

// getFromCache retrieves a previous analysis from cache
func (s *RecognitionService) getFromCache(ctx context.Context, key string) (*domain.AnalysisResult, error) {
	payload, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var result domain.AnalysisResult
	if err := json.Unmarshal(payload, &result); err != nil || len(result.Foods) == 0 {
		return nil, domain.ErrCacheMiss
	}
	return &result, nil
}
