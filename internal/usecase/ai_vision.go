package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Escudopt/rork-healthsnap-sub000/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const visionSystemPrompt = `Você é um nutricionista especializado em culinária brasileira.
Analise a foto da refeição e identifique cada alimento visível.
Responda APENAS com um objeto JSON, sem texto adicional, neste formato:
{
  "mealName": string,
  "foods": [
    {
      "name": string,
      "weightInGrams": number,
      "calories": number,
      "protein": number,
      "carbs": number,
      "fat": number,
      "fiber": number,
      "sugar": number,
      "sodium": number,
      "portion": string
    }
  ],
  "mealType": "breakfast" | "lunch" | "dinner" | "snack",
  "confidence": "high" | "medium" | "low",
  "notes": string
}
Use nomes de alimentos em português. Estime o peso de cada item em gramas
com base no tamanho do prato. Proteínas, carboidratos, gorduras, fibras e
açúcares em gramas; sódio em miligramas.`

const visionUserPrompt = "Analise esta refeição e identifique todos os alimentos com suas quantidades."

// aiAnalysis is the JSON object requested from the model
type aiAnalysis struct {
	MealName   string                 `json:"mealName"`
	Foods      []domain.FoodCandidate `json:"foods"`
	MealType   string                 `json:"mealType"`
	Confidence string                 `json:"confidence"`
	Notes      string                 `json:"notes"`
}

// AIVisionService analyzes a meal photo with a generative model constrained to a fixed schema
type AIVisionService struct {
	generator domain.TextGenerator
	nutrition *NutritionService
	timeout   time.Duration
	now       func() time.Time
}

// NewAIVisionService creates a new AI vision service
func NewAIVisionService(generator domain.TextGenerator, nutrition *NutritionService, timeout time.Duration, now func() time.Time) *AIVisionService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if now == nil {
		now = time.Now
	}
	return &AIVisionService{
		generator: generator,
		nutrition: nutrition,
		timeout:   timeout,
		now:       now,
	}
}

// Analyze sends the cleaned base64 image to the model and builds a validated result.
// Totals are always recomputed from the food list.
func (s *AIVisionService) Analyze(ctx context.Context, imageBase64 string) (*domain.AnalysisResult, error) {
	if s.generator == nil {
		return nil, fmt.Errorf("%w: no generator", domain.ErrAIUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	completion, err := s.generator.Complete(ctx, []domain.ChatMessage{
		{Role: "system", Parts: []domain.ContentPart{{Text: visionSystemPrompt}}},
		{Role: "user", Parts: []domain.ContentPart{
			{Text: visionUserPrompt},
			{Image: "data:image/jpeg;base64," + imageBase64},
		}},
	})
	if err != nil {
		return nil, err
	}

	analysis, err := parseAIAnalysis(completion)
	if err != nil {
		return nil, err
	}

	now := s.now()
	result := &domain.AnalysisResult{
		ID:         uuid.NewString(),
		MealName:   strings.TrimSpace(analysis.MealName),
		Foods:      s.nutrition.BuildFoods(analysis.Foods),
		MealType:   domain.MealType(strings.ToLower(strings.TrimSpace(analysis.MealType))),
		Confidence: domain.Confidence(strings.ToLower(strings.TrimSpace(analysis.Confidence))),
		Notes:      strings.TrimSpace(analysis.Notes),
		Source:     domain.SourceAIVision,
		AnalyzedAt: now,
	}

	if !result.MealType.Valid() {
		result.MealType = MealTypeForTime(now)
	}
	if !result.Confidence.Valid() {
		result.Confidence = domain.ConfidenceMedium
	}
	if result.MealName == "" {
		result.MealName = mealNameFromFoods(result.Foods)
	}
	result.RecomputeTotals()

	log.Info().
		Str("component", "ai-vision").
		Int("foods", len(result.Foods)).
		Float64("totalCalories", result.TotalCalories).
		Msg("AI analysis complete")

	return result, nil
}

// parseAIAnalysis extracts and validates the JSON object in a completion
func parseAIAnalysis(completion string) (*aiAnalysis, error) {
	raw, err := extractJSON(completion, '{', '}')
	if err != nil {
		return nil, err
	}

	var analysis aiAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAIResponseInvalid, err)
	}

	foods := analysis.Foods[:0]
	for _, f := range analysis.Foods {
		if strings.TrimSpace(f.Name) != "" {
			foods = append(foods, f)
		}
	}
	if len(foods) == 0 {
		return nil, fmt.Errorf("%w: no foods", domain.ErrAIResponseInvalid)
	}
	analysis.Foods = foods

	return &analysis, nil
}

// extractJSON returns the outermost openDelim...closeDelim span of a completion,
// tolerating markdown code fences and surrounding prose
func extractJSON(completion string, openDelim, closeDelim byte) (string, error) {
	text := strings.TrimSpace(completion)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	start := strings.IndexByte(text, openDelim)
	end := strings.LastIndexByte(text, closeDelim)
	if start < 0 || end <= start {
		return "", fmt.Errorf("%w: no JSON found in completion", domain.ErrAIResponseInvalid)
	}
	return text[start : end+1], nil
}

// MealTypeForTime guesses the meal type from the local time of day
func MealTypeForTime(t time.Time) domain.MealType {
	switch h := t.Hour(); {
	case h < 10:
		return domain.MealTypeBreakfast
	case h < 15:
		return domain.MealTypeLunch
	case h < 19:
		return domain.MealTypeSnack
	default:
		return domain.MealTypeDinner
	}
}

// mealNameFromFoods joins the first few food names
func mealNameFromFoods(foods []domain.FoodItem) string {
	names := make([]string, 0, 3)
	for _, f := range foods {
		if len(names) == 3 {
			break
		}
		names = append(names, f.Name)
	}
	if len(names) == 0 {
		return "Refeição"
	}
	return strings.Join(names, ", ")
}
