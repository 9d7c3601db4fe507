package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Escudopt/rork-healthsnap-sub000/internal/domain"
	"github.com/rs/zerolog/log"
)

const suggestionSystemPrompt = `Você é um nutricionista. Com base nos alimentos de uma refeição,
dê de 3 a 5 sugestões curtas e práticas para torná-la mais equilibrada.
Responda APENAS com um array JSON de strings, por exemplo:
["Adicione uma porção de legumes", "Prefira água ao refrigerante"]`

// Rule thresholds for the offline suggestions
const (
	lowProteinGrams   = 20.0
	lowFiberGrams     = 5.0
	highSodiumMg      = 800.0
	highCalories      = 900.0
	highFatGrams      = 35.0
	minDistinctFoods  = 3
	maxAISuggestions  = 5
	hydrationTip      = "Beba água ao longo do dia para manter uma boa hidratação."
	defaultSuggestion = "Mantenha uma alimentação variada, com proteínas, carboidratos e vegetais em todas as refeições."
)

// SuggestionService produces short nutrition suggestions for a meal
type SuggestionService struct {
	generator domain.TextGenerator
	timeout   time.Duration
}

// NewSuggestionService creates a new suggestion service. generator may be nil.
func NewSuggestionService(generator domain.TextGenerator, timeout time.Duration) *SuggestionService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &SuggestionService{generator: generator, timeout: timeout}
}

// GetNutritionSuggestions asks the AI model for suggestions and falls back to
// rule-based suggestions on any failure. The result is never empty.
func (s *SuggestionService) GetNutritionSuggestions(ctx context.Context, foods []domain.FoodItem) []string {
	if s.generator != nil && len(foods) > 0 {
		suggestions, err := s.fromAI(ctx, foods)
		if err == nil {
			return suggestions
		}
		log.Warn().Str("component", "suggestions").Err(err).Msg("AI suggestions failed, using rules")
	}
	return RuleBasedSuggestions(foods)
}

func (s *SuggestionService) fromAI(ctx context.Context, foods []domain.FoodItem) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	completion, err := s.generator.Complete(ctx, []domain.ChatMessage{
		{Role: "system", Parts: []domain.ContentPart{{Text: suggestionSystemPrompt}}},
		{Role: "user", Parts: []domain.ContentPart{{Text: describeMeal(foods)}}},
	})
	if err != nil {
		return nil, err
	}

	raw, err := extractJSON(completion, '[', ']')
	if err != nil {
		return nil, err
	}

	var parsed []string
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAIResponseInvalid, err)
	}

	suggestions := make([]string, 0, len(parsed))
	for _, p := range parsed {
		if p = strings.TrimSpace(p); p != "" {
			suggestions = append(suggestions, p)
		}
		if len(suggestions) == maxAISuggestions {
			break
		}
	}
	if len(suggestions) == 0 {
		return nil, fmt.Errorf("%w: no suggestions", domain.ErrAIResponseInvalid)
	}
	return suggestions, nil
}

// describeMeal renders the food list as the user turn
func describeMeal(foods []domain.FoodItem) string {
	var b strings.Builder
	b.WriteString("Alimentos da refeição:\n")
	for _, f := range foods {
		fmt.Fprintf(&b, "- %s (%.0fg): %.0f kcal, %.1fg proteína, %.1fg carboidratos, %.1fg gordura\n",
			f.Name, f.WeightInGrams, f.Calories, f.Protein, f.Carbs, f.Fat)
	}
	return b.String()
}

// mealTotals sums the nutrients of a food list
type mealTotals struct {
	calories float64
	protein  float64
	fat      float64
	fiber    float64
	sodium   float64
	distinct int
}

func sumFoods(foods []domain.FoodItem) mealTotals {
	var t mealTotals
	seen := make(map[string]struct{}, len(foods))
	for _, f := range foods {
		t.calories += f.Calories
		t.protein += f.Protein
		t.fat += f.Fat
		if f.Fiber != nil {
			t.fiber += *f.Fiber
		}
		if f.Sodium != nil {
			t.sodium += *f.Sodium
		}
		seen[NormalizeFoodName(f.Name)] = struct{}{}
	}
	t.distinct = len(seen)
	return t
}

// RuleBasedSuggestions derives suggestions from the meal totals
func RuleBasedSuggestions(foods []domain.FoodItem) []string {
	if len(foods) == 0 {
		return []string{defaultSuggestion, hydrationTip}
	}

	t := sumFoods(foods)
	var suggestions []string

	if t.protein < lowProteinGrams {
		suggestions = append(suggestions, "Inclua uma fonte de proteína, como ovos, frango, peixe ou feijão.")
	}
	if t.fiber < lowFiberGrams {
		suggestions = append(suggestions, "Aumente as fibras com verduras, legumes, frutas ou grãos integrais.")
	}
	if t.sodium > highSodiumMg {
		suggestions = append(suggestions, "A refeição tem bastante sódio. Reduza o sal e os alimentos industrializados.")
	}
	if t.calories > highCalories {
		suggestions = append(suggestions, "A refeição é bem calórica. Considere porções menores ou trocar frituras por preparações grelhadas.")
	}
	if t.fat > highFatGrams {
		suggestions = append(suggestions, "O teor de gordura está alto. Prefira carnes magras e menos óleo no preparo.")
	}
	if t.distinct < minDistinctFoods {
		suggestions = append(suggestions, "Varie mais o prato, combinando alimentos de grupos diferentes.")
	}

	return append(suggestions, hydrationTip)
}
