package usecase

import (
	"fmt"
	"math"
	"strings"

	"github.com/Escudopt/rork-healthsnap-sub000/internal/domain"
	"github.com/rs/zerolog/log"
)

// Defaults applied to foods that are not in the nutrition table and were reported without values
const (
	defaultWeightGrams = domain.PlaceholderWeightGrams
	defaultCalories    = domain.PlaceholderCalories
	defaultProtein     = domain.PlaceholderProtein
	defaultCarbs       = domain.PlaceholderCarbs
	defaultFat         = domain.PlaceholderFat

	unidentifiedFoodName = "Alimento não identificado"
)

// NutritionServiceConfig holds configuration for the nutrition service
type NutritionServiceConfig struct {
	EnableDebugLogging bool
}

// NutritionService turns raw food candidates into validated food items using the static table
type NutritionService struct {
	matchingService *MatchingService
	validator       *PortionValidator
}

// NewNutritionService creates a new nutrition service over table
func NewNutritionService(table domain.NutritionTable, config NutritionServiceConfig) *NutritionService {
	return &NutritionService{
		matchingService: NewMatchingService(table, MatchConfig{EnableDebugLogging: config.EnableDebugLogging}),
		validator:       NewPortionValidator(),
	}
}

// BuildFoods enhances candidates and then clamps their portions
func (s *NutritionService) BuildFoods(candidates []domain.FoodCandidate) []domain.FoodItem {
	return s.validator.Validate(s.EnhanceFoods(candidates))
}

// EnhanceFoods recomputes nutrients from the table where a food matches and
// sanitizes the reported values otherwise. It never fails: an item that cannot
// be processed gets the default constants and the rest of the list is unaffected.
func (s *NutritionService) EnhanceFoods(candidates []domain.FoodCandidate) []domain.FoodItem {
	foods := make([]domain.FoodItem, 0, len(candidates))
	for _, c := range candidates {
		item, err := s.enhanceItem(c)
		if err != nil {
			log.Warn().Str("component", "nutrition").Str("food", c.Name).Err(err).Msg("enhancement failed, using defaults")
			item = defaultFoodItem(c.Name)
		}
		foods = append(foods, item)
	}
	return foods
}

func (s *NutritionService) enhanceItem(c domain.FoodCandidate) (item domain.FoodItem, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("enhance %q: %v", c.Name, r)
		}
	}()

	name := strings.TrimSpace(c.Name)
	if name == "" {
		return domain.FoodItem{}, fmt.Errorf("%w: empty food name", domain.ErrInvalidRequest)
	}
	if err := checkFinite(c); err != nil {
		return domain.FoodItem{}, err
	}

	weight := defaultWeightGrams
	if c.WeightInGrams != nil && *c.WeightInGrams > 0 {
		weight = *c.WeightInGrams
	}

	portion := strings.TrimSpace(c.Portion)
	if portion == "" {
		portion = formatGrams(weight)
	}

	if entry, ok := s.matchingService.FindEntry(name); ok {
		factor := weight / 100
		return domain.FoodItem{
			Name:          name,
			WeightInGrams: weight,
			Calories:      roundWhole(entry.Calories * factor),
			Protein:       roundTenth(entry.Protein * factor),
			Carbs:         roundTenth(entry.Carbs * factor),
			Fat:           roundTenth(entry.Fat * factor),
			Fiber:         domain.Float64(roundTenth(entry.Fiber * factor)),
			Sugar:         floorPtr(c.Sugar),
			Sodium:        domain.Float64(roundWhole(entry.Sodium * factor)),
			Portion:       portion,
		}, nil
	}

	return domain.FoodItem{
		Name:          name,
		WeightInGrams: weight,
		Calories:      valueOr(c.Calories, defaultCalories),
		Protein:       valueOr(c.Protein, defaultProtein),
		Carbs:         valueOr(c.Carbs, defaultCarbs),
		Fat:           valueOr(c.Fat, defaultFat),
		Fiber:         floorPtr(c.Fiber),
		Sugar:         floorPtr(c.Sugar),
		Sodium:        floorPtr(c.Sodium),
		Portion:       portion,
	}, nil
}

// defaultFoodItem is the constant fallback for a food that could not be processed
func defaultFoodItem(name string) domain.FoodItem {
	name = strings.TrimSpace(name)
	if name == "" {
		name = unidentifiedFoodName
	}
	return domain.FoodItem{
		Name:          name,
		WeightInGrams: defaultWeightGrams,
		Calories:      defaultCalories,
		Protein:       defaultProtein,
		Carbs:         defaultCarbs,
		Fat:           defaultFat,
		Portion:       formatGrams(defaultWeightGrams),
	}
}

func checkFinite(c domain.FoodCandidate) error {
	fields := map[string]*float64{
		"weightInGrams": c.WeightInGrams,
		"calories":      c.Calories,
		"protein":       c.Protein,
		"carbs":         c.Carbs,
		"fat":           c.Fat,
		"fiber":         c.Fiber,
		"sugar":         c.Sugar,
		"sodium":        c.Sodium,
	}
	for field, v := range fields {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return fmt.Errorf("%w: %s is not a finite number", domain.ErrInvalidRequest, field)
		}
	}
	return nil
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return math.Max(*v, 0)
}

func floorPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return domain.Float64(math.Max(*v, 0))
}
