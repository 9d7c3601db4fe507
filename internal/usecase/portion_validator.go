package usecase

import (
	"fmt"
	"math"

	"github.com/Escudopt/rork-healthsnap-sub000/internal/domain"
	"github.com/rs/zerolog/log"
)

// PortionRule bounds the plausible gram weight of one food category
type PortionRule struct {
	Category string
	Keywords []string
	Min      float64
	Max      float64
}

// portionRules are evaluated in order and the first rule with a keyword
// found as a whole word in the normalized food name applies, so "eggplant"
// is not an egg and "macaxeira" is not "maca". Beverages precede fruit so
// "suco de laranja" is a drink.
var portionRules = []PortionRule{
	{Category: "egg", Keywords: []string{"ovo", "egg"}, Min: 50, Max: 100},
	{Category: "rice", Keywords: []string{"arroz", "rice"}, Min: 50, Max: 300},
	{Category: "chicken", Keywords: []string{"frango", "galinha", "chicken"}, Min: 80, Max: 250},
	{Category: "beef", Keywords: []string{"carne", "bife", "picanha", "alcatra", "beef", "steak"}, Min: 80, Max: 250},
	{Category: "fish", Keywords: []string{"peixe", "tilapia", "salmao", "fish", "salmon"}, Min: 80, Max: 250},
	{Category: "beans", Keywords: []string{"feijao", "bean"}, Min: 50, Max: 250},
	{Category: "pasta", Keywords: []string{"macarrao", "espaguete", "lasanha", "pasta", "spaghetti", "noodle", "lasagna"}, Min: 80, Max: 350},
	{Category: "bread", Keywords: []string{"pao", "torrada", "bread", "toast"}, Min: 25, Max: 150},
	{Category: "potato", Keywords: []string{"batata", "mandioca", "aipim", "macaxeira", "potato", "fries", "cassava"}, Min: 50, Max: 300},
	{Category: "cheese", Keywords: []string{"queijo", "cheese"}, Min: 15, Max: 100},
	{Category: "beverage", Keywords: []string{"suco", "leite", "cafe", "refrigerante", "juice", "milk", "coffee", "soda"}, Min: 100, Max: 500},
	{Category: "vegetables", Keywords: []string{"salada", "alface", "tomate", "brocolis", "cenoura", "abobrinha", "salad", "lettuce", "tomato", "broccoli", "carrot"}, Min: 20, Max: 200},
	{Category: "fruit", Keywords: []string{"banana", "maca", "laranja", "mamao", "manga", "fruta", "apple", "orange", "papaya", "mango", "fruit"}, Min: 50, Max: 250},
}

// PortionValidator clamps estimated food weights into category-specific plausible ranges
type PortionValidator struct {
	rules []PortionRule
}

// NewPortionValidator creates a validator with the built-in category rules
func NewPortionValidator() *PortionValidator {
	return &PortionValidator{rules: portionRules}
}

// RuleFor returns the first rule matching name
func (v *PortionValidator) RuleFor(name string) (PortionRule, bool) {
	normalized := NormalizeFoodName(name)
	if normalized == "" {
		return PortionRule{}, false
	}
	for _, rule := range v.rules {
		for _, kw := range rule.Keywords {
			if containsPhrase(normalized, kw) {
				return rule, true
			}
		}
	}
	return PortionRule{}, false
}

// Validate returns a copy of foods with out-of-range weights clamped and nutrients rescaled.
// Foods without a matching rule are returned unchanged.
func (v *PortionValidator) Validate(foods []domain.FoodItem) []domain.FoodItem {
	out := make([]domain.FoodItem, len(foods))
	for i, food := range foods {
		out[i] = v.validateItem(food)
	}
	return out
}

func (v *PortionValidator) validateItem(food domain.FoodItem) domain.FoodItem {
	rule, ok := v.RuleFor(food.Name)
	if !ok || food.WeightInGrams <= 0 {
		return food
	}

	newWeight := math.Min(math.Max(food.WeightInGrams, rule.Min), rule.Max)
	if newWeight == food.WeightInGrams {
		return food
	}

	log.Debug().
		Str("component", "portion").
		Str("food", food.Name).
		Str("category", rule.Category).
		Float64("from", food.WeightInGrams).
		Float64("to", newWeight).
		Msg("portion adjusted")

	return rescaleFood(food, newWeight)
}

// rescaleFood scales every nutrient of food to newWeight grams
func rescaleFood(food domain.FoodItem, newWeight float64) domain.FoodItem {
	ratio := newWeight / food.WeightInGrams

	scaled := food
	scaled.WeightInGrams = newWeight
	scaled.Calories = roundWhole(food.Calories * ratio)
	scaled.Protein = roundTenth(food.Protein * ratio)
	scaled.Carbs = roundTenth(food.Carbs * ratio)
	scaled.Fat = roundTenth(food.Fat * ratio)
	scaled.Fiber = scalePtr(food.Fiber, ratio, roundTenth)
	scaled.Sugar = scalePtr(food.Sugar, ratio, roundTenth)
	scaled.Sodium = scalePtr(food.Sodium, ratio, roundWhole)
	scaled.Portion = formatGrams(newWeight)
	return scaled
}

func scalePtr(v *float64, ratio float64, round func(float64) float64) *float64 {
	if v == nil {
		return nil
	}
	return domain.Float64(round(*v * ratio))
}

func roundWhole(v float64) float64 {
	return math.Round(v)
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

func formatGrams(weight float64) string {
	return fmt.Sprintf("%.0fg", weight)
}
