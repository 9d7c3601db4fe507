package domain

import "time"

// MealType classifies a meal by the time of day it is eaten
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
)

// Valid reports whether m is one of the known meal types
func (m MealType) Valid() bool {
	switch m {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack:
		return true
	}
	return false
}

// Confidence is a coarse tag describing how much to trust an analysis
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Valid reports whether c is one of the known confidence tags
func (c Confidence) Valid() bool {
	switch c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return true
	}
	return false
}

// Result sources that are not provider names
const (
	SourceAIVision = "ai-vision"
	SourceFallback = "fallback"
)

// NutritionEntry holds per-100g nutrient values for a food in the static table
type NutritionEntry struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"` // grams
	Carbs    float64 `json:"carbs"`   // grams
	Fat      float64 `json:"fat"`     // grams
	Fiber    float64 `json:"fiber"`   // grams
	Sodium   float64 `json:"sodium"`  // milligrams
}

// FoodItem is a single validated food in an analysis result.
// All nutrient fields are non-negative and WeightInGrams is positive.
type FoodItem struct {
	Name          string   `json:"name" binding:"required"`
	WeightInGrams float64  `json:"weightInGrams"`
	Calories      float64  `json:"calories"`
	Protein       float64  `json:"protein"`
	Carbs         float64  `json:"carbs"`
	Fat           float64  `json:"fat"`
	Fiber         *float64 `json:"fiber,omitempty"`
	Sugar         *float64 `json:"sugar,omitempty"`
	Sodium        *float64 `json:"sodium,omitempty"` // milligrams
	Portion       string   `json:"portion"`
}

// FoodCandidate is an untrusted food reported by a vision provider or the AI model.
// Nil fields were not reported.
type FoodCandidate struct {
	Name          string   `json:"name"`
	WeightInGrams *float64 `json:"weightInGrams,omitempty"`
	Calories      *float64 `json:"calories,omitempty"`
	Protein       *float64 `json:"protein,omitempty"`
	Carbs         *float64 `json:"carbs,omitempty"`
	Fat           *float64 `json:"fat,omitempty"`
	Fiber         *float64 `json:"fiber,omitempty"`
	Sugar         *float64 `json:"sugar,omitempty"`
	Sodium        *float64 `json:"sodium,omitempty"`
	Portion       string   `json:"portion,omitempty"`
	Confidence    float64  `json:"-"`
}

// AnalysisResult is the outcome of analyzing a single meal photo
type AnalysisResult struct {
	ID            string     `json:"id"`
	MealName      string     `json:"mealName"`
	Foods         []FoodItem `json:"foods"`
	TotalCalories float64    `json:"totalCalories"`
	TotalWeight   float64    `json:"totalWeight"`
	MealType      MealType   `json:"mealType"`
	Confidence    Confidence `json:"confidence"`
	Notes         string     `json:"notes,omitempty"`
	Source        string     `json:"source"`
	AnalyzedAt    time.Time  `json:"analyzedAt"`
}

// RecomputeTotals sets the totals from the food list, ignoring any previous values
func (r *AnalysisResult) RecomputeTotals() {
	var calories, weight float64
	for _, f := range r.Foods {
		calories += f.Calories
		weight += f.WeightInGrams
	}
	r.TotalCalories = calories
	r.TotalWeight = weight
}

// Float64 returns a pointer to v
func Float64(v float64) *float64 {
	return &v
}

// Placeholder nutrients reported for a detected label before table enhancement
const (
	PlaceholderWeightGrams = 100.0
	PlaceholderCalories    = 100.0
	PlaceholderProtein     = 5.0
	PlaceholderCarbs       = 15.0
	PlaceholderFat         = 3.0
)

// PlaceholderCandidate builds a candidate for a detected label with placeholder nutrients
func PlaceholderCandidate(name string, confidence float64) FoodCandidate {
	return FoodCandidate{
		Name:          name,
		WeightInGrams: Float64(PlaceholderWeightGrams),
		Calories:      Float64(PlaceholderCalories),
		Protein:       Float64(PlaceholderProtein),
		Carbs:         Float64(PlaceholderCarbs),
		Fat:           Float64(PlaceholderFat),
		Portion:       "1 porção",
		Confidence:    confidence,
	}
}
