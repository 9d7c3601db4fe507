package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/Escudopt/rork-healthsnap-sub000/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	serviceName    = "healthsnap-backend"
	serviceVersion = "1.0.0"
)

// FoodAnalyzer runs the recognition cascade
type FoodAnalyzer interface {
	RecognizeFoodWithAttempts(ctx context.Context, imageBase64 string) (*domain.AnalysisResult, []domain.Attempt, error)
	Providers() []domain.ProviderSlot
}

// SuggestionProvider produces nutrition suggestions for a meal
type SuggestionProvider interface {
	GetNutritionSuggestions(ctx context.Context, foods []domain.FoodItem) []string
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	analyzer    FoodAnalyzer
	suggestions SuggestionProvider
}

// NewHandler creates a new HTTP handler. Either service may be nil, in which
// case its endpoint answers 501.
func NewHandler(analyzer FoodAnalyzer, suggestions SuggestionProvider) *Handler {
	return &Handler{
		analyzer:    analyzer,
		suggestions: suggestions,
	}
}

// RecognizeRequest is the body of POST /api/v1/food/recognize
type RecognizeRequest struct {
	Image string `json:"image" binding:"required"`
}

// RecognizeResponse is an analysis result, with the cascade attempts in debug mode
type RecognizeResponse struct {
	*domain.AnalysisResult
	Attempts []domain.Attempt `json:"attempts,omitempty"`
}

// SuggestionsRequest is the body of POST /api/v1/food/suggestions
type SuggestionsRequest struct {
	Foods []domain.FoodItem `json:"foods" binding:"required,dive"`
}

// HealthCheck returns the health status of the API and the state of each provider
func (h *Handler) HealthCheck(c *gin.Context) {
	providers := gin.H{}
	if h.analyzer != nil {
		for _, slot := range h.analyzer.Providers() {
			providers[slot.Name] = slot.State
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   serviceName,
		"version":   serviceVersion,
		"providers": providers,
	})
}

// RecognizeFood analyzes a meal photo
func (h *Handler) RecognizeFood(c *gin.Context) {
	if h.analyzer == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "food recognition is not available"})
		return
	}

	var req RecognizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if isBodyTooLarge(err) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be JSON with a non-empty \"image\" field"})
		return
	}

	result, attempts, err := h.analyzer.RecognizeFoodWithAttempts(c.Request.Context(), req.Image)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidImage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Error().Str("component", "http").Str("request_id", c.GetString(requestIDKey)).Err(err).Msg("recognition failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	resp := RecognizeResponse{AnalysisResult: result}
	if debug, _ := strconv.ParseBool(c.Query("debug")); debug {
		resp.Attempts = attempts
	}
	c.JSON(http.StatusOK, resp)
}

// NutritionSuggestions returns short suggestions for a list of foods
func (h *Handler) NutritionSuggestions(c *gin.Context) {
	if h.suggestions == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "suggestions are not available"})
		return
	}

	var req SuggestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if isBodyTooLarge(err) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be JSON with a \"foods\" array of named items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"suggestions": h.suggestions.GetNutritionSuggestions(c.Request.Context(), req.Foods),
	})
}

// isBodyTooLarge reports whether a bind error came from BodyLimitMiddleware's reader
func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
