package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations.
// Values are stored JSON-encoded; Get returns the encoded bytes.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// FoodRecognizer is a single vision provider adapter
type FoodRecognizer interface {
	Name() string
	Recognize(ctx context.Context, imageBase64 string) ([]FoodCandidate, error)
}

// NutritionTable is a read-only per-100g nutrition lookup table
type NutritionTable interface {
	// Lookup returns the entry stored under an already-normalized key
	Lookup(key string) (NutritionEntry, bool)
	// Keys returns all keys in their fixed declaration order
	Keys() []string
}

// ChatMessage is a single turn sent to the generative AI endpoint
type ChatMessage struct {
	Role  string
	Parts []ContentPart
}

// ContentPart is either text or an inline image (data URL)
type ContentPart struct {
	Text  string
	Image string
}

// TextGenerator sends a conversation to the generative AI endpoint and returns its completion
type TextGenerator interface {
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
}
