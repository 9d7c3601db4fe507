package vision

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Escudopt/rork-healthsnap-sub000/internal/domain"
	"github.com/rs/zerolog/log"
)

// Provider names, in default cascade order
const (
	ProviderLogMeal      = "logmeal"
	ProviderClarifai     = "clarifai"
	ProviderGoogleVision = "google_vision"
	ProviderSpoonacular  = "spoonacular"
	ProviderRoboflow     = "roboflow"
	ProviderRekognition  = "rekognition"

	// LocalAIMarker names the generative fallback. It may appear in a
	// configured order but is never a cascade slot.
	LocalAIMarker = "ai"
)

// DefaultOrder is the cascade priority used when none is configured
var DefaultOrder = []string{
	ProviderLogMeal,
	ProviderClarifai,
	ProviderGoogleVision,
	ProviderSpoonacular,
	ProviderRoboflow,
	ProviderRekognition,
}

// KnownProvider reports whether name is a provider or the AI marker
func KnownProvider(name string) bool {
	if name == LocalAIMarker {
		return true
	}
	for _, p := range DefaultOrder {
		if p == name {
			return true
		}
	}
	return false
}

// Settings is the per-provider configuration resolved at startup
type Settings struct {
	Enabled       bool
	APIKey        string
	Endpoint      string
	Region        string
	MinConfidence float64
}

// BuildOptions applies to every adapter
type BuildOptions struct {
	Timeout           time.Duration
	RequestsPerMinute int
	Debug             bool
}

var placeholderKeys = map[string]struct{}{
	"demo-key":     {},
	"your-api-key": {},
	"changeme":     {},
}

// IsPlaceholderKey reports whether key is empty or a sample value left in a config file
func IsPlaceholderKey(key string) bool {
	k := strings.ToLower(strings.TrimSpace(key))
	if k == "" {
		return true
	}
	if _, ok := placeholderKeys[k]; ok {
		return true
	}
	return strings.HasPrefix(k, "demo") || strings.HasPrefix(k, "your")
}

// ResolveState decides whether a provider can be called
func ResolveState(name string, s Settings) domain.ProviderState {
	if !s.Enabled {
		return domain.ProviderDisabled
	}

	switch name {
	case ProviderRekognition:
		// credentials come from the AWS chain, only the region is required
		if strings.TrimSpace(s.Region) == "" {
			return domain.ProviderUnconfigured
		}
		return domain.ProviderActive
	case ProviderRoboflow:
		if strings.TrimSpace(s.Endpoint) == "" {
			return domain.ProviderUnconfigured
		}
	}

	if IsPlaceholderKey(s.APIKey) {
		return domain.ProviderUnconfigured
	}
	return domain.ProviderActive
}

// Build resolves the ordered provider slots. Unknown names and the AI marker are dropped.
func Build(ctx context.Context, order []string, settings map[string]Settings, opts BuildOptions) []domain.ProviderSlot {
	if len(order) == 0 {
		order = DefaultOrder
	}

	slots := make([]domain.ProviderSlot, 0, len(order))
	seen := make(map[string]struct{}, len(order))

	for _, raw := range order {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == LocalAIMarker {
			continue
		}
		if !KnownProvider(name) {
			log.Warn().Str("component", "vision").Str("provider", name).Msg("unknown provider in order, ignoring")
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		s := settings[name]
		slot := domain.ProviderSlot{Name: name, State: ResolveState(name, s)}

		if slot.State == domain.ProviderActive {
			recognizer, err := newRecognizer(ctx, name, s, opts)
			if err != nil {
				log.Warn().Str("component", "vision").Str("provider", name).Err(err).Msg("provider could not be created")
				slot.State = domain.ProviderUnconfigured
			} else {
				slot.Recognizer = recognizer
			}
		}

		log.Info().Str("component", "vision").Str("provider", name).Str("state", string(slot.State)).Msg("provider resolved")
		slots = append(slots, slot)
	}

	return slots
}

func newRecognizer(ctx context.Context, name string, s Settings, opts BuildOptions) (domain.FoodRecognizer, error) {
	o := Options{
		Endpoint:          s.Endpoint,
		APIKey:            s.APIKey,
		MinConfidence:     s.MinConfidence,
		Timeout:           opts.Timeout,
		RequestsPerMinute: opts.RequestsPerMinute,
		Debug:             opts.Debug,
	}

	switch name {
	case ProviderLogMeal:
		return NewLogMealClient(o), nil
	case ProviderClarifai:
		return NewClarifaiClient(o), nil
	case ProviderGoogleVision:
		return NewGoogleVisionClient(o), nil
	case ProviderSpoonacular:
		return NewSpoonacularClient(o), nil
	case ProviderRoboflow:
		return NewRoboflowClient(o), nil
	case ProviderRekognition:
		return NewRekognitionClient(ctx, s.Region, o)
	}
	return nil, fmt.Errorf("unknown provider %q", name)
}
