package domain

import "errors"

var (
	// ErrInvalidImage is returned when the image payload is empty or not base64
	ErrInvalidImage = errors.New("invalid image")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrProviderFailure is returned when a vision provider request fails
	ErrProviderFailure = errors.New("vision provider request failed")

	// ErrNoDetections is returned when a provider finds no food above its confidence threshold
	ErrNoDetections = errors.New("no qualifying food detections")

	// ErrProviderSkipped marks a provider that was not attempted because it is disabled or unconfigured
	ErrProviderSkipped = errors.New("provider skipped")

	// ErrAIUnavailable is returned when the generative AI endpoint cannot be reached or is not configured
	ErrAIUnavailable = errors.New("AI endpoint unavailable")

	// ErrAIResponseInvalid is returned when the AI answer does not match the requested schema
	ErrAIResponseInvalid = errors.New("AI response does not match schema")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
