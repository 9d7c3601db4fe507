package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Escudopt/rork-healthsnap-sub000/internal/domain"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout           = 15 * time.Second
	defaultRequestsPerMinute = 60
	maxResponseBytes         = 4 << 20
	debugBodyLimit           = 2048
)

// Options configures a single provider adapter
type Options struct {
	Endpoint          string
	APIKey            string
	MinConfidence     float64
	Timeout           time.Duration
	RequestsPerMinute int
	Debug             bool
}

// baseClient holds what every HTTP adapter shares: a bounded http.Client,
// a limiter protecting the provider's paid quota, and the confidence threshold
type baseClient struct {
	name          string
	endpoint      string
	apiKey        string
	httpClient    *http.Client
	rateLimiter   *rate.Limiter
	minConfidence float64
	debug         bool
}

func newBaseClient(name string, opts Options, defaultEndpoint string, defaultThreshold float64) baseClient {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	rpm := opts.RequestsPerMinute
	if rpm <= 0 {
		rpm = defaultRequestsPerMinute
	}

	threshold := opts.MinConfidence
	if threshold <= 0 {
		threshold = defaultThreshold
	}

	endpoint := strings.TrimSpace(opts.Endpoint)
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	return baseClient{
		name:     name,
		endpoint: endpoint,
		apiKey:   opts.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		// burst of a few requests, refilled at the per-minute rate
		rateLimiter:   rate.NewLimiter(rate.Limit(float64(rpm)/60), 5),
		minConfidence: threshold,
		debug:         opts.Debug,
	}
}

// Name returns the provider name
func (c *baseClient) Name() string {
	return c.name
}

// postJSON sends body as JSON and returns the raw response body
func (c *baseClient) postJSON(ctx context.Context, reqURL string, body interface{}, headers map[string]string) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: failed to encode request: %v", domain.ErrProviderFailure, c.name, err)
	}
	return c.post(ctx, reqURL, "application/json", bytes.NewReader(payload), headers)
}

// post performs exactly one rate-limited POST and checks for a 2xx status
func (c *baseClient) post(ctx context.Context, reqURL, contentType string, body io.Reader, headers map[string]string) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrRateLimited, c.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: failed to create request: %v", domain.ErrProviderFailure, c.name, err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "HealthSnap/1.0")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrProviderFailure, c.name, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: failed to read response: %v", domain.ErrProviderFailure, c.name, err)
	}

	if c.debug {
		log.Debug().
			Str("component", "vision").
			Str("provider", c.name).
			Int("status", resp.StatusCode).
			Dur("elapsed", time.Since(start)).
			Str("body", truncate(string(respBody), debugBodyLimit)).
			Msg("provider response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s: status %d", domain.ErrProviderFailure, c.name, resp.StatusCode)
	}

	return respBody, nil
}

// decode unmarshals a provider response
func (c *baseClient) decode(body []byte, v interface{}) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %s: failed to decode response: %v", domain.ErrProviderFailure, c.name, err)
	}
	return nil
}

// label is one provider detection before filtering
type label struct {
	name   string
	score  float64
	weight float64
}

// collect filters labels by the confidence threshold and ignore set, drops
// duplicates, and turns the rest into placeholder candidates
func (c *baseClient) collect(labels []label, ignore map[string]struct{}) ([]domain.FoodCandidate, error) {
	seen := make(map[string]struct{}, len(labels))
	candidates := make([]domain.FoodCandidate, 0, len(labels))

	for _, l := range labels {
		name := strings.TrimSpace(l.name)
		if name == "" || l.score <= c.minConfidence {
			continue
		}
		key := strings.ToLower(name)
		if _, skip := ignore[key]; skip {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		candidate := domain.PlaceholderCandidate(name, l.score)
		if l.weight > 0 {
			candidate.WeightInGrams = domain.Float64(l.weight)
			candidate.Portion = fmt.Sprintf("%.0fg", l.weight)
		}
		candidates = append(candidates, candidate)
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoDetections, c.name)
	}

	log.Debug().
		Str("component", "vision").
		Str("provider", c.name).
		Int("labels", len(labels)).
		Int("accepted", len(candidates)).
		Msg("labels collected")

	return candidates, nil
}

// genericLabels are category words label detectors return for any plate of food
var genericLabels = map[string]struct{}{
	"food":            {},
	"dish":            {},
	"cuisine":         {},
	"ingredient":      {},
	"recipe":          {},
	"meal":            {},
	"produce":         {},
	"tableware":       {},
	"dishware":        {},
	"serveware":       {},
	"plate":           {},
	"bowl":            {},
	"lunch":           {},
	"dinner":          {},
	"breakfast":       {},
	"staple food":     {},
	"fast food":       {},
	"comfort food":    {},
	"finger food":     {},
	"natural foods":   {},
	"whole food":      {},
	"vegetarian food": {},
	"local food":      {},
	"garnish":         {},
	"platter":         {},
}

// truncate cuts s to at most n bytes without splitting a rune
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
