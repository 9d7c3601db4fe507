package vision

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/Escudopt/rork-healthsnap-sub000/internal/domain"
)

// RoboflowClient runs a hosted Roboflow detection model.
// There is no default endpoint since every model has its own URL.
type RoboflowClient struct {
	baseClient
}

type roboflowResponse struct {
	Predictions []struct {
		Class      string  `json:"class"`
		Confidence float64 `json:"confidence"`
	} `json:"predictions"`
}

// NewRoboflowClient creates a new Roboflow adapter
func NewRoboflowClient(opts Options) *RoboflowClient {
	return &RoboflowClient{baseClient: newBaseClient(ProviderRoboflow, opts, "", 0.5)}
}

// Recognize implements domain.FoodRecognizer
func (c *RoboflowClient) Recognize(ctx context.Context, imageBase64 string) ([]domain.FoodCandidate, error) {
	reqURL, err := url.Parse(c.endpoint)
	if err != nil || c.endpoint == "" {
		return nil, fmt.Errorf("%w: %s: invalid endpoint %q", domain.ErrProviderFailure, c.name, c.endpoint)
	}
	params := reqURL.Query()
	params.Set("api_key", c.apiKey)
	reqURL.RawQuery = params.Encode()

	body, err := c.post(ctx, reqURL.String(), "application/x-www-form-urlencoded", strings.NewReader(imageBase64), nil)
	if err != nil {
		return nil, err
	}

	var resp roboflowResponse
	if err := c.decode(body, &resp); err != nil {
		return nil, err
	}

	labels := make([]label, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		labels = append(labels, label{name: strings.ReplaceAll(p.Class, "_", " "), score: p.Confidence})
	}
	return c.collect(labels, nil)
}
