package vision

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Escudopt/rork-healthsnap-sub000/internal/domain"
)

const googleVisionEndpoint = "https://vision.googleapis.com/v1/images:annotate"

// GoogleVisionClient recognizes foods with Cloud Vision label detection
type GoogleVisionClient struct {
	baseClient
}

type googleVisionRequest struct {
	Requests []googleVisionImageRequest `json:"requests"`
}

type googleVisionImageRequest struct {
	Image struct {
		Content string `json:"content"`
	} `json:"image"`
	Features []googleVisionFeature `json:"features"`
}

type googleVisionFeature struct {
	Type       string `json:"type"`
	MaxResults int    `json:"maxResults"`
}

type googleVisionResponse struct {
	Responses []struct {
		LabelAnnotations []struct {
			Description string  `json:"description"`
			Score       float64 `json:"score"`
		} `json:"labelAnnotations"`
	} `json:"responses"`
}

// NewGoogleVisionClient creates a new Google Vision adapter
func NewGoogleVisionClient(opts Options) *GoogleVisionClient {
	return &GoogleVisionClient{baseClient: newBaseClient(ProviderGoogleVision, opts, googleVisionEndpoint, 0.7)}
}

// Recognize implements domain.FoodRecognizer
func (c *GoogleVisionClient) Recognize(ctx context.Context, imageBase64 string) ([]domain.FoodCandidate, error) {
	reqURL, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: invalid endpoint: %v", domain.ErrProviderFailure, c.name, err)
	}
	params := reqURL.Query()
	params.Set("key", c.apiKey)
	reqURL.RawQuery = params.Encode()

	var imageReq googleVisionImageRequest
	imageReq.Image.Content = imageBase64
	imageReq.Features = []googleVisionFeature{{Type: "LABEL_DETECTION", MaxResults: 20}}

	body, err := c.postJSON(ctx, reqURL.String(), googleVisionRequest{Requests: []googleVisionImageRequest{imageReq}}, nil)
	if err != nil {
		return nil, err
	}

	var resp googleVisionResponse
	if err := c.decode(body, &resp); err != nil {
		return nil, err
	}

	var labels []label
	if len(resp.Responses) > 0 {
		for _, a := range resp.Responses[0].LabelAnnotations {
			labels = append(labels, label{name: a.Description, score: a.Score})
		}
	}
	return c.collect(labels, genericLabels)
}
