package vision

import (
	"context"
	"net/url"
	"strings"

	"github.com/Escudopt/rork-healthsnap-sub000/internal/domain"
)

const spoonacularEndpoint = "https://api.spoonacular.com/food/images/classify"

// SpoonacularClient classifies a dish with Spoonacular's image classifier
type SpoonacularClient struct {
	baseClient
}

type spoonacularResponse struct {
	Category    string  `json:"category"`
	Probability float64 `json:"probability"`
}

// NewSpoonacularClient creates a new Spoonacular adapter
func NewSpoonacularClient(opts Options) *SpoonacularClient {
	return &SpoonacularClient{baseClient: newBaseClient(ProviderSpoonacular, opts, spoonacularEndpoint, 0.5)}
}

// Recognize implements domain.FoodRecognizer
func (c *SpoonacularClient) Recognize(ctx context.Context, imageBase64 string) ([]domain.FoodCandidate, error) {
	form := url.Values{}
	form.Set("image", imageBase64)

	body, err := c.post(ctx, c.endpoint, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()), map[string]string{
		"x-api-key": c.apiKey,
	})
	if err != nil {
		return nil, err
	}

	var resp spoonacularResponse
	if err := c.decode(body, &resp); err != nil {
		return nil, err
	}

	// categories come back snake_cased, e.g. "fried_rice"
	name := strings.ReplaceAll(resp.Category, "_", " ")
	return c.collect([]label{{name: name, score: resp.Probability}}, nil)
}
