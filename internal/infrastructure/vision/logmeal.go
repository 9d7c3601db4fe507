package vision

import (
	"context"

	"github.com/Escudopt/rork-healthsnap-sub000/internal/domain"
)

const logMealEndpoint = "https://api.logmeal.com/v2/image/segmentation/complete"

// LogMealClient recognizes dishes with the LogMeal segmentation API
type LogMealClient struct {
	baseClient
}

type logMealResponse struct {
	SegmentationResults []struct {
		RecognitionResults []struct {
			Name string  `json:"name"`
			Prob float64 `json:"prob"`
		} `json:"recognition_results"`
		ServingSize float64 `json:"serving_size"`
	} `json:"segmentation_results"`
}

// NewLogMealClient creates a new LogMeal adapter
func NewLogMealClient(opts Options) *LogMealClient {
	return &LogMealClient{baseClient: newBaseClient(ProviderLogMeal, opts, logMealEndpoint, 0.5)}
}

// Recognize implements domain.FoodRecognizer
func (c *LogMealClient) Recognize(ctx context.Context, imageBase64 string) ([]domain.FoodCandidate, error) {
	body, err := c.postJSON(ctx, c.endpoint, map[string]string{"image": imageBase64}, map[string]string{
		"Authorization": "Bearer " + c.apiKey,
	})
	if err != nil {
		return nil, err
	}

	var resp logMealResponse
	if err := c.decode(body, &resp); err != nil {
		return nil, err
	}

	var labels []label
	for _, segment := range resp.SegmentationResults {
		for _, r := range segment.RecognitionResults {
			labels = append(labels, label{name: r.Name, score: r.Prob, weight: segment.ServingSize})
		}
	}
	return c.collect(labels, nil)
}
