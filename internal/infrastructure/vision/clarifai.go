package vision

import (
	"context"

	"github.com/Escudopt/rork-healthsnap-sub000/internal/domain"
)

const clarifaiEndpoint = "https://api.clarifai.com/v2/models/food-item-recognition/outputs"

// ClarifaiClient recognizes foods with Clarifai's food model
type ClarifaiClient struct {
	baseClient
}

type clarifaiRequest struct {
	Inputs []clarifaiInput `json:"inputs"`
}

type clarifaiInput struct {
	Data struct {
		Image struct {
			Base64 string `json:"base64"`
		} `json:"image"`
	} `json:"data"`
}

type clarifaiResponse struct {
	Outputs []struct {
		Data struct {
			Concepts []struct {
				Name  string  `json:"name"`
				Value float64 `json:"value"`
			} `json:"concepts"`
		} `json:"data"`
	} `json:"outputs"`
}

// NewClarifaiClient creates a new Clarifai adapter
func NewClarifaiClient(opts Options) *ClarifaiClient {
	return &ClarifaiClient{baseClient: newBaseClient(ProviderClarifai, opts, clarifaiEndpoint, 0.5)}
}

// Recognize implements domain.FoodRecognizer
func (c *ClarifaiClient) Recognize(ctx context.Context, imageBase64 string) ([]domain.FoodCandidate, error) {
	var input clarifaiInput
	input.Data.Image.Base64 = imageBase64

	body, err := c.postJSON(ctx, c.endpoint, clarifaiRequest{Inputs: []clarifaiInput{input}}, map[string]string{
		"Authorization": "Key " + c.apiKey,
	})
	if err != nil {
		return nil, err
	}

	var resp clarifaiResponse
	if err := c.decode(body, &resp); err != nil {
		return nil, err
	}

	var labels []label
	if len(resp.Outputs) > 0 {
		for _, concept := range resp.Outputs[0].Data.Concepts {
			labels = append(labels, label{name: concept.Name, score: concept.Value})
		}
	}
	return c.collect(labels, nil)
}
