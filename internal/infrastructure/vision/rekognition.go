package vision

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/Escudopt/rork-healthsnap-sub000/internal/domain"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

const rekognitionMaxLabels = 25

// labelDetector is the subset of the Rekognition client the adapter uses
type labelDetector interface {
	DetectLabels(ctx context.Context, params *rekognition.DetectLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error)
}

// RekognitionClient detects food labels with AWS Rekognition
type RekognitionClient struct {
	baseClient
	detector labelDetector
}

// NewRekognitionClient creates an adapter using the default AWS credential chain
func NewRekognitionClient(ctx context.Context, region string, opts Options) (*RekognitionClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}
	return newRekognitionClient(rekognition.NewFromConfig(cfg), opts), nil
}

func newRekognitionClient(detector labelDetector, opts Options) *RekognitionClient {
	return &RekognitionClient{
		baseClient: newBaseClient(ProviderRekognition, opts, "", 0.7),
		detector:   detector,
	}
}

// Recognize implements domain.FoodRecognizer
func (c *RekognitionClient) Recognize(ctx context.Context, imageBase64 string) ([]domain.FoodCandidate, error) {
	data, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: image is not valid base64: %v", domain.ErrProviderFailure, c.name, err)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrRateLimited, c.name, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.httpClient.Timeout)
	defer cancel()

	out, err := c.detector.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: data},
		MaxLabels:     aws.Int32(rekognitionMaxLabels),
		MinConfidence: aws.Float32(float32(c.minConfidence * 100)),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrProviderFailure, c.name, err)
	}

	labels := make([]label, 0, len(out.Labels))
	for _, l := range out.Labels {
		labels = append(labels, label{
			name:  aws.ToString(l.Name),
			score: float64(aws.ToFloat32(l.Confidence)) / 100,
		})
	}
	return c.collect(labels, genericLabels)
}
