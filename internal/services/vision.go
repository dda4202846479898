package services

import (
	"bytes"
	"context"
	"fmt"

	vision "cloud.google.com/go/vision/apiv1"

	"vocabox-backend/internal/models"
)

// VisionService turns a photo into text so a learner can capture words
// straight from a page or a sign.
type VisionService struct {
	client *vision.ImageAnnotatorClient
}

func NewVisionService(ctx context.Context) (*VisionService, error) {
	client, err := vision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vision client: %w", err)
	}
	return &VisionService{client: client}, nil
}

func (s *VisionService) Close() {
	s.client.Close()
}

func (s *VisionService) ExtractText(ctx context.Context, imageData []byte) (*models.ExtractedText, error) {
	img, err := vision.NewImageFromReader(bytes.NewReader(imageData))
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"image_base64": "unreadable image data"}}
	}

	annotations, err := s.client.DetectTexts(ctx, img, nil, 32)
	if err != nil {
		return nil, &UpstreamError{Message: fmt.Sprintf("Vision API error: %v", err)}
	}

	result := &models.ExtractedText{Words: []string{}}
	if len(annotations) == 0 {
		return result, nil
	}

	// First annotation is the full detected block; the rest are single words.
	result.Text = annotations[0].Description
	for _, ann := range annotations[1:] {
		result.Words = append(result.Words, ann.Description)
	}
	return result, nil
}
