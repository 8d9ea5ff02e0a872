package services

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/genai"
)

// imageModels is the slice of the genai client the image service needs;
// narrowed so tests can substitute canned responses.
type imageModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// ImagenService generates images through the newer google.golang.org/genai
// SDK, which supports image response modalities the text client's SDK lacks.
type ImagenService struct {
	models imageModels
	model  string
}

func NewImagenService(apiKey, modelName string) (*ImagenService, error) {
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &ImagenService{
		models: client.Models,
		model:  modelName,
	}, nil
}

// GenerateImage asks the model for an image and returns either a data URI
// with the inline bytes or the hosted file URI, preferring inline data.
// A response with neither is a GenerationError.
func (s *ImagenService) GenerateImage(ctx context.Context, prompt string) (string, error) {
	resp, err := s.models.GenerateContent(ctx, s.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	})
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	if url := extractImageURL(resp); url != "" {
		return url, nil
	}

	return "", &GenerationError{Message: "Failed to generate image"}
}

func extractImageURL(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part == nil {
				continue
			}
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return "data:image/png;base64," + base64.StdEncoding.EncodeToString(part.InlineData.Data)
			}
			if part.FileData != nil && part.FileData.FileURI != "" {
				return part.FileData.FileURI
			}
		}
	}
	return ""
}
