package services

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/genai"
)

type stubImageModels struct {
	resp *genai.GenerateContentResponse
	err  error

	gotModel  string
	gotConfig *genai.GenerateContentConfig
}

func (s *stubImageModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	s.gotModel = model
	s.gotConfig = config
	return s.resp, s.err
}

func imageResponse(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Role:  genai.RoleModel,
					Parts: parts,
				},
			},
		},
	}
}

func TestGenerateImage_InlineDataPreferred(t *testing.T) {
	stub := &stubImageModels{
		resp: imageResponse(
			&genai.Part{Text: "Here is your image"},
			&genai.Part{
				InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte{0, 0, 0}},
				FileData:   &genai.FileData{FileURI: "https://files.example/img.png"},
			},
		),
	}
	svc := &ImagenService{models: stub, model: "test-image-model"}

	url, err := svc.GenerateImage(context.Background(), "a red cat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "data:image/png;base64,AAAA" {
		t.Errorf("expected inline data URI %q, got %q", "data:image/png;base64,AAAA", url)
	}

	if stub.gotModel != "test-image-model" {
		t.Errorf("expected model %q, got %q", "test-image-model", stub.gotModel)
	}
	if stub.gotConfig == nil || len(stub.gotConfig.ResponseModalities) != 2 {
		t.Fatalf("expected TEXT and IMAGE response modalities, got %+v", stub.gotConfig)
	}
}

func TestGenerateImage_FileURIFallback(t *testing.T) {
	stub := &stubImageModels{
		resp: imageResponse(
			&genai.Part{FileData: &genai.FileData{FileURI: "https://files.example/img.png"}},
		),
	}
	svc := &ImagenService{models: stub, model: "test-image-model"}

	url, err := svc.GenerateImage(context.Background(), "a red cat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://files.example/img.png" {
		t.Errorf("expected hosted file URI, got %q", url)
	}
}

func TestGenerateImage_NoImagePart(t *testing.T) {
	stub := &stubImageModels{
		resp: imageResponse(&genai.Part{Text: "I cannot draw that"}),
	}
	svc := &ImagenService{models: stub, model: "test-image-model"}

	_, err := svc.GenerateImage(context.Background(), "a red cat")

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
}

func TestGenerateImage_APIError(t *testing.T) {
	stub := &stubImageModels{err: errors.New("quota exceeded")}
	svc := &ImagenService{models: stub, model: "test-image-model"}

	_, err := svc.GenerateImage(context.Background(), "a red cat")
	if err == nil {
		t.Fatal("expected error")
	}
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		t.Fatal("API failures should not be reported as GenerationError")
	}
}

func TestExtractImageURL_EmptyResponses(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
	}{
		{"nil response", nil},
		{"no candidates", &genai.GenerateContentResponse{}},
		{"nil content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}},
		{"empty inline data", imageResponse(&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png"}})},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if url := extractImageURL(tc.resp); url != "" {
				t.Errorf("expected empty URL, got %q", url)
			}
		})
	}
}
