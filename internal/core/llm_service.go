package core

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// LLMService wraps the official genai SDK. It backs the CLI's direct mode,
// where the user's key is used without going through the bridge endpoint.
// The bridge itself uses GeminiClient so the credential stays in the query
// string exactly as the browser flow sends it.
type LLMService struct {
	client *genai.Client
	model  string
}

func NewLLMService(ctx context.Context, apiKey, model string) (*LLMService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &LLMService{
		client: client,
		model:  model,
	}, nil
}

func (s *LLMService) Close() {
	if s.client != nil {
		if err := s.client.Close(); err != nil {
			log.Printf("Error closing GenAI client: %v", err)
		}
	}
}

// AnalyzeChat submits the full analysis prompt as a single user turn and
// returns the model's raw text. Generation parameters match the bridge.
func (s *LLMService) AnalyzeChat(ctx context.Context, prompt string) (string, error) {
	model := s.client.GenerativeModel(s.model)

	temp := float32(generationTemperature)
	topK := int32(generationTopK)
	topP := float32(generationTopP)
	maxTokens := int32(generationMaxOutputTokens)

	model.GenerationConfig = genai.GenerationConfig{
		Temperature:     &temp,
		TopK:            &topK,
		TopP:            &topP,
		MaxOutputTokens: &maxTokens,
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini analysis request failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrNoResponse
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		} else {
			log.Printf("Gemini response part was not text: %T", part)
		}
	}

	if responseText.Len() == 0 {
		return "", ErrNoResponse
	}

	return responseText.String(), nil
}
