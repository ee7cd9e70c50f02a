package core

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Fixed generation parameters. These are not caller-configurable.
const (
	generationTemperature     = 0.7
	generationTopK            = 40
	generationTopP            = 0.95
	generationMaxOutputTokens = 8192
)

// ErrNoResponse is returned when the upstream call succeeded but yielded no
// extractable text (missing candidate or part).
var ErrNoResponse = errors.New("No response generated from Gemini API")

// GeminiClient is a thin REST client for the generative-language
// generateContent endpoint. The caller-supplied credential travels as a URL
// query parameter; that matches the upstream API's key-based access and is
// kept as-is rather than moved into a header.
type GeminiClient struct {
	httpClient *http.Client
	baseURL    string
	model      string
}

func NewGeminiClient(baseURL, model string) *GeminiClient {
	return &GeminiClient{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		model:      model,
	}
}

type generateContentRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type geminiErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateContent makes exactly one upstream call: the prompt is submitted as
// the sole content part and the generated text of the first candidate's first
// part is returned. No retry is attempted.
func (c *GeminiClient) GenerateContent(ctx context.Context, apiKey, prompt string) (string, error) {
	reqBody := generateContentRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: generationConfig{
			Temperature:     generationTemperature,
			TopK:            generationTopK,
			TopP:            generationTopP,
			MaxOutputTokens: generationMaxOutputTokens,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to encode Gemini request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL, c.model, url.QueryEscape(apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to build Gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("Gemini API request failed: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read Gemini response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Best effort: pull the upstream error message out of the JSON body,
		// tolerating a malformed or absent body.
		var errBody geminiErrorBody
		_ = json.Unmarshal(respBytes, &errBody)

		msg := fmt.Sprintf("Gemini API error: %d %s.", resp.StatusCode, http.StatusText(resp.StatusCode))
		if errBody.Error.Message != "" {
			msg += " " + errBody.Error.Message
		}
		return "", errors.New(msg)
	}

	var result generateContentResponse
	if err := json.Unmarshal(respBytes, &result); err != nil {
		return "", fmt.Errorf("failed to decode Gemini response: %w", err)
	}

	if len(result.Candidates) == 0 ||
		len(result.Candidates[0].Content.Parts) == 0 ||
		result.Candidates[0].Content.Parts[0].Text == "" {
		return "", ErrNoResponse
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}
