package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wanderplan/backend/internal/domain"
)

const (
	defaultGenerationModel = "gemini-1.5-flash"
	generationBaseURL      = "https://generativelanguage.googleapis.com/v1beta"
)

// GenerationClient invokes an external text-generation endpoint. The returned
// text is raw; downstream parsing owns all tolerance for prose and fences.
type GenerationClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiClient calls the Gemini REST generateContent endpoint.
type GeminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewGeminiClient creates a new generation client. An empty model selects the
// default.
func NewGeminiClient(apiKey, model string) *GeminiClient {
	if model == "" {
		model = defaultGenerationModel
	}
	return &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: generationBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate returns the completion text for the prompt.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("generation: failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("generation: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &domain.ProviderError{Op: "generation", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &domain.ProviderError{Op: "generation", StatusCode: resp.StatusCode}
	}

	var decoded geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("generation: failed to decode response: %w", err)
	}

	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", &domain.ProviderError{Op: "generation", Err: errors.New("empty completion")}
	}

	var parts []string
	for _, p := range decoded.Candidates[0].Content.Parts {
		parts = append(parts, p.Text)
	}
	return strings.Join(parts, ""), nil
}
