package briefing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrUpstreamUnavailable marks failures of the external text-generation
// service. They are non-fatal to the rest of the system.
var ErrUpstreamUnavailable = errors.New("briefing upstream unavailable")

// Provider turns a prompt into prose.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiProvider calls the Gemini generateContent REST endpoint.
type GeminiProvider struct {
	Model      string
	APIKey     string
	baseURL    string       // test override; empty means the real endpoint
	httpClient *http.Client // test override; nil means http.DefaultClient
}

func NewGeminiProvider(model, apiKey string) *GeminiProvider {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiProvider{Model: model, APIKey: apiKey}
}

// NewGeminiProviderWithClient creates a provider with a custom HTTP
// client and base URL, for tests.
func NewGeminiProviderWithClient(model, apiKey, baseURL string, client *http.Client) *GeminiProvider {
	p := NewGeminiProvider(model, apiKey)
	p.baseURL = baseURL
	p.httpClient = client
	return p
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
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (p *GeminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	if p.APIKey == "" {
		return "", fmt.Errorf("%w: Gemini API key not configured (set GEMINI_API_KEY)", ErrUpstreamUnavailable)
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := p.baseURL
	if url == "" {
		url = fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s", p.Model, p.APIKey)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	client := p.httpClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: Gemini API returned %s", ErrUpstreamUnavailable, resp.Status)
	}

	var gResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gResp); err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}
	if len(gResp.Candidates) == 0 || len(gResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: Gemini API returned no candidates", ErrUpstreamUnavailable)
	}
	return gResp.Candidates[0].Content.Parts[0].Text, nil
}
