package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ThanathipChokanantang/Airline-calculate/internal/config"
)

const jsonMIMEType = "application/json"

// Client is the narrow text-in/text-out oracle surface the services consume.
// The backing model is non-deterministic; identical prompts may produce
// different answers on re-issue.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

type apiClient struct {
	httpClient *resty.Client
	model      string
}

// NewClient builds a Gemini API client using the provided configuration values.
func NewClient(cfg config.GeminiConfig) Client {
	base := strings.TrimSuffix(cfg.BaseURL, "/")

	restyClient := resty.New().
		SetBaseURL(base).
		SetHeader("x-goog-api-key", cfg.APIKey).
		SetHeader("Content-Type", jsonMIMEType).
		SetTimeout(60 * time.Second)

	return &apiClient{
		httpClient: restyClient,
		model:      cfg.Model,
	}
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// apiError mirrors the Gemini API error payload.
type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Generate sends the prompt and returns the model's plain-text reply.
func (c *apiClient) Generate(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, prompt, "")
}

// GenerateJSON sends the prompt with the JSON response mode enabled. The
// returned text is still unvalidated; callers own structural checks.
func (c *apiClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, prompt, jsonMIMEType)
}

func (c *apiClient) generate(ctx context.Context, prompt, mimeType string) (string, error) {
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	if mimeType != "" {
		reqBody.GenerationConfig = &generationConfig{ResponseMIMEType: mimeType}
	}

	var respBody generateResponse
	var errBody apiError

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&respBody).
		SetError(&errBody).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", c.model))

	if err != nil {
		return "", fmt.Errorf("gemini api call: %w", err)
	}
	if resp.IsError() {
		if errBody.Error.Message != "" {
			return "", fmt.Errorf("gemini api error %s: %s", errBody.Error.Status, errBody.Error.Message)
		}
		return "", fmt.Errorf("gemini api error: %s", resp.String())
	}
	if len(respBody.Candidates) == 0 || len(respBody.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from model")
	}

	var sb strings.Builder
	for _, p := range respBody.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}

	return stripFences(sb.String()), nil
}

// stripFences removes markdown code fences the model occasionally wraps
// around JSON replies even in JSON response mode.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}
