package generation

import (
	"context"
	"fmt"
	"time"

	"coursify/config"

	"github.com/go-resty/resty/v2"
)

// TextClient is the external generative model call. Implementations return the
// raw response envelope; ExtractText handles the shapes.
type TextClient interface {
	GenerateText(ctx context.Context, prompt string) ([]byte, error)
}

// GeminiClient calls the Gemini generateContent REST API.
type GeminiClient struct {
	client *resty.Client
	model  string
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
	Config   *geminiGenCfg   `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenCfg struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"topP"`
}

// NewGeminiClient builds a client from AppConfig. Transport failures are
// retried with backoff here, before they surface to the coordinator; 429 and
// 5xx responses count as retryable.
func NewGeminiClient() *GeminiClient {
	cfg := config.AppConfig

	client := resty.New().
		SetBaseURL(cfg.GeminiApiUrl).
		SetTimeout(time.Duration(cfg.GeminiTimeoutSec)*time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-goog-api-key", cfg.GeminiApiKey).
		SetRetryCount(cfg.GeminiMaxRetries).
		SetRetryWaitTime(2 * time.Second).
		SetRetryMaxWaitTime(20 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() == 429 || r.StatusCode() >= 500
		})

	return &GeminiClient{client: client, model: cfg.GeminiModel}
}

// GenerateText sends one prompt and returns the raw response body.
func (g *GeminiClient) GenerateText(ctx context.Context, prompt string) ([]byte, error) {
	body := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		Config:   &geminiGenCfg{Temperature: 0.7, TopP: 0.95},
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(fmt.Sprintf("/models/%s:generateContent", g.model))
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	if resp.StatusCode() != 200 {
		return nil, &TransportError{
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("gemini API returned %s", resp.Status()),
		}
	}

	return resp.Body(), nil
}
