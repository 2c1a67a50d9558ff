package script

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"shortforge/internal/domain"
)

const (
	hfDefaultBaseURL = "https://api-inference.huggingface.co"
	hfDefaultModel   = "meta-llama/Meta-Llama-3-70B-Instruct"
	hfDefaultTimeout = 120 * time.Second

	hfMaxNewTokens = 400
	hfTemperature  = 0.7
)

// HFOptions controls how the Hugging Face text-generation client is configured.
type HFOptions struct {
	Token      string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// HFGenerator calls the Hugging Face Inference API for text generation.
type HFGenerator struct {
	token   string
	model   string
	baseURL string
	client  *http.Client
}

type hfParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens,omitempty"`
	Temperature    float64 `json:"temperature,omitempty"`
	ReturnFullText *bool   `json:"return_full_text,omitempty"`
}

type hfTextRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfTextCandidate struct {
	GeneratedText string `json:"generated_text"`
}

type hfErrorResponse struct {
	Error string `json:"error"`
}

// NewHFGenerator validates the options and builds a client.
func NewHFGenerator(opts HFOptions) (*HFGenerator, error) {
	if strings.TrimSpace(opts.Token) == "" {
		return nil, errors.New("script: hf token is required")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = hfDefaultBaseURL
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = hfDefaultModel
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: hfDefaultTimeout}
	}
	return &HFGenerator{
		token:   opts.Token,
		model:   model,
		baseURL: baseURL,
		client:  client,
	}, nil
}

// Model returns the configured model identifier.
func (g *HFGenerator) Model() string {
	return g.model
}

// Generate calls the inference endpoint with the rendered prompt and decodes
// the generated text. All upstream failure shapes are collapsed into an error
// wrapping domain.ErrProviderFailure at this boundary.
func (g *HFGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	noEcho := false
	payload := hfTextRequest{
		Inputs: req.Prompt,
		Parameters: hfParameters{
			MaxNewTokens:   hfMaxNewTokens,
			Temperature:    hfTemperature,
			ReturnFullText: &noEcho,
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return nil, fmt.Errorf("script: encode request: %w", err)
	}
	endpoint := g.baseURL + "/models/" + url.PathEscape(g.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("script: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.token)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("script: %w: %v", domain.ErrProviderFailure, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("script: read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("script: %w: %s", domain.ErrProviderFailure, upstreamMessage(body, resp.StatusCode))
	}
	text := extractText(body)
	if text == "" {
		return nil, fmt.Errorf("script: %w: empty generation", domain.ErrProviderFailure)
	}
	return &Result{Text: text, Model: g.model}, nil
}

// extractText accepts the response shapes the inference API is known to
// produce: a candidate list, a single candidate object, or a bare string.
func extractText(body []byte) string {
	var list []hfTextCandidate
	if err := json.Unmarshal(body, &list); err == nil && len(list) > 0 {
		return strings.TrimSpace(list[0].GeneratedText)
	}
	var single hfTextCandidate
	if err := json.Unmarshal(body, &single); err == nil && single.GeneratedText != "" {
		return strings.TrimSpace(single.GeneratedText)
	}
	var raw string
	if err := json.Unmarshal(body, &raw); err == nil {
		return strings.TrimSpace(raw)
	}
	return ""
}

func upstreamMessage(body []byte, status int) string {
	var parsed hfErrorResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != "" {
		return parsed.Error
	}
	return fmt.Sprintf("unexpected status %d", status)
}

var _ Generator = (*HFGenerator)(nil)
