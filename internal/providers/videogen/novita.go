package videogen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shortforge/internal/domain"
)

const (
	novitaDefaultBaseURL = "https://router.huggingface.co/novita/v3/hf"
	novitaDefaultModel   = "Wan-AI/Wan2.2-TI2V-5B"
	novitaDefaultTimeout = 10 * time.Minute

	mimeMP4 = "video/mp4"
)

// NovitaOptions controls how the Novita text-to-video client is configured.
type NovitaOptions struct {
	Token      string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// NovitaGenerator calls the Novita provider through the Hugging Face router
// to render text-to-video output.
type NovitaGenerator struct {
	token   string
	model   string
	baseURL string
	client  *http.Client
}

type novitaRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model"`
}

type novitaErrorResponse struct {
	Error string `json:"error"`
}

// NewNovitaGenerator validates the options and builds a client.
func NewNovitaGenerator(opts NovitaOptions) (*NovitaGenerator, error) {
	if strings.TrimSpace(opts.Token) == "" {
		return nil, errors.New("videogen: hf token is required")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = novitaDefaultBaseURL
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = novitaDefaultModel
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: novitaDefaultTimeout}
	}
	return &NovitaGenerator{
		token:   opts.Token,
		model:   model,
		baseURL: baseURL,
		client:  client,
	}, nil
}

// Model returns the configured model identifier.
func (g *NovitaGenerator) Model() string {
	return g.model
}

// Generate posts the instruction and returns the raw media bytes. The
// upstream answers either binary video or a JSON error body; both are
// decided here so callers never inspect transport shapes.
func (g *NovitaGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	payload := novitaRequest{Prompt: req.Instruction, Model: g.model}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return nil, fmt.Errorf("videogen: encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/text-to-video", &buf)
	if err != nil {
		return nil, fmt.Errorf("videogen: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", mimeMP4)
	httpReq.Header.Set("Authorization", "Bearer "+g.token)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("videogen: %w: %v", domain.ErrProviderFailure, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("videogen: read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("videogen: %w: %s", domain.ErrProviderFailure, upstreamMessage(body, resp.StatusCode))
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("videogen: %w: empty media", domain.ErrProviderFailure)
	}
	mime := resp.Header.Get("Content-Type")
	if mime == "" || strings.HasPrefix(mime, "application/json") {
		mime = mimeMP4
	}
	return &Result{Data: body, MIME: mime}, nil
}

func upstreamMessage(body []byte, status int) string {
	var parsed novitaErrorResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != "" {
		return parsed.Error
	}
	return fmt.Sprintf("unexpected status %d", status)
}

var _ Generator = (*NovitaGenerator)(nil)
