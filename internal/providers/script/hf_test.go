package script

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shortforge/internal/domain"
)

func TestHFGeneratorDecodesCandidateList(t *testing.T) {
	var gotAuth string
	var gotBody hfTextRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode([]hfTextCandidate{{GeneratedText: "  HOOK: stay tuned.  "}})
	}))
	defer server.Close()

	gen, err := NewHFGenerator(HFOptions{Token: "hf_test", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewHFGenerator returned error: %v", err)
	}

	res, err := gen.Generate(context.Background(), Request{Prompt: "a prompt"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if res.Text != "HOOK: stay tuned." {
		t.Fatalf("text mismatch: %q", res.Text)
	}
	if res.Model != hfDefaultModel {
		t.Fatalf("model mismatch: %q", res.Model)
	}
	if gotAuth != "Bearer hf_test" {
		t.Fatalf("authorization header mismatch: %q", gotAuth)
	}
	if gotBody.Inputs != "a prompt" {
		t.Fatalf("prompt not forwarded: %q", gotBody.Inputs)
	}
	if gotBody.Parameters.MaxNewTokens != hfMaxNewTokens {
		t.Fatalf("max_new_tokens mismatch: %d", gotBody.Parameters.MaxNewTokens)
	}
}

func TestHFGeneratorDecodesBareString(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode("plain text script")
	}))
	defer server.Close()

	gen, _ := NewHFGenerator(HFOptions{Token: "hf_test", BaseURL: server.URL})
	res, err := gen.Generate(context.Background(), Request{Prompt: "p"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if res.Text != "plain text script" {
		t.Fatalf("text mismatch: %q", res.Text)
	}
}

func TestHFGeneratorUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(hfErrorResponse{Error: "model is loading"})
	}))
	defer server.Close()

	gen, _ := NewHFGenerator(HFOptions{Token: "hf_test", BaseURL: server.URL})
	_, err := gen.Generate(context.Background(), Request{Prompt: "p"})
	if !errors.Is(err, domain.ErrProviderFailure) {
		t.Fatalf("expected ErrProviderFailure, got %v", err)
	}
	if !strings.Contains(err.Error(), "model is loading") {
		t.Fatalf("upstream message not surfaced: %v", err)
	}
}

func TestHFGeneratorEmptyGeneration(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]hfTextCandidate{})
	}))
	defer server.Close()

	gen, _ := NewHFGenerator(HFOptions{Token: "hf_test", BaseURL: server.URL})
	if _, err := gen.Generate(context.Background(), Request{Prompt: "p"}); !errors.Is(err, domain.ErrProviderFailure) {
		t.Fatalf("expected ErrProviderFailure, got %v", err)
	}
}

func TestNewHFGeneratorRequiresToken(t *testing.T) {
	if _, err := NewHFGenerator(HFOptions{}); err == nil {
		t.Fatal("expected error for missing token")
	}
}
