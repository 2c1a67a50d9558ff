package script

import "context"

// Request carries the fully rendered prompt for one script generation.
// Prompt construction lives in BuildPrompt so callers can derive it
// deterministically from the job inputs.
type Request struct {
	Prompt string
}

// Result is the decided outcome of a script generation call. The provider
// boundary converts whatever shape the upstream API returns into this type.
type Result struct {
	Text  string
	Model string
}

// Generator produces a short-video script from a prompt.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}
