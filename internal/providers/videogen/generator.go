package videogen

import "context"

// Request carries the fully rendered instruction for one video generation.
// Instruction construction lives in BuildInstruction so callers can derive
// it deterministically from the script and job inputs.
type Request struct {
	Instruction string
}

// Result is the decided outcome of a video generation call: raw media bytes
// and their MIME type, decided at the provider boundary.
type Result struct {
	Data []byte
	MIME string
}

// Generator renders a short video from an instruction.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}
