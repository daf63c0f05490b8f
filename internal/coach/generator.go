package coach

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// ErrUnavailable marks a coach request that failed for good: no API key,
// a non-retriable provider error, or retries exhausted.
var ErrUnavailable = errors.New("coach unavailable")

// Generator sends one prompt to a model and returns its text.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
	Name() string
}

// Request is a single prompt. Schema, when set, asks for a JSON reply of that
// shape.
type Request struct {
	Prompt      string
	Schema      *genai.Schema
	Temperature *float32
}

// RateLimitError wraps a provider error that asked us to slow down (HTTP 429
// or RESOURCE_EXHAUSTED). It is the only error the retry loop retries.
type RateLimitError struct {
	Err error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *RateLimitError) Unwrap() error { return e.Err }

func isRateLimited(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}
