// Package llm defines the one-shot text completion boundary used by the
// bullet selector.
package llm

import (
	"context"
	"errors"
	"strings"
)

// Completer sends one prompt and returns the model's raw text reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrNotConfigured is returned by Unconfigured.
var ErrNotConfigured = errors.New("LLM provider not configured")

// Unconfigured always fails, which drives callers onto their fallback path.
type Unconfigured struct{}

func (Unconfigured) Complete(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}

// StripCodeFences removes a surrounding ```json or ``` fence from a reply.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "```json"); i >= 0 {
		s = s[i+len("```json"):]
	} else if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+len("```"):]
	} else {
		return s
	}
	if j := strings.Index(s, "```"); j >= 0 {
		s = s[:j]
	}
	return strings.TrimSpace(s)
}
