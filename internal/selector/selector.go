// Package selector asks a language model to pick and reword the bullets of one
// experience for a job description.
package selector

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"resume-optimizer/internal/llm"
	"resume-optimizer/internal/shared/metrics"
	"resume-optimizer/internal/shared/telemetry"
)

const DefaultTargetCount = 5

// Fallback reasons.
const (
	ReasonModelError   = "model_error"
	ReasonInvalidReply = "invalid_reply"
	ReasonDecodeError  = "decode_error"
)

const replySchema = `{
  "type": "object",
  "required": ["bullets"],
  "properties": {
    "bullets": {
      "type": "array",
      "minItems": 1,
      "items": {"type": "string", "minLength": 1, "pattern": "\\S"}
    }
  }
}`

var replySchemaLoader = gojsonschema.NewStringLoader(replySchema)

// Request describes one selection over a single bullet pool.
type Request struct {
	JobDescription string
	Pool           []string
	TargetCount    int
	// Context is an optional label such as "Position: PM at Acme".
	Context string
}

// Selection is the outcome of Select. Fallback is set when the pool prefix was used.
type Selection struct {
	Bullets  []string `json:"bullets"`
	Fallback bool     `json:"fallback"`
	Reason   string   `json:"reason,omitempty"`
}

// Selector picks bullets with a model and never fails.
type Selector struct {
	LLM llm.Completer
}

func New(completer llm.Completer) *Selector {
	if completer == nil {
		completer = llm.Unconfigured{}
	}
	return &Selector{LLM: completer}
}

// Select returns the model's tailored bullets, or the first TargetCount pool
// entries in their original order when the model cannot be used.
func (s *Selector) Select(ctx context.Context, req Request) Selection {
	if req.TargetCount <= 0 {
		req.TargetCount = DefaultTargetCount
	}
	if len(req.Pool) == 0 {
		return Selection{Bullets: []string{}}
	}

	raw, err := s.LLM.Complete(ctx, BuildPrompt(req))
	if err != nil {
		return fallback(req, ReasonModelError, err)
	}
	bullets, reason, err := parseReply(raw)
	if err != nil {
		return fallback(req, reason, err)
	}
	return Selection{Bullets: bullets}
}

func parseReply(raw string) ([]string, string, error) {
	body := llm.StripCodeFences(raw)
	if !json.Valid([]byte(body)) {
		return nil, ReasonDecodeError, fmt.Errorf("reply is not JSON")
	}

	res, err := gojsonschema.Validate(replySchemaLoader, gojsonschema.NewStringLoader(body))
	if err != nil {
		return nil, ReasonDecodeError, err
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, ReasonInvalidReply, fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
	}

	var decoded struct {
		Bullets []string `json:"bullets"`
	}
	if err := json.Unmarshal([]byte(body), &decoded); err != nil {
		return nil, ReasonDecodeError, err
	}
	out := make([]string, 0, len(decoded.Bullets))
	for _, bullet := range decoded.Bullets {
		if bullet = strings.TrimSpace(bullet); bullet != "" {
			out = append(out, bullet)
		}
	}
	return out, "", nil
}

func fallback(req Request, reason string, err error) Selection {
	n := req.TargetCount
	if n > len(req.Pool) {
		n = len(req.Pool)
	}
	bullets := make([]string, n)
	copy(bullets, req.Pool[:n])

	metrics.IncSelectorFallback(reason)
	telemetry.Warn("bullet selection fell back to original bullets", map[string]any{
		"reason":  reason,
		"error":   err.Error(),
		"context": req.Context,
		"count":   n,
	})
	return Selection{Bullets: bullets, Fallback: true, Reason: reason}
}
