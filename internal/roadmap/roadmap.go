// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package roadmap validates and repairs roadmap documents. Validation runs
// three phases: parse (YAML, with one delegated retry through a fallback
// parser), structure (required sections, container kinds, metadata
// hoisting), and content (required fields, ID synthesis, enum
// normalization, legacy reference rewriting). Repairs are applied to a deep
// copy; the caller's document is never mutated.
// See docs/ARCHITECTURE § Roadmap Validation.
package roadmap

import (
	"context"
	"fmt"

	"go.yaml.in/yaml/v3"

	"github.com/jacobcy/parsekit/pkg/types"
)

// Level classifies a validation message.
type Level string

const (
	// LevelError invalidates the document.
	LevelError Level = "error"

	// LevelWarning is non-fatal but notable.
	LevelWarning Level = "warning"

	// LevelInfo records a silent repair.
	LevelInfo Level = "info"
)

// Message is one validation or repair note.
type Message struct {
	Level Level  `json:"level" yaml:"level"`
	Path  string `json:"path" yaml:"path"`
	Text  string `json:"text" yaml:"text"`
}

func (m Message) String() string {
	return fmt.Sprintf("%-7s %s: %s", m.Level, m.Path, m.Text)
}

// Result is the outcome of a validation pass. Valid is true exactly when
// no error-level messages were produced, independent of how many repairs
// were applied. Fixed holds the repaired document (nil when the input was
// unreadable).
type Result struct {
	Valid    bool           `json:"valid" yaml:"valid"`
	Messages []Message      `json:"messages,omitempty" yaml:"messages,omitempty"`
	Fixed    map[string]any `json:"fixed,omitempty" yaml:"fixed,omitempty"`
}

// Repairs counts the messages recording an applied repair.
func (r Result) Repairs() int {
	n := 0
	for _, m := range r.Messages {
		if m.Level == LevelInfo {
			n++
		}
	}
	return n
}

// FallbackParser is the delegated last resort for documents YAML cannot
// read. parse.Parser satisfies it.
type FallbackParser interface {
	Parse(ctx context.Context, req types.Request) types.Result
}

// Validator runs the three validation phases.
type Validator struct {
	fallback FallbackParser
}

// NewValidator returns a validator with no delegated fallback: unreadable
// documents fail in the parse phase.
func NewValidator() *Validator { return &Validator{} }

// NewValidatorWithFallback returns a validator that retries unreadable
// documents once through fb before giving up.
func NewValidatorWithFallback(fb FallbackParser) *Validator {
	return &Validator{fallback: fb}
}

// Validate parses raw as a roadmap document and validates it, applying
// safe repairs.
func (v *Validator) Validate(ctx context.Context, raw string) Result {
	doc, parseMsgs, ok := v.parsePhase(ctx, raw)
	if !ok {
		return Result{Valid: false, Messages: parseMsgs}
	}

	res := v.ValidateMap(doc)
	res.Messages = append(parseMsgs, res.Messages...)
	return res
}

// ValidateMap validates an already-decoded document, applying safe repairs
// to a deep copy.
func (v *Validator) ValidateMap(doc map[string]any) Result {
	fixed := deepCopy(doc).(map[string]any)

	msgs := structurePhase(fixed)
	msgs = append(msgs, contentPhase(fixed)...)

	return Result{Valid: !hasErrors(msgs), Messages: msgs, Fixed: fixed}
}

// parsePhase decodes raw YAML into a mapping. On a decode error it
// delegates once to the fallback parser before declaring the document
// unreadable.
func (v *Validator) parsePhase(ctx context.Context, raw string) (map[string]any, []Message, bool) {
	doc := map[string]any{}
	if err := yaml.Unmarshal([]byte(raw), &doc); err == nil {
		return doc, nil, true
	} else if v.fallback == nil {
		return nil, []Message{{
			Level: LevelError,
			Path:  "",
			Text:  fmt.Sprintf("document is not a YAML mapping: %v", err),
		}}, false
	}

	res := v.fallback.Parse(ctx, types.Request{Content: raw, ContentType: types.ContentTypeRoadmap})
	if !res.Success {
		return nil, []Message{{
			Level: LevelError,
			Path:  "",
			Text:  fmt.Sprintf("document unreadable: YAML parse failed and fallback parser reported: %s", res.Error),
		}}, false
	}

	return res.Payload, []Message{{
		Level: LevelInfo,
		Path:  "",
		Text:  "document recovered through the fallback parser",
	}}, true
}

// deepCopy clones a decoded document so repairs never touch the caller's map.
func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = deepCopy(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = deepCopy(val)
		}
		return out
	default:
		return v
	}
}

func hasErrors(msgs []Message) bool {
	for _, m := range msgs {
		if m.Level == LevelError {
			return true
		}
	}
	return false
}
