// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize shapes raw model output into structured payloads. Models
// wrap JSON in prose and code fences, emit trailing commas, or answer with a
// bare value; normalization runs a fixed sequence of recovery stages and
// accepts only a JSON object as success.
// See docs/ARCHITECTURE § Response Normalization.
package normalize

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/kaptinlin/jsonrepair"

	"github.com/jacobcy/parsekit/internal/pattern"
	"github.com/jacobcy/parsekit/pkg/types"
)

// Error reports model output no stage could shape into a JSON object. It
// keeps a bounded preview for messages and the complete raw text for
// offline diagnosis.
type Error struct {
	Preview string
	Raw     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("model output is not a JSON object: %q", e.Preview)
}

// stage is one recovery strategy. Stages run in order; the first to yield
// a JSON object wins.
type stage struct {
	name string
	run  func(raw string) (map[string]any, bool)
}

var stages = []stage{
	{"repair", repairStage},
	{"strict", strictStage},
	{"fenced", fencedStage},
}

// Normalize shapes raw model output into a JSON object payload. A stage
// that parses to a bare scalar or array is a soft failure and the next
// stage runs; when every stage fails the returned *Error carries a preview
// and the full raw text.
func Normalize(raw string) (map[string]any, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed != "" {
		for _, s := range stages {
			if payload, ok := s.run(trimmed); ok {
				return payload, nil
			}
		}
	}
	return nil, &Error{Preview: types.Preview(raw), Raw: raw}
}

// decodeObject parses text as JSON and accepts only an object.
func decodeObject(text string) (map[string]any, bool) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, false
	}
	obj, ok := v.(map[string]any)
	return obj, ok
}

// repairStage mends near-JSON (single quotes, trailing commas, unquoted
// keys) before decoding.
func repairStage(raw string) (map[string]any, bool) {
	repaired, err := jsonrepair.JSONRepair(raw)
	if err != nil {
		return nil, false
	}
	return decodeObject(repaired)
}

func strictStage(raw string) (map[string]any, bool) {
	return decodeObject(raw)
}

var fenceRe = regexp.MustCompile("(?s)```([A-Za-z0-9_+-]*)[ \t]*\n?(.*?)```")

// fencedStage pulls the first code-fenced block out of a prose answer,
// consuming any language tag, and decodes the interior.
func fencedStage(raw string) (map[string]any, bool) {
	m := fenceRe.FindStringSubmatch(raw)
	if m == nil {
		return nil, false
	}
	inner := strings.TrimSpace(m[2])
	if inner == "" {
		return nil, false
	}
	if payload, ok := decodeObject(inner); ok {
		return payload, true
	}
	if repaired, err := jsonrepair.JSONRepair(inner); err == nil {
		return decodeObject(repaired)
	}
	return nil, false
}

// Light derives a minimal payload from the original input when the model
// response is unusable: title, front matter, and size counts. Only
// prose-like content gets this degraded payload; for data-like content it
// would be misleading, so the caller keeps the failure.
func Light(ct types.ContentType, original string) (map[string]any, bool) {
	switch ct {
	case types.ContentTypeRule, types.ContentTypeDocument, types.ContentTypeGeneric:
	default:
		return nil, false
	}

	fm, body, hasFM := pattern.FrontMatter(original)

	lines := 0
	if original != "" {
		lines = strings.Count(original, "\n") + 1
	}

	payload := map[string]any{
		"title":      pattern.Title(body),
		"word_count": len(strings.Fields(original)),
		"line_count": lines,
		"char_count": utf8.RuneCountInString(original),
	}
	if hasFM && len(fm) > 0 {
		payload["front_matter"] = fm
	}
	return payload, true
}
