// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt is the per-content-type catalog of completion prompts.
// Each entry declares the exact JSON shape the provider is expected to
// return, so the response normalizer validates against a known contract.
// Templates are pure data; unknown content types fall back to the generic
// entry. See docs/ARCHITECTURE § Prompt Catalog.
package prompt

import (
	"bytes"
	"fmt"
	"sort"
	"sync"
	"text/template"

	"github.com/jacobcy/parsekit/pkg/types"
)

// Input is the data rendered into a user prompt template.
type Input struct {
	// Content is the raw text being parsed.
	Content string

	// Context labels the input, commonly its originating file path.
	Context string
}

// entry pairs the system prompt with the parsed user template for one type.
type entry struct {
	system string
	user   *template.Template
	raw    string
}

var (
	mu      sync.RWMutex
	catalog = map[types.ContentType]entry{}
)

func init() {
	for ct, raw := range builtinTemplates {
		catalog[ct] = entry{
			system: builtinSystemPrompts[ct],
			user:   template.Must(template.New(string(ct)).Parse(raw)),
			raw:    raw,
		}
	}
}

// lookup returns the entry for ct, falling back to generic.
func lookup(ct types.ContentType) entry {
	mu.RLock()
	defer mu.RUnlock()
	if e, ok := catalog[ct]; ok {
		return e
	}
	return catalog[types.ContentTypeGeneric]
}

// SystemPrompt returns the system prompt for a content type. Unknown types
// receive the generic system prompt.
func SystemPrompt(ct types.ContentType) string {
	return lookup(ct).system
}

// Template returns the raw user prompt template text for a content type.
// Unknown types receive the generic template.
func Template(ct types.ContentType) string {
	return lookup(ct).raw
}

// Render executes the user prompt template for a content type against in.
func Render(ct types.ContentType, in Input) (string, error) {
	e := lookup(ct)
	var buf bytes.Buffer
	if err := e.user.Execute(&buf, in); err != nil {
		return "", fmt.Errorf("rendering %s prompt: %w", ct, err)
	}
	return buf.String(), nil
}

// Register installs or replaces the catalog entry for a content type at
// runtime. The user template must reference only {{.Content}} and
// {{.Context}}.
func Register(ct types.ContentType, system, userTemplate string) error {
	tmpl, err := template.New(string(ct)).Parse(userTemplate)
	if err != nil {
		return fmt.Errorf("parsing %s template: %w", ct, err)
	}

	mu.Lock()
	defer mu.Unlock()
	catalog[ct] = entry{system: system, user: tmpl, raw: userTemplate}
	return nil
}

// Types lists every registered content type in sorted order.
func Types() []types.ContentType {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]types.ContentType, 0, len(catalog))
	for ct := range catalog {
		out = append(out, ct)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
