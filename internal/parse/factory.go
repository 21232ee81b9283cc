// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"fmt"
	"sync"

	"github.com/jacobcy/parsekit/pkg/types"

	// Register the built-in completion providers.
	_ "github.com/jacobcy/parsekit/internal/provider/local"
	_ "github.com/jacobcy/parsekit/internal/provider/openai"
)

// cacheKey identifies a constructed completion parser: provider kind plus
// model.
type cacheKey struct {
	kind  types.ProviderKind
	model string
}

var (
	cacheMu sync.RWMutex
	cache   = map[cacheKey]*CompletionParser{}
)

// New selects and constructs a parser for a backend preference and content
// type. Auto resolution: data-like types use the pattern backend; anything
// else uses the completion pipeline when a provider is configured and
// degrades to the pattern backend when not.
func New(cfg types.ParserConfig, backend types.Backend, ct types.ContentType) (Parser, error) {
	if len(extensions) == 0 {
		return nil, fmt.Errorf("content-type registry is empty")
	}

	switch backend {
	case types.BackendPattern:
		return NewPatternParser(), nil
	case types.BackendCompletion:
		return completionParser(cfg)
	case types.BackendAuto:
		if ct == types.ContentTypeData || ct == types.ContentTypeCode {
			return NewPatternParser(), nil
		}
		if cfg.Provider.Configured() {
			return completionParser(cfg)
		}
		return NewPatternParser(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}

// completionParser returns the memoized parser for the provider kind and
// model, constructing one on a miss. The cache is advisory: a rebuilt
// parser behaves identically, so racing constructions are harmless.
func completionParser(cfg types.ParserConfig) (*CompletionParser, error) {
	key := cacheKey{kind: cfg.Provider.Kind, model: cfg.Provider.Model}

	cacheMu.RLock()
	p, ok := cache[key]
	cacheMu.RUnlock()
	if ok {
		return p, nil
	}

	p, err := NewCompletionParser(cfg)
	if err != nil {
		return nil, err
	}

	cacheMu.Lock()
	cache[key] = p
	cacheMu.Unlock()
	return p, nil
}
