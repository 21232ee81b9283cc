// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package provider abstracts completion providers behind a small chat
// interface. Concrete providers live in subpackages and register their
// factories at init time; the completion parser looks them up by kind.
// See docs/ARCHITECTURE § Completion Gateway.
package provider

import (
	"context"
	"fmt"
	"sort"

	"github.com/jacobcy/parsekit/pkg/types"
)

// Chat message roles.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one turn of a completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider produces a raw model completion for a message sequence. The
// returned string is whatever the model emitted; shaping it into a payload
// is the normalizer's job.
type Provider interface {
	// Name identifies the provider in errors and diagnostics.
	Name() string

	// Complete sends the messages and returns the model output. It blocks
	// until the provider answers, fails, or ctx is done.
	Complete(ctx context.Context, messages []Message) (string, error)
}

// Factory builds a Provider from a provider config.
type Factory func(cfg types.ProviderConfig) (Provider, error)

// registry of provider factories, populated by init() in each provider
// subpackage or explicitly via Register.
var registry = map[types.ProviderKind]Factory{}

// Register registers a provider factory by kind.
func Register(kind types.ProviderKind, factory Factory) {
	registry[kind] = factory
}

// New creates a Provider from a provider config using the registered factory.
func New(cfg types.ProviderConfig) (Provider, error) {
	factory, ok := registry[cfg.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown completion provider: %q (known: %v)", cfg.Kind, Kinds())
	}
	return factory(cfg)
}

// Kinds returns the registered provider kinds in a stable order.
func Kinds() []types.ProviderKind {
	kinds := make([]types.ProviderKind, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
