// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parse orchestrates content parsing. It dispatches a request to
// the deterministic pattern backend or the completion pipeline (prompt →
// provider → normalizer) and shapes every outcome, including panics, into
// a Result. Public entry points never propagate errors or panics.
// See docs/ARCHITECTURE § Parsing.
package parse

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jacobcy/parsekit/internal/normalize"
	"github.com/jacobcy/parsekit/internal/pattern"
	"github.com/jacobcy/parsekit/internal/prompt"
	"github.com/jacobcy/parsekit/internal/provider"
	"github.com/jacobcy/parsekit/pkg/types"
)

// Parser turns raw content into a structured Result. Implementations are
// safe for concurrent use.
type Parser interface {
	// Parse processes in-memory content.
	Parse(ctx context.Context, req types.Request) types.Result

	// ParseFile reads path as UTF-8 text, infers the content type from the
	// path when ct is empty, and attaches file provenance to the result.
	ParseFile(ctx context.Context, path string, ct types.ContentType) types.Result
}

// PatternParser is the deterministic backend: no provider, no network.
type PatternParser struct{}

// NewPatternParser returns the deterministic parser.
func NewPatternParser() *PatternParser { return &PatternParser{} }

// Parse implements Parser.
func (p *PatternParser) Parse(ctx context.Context, req types.Request) (res types.Result) {
	defer recoverResult(&res, req)

	ct := resolveType(req)
	payload, err := pattern.Extract(ct, req.Content)
	if err != nil {
		return types.Failure(ct, err.Error(), req.Content)
	}
	return types.Result{Success: true, ContentType: ct, Payload: payload}
}

// ParseFile implements Parser.
func (p *PatternParser) ParseFile(ctx context.Context, path string, ct types.ContentType) types.Result {
	return parseFile(ctx, p, path, ct)
}

// CompletionParser runs the prompt → provider → normalizer pipeline.
type CompletionParser struct {
	provider provider.Provider
	cfg      types.ParserConfig
}

// NewCompletionParser constructs the completion pipeline for the configured
// provider.
func NewCompletionParser(cfg types.ParserConfig) (*CompletionParser, error) {
	p, err := provider.New(cfg.Provider)
	if err != nil {
		return nil, err
	}
	return &CompletionParser{provider: p, cfg: cfg}, nil
}

// NewCompletionParserWithProvider constructs the pipeline around an existing
// provider (for testing).
func NewCompletionParserWithProvider(p provider.Provider, cfg types.ParserConfig) *CompletionParser {
	return &CompletionParser{provider: p, cfg: cfg}
}

// Parse implements Parser.
func (c *CompletionParser) Parse(ctx context.Context, req types.Request) (res types.Result) {
	defer recoverResult(&res, req)

	ct := resolveType(req)

	prov, err := c.providerFor(req.Options)
	if err != nil {
		return types.Failure(ct, err.Error(), req.Content)
	}

	user, err := prompt.Render(ct, prompt.Input{Content: req.Content, Context: req.Context})
	if err != nil {
		return types.Failure(ct, fmt.Sprintf("rendering prompt: %v", err), req.Content)
	}
	messages := []provider.Message{
		{Role: provider.RoleSystem, Content: prompt.SystemPrompt(ct)},
		{Role: provider.RoleUser, Content: user},
	}

	diag := newDiagDir(c.cfg.Diagnostics, c.cfg.DiagnosticsDir)
	diag.writeRequest(messages)

	raw, err := prov.Complete(ctx, messages)
	if err != nil {
		diag.writeError(err)
		return types.Failure(ct, err.Error(), req.Content)
	}
	diag.writeResponse(raw)

	payload, err := normalize.Normalize(raw)
	if err != nil {
		diag.writeError(err)

		// Prose-like content degrades to a light payload built from the
		// original input; the raw response stays on the result for
		// diagnosis. Data-like content keeps the failure.
		if light, ok := normalize.Light(ct, req.Content); ok {
			return types.Result{
				Success:     true,
				ContentType: ct,
				Payload:     light,
				RawResponse: raw,
			}
		}

		var ne *normalize.Error
		if errors.As(err, &ne) {
			return types.Result{
				Success:     false,
				ContentType: ct,
				Error:       err.Error(),
				Preview:     ne.Preview,
				RawResponse: ne.Raw,
			}
		}
		return types.Failure(ct, err.Error(), raw)
	}

	return types.Result{Success: true, ContentType: ct, Payload: payload}
}

// ParseFile implements Parser.
func (c *CompletionParser) ParseFile(ctx context.Context, path string, ct types.ContentType) types.Result {
	return parseFile(ctx, c, path, ct)
}

// providerFor applies per-call option overrides (provider, model,
// temperature, max_tokens) by constructing a one-off provider. Calls
// without overrides share the parser's provider.
func (c *CompletionParser) providerFor(opts map[string]string) (provider.Provider, error) {
	if len(opts) == 0 {
		return c.provider, nil
	}

	cfg := c.cfg.Provider
	if v, ok := opts["provider"]; ok && v != "" {
		cfg.Kind = types.ProviderKind(v)
	}
	if v, ok := opts["model"]; ok && v != "" {
		cfg.Model = v
	}
	if v, ok := opts["temperature"]; ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid temperature option %q: %w", v, err)
		}
		cfg.Temperature = f
	}
	if v, ok := opts["max_tokens"]; ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid max_tokens option %q: %w", v, err)
		}
		cfg.MaxTokens = n
	}
	return provider.New(cfg)
}

// parseFile reads path and delegates to p.Parse. Input errors (missing
// file, invalid UTF-8) fail fast: no backend is invoked.
func parseFile(ctx context.Context, p Parser, path string, ct types.ContentType) types.Result {
	info := types.NewFileInfo(path)

	data, err := os.ReadFile(path)
	if err != nil {
		res := types.Failure(ct, fmt.Sprintf("reading %s: %v", path, err), path)
		res.FileInfo = info
		return res
	}
	if !utf8.Valid(data) {
		res := types.Failure(ct, fmt.Sprintf("file %s is not valid UTF-8", path), path)
		res.FileInfo = info
		return res
	}

	if ct == "" {
		ct = InferContentType(path)
	}

	res := p.Parse(ctx, types.Request{Content: string(data), Context: path, ContentType: ct})
	res.FileInfo = info
	return res
}

// resolveType picks the content type for a request: the explicit tag, an
// inference from a path-like context, or generic.
func resolveType(req types.Request) types.ContentType {
	if req.ContentType != "" {
		return req.ContentType
	}
	if looksLikePath(req.Context) {
		return InferContentType(req.Context)
	}
	return types.ContentTypeGeneric
}

func looksLikePath(s string) bool {
	return s != "" && (strings.ContainsAny(s, `/\`) || filepath.Ext(s) != "")
}

// recoverResult converts a panic during dispatch into a failure Result.
func recoverResult(res *types.Result, req types.Request) {
	if r := recover(); r != nil {
		*res = types.Failure(req.ContentType, fmt.Sprintf("internal error: %v", r), req.Content)
	}
}
