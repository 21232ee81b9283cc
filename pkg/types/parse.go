// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "path/filepath"

// Request is the immutable input to a single parse call.
type Request struct {
	// Content is the raw UTF-8 text to parse.
	Content string `json:"content" yaml:"content"`

	// Context is an optional label for the input, commonly the
	// originating file path. It is echoed into prompts and diagnostics.
	Context string `json:"context,omitempty" yaml:"context,omitempty"`

	// ContentType selects prompts and extraction rules. Empty means
	// infer from Context (when it looks like a path) or default to generic.
	ContentType ContentType `json:"content_type,omitempty" yaml:"content_type,omitempty"`

	// Backend is the caller's backend preference. Empty means auto.
	Backend Backend `json:"backend,omitempty" yaml:"backend,omitempty"`

	// Options carries per-call provider knobs (model, temperature)
	// overriding the constructed configuration.
	Options map[string]string `json:"options,omitempty" yaml:"options,omitempty"`
}

// Result is the outcome of a parse call. Every public entry point returns
// a Result; errors never propagate to callers as panics or raw error values.
type Result struct {
	// Success reports whether a structured payload was produced.
	Success bool `json:"success" yaml:"success"`

	// ContentType is the tag the payload was parsed as.
	ContentType ContentType `json:"content_type,omitempty" yaml:"content_type,omitempty"`

	// Payload is the content-type-specific structured record. Field names
	// are stable per content type and documented in the prompt catalog.
	Payload map[string]any `json:"payload,omitempty" yaml:"payload,omitempty"`

	// Error is a short human-readable diagnostic, set when Success is false.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// Preview is a bounded excerpt of the offending input or response.
	Preview string `json:"preview,omitempty" yaml:"preview,omitempty"`

	// RawResponse preserves the full unprocessed completion text for
	// offline diagnosis when normalization failed.
	RawResponse string `json:"raw_response,omitempty" yaml:"raw_response,omitempty"`

	// FileInfo describes the source file for file-derived results.
	FileInfo *FileInfo `json:"_file_info,omitempty" yaml:"_file_info,omitempty"`
}

// FileInfo is the provenance block attached to file-derived results.
type FileInfo struct {
	Path      string `json:"path" yaml:"path"`
	Name      string `json:"name" yaml:"name"`
	Extension string `json:"extension" yaml:"extension"`
	Directory string `json:"directory" yaml:"directory"`
}

// NewFileInfo builds the provenance block for a path.
func NewFileInfo(path string) *FileInfo {
	return &FileInfo{
		Path:      path,
		Name:      filepath.Base(path),
		Extension: filepath.Ext(path),
		Directory: filepath.Dir(path),
	}
}

// Failure builds a failure-shaped Result with a bounded preview of the
// offending input. The preview keeps at most previewLimit characters.
func Failure(ct ContentType, errMsg, input string) Result {
	return Result{
		Success:     false,
		ContentType: ct,
		Error:       errMsg,
		Preview:     Preview(input),
	}
}

// previewLimit bounds the Preview field of failure results.
const previewLimit = 300

// Preview returns at most previewLimit characters of s, marking truncation.
func Preview(s string) string {
	if len(s) <= previewLimit {
		return s
	}
	return s[:previewLimit] + "..."
}
