// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package slug derives stable kebab-case identifiers from human-readable
// titles. The same input always yields the same slug; entity identifiers
// synthesized during validation and extraction depend on that.
package slug

import "strings"

// Make lowercases s and joins its alphanumeric runs with hyphens:
// "Phase One" → "phase-one", "  DB/Cache layer!" → "db-cache-layer".
// Non-ASCII letters and digits are kept as-is within runs.
func Make(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(s) {
		alnum := r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r > 127
		if alnum {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

// WithKind prefixes a slug with its entity kind: WithKind("milestone",
// "Phase One") → "milestone-phase-one". An empty title yields just the kind;
// callers fall back to positional IDs before that happens.
func WithKind(kind, title string) string {
	s := Make(title)
	if s == "" {
		return kind
	}
	return kind + "-" + s
}
