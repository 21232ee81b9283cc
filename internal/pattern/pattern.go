// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pattern is the deterministic extraction backend: one fixed
// regular-expression rule set per content type, no external calls. It is
// the degrade-to path when the completion pipeline is unavailable or
// disallowed, and the default for data-like inputs.
// See docs/ARCHITECTURE § Pattern Extractor.
package pattern

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"go.yaml.in/yaml/v3"

	"github.com/jacobcy/parsekit/internal/slug"
	"github.com/jacobcy/parsekit/pkg/types"
)

// Error reports input the rule set for a content type cannot shape.
// The orchestrator converts it into a failure result.
type Error struct {
	ContentType types.ContentType
	Reason      string
}

func (e *Error) Error() string {
	return fmt.Sprintf("pattern extraction (%s): %s", e.ContentType, e.Reason)
}

// arm bundles the extraction rule set for one content type.
type arm struct {
	extract func(text string) (map[string]any, error)
}

// arms maps each content type to its rule set. Workflow text has no
// deterministic shape, so it shares the generic arm; roadmaps are
// YAML-shaped and share the data arm. Anything else falls back to generic.
var arms = map[types.ContentType]arm{
	types.ContentTypeRule:     {extract: extractRule},
	types.ContentTypeDocument: {extract: extractDocument},
	types.ContentTypeGeneric:  {extract: extractGeneric},
	types.ContentTypeCode:     {extract: extractCode},
	types.ContentTypeData:     {extract: extractData},
	types.ContentTypeWorkflow: {extract: extractGeneric},
	types.ContentTypeRoadmap:  {extract: extractData},
}

// Extract runs the content type's rule set over text. It never calls any
// external service; it either succeeds or returns *Error.
func Extract(ct types.ContentType, text string) (map[string]any, error) {
	a, ok := arms[ct]
	if !ok {
		a = arms[types.ContentTypeGeneric]
	}
	payload, err := a.extract(text)
	if err != nil {
		return nil, err
	}
	return payload, nil
}

var (
	frontMatterRe = regexp.MustCompile(`(?s)\A---[ \t]*\n(.*?)\n---[ \t]*\n?`)
	titleRe       = regexp.MustCompile(`(?m)^#[ \t]+(.+?)[ \t]*$`)
	sectionRe     = regexp.MustCompile(`(?m)^##[ \t]+(.+?)[ \t]*$`)
	exampleRe     = regexp.MustCompile(`(?s)<example>\s*(.*?)\s*</example>`)
	listItemRe    = regexp.MustCompile(`(?m)^[ \t]*(?:[-*]|\d+\.)[ \t]+(.+?)[ \t]*$`)
	headingRe     = regexp.MustCompile(`(?m)^(#{1,6})[ \t]+(.+?)[ \t]*$`)
	linkRe        = regexp.MustCompile(`\[([^\]]*)\]\(([^)\s]+)\)`)
	imageRe       = regexp.MustCompile(`!\[([^\]]*)\]\(([^)\s]+)\)`)
	fenceRe       = regexp.MustCompile("(?s)```([A-Za-z0-9_+-]*)[ \t]*\n(.*?)```")
	urlRe         = regexp.MustCompile(`https?://[^\s<>"')\]]+`)
	emailRe       = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	dateRe        = regexp.MustCompile(`\b(?:\d{4}-\d{2}-\d{2}|\d{2}/\d{2}/\d{4})\b`)
)

// FrontMatter splits a leading ----delimited block off text. It returns the
// parsed key/value mapping, the remaining body, and whether a block was
// found. Blocks that are not valid YAML degrade to naive "key: value" line
// splitting rather than failing.
func FrontMatter(text string) (map[string]any, string, bool) {
	m := frontMatterRe.FindStringSubmatchIndex(text)
	if m == nil {
		return nil, text, false
	}
	inner := text[m[2]:m[3]]
	body := text[m[1]:]

	fields := map[string]any{}
	if err := yaml.Unmarshal([]byte(inner), &fields); err != nil || len(fields) == 0 {
		fields = map[string]any{}
		for _, line := range strings.Split(inner, "\n") {
			key, value, ok := strings.Cut(line, ":")
			if !ok {
				continue
			}
			fields[strings.TrimSpace(key)] = strings.TrimSpace(value)
		}
	}
	return fields, body, true
}

// Title returns the first level-1 heading of text, or "".
func Title(text string) string {
	if m := titleRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// extractRule shapes a Markdown rule file: front matter, level-1 title,
// level-2 sections, <example> blocks, list items, and the body.
func extractRule(text string) (map[string]any, error) {
	fm, body, _ := FrontMatter(text)

	name := Title(body)
	id, _ := fm["id"].(string)
	if id == "" {
		id = slug.Make(name)
	}

	ruleType, _ := fm["type"].(string)
	description, _ := fm["description"].(string)

	var sections []any
	for _, m := range sectionRe.FindAllStringSubmatch(body, -1) {
		sections = append(sections, m[1])
	}

	var examples []any
	for _, m := range exampleRe.FindAllStringSubmatch(body, -1) {
		examples = append(examples, m[1])
	}

	var items []any
	for _, m := range listItemRe.FindAllStringSubmatch(body, -1) {
		items = append(items, m[1])
	}

	return map[string]any{
		"id":           id,
		"name":         name,
		"type":         ruleType,
		"description":  description,
		"globs":        globList(fm["globs"]),
		"always_apply": alwaysApply(fm),
		"sections":     sections,
		"items":        items,
		"examples":     examples,
		"content":      strings.TrimSpace(body),
	}, nil
}

// globList normalizes a front-matter globs value: either a YAML list or a
// comma-separated string.
func globList(v any) []any {
	switch g := v.(type) {
	case []any:
		return g
	case string:
		var out []any
		for _, part := range strings.Split(g, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return []any{}
}

// alwaysApply reads the rule-file flag under either of its spellings.
func alwaysApply(fm map[string]any) bool {
	for _, key := range []string{"alwaysApply", "always_apply"} {
		if b, ok := fm[key].(bool); ok {
			return b
		}
		if s, ok := fm[key].(string); ok {
			return strings.EqualFold(s, "true")
		}
	}
	return false
}

// extractDocument shapes a Markdown document: title, heading hierarchy,
// inline links and images, and fenced code blocks.
func extractDocument(text string) (map[string]any, error) {
	_, body, _ := FrontMatter(text)

	title := Title(body)

	var headings []any
	for _, m := range headingRe.FindAllStringSubmatch(body, -1) {
		headings = append(headings, map[string]any{
			"level": len(m[1]),
			"text":  m[2],
		})
	}

	var images []any
	for _, m := range imageRe.FindAllStringSubmatch(body, -1) {
		images = append(images, map[string]any{"alt": m[1], "src": m[2]})
	}

	// Links share the image syntax minus the bang; skip matches that are
	// actually images.
	var links []any
	for _, idx := range linkRe.FindAllStringSubmatchIndex(body, -1) {
		if idx[0] > 0 && body[idx[0]-1] == '!' {
			continue
		}
		links = append(links, map[string]any{
			"text": body[idx[2]:idx[3]],
			"url":  body[idx[4]:idx[5]],
		})
	}

	var codeBlocks []any
	for _, m := range fenceRe.FindAllStringSubmatch(body, -1) {
		codeBlocks = append(codeBlocks, map[string]any{
			"language": m[1],
			"code":     strings.TrimRight(m[2], "\n"),
		})
	}

	return map[string]any{
		"id":          slug.Make(title),
		"title":       title,
		"headings":    headings,
		"links":       links,
		"images":      images,
		"code_blocks": codeBlocks,
	}, nil
}

// extractGeneric shapes arbitrary text: URLs, e-mail addresses, date-like
// tokens, and size counts.
func extractGeneric(text string) (map[string]any, error) {
	var urls []any
	for _, m := range urlRe.FindAllString(text, -1) {
		urls = append(urls, m)
	}

	var emails []any
	for _, m := range emailRe.FindAllString(text, -1) {
		emails = append(emails, m)
	}

	var dates []any
	for _, m := range dateRe.FindAllString(text, -1) {
		dates = append(dates, m)
	}

	lines := 0
	if text != "" {
		lines = strings.Count(text, "\n") + 1
	}

	return map[string]any{
		"urls":       urls,
		"emails":     emails,
		"dates":      dates,
		"word_count": len(strings.Fields(text)),
		"line_count": lines,
		"char_count": utf8.RuneCountInString(text),
	}, nil
}

var (
	importRe   = regexp.MustCompile(`(?m)^[ \t]*(?:import\b|from[ \t]+\S+[ \t]+import\b|#include\b|require\b|use\b)[^\n]*`)
	functionRe = regexp.MustCompile(`(?m)^[ \t]*(?:func|def|fn|function)[ \t]+([A-Za-z_]\w*)`)
	todoRe     = regexp.MustCompile(`\b(?:TODO|FIXME)\b`)
)

// languageHints maps a telltale pattern to a language tag, probed in order.
var languageHints = []struct {
	re   *regexp.Regexp
	lang string
}{
	{regexp.MustCompile(`(?m)^package[ \t]+\w+[ \t]*$`), "go"},
	{regexp.MustCompile(`(?m)^[ \t]*def[ \t]+\w+\(`), "python"},
	{regexp.MustCompile(`(?m)^[ \t]*fn[ \t]+\w+`), "rust"},
	{regexp.MustCompile(`#include[ \t]*[<"]`), "c"},
	{regexp.MustCompile(`(?m)^[ \t]*(?:export[ \t]+)?(?:function|const|let)[ \t]`), "javascript"},
	{regexp.MustCompile(`(?m)^[ \t]*(?:public|private)[ \t]+(?:class|static)`), "java"},
}

// extractCode shapes a source file: language guess, import lines, function
// names, and marker counts.
func extractCode(text string) (map[string]any, error) {
	language := ""
	for _, h := range languageHints {
		if h.re.MatchString(text) {
			language = h.lang
			break
		}
	}

	var imports []any
	for _, m := range importRe.FindAllString(text, -1) {
		imports = append(imports, strings.TrimSpace(m))
	}

	var symbols []any
	for _, m := range functionRe.FindAllStringSubmatch(text, -1) {
		symbols = append(symbols, map[string]any{"kind": "function", "name": m[1]})
	}

	lines := 0
	if text != "" {
		lines = strings.Count(text, "\n") + 1
	}

	return map[string]any{
		"language":   language,
		"imports":    imports,
		"symbols":    symbols,
		"todo_count": len(todoRe.FindAllString(text, -1)),
		"line_count": lines,
	}, nil
}

// extractData shapes serialized data by probing JSON, then YAML, then a
// CSV header. Input none of them can decode is a typed error.
func extractData(text string) (map[string]any, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, &Error{ContentType: types.ContentTypeData, Reason: "empty input"}
	}

	var v any
	if err := json.Unmarshal([]byte(trimmed), &v); err == nil {
		if payload, ok := dataPayload("json", v); ok {
			return payload, nil
		}
	}

	v = nil
	if err := yaml.Unmarshal([]byte(trimmed), &v); err == nil {
		if payload, ok := dataPayload("yaml", v); ok {
			return payload, nil
		}
	}

	if payload, ok := csvPayload(trimmed); ok {
		return payload, nil
	}

	return nil, &Error{ContentType: types.ContentTypeData, Reason: "input is not JSON, YAML, or CSV"}
}

// dataPayload describes a decoded object or array of objects.
func dataPayload(format string, v any) (map[string]any, bool) {
	switch d := v.(type) {
	case map[string]any:
		return map[string]any{
			"format": format,
			"fields": fieldList(d),
		}, true
	case []any:
		if len(d) == 0 {
			return map[string]any{"format": format, "fields": []any{}, "item_count": 0}, true
		}
		first, ok := d[0].(map[string]any)
		if !ok {
			return nil, false
		}
		payload := map[string]any{
			"format":     format,
			"fields":     fieldList(first),
			"item_count": len(d),
		}
		return payload, true
	}
	return nil, false
}

// fieldList renders a mapping's top-level keys with JSON-ish kind tags,
// sorted for determinism.
func fieldList(m map[string]any) []any {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]any, 0, len(keys))
	for _, k := range keys {
		out = append(out, map[string]any{"name": k, "kind": kindOf(m[k])})
	}
	return out
}

func kindOf(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int64, uint64, float32, float64:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case nil:
		return "null"
	}
	return "unknown"
}

// csvPayload reads a comma-separated header line. It only engages for text
// with no structural characters that would have parsed as JSON or YAML maps.
func csvPayload(text string) (map[string]any, bool) {
	lines := strings.Split(text, "\n")
	header := strings.TrimSpace(lines[0])
	if !strings.Contains(header, ",") || strings.ContainsAny(header, "{}[]:") {
		return nil, false
	}

	var fields []any
	for _, name := range strings.Split(header, ",") {
		fields = append(fields, map[string]any{"name": strings.TrimSpace(name), "kind": ""})
	}

	rows := 0
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) != "" {
			rows++
		}
	}

	return map[string]any{
		"format":     "csv",
		"fields":     fields,
		"item_count": rows,
	}, true
}
