// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package roadmap

import (
	"fmt"
	"strings"

	"github.com/jacobcy/parsekit/internal/slug"
)

var (
	entityStatuses = []string{"planned", "in_progress", "completed", "blocked"}
	taskStatuses   = []string{"todo", "in_progress", "completed", "blocked"}
	priorities     = []string{"low", "medium", "high", "critical"}
)

// statusAliases maps common spellings onto canonical statuses.
var statusAliases = map[string]string{
	"done":        "completed",
	"complete":    "completed",
	"finished":    "completed",
	"wip":         "in_progress",
	"in-progress": "in_progress",
	"in progress": "in_progress",
	"doing":       "in_progress",
}

// priorityAliases maps common spellings onto canonical priorities.
var priorityAliases = map[string]string{
	"p0":      "critical",
	"urgent":  "critical",
	"highest": "critical",
	"p1":      "high",
	"p2":      "medium",
	"normal":  "medium",
	"p3":      "low",
}

// refSpec is a legacy singular reference and its id-reference replacement.
type refSpec struct {
	legacy  string
	idKey   string
	refKind string
}

// kindSpec bundles the fixed expectations for one entity kind.
type kindSpec struct {
	kind          string
	section       string
	statusEnum    []string
	statusDefault string
	hasPriority   bool
	refs          []refSpec
}

var kindSpecs = []kindSpec{
	{kind: "milestone", section: "milestones", statusEnum: entityStatuses, statusDefault: "planned"},
	{kind: "epic", section: "epics", statusEnum: entityStatuses, statusDefault: "planned"},
	{kind: "story", section: "stories", statusEnum: entityStatuses, statusDefault: "planned",
		refs: []refSpec{{legacy: "epic", idKey: "epic_id", refKind: "epic"}}},
	{kind: "task", section: "tasks", statusEnum: taskStatuses, statusDefault: "todo", hasPriority: true,
		refs: []refSpec{
			{legacy: "milestone", idKey: "milestone_id", refKind: "milestone"},
			{legacy: "story", idKey: "story_id", refKind: "story"},
		}},
}

// contentPhase repairs every entity of every list-shaped section: required
// fields, ID synthesis, enum normalization, and legacy reference rewriting.
// Sections the structure phase flagged as the wrong kind are skipped here.
func contentPhase(doc map[string]any) []Message {
	var msgs []Message
	for _, spec := range kindSpecs {
		seq, ok := doc[spec.section].([]any)
		if !ok {
			continue
		}
		for i, item := range seq {
			entity, ok := item.(map[string]any)
			if !ok {
				msgs = append(msgs, Message{LevelError, path(spec.section, i, ""), fmt.Sprintf("must be a mapping, found %s", kindName(item))})
				continue
			}
			msgs = append(msgs, fixEntity(entity, spec, i)...)
		}
	}
	return msgs
}

func path(section string, idx int, field string) string {
	p := fmt.Sprintf("%s[%d]", section, idx)
	if field != "" {
		p += "." + field
	}
	return p
}

// fixEntity applies per-entity repairs in place. Synthesized IDs are a pure
// function of (title-or-index, kind), so repeated runs agree byte for byte.
func fixEntity(e map[string]any, spec kindSpec, idx int) []Message {
	var msgs []Message

	title, isString := e["title"].(string)
	if !isString {
		if v, present := e["title"]; present {
			msgs = append(msgs, Message{LevelWarning, path(spec.section, idx, "title"), fmt.Sprintf("must be a string, found %s", kindName(v))})
		} else {
			msgs = append(msgs, Message{LevelWarning, path(spec.section, idx, "title"), "missing title"})
		}
		e["title"] = ""
		title = ""
	}

	if id, _ := e["id"].(string); id == "" {
		id = slug.WithKind(spec.kind, title)
		if slug.Make(title) == "" {
			id = fmt.Sprintf("%s-%d", spec.kind, idx+1)
		}
		e["id"] = id
		msgs = append(msgs, Message{LevelInfo, path(spec.section, idx, "id"), "synthesized " + id})
	}

	msgs = append(msgs, normalizeEnum(e, "status", spec.statusEnum, spec.statusDefault, statusAliases, spec.section, idx, true)...)

	if spec.hasPriority {
		msgs = append(msgs, normalizeEnum(e, "priority", priorities, "medium", priorityAliases, spec.section, idx, true)...)
	} else if _, ok := e["priority"]; ok {
		msgs = append(msgs, normalizeEnum(e, "priority", priorities, "medium", priorityAliases, spec.section, idx, false)...)
	}

	for _, ref := range spec.refs {
		msgs = append(msgs, rewriteRef(e, ref, spec.section, idx)...)
	}

	return msgs
}

// normalizeEnum canonicalizes e[field] against enum. Known aliases map with
// an info message; unrecognized values become def with a warning; a missing
// field becomes def with an info message when defaultMissing is set.
func normalizeEnum(e map[string]any, field string, enum []string, def string, aliases map[string]string, section string, idx int, defaultMissing bool) []Message {
	raw, present := e[field]
	if !present || raw == nil {
		if !defaultMissing {
			return nil
		}
		e[field] = def
		return []Message{{LevelInfo, path(section, idx, field), "defaulted to " + def}}
	}

	s, ok := raw.(string)
	if !ok {
		e[field] = def
		return []Message{{LevelWarning, path(section, idx, field), fmt.Sprintf("%v is not a valid %s; defaulted to %s", raw, field, def)}}
	}

	cleaned := strings.ToLower(strings.TrimSpace(s))
	if contains(enum, cleaned) {
		if cleaned != s {
			e[field] = cleaned
			return []Message{{LevelInfo, path(section, idx, field), fmt.Sprintf("normalized %q to %q", s, cleaned)}}
		}
		return nil
	}

	if target, ok := aliases[cleaned]; ok && contains(enum, target) {
		e[field] = target
		return []Message{{LevelInfo, path(section, idx, field), fmt.Sprintf("normalized %q to %q", s, target)}}
	}

	e[field] = def
	return []Message{{LevelWarning, path(section, idx, field), fmt.Sprintf("%q is not one of %s; defaulted to %s", s, strings.Join(enum, "/"), def)}}
}

// rewriteRef converts a legacy singular reference (task "milestone", story
// "epic") into its id-reference key using the shared slug rule, dropping
// the legacy key. Values already shaped like an id keep their prefix.
func rewriteRef(e map[string]any, ref refSpec, section string, idx int) []Message {
	raw, present := e[ref.legacy]
	if !present {
		return nil
	}

	delete(e, ref.legacy)

	if _, exists := e[ref.idKey]; exists {
		return []Message{{LevelWarning, path(section, idx, ref.legacy), "dropped in favor of existing " + ref.idKey}}
	}

	name := fmt.Sprint(raw)
	if raw == nil || strings.TrimSpace(name) == "" {
		return []Message{{LevelWarning, path(section, idx, ref.legacy), "empty reference dropped"}}
	}
	id := slug.Make(name)
	if !strings.HasPrefix(id, ref.refKind+"-") {
		id = slug.WithKind(ref.refKind, name)
	}
	e[ref.idKey] = id
	return []Message{{LevelInfo, path(section, idx, ref.legacy), fmt.Sprintf("rewritten to %s: %s", ref.idKey, id)}}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
