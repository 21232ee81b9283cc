// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package roadmap

import "fmt"

// sequenceSections are the list-shaped top-level sections, in document
// order. milestones is required; at least one of the other three must be
// present or is synthesized.
var sequenceSections = []string{"milestones", "epics", "stories", "tasks"}

// metadataKeys are top-level keys that belong inside the metadata section;
// the structure phase hoists strays.
var metadataKeys = []string{"title", "description", "version", "author", "owner", "created", "updated"}

// structurePhase verifies the top-level sections of doc, synthesizing
// missing ones with safe empty defaults and hoisting stray metadata keys.
// A section of the wrong container kind is an error and is left untouched.
func structurePhase(doc map[string]any) []Message {
	var msgs []Message

	meta, metaOK := doc["metadata"].(map[string]any)
	switch {
	case doc["metadata"] == nil:
		meta = map[string]any{}
		doc["metadata"] = meta
		metaOK = true
		msgs = append(msgs, Message{LevelInfo, "metadata", "synthesized empty metadata section"})
	case !metaOK:
		msgs = append(msgs, Message{LevelError, "metadata", fmt.Sprintf("must be a mapping, found %s", kindName(doc["metadata"]))})
	}

	if metaOK {
		for _, key := range metadataKeys {
			v, ok := doc[key]
			if !ok {
				continue
			}
			delete(doc, key)
			if _, exists := meta[key]; exists {
				msgs = append(msgs, Message{LevelWarning, key, "duplicates metadata." + key + "; dropped"})
				continue
			}
			meta[key] = v
			msgs = append(msgs, Message{LevelInfo, key, "hoisted into metadata"})
		}
	}

	present := 0
	for _, name := range sequenceSections {
		v, ok := doc[name]
		if !ok {
			continue
		}
		if _, isSeq := v.([]any); !isSeq {
			msgs = append(msgs, Message{LevelError, name, fmt.Sprintf("must be a sequence, found %s", kindName(v))})
			continue
		}
		if name != "milestones" {
			present++
		}
	}

	if _, ok := doc["milestones"]; !ok {
		doc["milestones"] = []any{}
		msgs = append(msgs, Message{LevelInfo, "milestones", "synthesized empty milestones section"})
	}

	if present == 0 {
		if _, ok := anyEntitySection(doc); !ok {
			doc["tasks"] = []any{}
			msgs = append(msgs, Message{LevelWarning, "tasks", "no tasks, stories, or epics section; synthesized empty tasks"})
		}
	}

	return msgs
}

// anyEntitySection reports whether doc carries at least one of the
// epic/story/task sections, regardless of kind.
func anyEntitySection(doc map[string]any) (string, bool) {
	for _, name := range []string{"epics", "stories", "tasks"} {
		if _, ok := doc[name]; ok {
			return name, true
		}
	}
	return "", false
}

// kindName names a decoded YAML value's container kind for messages.
func kindName(v any) string {
	switch v.(type) {
	case map[string]any:
		return "mapping"
	case []any:
		return "sequence"
	case nil:
		return "null"
	default:
		return "scalar"
	}
}
