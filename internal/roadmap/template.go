package roadmap

import (
	"fmt"

	"go.yaml.in/yaml/v3"
)

// Render serializes a (fixed) document back to YAML.
func Render(doc map[string]any) ([]byte, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("rendering roadmap: %w", err)
	}
	return data, nil
}

// templateText is the canonical starter roadmap. It passes validation
// without repairs.
const templateText = `metadata:
  title: Example Roadmap
  description: One sentence on what this roadmap delivers.
  version: "0.1"

milestones:
  - id: milestone-first-release
    title: First Release
    status: planned

epics: []

stories: []

tasks:
  - id: task-define-scope
    title: Define scope
    status: todo
    priority: medium
    milestone_id: milestone-first-release
  - id: task-draft-plan
    title: Draft plan
    status: todo
    priority: medium
    milestone_id: milestone-first-release
`

// Template emits a canonical roadmap document with placeholder values for
// onboarding.
func Template() []byte {
	return []byte(templateText)
}
