// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data model of the parsing framework:
// content types, parse requests and results, and configuration.
// See docs/ARCHITECTURE § Data Model.
package types

// ContentType selects the prompt text, extraction rule set, and default
// result shape for a piece of input. Unknown values fall back to generic
// behavior at each consumer.
type ContentType string

const (
	// ContentTypeRule is a Markdown rule file (.mdc): front matter,
	// title, sections, and <example> blocks.
	ContentTypeRule ContentType = "rule"

	// ContentTypeDocument is a general Markdown document.
	ContentTypeDocument ContentType = "document"

	// ContentTypeGeneric is unstructured plain text. The default.
	ContentTypeGeneric ContentType = "generic"

	// ContentTypeCode is source code.
	ContentTypeCode ContentType = "code"

	// ContentTypeData is structured data (JSON, YAML, TOML, CSV, XML).
	ContentTypeData ContentType = "data"

	// ContentTypeWorkflow is a workflow definition document.
	ContentTypeWorkflow ContentType = "workflow"

	// ContentTypeRoadmap is a project roadmap document, usually YAML.
	ContentTypeRoadmap ContentType = "roadmap"
)

// KnownContentTypes returns every content type the framework recognizes,
// in a stable order.
func KnownContentTypes() []ContentType {
	return []ContentType{
		ContentTypeRule,
		ContentTypeDocument,
		ContentTypeGeneric,
		ContentTypeCode,
		ContentTypeData,
		ContentTypeWorkflow,
		ContentTypeRoadmap,
	}
}

// Valid reports whether ct is one of the known content types.
func (ct ContentType) Valid() bool {
	switch ct {
	case ContentTypeRule, ContentTypeDocument, ContentTypeGeneric,
		ContentTypeCode, ContentTypeData, ContentTypeWorkflow, ContentTypeRoadmap:
		return true
	}
	return false
}

// Backend names a parsing backend preference.
type Backend string

const (
	// BackendAuto lets the factory pick: pattern for data-like types,
	// completion when a provider is configured, pattern otherwise.
	BackendAuto Backend = ""

	// BackendPattern forces deterministic regular-expression extraction.
	BackendPattern Backend = "pattern"

	// BackendCompletion forces the completion-provider pipeline.
	BackendCompletion Backend = "completion"
)
