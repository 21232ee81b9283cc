package prompt

import "github.com/jacobcy/parsekit/pkg/types"

// builtinSystemPrompts holds the system prompt per content type. The system
// prompt fixes the assistant's role; the user template carries the contract.
var builtinSystemPrompts = map[types.ContentType]string{
	types.ContentTypeRule: `You are a rule-file parsing assistant. You read Markdown rule files
(front matter, title, sections, example blocks) and return their content as a
single JSON object. You never invent fields that are not present in the input.`,

	types.ContentTypeDocument: `You are a document parsing assistant. You read Markdown documents and
return their structure as a single JSON object. You preserve the document's
own wording; you never summarize unless a field asks for it.`,

	types.ContentTypeGeneric: `You are a text analysis assistant. You read arbitrary plain text and
return a small JSON object describing it. You never return anything except
the JSON object.`,

	types.ContentTypeCode: `You are a source-code analysis assistant. You read source files and
return their surface structure as a single JSON object. You do not execute,
rewrite, or critique the code.`,

	types.ContentTypeData: `You are a structured-data analysis assistant. You read serialized data
(JSON, YAML, TOML, CSV, XML) and describe its shape as a single JSON object.`,

	types.ContentTypeWorkflow: `You are a workflow parsing assistant. You read workflow definition
documents and return their stages and transitions as a single JSON object.`,

	types.ContentTypeRoadmap: `You are a roadmap parsing assistant. You read project roadmap documents
(usually YAML or Markdown) and return their milestones, epics, stories and
tasks as a single JSON object using only the allowed enumeration values.`,
}

// builtinTemplates holds the user prompt template per content type. Every
// template declares the exact output shape (field names, nesting, allowed
// enumerations) and demands raw JSON with nothing around it.
var builtinTemplates = map[types.ContentType]string{
	types.ContentTypeRule: `Parse the following rule file and extract its content into JSON.

Return ONLY a valid JSON object with no markdown formatting, no code fences,
and no explanation. The object must follow this schema exactly:
{
  "id": "",            // kebab-case identifier, from front matter or derived from the title
  "name": "",          // human-readable rule name
  "type": "",          // rule category from front matter, "" if absent
  "description": "",   // one-line description
  "globs": [],         // file glob strings the rule applies to
  "always_apply": false,
  "items": [],         // the rule's numbered or bulleted directives, one string each
  "examples": [],      // contents of <example> blocks, one string each
  "content": ""        // the full body text after front matter
}

If a field is not present in the input, use "" for strings, [] for arrays,
and false for booleans.

Source: {{.Context}}

Rule file:
{{.Content}}`,

	types.ContentTypeDocument: `Parse the following Markdown document into JSON.

Return ONLY a valid JSON object with no markdown formatting, no code fences,
and no explanation. The object must follow this schema exactly:
{
  "id": "",            // kebab-case identifier derived from the title
  "title": "",         // first level-1 heading, "" if none
  "description": "",   // first paragraph of body text
  "blocks": [          // one entry per heading, in document order
    {"level": 1, "heading": "", "text": ""}
  ]
}

"level" is the heading depth (number of leading # characters). "text" is the
body under that heading, verbatim.

Source: {{.Context}}

Document:
{{.Content}}`,

	types.ContentTypeGeneric: `Analyze the following text and describe it in JSON.

Return ONLY a valid JSON object with no markdown formatting, no code fences,
and no explanation. The object must follow this schema exactly:
{
  "title": "",    // a short title for the text, inferred if none is present
  "summary": "",  // two sentences at most
  "tags": []      // up to five lowercase, hyphenated topic labels
}

Source: {{.Context}}

Text:
{{.Content}}`,

	types.ContentTypeCode: `Analyze the following source file and describe its structure in JSON.

Return ONLY a valid JSON object with no markdown formatting, no code fences,
and no explanation. The object must follow this schema exactly:
{
  "language": "",  // the programming language
  "summary": "",   // one sentence: what the file provides
  "symbols": [     // exported/public functions and types, in source order
    {"kind": "", "name": ""}
  ],
  "imports": []    // imported module/package names, one string each
}

Source: {{.Context}}

Code:
{{.Content}}`,

	types.ContentTypeData: `Analyze the following serialized data and describe its shape in JSON.

Return ONLY a valid JSON object with no markdown formatting, no code fences,
and no explanation. The object must follow this schema exactly:
{
  "format": "",   // one of: json, yaml, toml, csv, xml, unknown
  "summary": "",  // one sentence: what the data appears to represent
  "fields": [     // top-level field or column names, in order
    {"name": "", "kind": ""}  // kind: string|number|boolean|object|array|null
  ]
}

Source: {{.Context}}

Data:
{{.Content}}`,

	types.ContentTypeWorkflow: `Parse the following workflow definition into JSON.

Return ONLY a valid JSON object with no markdown formatting, no code fences,
and no explanation. The object must follow this schema exactly:
{
  "id": "",           // kebab-case identifier derived from the name
  "name": "",         // workflow name
  "description": "",  // one-line description
  "stages": [         // ordered workflow stages
    {"id": "", "name": "", "description": ""}
  ],
  "transitions": [    // allowed stage-to-stage moves
    {"from": "", "to": "", "condition": ""}
  ]
}

If the document does not name transitions, derive them from stage order with
"condition": "".

Source: {{.Context}}

Workflow:
{{.Content}}`,

	types.ContentTypeRoadmap: `Parse the following roadmap document into JSON.

Return ONLY a valid JSON object with no markdown formatting, no code fences,
and no explanation. The object must follow this schema exactly:
{
  "metadata": {"title": "", "description": "", "version": ""},
  "milestones": [
    {"id": "", "title": "", "description": "", "status": "planned", "progress": 0}
  ],
  "epics": [
    {"id": "", "title": "", "description": "", "status": "planned", "priority": "medium"}
  ],
  "stories": [
    {"id": "", "title": "", "description": "", "status": "planned", "priority": "medium", "epic_id": ""}
  ],
  "tasks": [
    {"id": "", "title": "", "description": "", "status": "todo", "priority": "medium", "milestone_id": "", "story_id": "", "assignee": "", "tags": []}
  ]
}

Allowed "status" values: planned, in_progress, completed, blocked, except for
tasks, which use: todo, in_progress, completed, blocked.
Allowed "priority" values: low, medium, high, critical.
"id" values are kebab-case and prefixed with the entity kind, e.g.
"milestone-phase-one", "task-add-login". Omit none of the top-level keys;
use empty arrays for sections the document does not have.

Source: {{.Context}}

Roadmap:
{{.Content}}`,
}
