package parse

import (
	"path/filepath"
	"strings"

	"github.com/jacobcy/parsekit/pkg/types"
)

// extensions maps file extensions to content types. An empty map disables
// the factory (input error); consumers treat unknown extensions as generic.
var extensions = map[string]types.ContentType{
	".mdc":      types.ContentTypeRule,
	".md":       types.ContentTypeDocument,
	".markdown": types.ContentTypeDocument,
	".txt":      types.ContentTypeGeneric,

	".go":   types.ContentTypeCode,
	".py":   types.ContentTypeCode,
	".js":   types.ContentTypeCode,
	".ts":   types.ContentTypeCode,
	".java": types.ContentTypeCode,
	".c":    types.ContentTypeCode,
	".cpp":  types.ContentTypeCode,
	".rs":   types.ContentTypeCode,
	".rb":   types.ContentTypeCode,
	".sh":   types.ContentTypeCode,

	".json": types.ContentTypeData,
	".yaml": types.ContentTypeData,
	".yml":  types.ContentTypeData,
	".toml": types.ContentTypeData,
	".csv":  types.ContentTypeData,
	".xml":  types.ContentTypeData,
}

// InferContentType maps a path to a content type by extension. Markdown and
// data files named for roadmaps or workflows override to those types; other
// unknown extensions are generic.
func InferContentType(path string) types.ContentType {
	lower := strings.ToLower(path)

	ct, ok := extensions[filepath.Ext(lower)]
	if !ok {
		ct = types.ContentTypeGeneric
	}

	if ct == types.ContentTypeData || ct == types.ContentTypeDocument {
		if strings.Contains(lower, "roadmap") {
			return types.ContentTypeRoadmap
		}
		if strings.Contains(lower, "workflow") || strings.Contains(lower, "flow") {
			return types.ContentTypeWorkflow
		}
	}

	return ct
}
