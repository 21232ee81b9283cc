// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"testing"

	"github.com/jacobcy/parsekit/pkg/types"
)

func TestInferContentType(t *testing.T) {
	tests := []struct {
		path string
		want types.ContentType
	}{
		{"rules/style.mdc", types.ContentTypeRule},
		{"README.md", types.ContentTypeDocument},
		{"guide.markdown", types.ContentTypeDocument},
		{"notes.txt", types.ContentTypeGeneric},

		{"main.go", types.ContentTypeCode},
		{"script.py", types.ContentTypeCode},
		{"app.ts", types.ContentTypeCode},
		{"build.sh", types.ContentTypeCode},

		{"config.json", types.ContentTypeData},
		{"values.yaml", types.ContentTypeData},
		{"values.yml", types.ContentTypeData},
		{"settings.toml", types.ContentTypeData},
		{"rows.csv", types.ContentTypeData},
		{"feed.xml", types.ContentTypeData},

		// Path keywords override markdown/data extensions.
		{"docs/roadmap.yaml", types.ContentTypeRoadmap},
		{"plans/ROADMAP.md", types.ContentTypeRoadmap},
		{"团队/roadmap-2026.yml", types.ContentTypeRoadmap},
		{"flows/deploy-workflow.md", types.ContentTypeWorkflow},
		{"release-flow.yaml", types.ContentTypeWorkflow},

		// Keywords do not override code or unknown extensions.
		{"cmd/roadmap.go", types.ContentTypeCode},
		{"roadmap.bin", types.ContentTypeGeneric},

		{"archive.zip", types.ContentTypeGeneric},
		{"Makefile", types.ContentTypeGeneric},
		{"", types.ContentTypeGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := InferContentType(tt.path); got != tt.want {
				t.Errorf("InferContentType(%q) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}
