// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacobcy/parsekit/internal/provider"
	"github.com/jacobcy/parsekit/pkg/types"
)

func TestDiagDirDisabled(t *testing.T) {
	d := newDiagDir(false, t.TempDir())
	assert.Empty(t, d.path)

	// No-op collectors must be safe to use.
	d.writeRequest([]provider.Message{{Role: "user", Content: "x"}})
	d.writeResponse("y")
}

func TestDiagDirArtifacts(t *testing.T) {
	base := t.TempDir()
	d := newDiagDir(true, base)
	require.NotEmpty(t, d.path)
	assert.True(t, strings.HasPrefix(filepath.Base(d.path), "parsekit-"))

	d.writeRequest([]provider.Message{{Role: "system", Content: "sys"}, {Role: "user", Content: "usr"}})
	d.writeResponse("raw output")
	d.writeError(assert.AnError)

	entries, err := os.ReadDir(d.path)
	require.NoError(t, err)

	var kinds []string
	for _, e := range entries {
		kinds = append(kinds, strings.SplitN(e.Name(), "_", 2)[0])
		assert.True(t, strings.HasSuffix(e.Name(), ".txt"))
	}
	assert.ElementsMatch(t, []string{"request", "response", "error"}, kinds)

	reqFile := entries[0]
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "request_") {
			reqFile = e
		}
	}
	content, err := os.ReadFile(filepath.Join(d.path, reqFile.Name()))
	require.NoError(t, err)
	assert.Contains(t, string(content), "[system]")
	assert.Contains(t, string(content), "usr")
}

func TestDiagDirUniquePerCall(t *testing.T) {
	base := t.TempDir()
	first := newDiagDir(true, base)
	second := newDiagDir(true, base)
	assert.NotEqual(t, first.path, second.path)
}

func TestCompletionParserWritesDiagnostics(t *testing.T) {
	base := t.TempDir()
	cfg := fakeConfig()
	cfg.Diagnostics = true
	cfg.DiagnosticsDir = base

	prov := &scriptedProvider{response: `{"title": "x"}`}
	c := NewCompletionParserWithProvider(prov, cfg)

	res := c.Parse(context.Background(), types.Request{
		Content:     "# x",
		ContentType: types.ContentTypeDocument,
	})
	require.True(t, res.Success, "error: %s", res.Error)

	dirs, err := os.ReadDir(base)
	require.NoError(t, err)
	require.Len(t, dirs, 1)

	files, err := os.ReadDir(filepath.Join(base, dirs[0].Name()))
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, strings.SplitN(f.Name(), "_", 2)[0])
	}
	assert.ElementsMatch(t, []string{"request", "response"}, names)
}

func TestCompletionParserDiagnosticsOff(t *testing.T) {
	base := t.TempDir()
	cfg := fakeConfig()
	cfg.DiagnosticsDir = base // set but not enabled

	prov := &scriptedProvider{response: `{"title": "x"}`}
	c := NewCompletionParserWithProvider(prov, cfg)

	res := c.Parse(context.Background(), types.Request{Content: "# x", ContentType: types.ContentTypeDocument})
	require.True(t, res.Success)

	dirs, err := os.ReadDir(base)
	require.NoError(t, err)
	assert.Empty(t, dirs, "no artifacts when diagnostics are disabled")
}
