// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacobcy/parsekit/internal/provider"
	"github.com/jacobcy/parsekit/pkg/types"
)

// scriptedProvider plays back a canned completion and records invocations.
type scriptedProvider struct {
	response string
	err      error
	panics   bool

	calls    int
	messages []provider.Message
}

func (s *scriptedProvider) Name() string { return "scripted" }

func (s *scriptedProvider) Complete(_ context.Context, msgs []provider.Message) (string, error) {
	s.calls++
	s.messages = msgs
	if s.panics {
		panic("scripted panic")
	}
	return s.response, s.err
}

// lastFakeCfg captures the config most recently passed to the fake
// provider factory used by factory and option-override tests.
var lastFakeCfg types.ProviderConfig

func init() {
	provider.Register(types.ProviderKind("fake"), func(cfg types.ProviderConfig) (provider.Provider, error) {
		lastFakeCfg = cfg
		return &scriptedProvider{response: `{"ok": true}`}, nil
	})
}

func fakeConfig() types.ParserConfig {
	return types.ParserConfig{Provider: types.ProviderConfig{Kind: "fake", Model: "test-model"}}
}

func TestPatternParserDocument(t *testing.T) {
	p := NewPatternParser()

	res := p.Parse(context.Background(), types.Request{
		Content:     "# Title\n\n## Intro\nHello",
		ContentType: types.ContentTypeDocument,
	})

	require.True(t, res.Success, "error: %s", res.Error)
	assert.Equal(t, types.ContentTypeDocument, res.ContentType)
	assert.Equal(t, "Title", res.Payload["title"])

	headings := res.Payload["headings"].([]any)
	require.Len(t, headings, 2)
	assert.Equal(t, map[string]any{"level": 1, "text": "Title"}, headings[0])
	assert.Equal(t, map[string]any{"level": 2, "text": "Intro"}, headings[1])
}

func TestPatternParserFailure(t *testing.T) {
	p := NewPatternParser()

	res := p.Parse(context.Background(), types.Request{
		Content:     "not structured data at all",
		ContentType: types.ContentTypeData,
	})

	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
	assert.NotEmpty(t, res.Preview)
}

func TestCompletionParserSuccess(t *testing.T) {
	prov := &scriptedProvider{response: "```json\n{\"title\": \"Doc\"}\n```\nHope this helps!"}
	c := NewCompletionParserWithProvider(prov, fakeConfig())

	res := c.Parse(context.Background(), types.Request{
		Content:     "# Doc\n\nBody.",
		ContentType: types.ContentTypeDocument,
	})

	require.True(t, res.Success, "error: %s", res.Error)
	assert.Equal(t, map[string]any{"title": "Doc"}, res.Payload)
	assert.Equal(t, 1, prov.calls)

	require.Len(t, prov.messages, 2)
	assert.Equal(t, provider.RoleSystem, prov.messages[0].Role)
	assert.Equal(t, provider.RoleUser, prov.messages[1].Role)
	assert.Contains(t, prov.messages[1].Content, "# Doc", "user prompt embeds the input")
}

func TestCompletionParserProviderError(t *testing.T) {
	prov := &scriptedProvider{err: assert.AnError}
	c := NewCompletionParserWithProvider(prov, fakeConfig())

	res := c.Parse(context.Background(), types.Request{
		Content:     "## something",
		ContentType: types.ContentTypeRoadmap,
	})

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, assert.AnError.Error())
	assert.Empty(t, res.RawResponse)
}

func TestCompletionParserLightFallback(t *testing.T) {
	prov := &scriptedProvider{response: "I could not produce JSON, sorry."}
	c := NewCompletionParserWithProvider(prov, fakeConfig())

	res := c.Parse(context.Background(), types.Request{
		Content:     "# Fallback Title\n\nBody text.",
		ContentType: types.ContentTypeDocument,
	})

	require.True(t, res.Success, "prose types degrade to a light payload")
	assert.Equal(t, "Fallback Title", res.Payload["title"])
	assert.Equal(t, prov.response, res.RawResponse, "raw response kept for diagnosis")
	assert.Empty(t, res.Error)
}

func TestCompletionParserNormalizeFailure(t *testing.T) {
	prov := &scriptedProvider{response: "definitely not json"}
	c := NewCompletionParserWithProvider(prov, fakeConfig())

	res := c.Parse(context.Background(), types.Request{
		Content:     "metadata:\n  title: x\n",
		ContentType: types.ContentTypeRoadmap,
	})

	assert.False(t, res.Success, "data-like types keep the failure")
	assert.NotEmpty(t, res.Error)
	assert.Equal(t, "definitely not json", res.RawResponse)
	assert.NotEmpty(t, res.Preview)
}

func TestCompletionParserPanicRecovery(t *testing.T) {
	prov := &scriptedProvider{panics: true}
	c := NewCompletionParserWithProvider(prov, fakeConfig())

	res := c.Parse(context.Background(), types.Request{
		Content:     "x",
		ContentType: types.ContentTypeGeneric,
	})

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "internal error")
	assert.Contains(t, res.Error, "scripted panic")
}

func TestCompletionParserOptionOverrides(t *testing.T) {
	base := &scriptedProvider{response: `{"ok": true}`}
	c := NewCompletionParserWithProvider(base, fakeConfig())

	res := c.Parse(context.Background(), types.Request{
		Content:     "text",
		ContentType: types.ContentTypeGeneric,
		Options:     map[string]string{"model": "alt-model", "temperature": "0.9"},
	})

	require.True(t, res.Success, "error: %s", res.Error)
	assert.Equal(t, 0, base.calls, "overrides construct a one-off provider")
	assert.Equal(t, "alt-model", lastFakeCfg.Model)
	assert.Equal(t, 0.9, lastFakeCfg.Temperature)
}

func TestCompletionParserBadOption(t *testing.T) {
	c := NewCompletionParserWithProvider(&scriptedProvider{}, fakeConfig())

	res := c.Parse(context.Background(), types.Request{
		Content:     "text",
		ContentType: types.ContentTypeGeneric,
		Options:     map[string]string{"temperature": "hot"},
	})

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "invalid temperature")
}

func TestParseFileMissing(t *testing.T) {
	prov := &scriptedProvider{response: `{"ok": true}`}
	c := NewCompletionParserWithProvider(prov, fakeConfig())

	res := c.ParseFile(context.Background(), filepath.Join(t.TempDir(), "absent.md"), "")

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "reading")
	assert.Equal(t, 0, prov.calls, "provider never invoked on input errors")
	require.NotNil(t, res.FileInfo)
	assert.Equal(t, "absent.md", res.FileInfo.Name)
}

func TestParseFileInvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "binary.md")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0xfd}, 0o644))

	prov := &scriptedProvider{response: `{"ok": true}`}
	c := NewCompletionParserWithProvider(prov, fakeConfig())

	res := c.ParseFile(context.Background(), path, "")

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "not valid UTF-8")
	assert.Equal(t, 0, prov.calls)
}

func TestParseFileInfersTypeAndProvenance(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "style.mdc")
	content := "---\ndescription: demo\n---\n# Style\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	res := NewPatternParser().ParseFile(context.Background(), path, "")

	require.True(t, res.Success, "error: %s", res.Error)
	assert.Equal(t, types.ContentTypeRule, res.ContentType)
	require.NotNil(t, res.FileInfo)
	assert.Equal(t, path, res.FileInfo.Path)
	assert.Equal(t, "style.mdc", res.FileInfo.Name)
	assert.Equal(t, ".mdc", res.FileInfo.Extension)
	assert.Equal(t, dir, res.FileInfo.Directory)
}

func TestResolveType(t *testing.T) {
	tests := []struct {
		name string
		req  types.Request
		want types.ContentType
	}{
		{"explicit wins", types.Request{ContentType: types.ContentTypeRule, Context: "x.json"}, types.ContentTypeRule},
		{"path context inferred", types.Request{Context: "notes/plan.yaml"}, types.ContentTypeData},
		{"plain context is generic", types.Request{Context: "pasted from chat"}, types.ContentTypeGeneric},
		{"empty request is generic", types.Request{}, types.ContentTypeGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveType(tt.req); got != tt.want {
				t.Errorf("resolveType = %s, want %s", got, tt.want)
			}
		})
	}
}
