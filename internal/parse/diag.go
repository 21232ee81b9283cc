// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jacobcy/parsekit/internal/provider"
)

// diagDir collects the request/response/error artifacts of one completion
// call. Writes are observational: they never affect the returned result,
// and write failures are silently dropped.
type diagDir struct {
	path string
}

// newDiagDir creates the per-call directory parsekit-<unix>-<uuid8> under
// base (the system temporary directory when base is empty). Disabled
// diagnostics or a failed mkdir yield a no-op collector.
func newDiagDir(enabled bool, base string) diagDir {
	if !enabled {
		return diagDir{}
	}
	if base == "" {
		base = os.TempDir()
	}

	name := fmt.Sprintf("parsekit-%d-%s", time.Now().Unix(), uuid.NewString()[:8])
	path := filepath.Join(base, name)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return diagDir{}
	}
	return diagDir{path: path}
}

func (d diagDir) write(kind, text string) {
	if d.path == "" {
		return
	}
	name := fmt.Sprintf("%s_%d.txt", kind, time.Now().Unix())
	_ = os.WriteFile(filepath.Join(d.path, name), []byte(text), 0o644)
}

func (d diagDir) writeRequest(messages []provider.Message) {
	if d.path == "" {
		return
	}
	var b strings.Builder
	for _, m := range messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	d.write("request", b.String())
}

func (d diagDir) writeResponse(raw string) { d.write("response", raw) }

func (d diagDir) writeError(err error) { d.write("error", err.Error()) }
