// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves API keys from a directory of plain-text key files.
// Each file holds one secret: the filename is the key name, the trimmed file
// contents are the value. Configuration values always win over key files;
// the directory is a fallback for keys not set in the environment.
//
// Supported key files: openai-api-key, openai-base-url.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OpenAIKeyFile is the key-file name holding the remote provider API key.
const OpenAIKeyFile = "openai-api-key"

// Load reads every regular file in dir into a key → value map. A missing
// directory yields an empty map, not an error; dotfiles, subdirectories and
// empty values are skipped. Unreadable files produce a warning on stderr.
func Load(dir string) (map[string]string, error) {
	keys := map[string]string{}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return keys, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			keys[name] = value
		}
	}

	return keys, nil
}

// Key returns the value of a single named key file, or "" when the file or
// the directory does not exist.
func Key(dir, name string) string {
	keys, err := Load(dir)
	if err != nil {
		return ""
	}
	return keys[name]
}
