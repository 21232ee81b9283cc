// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package local runs completions through a local model CLI such as ollama,
// for setups without a remote API key.
package local

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/jacobcy/parsekit/internal/provider"
	"github.com/jacobcy/parsekit/pkg/types"
)

const (
	defaultCommand = "ollama"
	defaultModel   = "llama3"
)

func init() {
	provider.Register(types.ProviderLocal, func(cfg types.ProviderConfig) (provider.Provider, error) {
		return New(cfg), nil
	})
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunPiped(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunPiped(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

var defaultExec executor = &osExecutor{}

// Runner invokes `<command> run <model> <prompt>` for each completion.
type Runner struct {
	command string
	model   string
	exec    executor
}

// New creates a runner from a provider config, defaulting to ollama.
func New(cfg types.ProviderConfig) *Runner {
	return newRunner(cfg, defaultExec)
}

func newRunner(cfg types.ProviderConfig, exec executor) *Runner {
	command := cfg.Command
	if command == "" {
		command = defaultCommand
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	return &Runner{command: command, model: model, exec: exec}
}

// Name implements provider.Provider.
func (r *Runner) Name() string { return "local" }

// Complete implements provider.Provider. The messages are joined into one
// prompt passed as the final argument to `<command> run <model>`; trimmed
// stdout is the completion.
func (r *Runner) Complete(ctx context.Context, messages []provider.Message) (string, error) {
	if _, err := r.exec.LookPath(r.command); err != nil {
		return "", fmt.Errorf("local provider: %s not found on PATH: %w", r.command, err)
	}

	var prompt strings.Builder
	for i, m := range messages {
		if i > 0 {
			prompt.WriteString("\n\n")
		}
		prompt.WriteString(m.Content)
	}

	var stdout, stderr bytes.Buffer
	err := r.exec.RunPiped(ctx, r.command, []string{"run", r.model, prompt.String()}, nil, &stdout, &stderr)
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("running %s run %s: %w: %s", r.command, r.model, err, msg)
		}
		return "", fmt.Errorf("running %s run %s: %w", r.command, r.model, err)
	}

	out := strings.TrimSpace(stdout.String())
	if out == "" {
		return "", fmt.Errorf("%s run %s produced no output", r.command, r.model)
	}
	return out, nil
}
