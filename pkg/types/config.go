package types

import (
	"strings"

	"github.com/spf13/viper"
)

// ProviderKind identifies a completion provider implementation.
type ProviderKind string

const (
	// ProviderOpenAI is the remote OpenAI-compatible chat-completions API.
	ProviderOpenAI ProviderKind = "openai"

	// ProviderLocal runs a local model through an executable such as ollama.
	ProviderLocal ProviderKind = "local"
)

// ProviderConfig holds settings for a single completion provider.
type ProviderConfig struct {
	// Kind selects the provider implementation: openai or local.
	Kind ProviderKind `json:"kind" yaml:"kind" mapstructure:"kind"`

	// APIKey authenticates remote providers. Falls back to the
	// .secrets/ directory when empty (see internal/secrets).
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// BaseURL overrides the remote API endpoint. Empty uses the
	// provider default.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" mapstructure:"base_url"`

	// Model is the model identifier (e.g. "gpt-4o", "llama3").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// Command is the executable name for the local provider (default "ollama").
	Command string `json:"command,omitempty" yaml:"command,omitempty" mapstructure:"command"`

	// Temperature is the sampling temperature for remote completions.
	Temperature float64 `json:"temperature" yaml:"temperature" mapstructure:"temperature"`

	// MaxTokens bounds the completion length for remote providers.
	MaxTokens int `json:"max_tokens" yaml:"max_tokens" mapstructure:"max_tokens"`

	// MaxRetries caps network retry attempts for the remote client (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`

	// TimeoutSecs is the HTTP client timeout for remote providers.
	TimeoutSecs int `json:"timeout_secs" yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// Configured reports whether the config names a usable provider.
func (p ProviderConfig) Configured() bool {
	return p.Kind != ""
}

// ParserConfig groups everything the parser factory needs.
type ParserConfig struct {
	// Provider is the completion provider used by the completion backend.
	Provider ProviderConfig `json:"provider" yaml:"provider" mapstructure:"provider"`

	// Diagnostics enables request/response/error logs for completion calls.
	Diagnostics bool `json:"diagnostics" yaml:"diagnostics" mapstructure:"diagnostics"`

	// DiagnosticsDir is the base directory for per-call diagnostic
	// directories. Empty uses the system temporary directory.
	DiagnosticsDir string `json:"diagnostics_dir,omitempty" yaml:"diagnostics_dir,omitempty" mapstructure:"diagnostics_dir"`

	// SecretsDir is scanned for API-key files (default ".secrets").
	SecretsDir string `json:"secrets_dir,omitempty" yaml:"secrets_dir,omitempty" mapstructure:"secrets_dir"`
}

// LoadConfig reads configuration from PARSEKIT_-prefixed environment
// variables with sensible defaults.
func LoadConfig() (*ParserConfig, error) {
	return LoadConfigFrom(viper.New())
}

// LoadConfigFrom applies the PARSEKIT_ environment bindings and the default
// table to v, then unmarshals the result. The CLI passes its global viper so
// config-file values layer underneath environment overrides; other callers
// go through LoadConfig.
func LoadConfigFrom(v *viper.Viper) (*ParserConfig, error) {
	v.SetEnvPrefix("PARSEKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("provider.kind", "")
	v.SetDefault("provider.api_key", "")
	v.SetDefault("provider.base_url", "")
	v.SetDefault("provider.model", "")
	v.SetDefault("provider.command", "ollama")
	v.SetDefault("provider.temperature", 0.2)
	v.SetDefault("provider.max_tokens", 4096)
	v.SetDefault("provider.max_retries", 3)
	v.SetDefault("provider.timeout_secs", 120)
	v.SetDefault("diagnostics", false)
	v.SetDefault("diagnostics_dir", "")
	v.SetDefault("secrets_dir", ".secrets")

	// AutomaticEnv alone does not surface nested keys through Unmarshal;
	// bind them explicitly.
	for key, env := range map[string]string{
		"provider.kind":         "PARSEKIT_PROVIDER_KIND",
		"provider.api_key":      "PARSEKIT_PROVIDER_API_KEY",
		"provider.base_url":     "PARSEKIT_PROVIDER_BASE_URL",
		"provider.model":        "PARSEKIT_PROVIDER_MODEL",
		"provider.command":      "PARSEKIT_PROVIDER_COMMAND",
		"provider.temperature":  "PARSEKIT_PROVIDER_TEMPERATURE",
		"provider.max_tokens":   "PARSEKIT_PROVIDER_MAX_TOKENS",
		"provider.max_retries":  "PARSEKIT_PROVIDER_MAX_RETRIES",
		"provider.timeout_secs": "PARSEKIT_PROVIDER_TIMEOUT_SECS",
		"diagnostics":           "PARSEKIT_DIAGNOSTICS",
		"diagnostics_dir":       "PARSEKIT_DIAGNOSTICS_DIR",
		"secrets_dir":           "PARSEKIT_SECRETS_DIR",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	var cfg ParserConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
