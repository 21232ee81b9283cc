package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/jacobcy/parsekit/internal/parse"
	"github.com/jacobcy/parsekit/internal/secrets"
	"github.com/jacobcy/parsekit/pkg/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a file or stdin into a typed structured record",
	Long: `Parse reads a file (or stdin when no file is given) and produces a
structured record for its content type. The type is inferred from the file
extension unless --type is set; --backend forces pattern extraction or the
completion pipeline instead of automatic selection.

The result is always a single record with success, payload, and error
fields, printed as JSON or YAML.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("type", "", "content type: rule, document, generic, code, data, workflow, roadmap")
	parseCmd.Flags().String("backend", "", "parsing backend: pattern or completion (default: auto)")
	parseCmd.Flags().String("format", "json", "output format: json or yaml")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	ctFlag, _ := cmd.Flags().GetString("type")
	backendFlag, _ := cmd.Flags().GetString("backend")
	format, _ := cmd.Flags().GetString("format")

	ct := types.ContentType(ctFlag)
	if ctFlag != "" && !ct.Valid() {
		return fmt.Errorf("unknown content type %q (known: %v)", ctFlag, types.KnownContentTypes())
	}

	cfg, err := parserConfig(cmd)
	if err != nil {
		return err
	}
	backend := types.Backend(backendFlag)

	var res types.Result
	if len(args) == 1 && args[0] != "-" {
		path := args[0]
		effective := ct
		if effective == "" {
			effective = parse.InferContentType(path)
		}
		p, err := parse.New(cfg, backend, effective)
		if err != nil {
			return err
		}
		res = p.ParseFile(cmd.Context(), path, ct)
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		effective := ct
		if effective == "" {
			effective = types.ContentTypeGeneric
		}
		p, err := parse.New(cfg, backend, effective)
		if err != nil {
			return err
		}
		res = p.Parse(cmd.Context(), types.Request{Content: string(data), ContentType: ct})
	}

	if err := writeResult(res, format); err != nil {
		return err
	}
	if !res.Success {
		return fmt.Errorf("parse failed: %s", res.Error)
	}
	return nil
}

// writeResult prints a parse result to stdout in the requested format.
func writeResult(res types.Result, format string) error {
	switch format {
	case "json", "":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "yaml":
		data, err := yaml.Marshal(res)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported format %q: use json or yaml", format)
	}
}

// parserConfig assembles the parser configuration. types.LoadConfigFrom
// supplies the default and environment layer through the global viper, so
// config-file values participate; flags win over configuration, and loaded
// secrets are the fallback for keys not set anywhere else.
func parserConfig(cmd *cobra.Command) (types.ParserConfig, error) {
	loaded, err := types.LoadConfigFrom(viper.GetViper())
	if err != nil {
		return types.ParserConfig{}, err
	}
	cfg := *loaded

	if kind, _ := cmd.Flags().GetString("provider"); kind != "" {
		cfg.Provider.Kind = types.ProviderKind(kind)
	}
	if model, _ := cmd.Flags().GetString("model"); model != "" {
		cfg.Provider.Model = model
	}
	if on, _ := cmd.Flags().GetBool("diagnostics"); on {
		cfg.Diagnostics = true
	}
	if dir, _ := cmd.Flags().GetString("diagnostics-dir"); dir != "" {
		cfg.DiagnosticsDir = dir
	}
	if cmd.Flags().Changed("secrets-dir") {
		cfg.SecretsDir, _ = cmd.Flags().GetString("secrets-dir")
	}

	cfg.Provider.APIKey = secretDefault(secrets.OpenAIKeyFile, cfg.Provider.APIKey)
	cfg.Provider.BaseURL = secretDefault("openai-base-url", cfg.Provider.BaseURL)
	return cfg, nil
}
