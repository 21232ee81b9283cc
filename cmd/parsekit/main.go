// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the parsekit CLI.
// Implements the parsing, roadmap validation, and prompt catalog surfaces.
// See docs/ARCHITECTURE § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jacobcy/parsekit/internal/secrets"
	"github.com/jacobcy/parsekit/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from the secrets directory at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback
// otherwise. Configuration values always win over key files.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the parsekit CLI.
var rootCmd = &cobra.Command{
	Use:   "parsekit",
	Short: "Parse arbitrary content into typed structured records",
	Long: `parsekit turns rules, documents, code, data files, workflows, and
roadmaps into structured records. Content is parsed either by deterministic
pattern extraction or by a completion provider (OpenAI-compatible API or a
local model runner) whose responses are normalized into JSON objects.

Each surface is a subcommand: parse handles files and stdin, roadmap
validates and repairs roadmap documents, and prompts inspects the prompt
catalog.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := types.LoadConfigFrom(viper.GetViper())
		if err != nil {
			return err
		}
		dir := cfg.SecretsDir
		if cmd.Flags().Changed("secrets-dir") {
			dir, _ = cmd.Flags().GetString("secrets-dir")
		}
		s, err := secrets.Load(dir)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./parsekit.yaml or ~/.config/parsekit/config.yaml)")
	rootCmd.PersistentFlags().String("provider", "", "completion provider: openai or local")
	rootCmd.PersistentFlags().String("model", "", "model identifier for the completion provider")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets", "directory of API-key files")
	rootCmd.PersistentFlags().Bool("diagnostics", false, "write request/response/error logs for completion calls")
	rootCmd.PersistentFlags().String("diagnostics-dir", "", "base directory for diagnostic logs (default: system temp)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("parsekit")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "parsekit"))
		}
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
