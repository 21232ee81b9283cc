// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jacobcy/parsekit/internal/parse"
	"github.com/jacobcy/parsekit/internal/roadmap"
	"github.com/jacobcy/parsekit/pkg/types"
)

var roadmapCmd = &cobra.Command{
	Use:   "roadmap",
	Short: "Validate, repair, and scaffold roadmap documents",
	Long: `Roadmap checks YAML roadmap documents against the expected structure
(metadata plus milestone, epic, story, and task sections) and applies safe
repairs: missing sections and IDs are synthesized, statuses and priorities
are normalized, and legacy singular references become id references.`,
}

// --- check subcommand ---

var roadmapCheckCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Validate a roadmap document and report repairs",
	Long: `Check validates a roadmap document and prints every error, warning,
and repair note. The document itself is not modified; the exit status is
non-zero when the document has errors.

Documents that are not readable YAML are retried once through the parser
before being rejected.`,
	Args: cobra.ExactArgs(1),
	RunE: runRoadmapCheck,
}

func runRoadmapCheck(cmd *cobra.Command, args []string) error {
	res, err := validateRoadmapFile(cmd, args[0])
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else {
		for _, m := range res.Messages {
			fmt.Println(m)
		}
		if res.Valid {
			fmt.Printf("valid (%d repair(s) available)\n", res.Repairs())
		} else {
			fmt.Println("invalid")
		}
	}

	if !res.Valid {
		return fmt.Errorf("roadmap %s failed validation", args[0])
	}
	return nil
}

// --- fix subcommand ---

var roadmapFixCmd = &cobra.Command{
	Use:   "fix [file]",
	Short: "Repair a roadmap document and write the fixed YAML",
	Long: `Fix validates a roadmap document, applies every safe repair, and
writes the repaired YAML to stdout or --output. Repair notes go to stderr.
Documents with errors the validator cannot repair are rejected unchanged.`,
	Args: cobra.ExactArgs(1),
	RunE: runRoadmapFix,
}

func runRoadmapFix(cmd *cobra.Command, args []string) error {
	res, err := validateRoadmapFile(cmd, args[0])
	if err != nil {
		return err
	}

	for _, m := range res.Messages {
		fmt.Fprintln(os.Stderr, m)
	}
	if !res.Valid {
		return fmt.Errorf("roadmap %s has errors that cannot be repaired", args[0])
	}

	out, err := roadmap.Render(res.Fixed)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(output, out, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s (%d repair(s))\n", output, res.Repairs())
	return nil
}

// --- template subcommand ---

var roadmapTemplateCmd = &cobra.Command{
	Use:   "template",
	Short: "Print a starter roadmap document",
	Long: `Template emits a canonical roadmap document with placeholder
metadata, one milestone, and two tasks. The output passes check without
repairs.`,
	RunE: runRoadmapTemplate,
}

func runRoadmapTemplate(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		_, err := os.Stdout.Write(roadmap.Template())
		return err
	}
	if err := os.WriteFile(output, roadmap.Template(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	fmt.Printf("Wrote %s\n", output)
	return nil
}

// --- shared helpers ---

// validateRoadmapFile reads path and runs the validator over it, wiring a
// parser as the fallback for documents YAML cannot read.
func validateRoadmapFile(cmd *cobra.Command, path string) (roadmap.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return roadmap.Result{}, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg, err := parserConfig(cmd)
	if err != nil {
		return roadmap.Result{}, err
	}
	fallback, err := parse.New(cfg, types.BackendAuto, types.ContentTypeRoadmap)
	if err != nil {
		return roadmap.Result{}, err
	}

	v := roadmap.NewValidatorWithFallback(fallback)
	return v.Validate(cmd.Context(), string(data)), nil
}

func init() {
	roadmapCheckCmd.Flags().Bool("json", false, "output the full validation result as JSON")
	roadmapFixCmd.Flags().String("output", "", "write the repaired document to a file instead of stdout")
	roadmapTemplateCmd.Flags().String("output", "", "write the template to a file instead of stdout")

	roadmapCmd.AddCommand(roadmapCheckCmd)
	roadmapCmd.AddCommand(roadmapFixCmd)
	roadmapCmd.AddCommand(roadmapTemplateCmd)

	rootCmd.AddCommand(roadmapCmd)
}
