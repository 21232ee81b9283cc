package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacobcy/parsekit/internal/prompt"
	"github.com/jacobcy/parsekit/pkg/types"
)

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Inspect the prompt catalog",
	Long: `Prompts lists the content types the completion pipeline knows and
shows the exact system prompt and user template sent for each one.`,
}

var promptsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the content types in the prompt catalog",
	Run: func(cmd *cobra.Command, args []string) {
		for _, ct := range prompt.Types() {
			fmt.Println(ct)
		}
	},
}

var promptsShowCmd = &cobra.Command{
	Use:   "show [type]",
	Short: "Show the system prompt and user template for a content type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ct := types.ContentType(args[0])
		if !ct.Valid() {
			return fmt.Errorf("unknown content type %q (known: %v)", args[0], types.KnownContentTypes())
		}

		fmt.Println("--- system ---")
		fmt.Println(prompt.SystemPrompt(ct))
		fmt.Println("--- user template ---")
		fmt.Println(prompt.Template(ct))
		return nil
	},
}

func init() {
	promptsCmd.AddCommand(promptsListCmd)
	promptsCmd.AddCommand(promptsShowCmd)

	rootCmd.AddCommand(promptsCmd)
}
