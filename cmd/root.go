package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "anuvad",
		Short: "Hindi image text extraction and translation tool",
		Long: `Anuvad extracts Hindi text from images using vision-capable LLMs and
translates it into English or Bengali.

It ships a web interface for interactive use and a CLI for one-shot runs.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.PersistentFlags().String("config", "", "Path to a YAML config file")

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newTranslateCmd())

	return cmd
}
