package cmd

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/anuvad-app/anuvad/internal/config"
	"github.com/anuvad-app/anuvad/internal/images"
	"github.com/anuvad-app/anuvad/internal/language"
	"github.com/anuvad-app/anuvad/internal/pipeline"
	"github.com/spf13/cobra"
)

func newTranslateCmd() *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "translate [image]",
		Short: "Extract and translate Hindi text from an image file",
		Args:  cobra.ExactArgs(1),
		Example: `  # Translate into English (default)
  anuvad translate photo.jpg

  # Translate into Bengali
  anuvad translate photo.jpg --lang bn`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			target, err := language.Parse(lang)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open image: %w", err)
			}
			defer f.Close()

			img, err := images.Read(f, filepath.Base(args[0]), mime.TypeByExtension(filepath.Ext(args[0])))
			if err != nil {
				return err
			}

			provider, model, err := newProvider(cfg)
			if err != nil {
				return err
			}

			p := pipeline.New(provider, model)
			p.SetSourceImage(img)
			p.SetTargetLanguage(target)

			snap, err := p.Run(cmd.Context())
			if err != nil {
				// Extracted text is still useful when only translation failed
				if snap.ExtractedText != "" {
					fmt.Fprintln(cmd.OutOrStdout(), snap.ExtractedText)
				}
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Extracted Hindi text:")
			fmt.Fprintln(out, snap.ExtractedText)
			fmt.Fprintln(out)
			fmt.Fprintf(out, "%s translation:\n", target.DisplayName())
			fmt.Fprintln(out, snap.TranslatedText)
			return nil
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "en", "Target language code (en or bn)")

	return cmd
}
