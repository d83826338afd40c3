package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewTranslateCmd creates the translate command.
func NewTranslateCmd(opts *rootOptions) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "translate [text...]",
		Short: "Translate text from the command line",
		Long: `Translate sends text to the translation endpoint and prints the result.
The target language defaults to the stored translation settings.

Examples:
  hovertrans translate "hello world"
  hovertrans translate --target ja "good morning"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return fmt.Errorf("text is required")
			}

			ctx := cmd.Context()
			a, err := newApp(ctx, opts.cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			lang := target
			if lang == "" {
				lang = a.settings.GetSettings(ctx).TargetLanguage
			}

			translated, err := a.translator.Translate(ctx, text, lang)
			fmt.Fprintln(cmd.OutOrStdout(), a.catalog.DisplayText(translated, err))
			return nil
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "", "Target language (default from settings)")
	return cmd
}
