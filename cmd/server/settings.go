package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hovertrans/backend/internal/model"
)

// NewSettingsCmd creates the settings command group.
func NewSettingsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change translation settings",
	}
	cmd.AddCommand(newSettingsGetCmd(opts))
	cmd.AddCommand(newSettingsSetCmd(opts))
	return cmd
}

func printSettings(cmd *cobra.Command, s model.TranslationSettings) {
	fmt.Fprintf(cmd.OutOrStdout(), "targetLanguage: %s\n", s.TargetLanguage)
	fmt.Fprintf(cmd.OutOrStdout(), "autoTranslate:  %t\n", s.AutoTranslate)
}

func newSettingsGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the translation settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, opts.cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			printSettings(cmd, a.settings.GetSettings(ctx))
			return nil
		},
	}
}

func newSettingsSetCmd(opts *rootOptions) *cobra.Command {
	var (
		target string
		auto   bool
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update translation settings",
		Long: `Set changes only the settings given as flags.

Examples:
  hovertrans settings set --target ja
  hovertrans settings set --auto=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var patch model.SettingsPatch
			if cmd.Flags().Changed("target") {
				patch.TargetLanguage = &target
			}
			if cmd.Flags().Changed("auto") {
				patch.AutoTranslate = &auto
			}
			if patch.TargetLanguage == nil && patch.AutoTranslate == nil {
				return fmt.Errorf("nothing to change: use --target or --auto")
			}

			ctx := cmd.Context()
			a, err := newApp(ctx, opts.cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			settings, err := a.settings.SaveSettings(ctx, patch)
			if err != nil {
				return err
			}
			printSettings(cmd, settings)
			return nil
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "", "Target language code, e.g. ko, en, ja")
	cmd.Flags().BoolVar(&auto, "auto", true, "Translate selections automatically")
	return cmd
}
