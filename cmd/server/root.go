package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hovertrans/backend/internal/config"
	"hovertrans/backend/internal/logger"
)

// rootOptions holds the configuration shared by every subcommand. It is
// filled by the root command's PersistentPreRunE.
type rootOptions struct {
	cfg config.Config
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Select-to-translate backend",
		Long: `hovertrans is the background service of a select-to-translate browser extension.
It translates selected text, keeps a capped history of saved translations and
stores the user's translation settings.

Configuration is read from HOVERTRANS_* environment variables; flags override them.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("data-dir", "", "Data directory (default: XDG data home)")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("log-format", "", "Log format: text, json, color")
	flags.String("store", "", "Storage backend: sqlite or redis")
	flags.String("redis-addr", "", "Redis address when --store=redis")
	flags.String("locale", "", "Locale for notifications and fallback messages")

	cmd.AddCommand(NewServeCmd(opts))
	cmd.AddCommand(NewTranslateCmd(opts))
	cmd.AddCommand(NewHistoryCmd(opts))
	cmd.AddCommand(NewSettingsCmd(opts))
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	overrides := []struct {
		flag string
		dst  *string
	}{
		{"data-dir", &cfg.DataDir},
		{"log-level", &cfg.LogLevel},
		{"log-format", &cfg.LogFormat},
		{"store", &cfg.Store},
		{"redis-addr", &cfg.RedisAddr},
		{"locale", &cfg.Locale},
	}
	dataDirChanged := false
	for _, ov := range overrides {
		f := cmd.Flags().Lookup(ov.flag)
		if f == nil || !f.Changed {
			continue
		}
		*ov.dst = f.Value.String()
		if ov.flag == "data-dir" {
			dataDirChanged = true
		}
	}
	if dataDirChanged && os.Getenv("HOVERTRANS_DB_PATH") == "" {
		cfg.DBPath = ""
	}
	if err := cfg.Finalize(); err != nil {
		return err
	}

	logger.Init(logger.ParseLevel(cfg.LogLevel), cfg.LogFormat)
	o.cfg = cfg
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
