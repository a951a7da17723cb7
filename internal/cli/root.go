package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"walletd/internal/config"
)

// Options are the persistent flags shared by all commands.
type Options struct {
	ConfigPath string
	LogLevel   string
	Debug      bool
	Console    bool
}

// loadConfig reads the config file when given and applies flag overrides.
func (o *Options) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Defaults()
	if o.ConfigPath != "" {
		c, err := config.Load(o.ConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = c
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = o.LogLevel
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = o.Debug
	}
	return cfg, nil
}

// Execute runs the walletd command tree.
func Execute(ctx context.Context, args []string) error {
	root := NewRootCmd(os.Stdout)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// NewRootCmd builds the command tree writing command output to out.
func NewRootCmd(out io.Writer) *cobra.Command {
	opts := &Options{}
	root := &cobra.Command{
		Use:           "walletd",
		Short:         "Wallet event notifications and network registry",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", os.Getenv("WALLETD_CONFIG"), "Config file (.yaml, .yml, .json, .toml)")
	pf.StringVar(&opts.LogLevel, "log-level", "info", "Log level: debug|info|warn|error|off")
	pf.BoolVar(&opts.Debug, "debug", false, "Enable dispatcher diagnostics")
	pf.BoolVar(&opts.Console, "console", false, "Human readable log output")

	root.AddCommand(newServeCmd(opts), newNetworksCmd(opts))
	return root
}
