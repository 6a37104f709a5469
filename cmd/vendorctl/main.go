// Package main is the entry point for the vendorctl CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/jacksmith/vendorctl/internal/cli"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	closeApp()
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vendorctl",
	Short: "vendorctl - manage your store from the terminal",
	Long: `vendorctl is a vendor dashboard for the marketplace API. It lists,
searches and edits your products, categories, orders, inventory and
payout details, and reports on your sales.

Sign in first with 'vendorctl login'. The session is kept in the state
directory (or the OS keyring with session.backend: keyring) until you
run 'vendorctl logout'.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var (
	flagConfig   string
	flagStateDir string
	flagBaseURL  string
	flagOutput   string
	flagYes      bool
	flagLogLevel string
	flagNoColor  bool
)

func init() {
	rootCmd.PersistentPreRunE = setupApp
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate("vendorctl version {{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "config file (default .vendorctl.yaml or <state-dir>/config.yaml)")
	pf.StringVar(&flagStateDir, "state-dir", "", "state directory (default ~/.config/vendorctl)")
	pf.StringVar(&flagBaseURL, "base-url", "", "API origin, e.g. https://shop.example.com")
	pf.StringVarP(&flagOutput, "output", "o", "", "output format: table, json or yaml")
	pf.BoolVarP(&flagYes, "yes", "y", false, "answer yes to every confirmation")
	pf.StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.BoolVar(&flagNoColor, "no-color", false, "disable colored output")
	pf.MarkHidden("state-dir")
	rootCmd.RegisterFlagCompletionFunc("output", completeChoices(cli.Formats))
	rootCmd.RegisterFlagCompletionFunc("log-level", completeChoices([]string{"debug", "info", "warn", "error"}))
}
