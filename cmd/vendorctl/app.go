package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jacksmith/vendorctl/internal/api"
	"github.com/jacksmith/vendorctl/internal/cli"
	"github.com/jacksmith/vendorctl/internal/logging"
	"github.com/jacksmith/vendorctl/internal/model"
	"github.com/jacksmith/vendorctl/internal/ops"
	"github.com/jacksmith/vendorctl/internal/resource"
	"github.com/jacksmith/vendorctl/internal/session"
	"github.com/jacksmith/vendorctl/internal/storage"
)

// noSetup marks commands that run without config, session or API client.
const noSetup = "vendorctl.no-setup"

// app holds everything a command needs. It is built once per run by
// setupApp.
type app struct {
	cfg     *storage.Config
	store   *storage.Storage
	log     *charmlog.Logger
	session *session.Session
	backend ops.Backend
	busy    *resource.Busy
	spinner *cli.Spinner
	opts    resource.Options
	format  cli.Format
}

var theApp *app

// setupApp resolves config (flags over env over file over defaults),
// restores the session and builds the API client.
func setupApp(cmd *cobra.Command, args []string) error {
	switch cmd.Name() {
	case cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd, "help":
		return nil
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[noSetup] == "true" {
			return nil
		}
	}

	store, err := storage.Open(flagStateDir)
	if err != nil {
		return err
	}

	v := viper.New()
	pf := cmd.Root().PersistentFlags()
	v.BindPFlag("base_url", pf.Lookup("base-url"))
	v.BindPFlag("output", pf.Lookup("output"))
	v.BindPFlag("log.level", pf.Lookup("log-level"))
	cfg, err := store.LoadConfig(v, flagConfig)
	if err != nil {
		return err
	}

	if flagNoColor {
		cli.SetColorEnabled(false)
	}
	format, err := cli.ParseFormat(cfg.Output)
	if err != nil {
		return err
	}

	logger := logging.New(&logging.Config{Level: cfg.Log.Level, JSON: cfg.Log.JSON, Output: os.Stderr})
	ctx := logging.WithContext(cmd.Context(), logger)
	cmd.SetContext(ctx)

	var st session.Store = session.FileStore{Storage: store}
	if cfg.Session.Backend == storage.SessionBackendKeyring {
		st = session.KeyringStore{Account: keyringAccount(cfg.BaseURL)}
	}
	sess := session.New(st)
	if err := sess.Restore(ctx); err != nil {
		return err
	}

	client, err := api.New(api.Options{
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		RateLimit: cfg.RateLimit,
		Tokens:    sess,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	interactive := stdinInteractive()
	spin := cli.NewSpinner("Working...", format == cli.FormatTable && cli.IsTerminal(os.Stdout))
	busy := resource.NewBusy(spin.OnChange)

	theApp = &app{
		cfg:     cfg,
		store:   store,
		log:     logger,
		session: sess,
		backend: ops.NewBackend(client),
		busy:    busy,
		spinner: spin,
		format:  format,
		opts: resource.Options{
			Busy:    busy,
			Confirm: cli.NewConfirmer(flagYes, interactive),
			Notify:  cli.LogNotifier{Logger: logger},
		},
	}
	logger.Debug("config resolved", "base_url", cfg.BaseURL, "session", cfg.Session.Backend, "state_dir", store.Root())
	return nil
}

// closeApp stops the busy indicator and drops the per-run state.
func closeApp() {
	if theApp != nil && theApp.spinner != nil {
		theApp.spinner.Stop()
	}
	theApp = nil
}

// keyringAccount names the keyring entry after the API host so sessions
// against different backends do not collide.
func keyringAccount(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return baseURL
	}
	return u.Host
}

// authed returns the app for commands that need a signed-in vendor.
func authed() (*app, error) {
	if theApp == nil {
		return nil, errors.New("vendorctl is not configured")
	}
	if _, err := theApp.session.Require(); err != nil {
		return nil, err
	}
	return theApp, nil
}

// anon returns the app for commands that work without signing in.
func anon() (*app, error) {
	if theApp == nil {
		return nil, errors.New("vendorctl is not configured")
	}
	return theApp, nil
}

// write prints v in the configured output format. table builds the table
// form and may be nil.
func (a *app) write(v any, table func() *cli.Table) error {
	return cli.Write(os.Stdout, a.format, v, table)
}

// writeList is write for collections. An empty list prints empty instead
// of a bare header in table format.
func (a *app) writeList(v any, n int, empty string, table func() *cli.Table) error {
	if n == 0 && a.tableOutput() {
		fmt.Println(empty)
		return nil
	}
	return a.write(v, table)
}

// tableOutput reports whether human-readable output was requested.
func (a *app) tableOutput() bool {
	return a.format == cli.FormatTable
}

// parseID parses a record reference (7, #7, ORD-0007).
func parseID(kind, s string) (int, error) {
	id, err := model.ParseID(s)
	if err != nil {
		return 0, &cli.ValidationError{Field: kind + " id", Message: fmt.Sprintf("%q is not a valid ID", s)}
	}
	return id, nil
}

// cancelled turns a declined confirmation into a clean exit.
func cancelled(err error) error {
	if errors.Is(err, resource.ErrDeclined) {
		fmt.Println("Cancelled.")
		return nil
	}
	return err
}

// notFound maps an ops lookup miss to the CLI error type.
func notFound(err error) error {
	var nf *ops.NotFoundError
	if errors.As(err, &nf) {
		return &cli.NotFoundError{Type: nf.Kind, ID: fmt.Sprintf("%d", nf.ID)}
	}
	return err
}
