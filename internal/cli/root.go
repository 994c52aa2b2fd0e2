// Package cli defines Cobra command definitions for the tably CLI.
// This file contains the root command, shared wiring, and help output.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/tably-dev/tably/internal/api"
	"github.com/tably-dev/tably/internal/config"
	"github.com/tably-dev/tably/internal/log"
	"github.com/tably-dev/tably/internal/session"
	"github.com/tably-dev/tably/internal/tui"
	"github.com/tably-dev/tably/internal/tui/app"
)

var (
	serverURL string
	version   = "dev" // set via ldflags at build time
)

var rootCmd = &cobra.Command{
	Use:   "tably",
	Short: "Terminal client for the Tably restaurant service",
	Long: `Tably is a terminal client for QR-code table ordering.
Managers get a live dashboard over orders, the menu, QR codes, and
analytics. Customers can browse the menu and place an order for their
table with 'tably table'.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// When no subcommand is provided, launch the dashboard if TTY
		if !tui.IsTTY() {
			return tui.FallbackGuidance()
		}

		env, err := newEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		dashboard := app.New(env.Cfg, env.Client, env.Session, env.Events)
		return tui.Run(dashboard)
	},
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env bundles the wiring every command needs.
type env struct {
	Cfg     *config.Config
	Client  *api.Client
	Store   *session.Store
	Session *session.Manager
	Events  *log.Logger
}

// newEnv reads the config and builds the client, credential store, session
// manager, and event log. Missing config falls back to defaults.
func newEnv() (*env, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}

	cfg, err := config.ReadConfig(home)
	if err != nil {
		cfg = config.DefaultConfig()
	}

	baseURL := cfg.Server.BaseURL
	if serverURL != "" {
		baseURL = serverURL
	}

	client, err := api.NewClient(baseURL, time.Duration(cfg.Server.RequestTimeout)*time.Second)
	if err != nil {
		return nil, err
	}

	dataDir := config.Dir(home)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	events, err := log.NewLogger(home)
	if err != nil {
		return nil, err
	}
	client.SetEventLogger(events)

	store, err := session.NewStore(filepath.Join(dataDir, "session.db"))
	if err != nil {
		return nil, err
	}

	return &env{
		Cfg:     cfg,
		Client:  client,
		Store:   store,
		Session: session.NewManager(store, client, events),
		Events:  events,
	}, nil
}

// Close releases the credential store.
func (e *env) Close() {
	_ = e.Store.Close()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Override the configured server base URL")

	rootCmd.AddCommand(tableCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(ordersCmd)
	rootCmd.AddCommand(configCmd)
}
