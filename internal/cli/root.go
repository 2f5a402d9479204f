// Package cli is the terminal front end of the console: the same upload
// and history handlers, rendered as lipgloss cards.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"insight-console/internal/backend"
	"insight-console/internal/config"
	"insight-console/internal/view"
)

type options struct {
	configPath string
	baseURL    string
}

func NewRootCommand() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:           "insightctl",
		Short:         "Upload documents to the insight service and browse past summaries",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "configs/config.toml", "config file")
	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "insight service base URL (overrides config)")
	rootCmd.AddCommand(newUploadCommand(opts))
	rootCmd.AddCommand(newHistoryCommand(opts))

	return rootCmd
}

func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type deps struct {
	client *backend.Client
	view   *view.Terminal
}

func (o *options) load() (*deps, error) {
	cfg, err := config.LoadFile(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}
	if o.baseURL != "" {
		cfg.Backend.BaseURL = o.baseURL
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return &deps{
		client: backend.NewClient(cfg.Backend.BaseURL, cfg.BackendTimeout()),
		view:   view.NewTerminal(loc),
	}, nil
}
