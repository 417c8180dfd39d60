package app

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/AktanAlmazovich/Fleet-manager/cmd/fleet-console/app/options"
	"github.com/AktanAlmazovich/Fleet-manager/pkg/log"
)

const commandDesc = `The fleet console fronts the remote fleet service for operators: it keeps
the canonical in-memory fleet snapshot, mediates every vehicle status
transition, records domain-event notifications, and serves the operator
REST API together with health and metrics endpoints.`

// NewConsoleCommand builds the root command of the fleet console.
func NewConsoleCommand(ctx context.Context) *cobra.Command {
	opts := options.NewConsoleOptions()
	var configFile string

	cmd := &cobra.Command{
		Use:          "fleet-console",
		Short:        "Launch the fleet operations console",
		Long:         commandDesc,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfigFile(configFile, opts); err != nil {
				return err
			}
			log.Init(opts.Log)

			if err := opts.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			cfg, err := opts.Config()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			server, err := cfg.NewConsoleServer(ctx)
			if err != nil {
				log.Error(err, "failed to create console server")
				return err
			}

			if err := server.Run(ctx); err != nil {
				log.Error(err, "console server exited with error")
				return err
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to a YAML configuration file.")
	opts.AddFlags(cmd.Flags())

	cmd.AddCommand(newVehiclesCommand(opts))

	return cmd
}

// loadConfigFile merges an optional YAML config file over the option
// defaults. Keys present in the file take precedence; anything not set in
// the file keeps its default or command-line value.
func loadConfigFile(path string, opts *options.ConsoleOptions) error {
	if path == "" {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := v.Unmarshal(opts); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		log.Info("config file changed, some settings apply on next restart", "file", e.Name)
	})
	v.WatchConfig()

	return nil
}
