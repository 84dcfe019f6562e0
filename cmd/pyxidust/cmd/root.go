package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"pyxidust/internal/app"
	"pyxidust/internal/logger"
)

var (
	configPath string
	logLevel   string
	prettyLog  bool
	svc        *app.Services
)

var rootCmd = &cobra.Command{
	Use:   "pyxidust",
	Short: "Serials, project folders and catalogs for GIS projects",
	Long: `pyxidust mints project serials, creates project folders from templates,
keeps the project catalog and indexes the maps, layers and layouts of
project artifacts.

Settings are read from config.yaml under the root (PYXIDUST_ROOT, default
~/pyxidust) or from the file given with --config.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		s, err := app.Load(configPath)
		if err != nil {
			return err
		}
		if logLevel != "" || prettyLog {
			level := s.Config.Log.Level
			if logLevel != "" {
				level = logLevel
			}
			s.Log = logger.New(logger.Config{Level: level, Pretty: prettyLog || s.Config.Log.Pretty})
		}
		svc = s
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if svc == nil {
			return nil
		}
		return svc.Close()
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if svc != nil {
			svc.Close()
		}
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.yaml")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&prettyLog, "pretty", false, "human readable logs")
}

// GetServices returns the services built from the configuration
func GetServices() *app.Services {
	return svc
}

// run wraps a command body so failures are logged and counted
func run(name string, fn func(ctx context.Context, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd.Context(), cmd, args)
		GetServices().Fail(name, err)
		return err
	}
}
