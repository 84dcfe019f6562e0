package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"pyxidust/internal/adapters/tui"
	"pyxidust/internal/logger"
)

// TUILogFile receives the logs while the terminal is taken by the TUI
const TUILogFile = "pyxidust.log"

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse projects and the catalog interactively",
	Args:  cobra.NoArgs,
	RunE: run("tui", func(ctx context.Context, cmd *cobra.Command, args []string) error {
		svc := GetServices()

		f, err := os.OpenFile(filepath.Join(svc.Config.Root, TUILogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		prev := svc.Log
		defer func() { svc.Log = prev }()
		svc.Log = logger.New(logger.Config{Level: svc.Config.Log.Level, Output: f})

		p := tea.NewProgram(tui.NewApp(svc, svc.Opener), tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("tui: %w", err)
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
