package main

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/reunite-ai/reunite/internal/config"
	"github.com/reunite-ai/reunite/internal/logger"
	"github.com/reunite-ai/reunite/internal/tui"
	"github.com/reunite-ai/reunite/internal/tui/theme"
)

const (
	logoText1 = "█▀█ █▀▀ █ █ █▄ █ █ ▀█▀ █▀▀"
	logoText2 = "█▀▄ ██▄ █▄█ █ ▀█ █  █  ██▄"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "reunite",
	Short: "Terminal client for the Reunite lost-and-found platform",
	RunE:  runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	return tui.Run(cfg)
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.NewCatppuccinMocha()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Secondary)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	// Set Long description with logo
	rootCmd.Long = renderLogo() + `

reunite is the terminal client for a community lost-and-found platform.
Browse recent reports, file a lost or found item through a five-step
wizard with photos and a map pin, and review AI match candidates, all
from a full-screen TUI built on Bubbletea v2.

Running reunite with no subcommand opens the browser.`

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(doctorCmd)
}
