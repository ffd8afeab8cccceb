package root

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"progresstracker/app"
	"progresstracker/store"
)

const Version = "0.1.0"

var (
	badStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	goodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("70"))
	faintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	boldStyle  = lipgloss.NewStyle().Bold(true)
)

var rootCmd = &cobra.Command{
	Use:           "progress",
	Short:         "Local-first goal and habit tracker",
	Long:          "progress tracks personal goals, habits and daily progress in plain JSON files under your home directory.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newBoardCmd(),
		newAddCmd(),
		newHabitCmd(),
		newLogCmd(),
		newListCmd(),
		newStatsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, badStyle.Render("✗ "+err.Error()))
		os.Exit(1)
	}
}

// openService builds the service over the default data directory.
func openService() (*app.Service, error) {
	dir, err := store.DefaultDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data directory: %w", err)
	}
	return app.NewService(store.New(dir)), nil
}
