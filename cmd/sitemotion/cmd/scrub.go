package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ivlev/sitemotion/internal/director"
	"github.com/ivlev/sitemotion/internal/tui"
)

var scrubCmd = &cobra.Command{
	Use:   "scrub [scene]",
	Short: "Scroll through a scene interactively",
	Long: `Launch the scroll simulator. Arrow keys move the page, bound units show
the values they receive and transitions are logged as they fire.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScrub,
}

func init() {
	rootCmd.AddCommand(scrubCmd)
}

func runScrub(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	scene, _, err := loadScene(args)
	if err != nil {
		return err
	}
	bindings, rep, err := director.NewDirector(cfg.Seed).ScrollBindings(scene)
	if err != nil {
		return err
	}
	printSkipped(rep)

	m, err := tui.New(bindings, cfg.FPS, cfg.Scrub)
	if err != nil {
		return err
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
