package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"calnotes/internal/logs"
	"calnotes/internal/tui"
)

func addUI(topLevel *cobra.Command, ro *rootOptions) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the calendar (the default when no command is given).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(ro)
		},
	}
	topLevel.AddCommand(cmd)
}

func runUI(ro *rootOptions) error {
	return ro.withSession(func(s *session) error {
		logs.Logger.Println("Starting app in TUI mode")
		appModel := tui.NewAppModel(s.cfg, s.store, s.persister, nil)
		p := tea.NewProgram(appModel, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("run ui: %w", err)
		}
		return nil
	})
}
