package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prabalesh/sysmon/internal/logger"
	"github.com/prabalesh/sysmon/internal/ui"
	"github.com/spf13/cobra"
)

// runTUI starts the sampling loop and the full-screen view. Quitting the view
// stops the loop.
func (r *RootCommand) runTUI(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	mon := r.newMonitor()
	errCh := make(chan error, 1)
	go func() { errCh <- mon.Run(ctx) }()

	app := ui.NewApp(mon.Updates(), ui.WithTheme(ui.ParseTheme(r.cfg.UI.Theme)))
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		logger.Error("terminal UI failed", "error", err)
		return fmt.Errorf("run ui: %w", err)
	}

	cancel()
	return <-errCh
}
