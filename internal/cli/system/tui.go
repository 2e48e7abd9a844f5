package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/lunchwheel/internal/cli"
	"github.com/julianstephens/lunchwheel/internal/instance"
	"github.com/julianstephens/lunchwheel/internal/logger"
	"github.com/julianstephens/lunchwheel/internal/storage"
	"github.com/julianstephens/lunchwheel/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*storage.MemoryStore); !ok {
		lock, err := instance.Acquire(ctx.Store.GetConfigPath())
		if err != nil {
			return err
		}
		defer func() {
			if err := lock.Release(); err != nil {
				logger.Warn("Failed to release instance lock", "error", err)
			}
		}()
	}

	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	ctrl, err := ctx.Session(nil, ctx.Config.SpinDuration)
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewModel(ctrl), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("alas, there's been an error: %w", err)
	}
	return nil
}
