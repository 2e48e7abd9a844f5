package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/lunchwheel/internal/cli"
	"github.com/julianstephens/lunchwheel/internal/config"
	"github.com/julianstephens/lunchwheel/internal/constants"
	"github.com/julianstephens/lunchwheel/internal/logger"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting the existing store before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	dbPath := ctx.Store.GetConfigPath()
	if c.Force {
		if _, err := os.Stat(dbPath); err == nil {
			// Close first so the file isn't held open while deleting it
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing store: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing store: %w", err)
			}
			ctx.Printf("Deleted existing store at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing store: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}

	// Loading seeds the default category on a fresh store
	st, err := ctx.State().Load()
	if err != nil {
		return err
	}
	ctx.Printf("Initialized %s storage at: %s\n", constants.AppName, dbPath)
	ctx.Printf("  %d categories, %d history entries\n", len(st.Categories), len(st.FullHistory))

	if _, err := os.Stat(ctx.Config.Path); os.IsNotExist(err) {
		if err := config.Save(ctx.Config); err != nil {
			logger.Warn("Failed to write default config", "path", ctx.Config.Path, "error", err)
		} else {
			ctx.Printf("Wrote default config to: %s\n", ctx.Config.Path)
		}
	}
	return nil
}
