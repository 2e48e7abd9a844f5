package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/lunchwheel/internal/cli"
	"github.com/julianstephens/lunchwheel/internal/cli/backups"
	"github.com/julianstephens/lunchwheel/internal/cli/categories"
	"github.com/julianstephens/lunchwheel/internal/cli/lunches"
	"github.com/julianstephens/lunchwheel/internal/cli/system"
	"github.com/julianstephens/lunchwheel/internal/config"
	"github.com/julianstephens/lunchwheel/internal/constants"
	"github.com/julianstephens/lunchwheel/internal/errors"
	"github.com/julianstephens/lunchwheel/internal/logger"
	"github.com/julianstephens/lunchwheel/internal/storage"
	"github.com/julianstephens/lunchwheel/internal/utils"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"${config_path}"`
	DB      string `name:"db" help:"State file path. Overrides db_path from the config. Use :memory: for a throwaway session."`
	Debug   bool   `help:"Enable debug logging."`

	Init     system.InitCmd         `cmd:"" help:"Initialize lunchwheel storage."`
	Migrate  system.MigrateCmd      `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd       `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd          `cmd:"" help:"Launch the interactive roulette." default:"1"`
	Status   lunches.StatusCmd      `cmd:"" help:"Show today's pick, re-spins and the weekly menu."`
	Spin     lunches.SpinCmd        `cmd:"" help:"Spin for lunch in the terminal."`
	History  lunches.HistoryCmd     `cmd:"" help:"Show, share or clear lunch history."`
	Category categories.CategoryCmd `cmd:"" help:"Manage categories."`
	Item     categories.ItemCmd     `cmd:"" help:"Manage items within a category."`
	DebugCmd system.DebugCmd        `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage state backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Lunch roulette: spin for a category, then spin for lunch"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.DB != "" {
		cfg.DBPath = utils.ExpandHome(CLI.DB)
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	command := ctx.Command()
	if err := logger.Init(logger.Config{
		Debug:     cfg.Debug,
		ConfigDir: cfg.Dir(),
		Quiet:     command == "tui",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	store := storage.New(cfg.DBPath)
	defer store.Close()

	// init and doctor open the store themselves
	if command != "init" && command != "doctor" {
		if err := open(store, cfg.DBPath); err != nil {
			errors.Fatal(err)
		}
	}

	errors.Fatal(ctx.Run(cli.NewContext(cfg, store)))
}

// open loads the store, initializing it on first run
func open(store storage.Provider, path string) error {
	if path != constants.MemoryDBPath {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			logger.Info("No state found, initializing", "path", path)
			return store.Init()
		}
	}
	return store.Load()
}
