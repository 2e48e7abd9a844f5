package system

import (
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/lunchwheel/internal/backup"
	"github.com/julianstephens/lunchwheel/internal/cli"
	"github.com/julianstephens/lunchwheel/internal/constants"
	"github.com/julianstephens/lunchwheel/internal/instance"
	"github.com/julianstephens/lunchwheel/internal/logger"
	"github.com/julianstephens/lunchwheel/internal/storage"
	"github.com/julianstephens/lunchwheel/internal/utils"
)

type DoctorCmd struct{}

type check struct {
	name     string
	run      func(ctx *cli.Context) error
	needsDB  bool
	warnOnly bool
}

var checks = []check{
	{name: "Store reachable", run: checkStoreReachable},
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Stored data", run: checkStoredData, needsDB: true},
	{name: "Timezone", run: checkTimezone},
	{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
	{name: "Instance lock", run: checkInstanceLock, warnOnly: true},
	{name: "Log file", run: checkLogFile, warnOnly: true},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := true

	for i, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (store not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
			if i == 0 {
				dbReachable = false
			}
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}

	if p, ok := ctx.Store.(storage.DBProvider); ok {
		db := p.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	migrator, ok := ctx.Store.(storage.Migrator)
	if !ok {
		// File and memory stores have no schema
		return nil
	}

	status, err := migrator.SchemaStatus()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if status.Current > status.Latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", status.Current, status.Latest)
	}
	if !status.UpToDate() {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d; run '%s migrate'", status.Current, status.Latest, constants.AppName)
	}
	return nil
}

func checkStoredData(ctx *cli.Context) error {
	bad, err := ctx.State().Check()
	if err != nil {
		return err
	}
	if len(bad) > 0 {
		return fmt.Errorf("malformed values in %s; reset with '%s debug reset-key <key>'", strings.Join(bad, ", "), constants.AppName)
	}
	return nil
}

func checkTimezone(ctx *cli.Context) error {
	if !utils.ValidateTimezone(ctx.Config.Timezone) {
		return fmt.Errorf("invalid timezone %q", ctx.Config.Timezone)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*storage.MemoryStore); ok {
		return nil
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with '%s backup create'", constants.AppName)
	}
	return nil
}

func checkInstanceLock(ctx *cli.Context) error {
	path := instance.LockPath(ctx.Store.GetConfigPath())
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("lockfile present at %s; another session may be running", path)
	}
	return nil
}

func checkLogFile(ctx *cli.Context) error {
	path := logger.Path(ctx.Config.Dir())
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("no log file at %s yet", path)
	}
	return nil
}
