package system

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/lunchwheel/internal/cli"
	"github.com/julianstephens/lunchwheel/internal/config"
	"github.com/julianstephens/lunchwheel/internal/constants"
	"github.com/julianstephens/lunchwheel/internal/session"
	"github.com/julianstephens/lunchwheel/internal/storage"
)

// Monday 19 October 2026
var monday = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

func setupTestContext(t *testing.T, store storage.Provider, dir string) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.Path = filepath.Join(dir, "config.toml")
	cfg.DBPath = store.GetConfigPath()
	cfg.Timezone = "UTC"

	out := &bytes.Buffer{}
	return &cli.Context{
		Config: cfg,
		Store:  store,
		Clock:  session.ClockFunc(func() time.Time { return monday }),
		In:     strings.NewReader(""),
		Out:    out,
	}, out
}

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	store := storage.NewSQLiteStore(filepath.Join(dir, "test.db"))
	ctx, out := setupTestContext(t, store, dir)
	t.Cleanup(func() { store.Close() })
	return ctx, out
}

func TestInitCmd(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "Initialized lunchwheel storage") {
		t.Errorf("unexpected output:\n%s", got)
	}
	if !strings.Contains(got, "1 categories, 0 history entries") {
		t.Errorf("expected the default category to be seeded:\n%s", got)
	}
	if _, err := os.Stat(ctx.Config.Path); err != nil {
		t.Errorf("expected default config to be written: %v", err)
	}

	cats, err := ctx.State().LoadCategories()
	if err != nil {
		t.Fatalf("LoadCategories failed: %v", err)
	}
	if len(cats) != 1 || cats[0].Name != constants.DefaultCategoryName {
		t.Errorf("categories = %+v, want the default", cats)
	}
}

func TestInitCmd_Force(t *testing.T) {
	ctx, out := setupTestDB(t)
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if err := ctx.Store.Set(constants.KeyRespins, "0"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	out.Reset()

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("init --force failed: %v", err)
	}
	if !strings.Contains(out.String(), "Deleted existing store") {
		t.Errorf("expected delete notice, got:\n%s", out.String())
	}

	n, err := ctx.State().LoadRespins()
	if err != nil {
		t.Fatalf("LoadRespins failed: %v", err)
	}
	if n != constants.MaxRespins {
		t.Errorf("respins = %d, want a fresh budget", n)
	}
}

func TestMigrateCmd(t *testing.T) {
	ctx, out := setupTestDB(t)
	if err := ctx.Store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !strings.Contains(out.String(), "up to date") {
		t.Errorf("expected no pending migrations, got:\n%s", out.String())
	}
}

func TestMigrateCmd_MemoryStore(t *testing.T) {
	ctx, _ := setupTestContext(t, storage.NewMemoryStore(), t.TempDir())
	if err := (&MigrateCmd{}).Run(ctx); err == nil {
		t.Error("expected an error for a store without a schema")
	}
}

func TestDoctorCmd(t *testing.T) {
	tests := []struct {
		name     string
		seed     map[string]string
		timezone string
		wantErr  bool
		want     string
	}{
		{
			name: "healthy",
			want: "All diagnostics passed!",
		},
		{
			name:    "malformed value",
			seed:    map[string]string{constants.KeyWeeklyHistory: "{not json"},
			wantErr: true,
			want:    constants.KeyWeeklyHistory,
		},
		{
			name:     "bad timezone",
			timezone: "Mars/Olympus",
			wantErr:  true,
			want:     "invalid timezone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStore()
			for k, v := range tt.seed {
				if err := store.Set(k, v); err != nil {
					t.Fatalf("Set failed: %v", err)
				}
			}
			ctx, out := setupTestContext(t, store, t.TempDir())
			if tt.timezone != "" {
				ctx.Config.Timezone = tt.timezone
			}

			err := (&DoctorCmd{}).Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("doctor error = %v, wantErr %v", err, tt.wantErr)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out.String())
			}
		})
	}
}

func TestDoctorCmd_SQLite(t *testing.T) {
	ctx, out := setupTestDB(t)
	if err := ctx.Store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Fatalf("doctor failed: %v\n%s", err, out.String())
	}
	got := out.String()
	if !strings.Contains(got, "✓ Schema version: OK") {
		t.Errorf("expected schema check to pass:\n%s", got)
	}
	// A fresh store has no backups yet
	if !strings.Contains(got, "⚠ Backups present: WARNING") {
		t.Errorf("expected backups warning:\n%s", got)
	}
}

func TestDebugDBPathCmd(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&DebugDBPathCmd{}).Run(ctx); err != nil {
		t.Fatalf("debug db-path failed: %v", err)
	}
	if !strings.Contains(out.String(), "test.db") {
		t.Errorf("expected store path, got:\n%s", out.String())
	}
}

func TestDebugKeysAndDump(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx, out := setupTestContext(t, store, t.TempDir())
	if _, err := ctx.State().Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if err := (&DebugKeysCmd{}).Run(ctx); err != nil {
		t.Fatalf("debug keys failed: %v", err)
	}
	if !strings.Contains(out.String(), constants.KeyCategories) {
		t.Errorf("expected %s in keys, got:\n%s", constants.KeyCategories, out.String())
	}
	out.Reset()

	if err := (&DebugDumpCmd{Key: constants.KeyCategories}).Run(ctx); err != nil {
		t.Fatalf("debug dump failed: %v", err)
	}
	if !strings.Contains(out.String(), `"name": "General"`) {
		t.Errorf("expected indented JSON, got:\n%s", out.String())
	}

	if err := (&DebugDumpCmd{Key: "missing"}).Run(ctx); err == nil {
		t.Error("expected an error for a missing key")
	}
}

func TestDebugResetKeyCmd(t *testing.T) {
	store := storage.NewMemoryStore()
	if err := store.Set(constants.KeyWeeklyHistory, "{not json"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	ctx, _ := setupTestContext(t, store, t.TempDir())

	if err := (&DebugResetKeyCmd{Key: "lunch-nope"}).Run(ctx); err == nil {
		t.Error("expected unknown keys to be rejected")
	}

	if err := (&DebugResetKeyCmd{Key: constants.KeyWeeklyHistory}).Run(ctx); err != nil {
		t.Fatalf("reset-key failed: %v", err)
	}
	bad, err := ctx.State().Check()
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if len(bad) != 0 {
		t.Errorf("expected no malformed keys after reset, got %v", bad)
	}
}
