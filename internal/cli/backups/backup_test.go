package backups

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/lunchwheel/internal/backup"
	"github.com/julianstephens/lunchwheel/internal/cli"
	"github.com/julianstephens/lunchwheel/internal/config"
	"github.com/julianstephens/lunchwheel/internal/constants"
	"github.com/julianstephens/lunchwheel/internal/storage"
)

func setupTestStore(t *testing.T, name string) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := storage.New(filepath.Join(t.TempDir(), name))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	out := &bytes.Buffer{}
	return &cli.Context{
		Config: config.Default(),
		Store:  store,
		In:     strings.NewReader(""),
		Out:    out,
	}, out
}

func TestBackupCreateAndList(t *testing.T) {
	for _, name := range []string{"state.db", "state.json"} {
		t.Run(name, func(t *testing.T) {
			ctx, out := setupTestStore(t, name)

			if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
				t.Fatalf("backup create failed: %v", err)
			}
			if !strings.Contains(out.String(), "✓ Backup created: "+constants.BackupFilePrefix) {
				t.Errorf("unexpected output:\n%s", out.String())
			}
			out.Reset()

			if err := (&BackupListCmd{}).Run(ctx); err != nil {
				t.Fatalf("backup list failed: %v", err)
			}
			if !strings.Contains(out.String(), "Available backups (1 total") {
				t.Errorf("expected one backup listed:\n%s", out.String())
			}
		})
	}
}

func TestBackupListCmd_Empty(t *testing.T) {
	ctx, out := setupTestStore(t, "state.db")

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No backups found.") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestBackupRestoreCmd(t *testing.T) {
	ctx, out := setupTestStore(t, "state.json")
	if err := ctx.Store.Set(constants.KeyRespins, "2"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	saved, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	if err := ctx.Store.Set(constants.KeyRespins, "0"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	cmd := &BackupRestoreCmd{BackupFile: filepath.Base(saved), Yes: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("backup restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "Previous state saved as") {
		t.Errorf("expected a pre-restore snapshot:\n%s", out.String())
	}

	if err := ctx.Store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	v, ok, err := ctx.Store.Get(constants.KeyRespins)
	if err != nil || !ok || v != "2" {
		t.Errorf("respins = %q, %v, %v; want the backed up value", v, ok, err)
	}
}

func TestBackupRestoreCmd_Declined(t *testing.T) {
	ctx, out := setupTestStore(t, "state.json")
	saved, err := backup.NewManager(ctx.Store.GetConfigPath()).CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	ctx.In = strings.NewReader("n\n")

	if err := (&BackupRestoreCmd{BackupFile: saved}).Run(ctx); err != nil {
		t.Fatalf("backup restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "Restore cancelled.") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestBackupCmd_MemoryStore(t *testing.T) {
	ctx := &cli.Context{Store: storage.NewMemoryStore(), Out: &bytes.Buffer{}}
	if err := (&BackupCreateCmd{}).Run(ctx); err == nil {
		t.Error("expected backups to be refused for the memory store")
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lunchwheel-20261019-120000.db")
	if err := os.WriteFile(path, []byte("x"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "absolute", input: path, want: path},
		{name: "bare name", input: filepath.Base(path), want: path},
		{name: "missing absolute", input: filepath.Join(dir, "nope.db"), wantErr: true},
		{name: "missing name", input: "nope.db", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolve(tt.input, dir)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolve error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("resolve = %q, want %q", got, tt.want)
			}
		})
	}
}
