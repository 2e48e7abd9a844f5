package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/lunchwheel/internal/storage"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lunchwheel.db")
	store := storage.NewSQLiteStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	if err := store.Set("lunch-respins", "2"); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}
	store.Close()
	return path
}

func readSlot(t *testing.T, path, key string) string {
	t.Helper()
	store := storage.New(path)
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load %s: %v", path, err)
	}
	defer store.Close()
	v, _, err := store.Get(key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	return v
}

func writeSlot(t *testing.T, path, key, value string) {
	t.Helper()
	store := storage.New(path)
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load %s: %v", path, err)
	}
	defer store.Close()
	if err := store.Set(key, value); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
}

func TestCreateBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if filepath.Dir(backupPath) != mgr.GetBackupDir() {
		t.Errorf("backup written to %s, want dir %s", backupPath, mgr.GetBackupDir())
	}
	if !strings.HasPrefix(filepath.Base(backupPath), "lunchwheel-") {
		t.Errorf("unexpected backup name %s", backupPath)
	}
	if got := readSlot(t, backupPath, "lunch-respins"); got != "2" {
		t.Errorf("backup slot = %q, want 2", got)
	}
}

func TestCreateBackupMissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Fatal("expected error for missing database")
	}
}

func TestListBackupsEmpty(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "lunchwheel.db"))
	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %d", len(backups))
	}
}

func TestSameSecondGetsCounter(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	fixed := time.Date(2026, 10, 19, 12, 0, 0, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	first, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	second, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatal("backups collided")
	}
	if !strings.HasSuffix(second, "-1.db") {
		t.Errorf("second backup %s should carry a counter", second)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 2 || !backups[0].Timestamp.Equal(fixed) {
		t.Errorf("unexpected listing %+v", backups)
	}
}

func TestRotation(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.keep = 3

	base := time.Date(2026, 10, 1, 9, 0, 0, 0, time.Local)
	for i := range 5 {
		at := base.Add(time.Duration(i) * time.Hour)
		mgr.now = func() time.Time { return at }
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 3 {
		t.Fatalf("expected 3 backups after rotation, got %d", len(backups))
	}
	if want := base.Add(4 * time.Hour); !backups[0].Timestamp.Equal(want) {
		t.Errorf("newest = %v, want %v", backups[0].Timestamp, want)
	}
	if want := base.Add(2 * time.Hour); !backups[2].Timestamp.Equal(want) {
		t.Errorf("oldest kept = %v, want %v", backups[2].Timestamp, want)
	}
}

func TestListIgnoresForeignFiles(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	if err := os.MkdirAll(mgr.GetBackupDir(), 0700); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"notes.txt", "lunchwheel-garbage.db", "other-20261019-120000.db"} {
		if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 0 {
		t.Errorf("foreign files listed: %+v", backups)
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	writeSlot(t, dbPath, "lunch-respins", "0")

	mgr.now = func() time.Time { return time.Now().Add(time.Hour) }
	previous, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if got := readSlot(t, dbPath, "lunch-respins"); got != "2" {
		t.Errorf("restored slot = %q, want 2", got)
	}
	if previous == "" {
		t.Fatal("restore should snapshot the current database first")
	}
	if got := readSlot(t, previous, "lunch-respins"); got != "0" {
		t.Errorf("pre-restore snapshot slot = %q, want 0", got)
	}
	if _, err := os.Stat(dbPath + ".restore.tmp"); !os.IsNotExist(err) {
		t.Error("temporary restore file left behind")
	}
}

func TestRestoreRejectsInvalidFile(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	bogus := filepath.Join(t.TempDir(), "bogus.db")
	if err := os.WriteFile(bogus, []byte("not a database"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.RestoreBackup(bogus); err == nil {
		t.Error("expected error restoring an invalid file")
	}
	if _, err := mgr.RestoreBackup(filepath.Join(t.TempDir(), "absent.db")); err == nil {
		t.Error("expected error restoring a missing file")
	}
}

func TestJSONStoreBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	store := storage.NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	if err := store.Set("lunch-last-date", "Mon Oct 19 2026"); err != nil {
		t.Fatal(err)
	}

	mgr := NewManager(path)
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if !strings.HasSuffix(backupPath, ".json") {
		t.Errorf("JSON backup should keep the .json suffix: %s", backupPath)
	}
	if got := readSlot(t, backupPath, "lunch-last-date"); got != "Mon Oct 19 2026" {
		t.Errorf("backup slot = %q", got)
	}
}
