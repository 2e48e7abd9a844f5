package lunches

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/lunchwheel/internal/cli"
	"github.com/julianstephens/lunchwheel/internal/config"
	"github.com/julianstephens/lunchwheel/internal/constants"
	"github.com/julianstephens/lunchwheel/internal/models"
	"github.com/julianstephens/lunchwheel/internal/session"
	"github.com/julianstephens/lunchwheel/internal/storage"
)

// Monday 19 October 2026
var monday = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

func setupTestContext(t *testing.T, now time.Time, input string) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := storage.NewMemoryStore()
	err := storage.PutJSON(store, constants.KeyCategories, []models.Category{
		{ID: "1", Name: "Asian", Items: []string{"Sushi", "Ramen"}},
		{ID: "2", Name: "Mexican", Items: []string{"Tacos", "Burrito"}},
	})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	out := &bytes.Buffer{}
	ctx := &cli.Context{
		Config: config.Default(),
		Store:  store,
		Clock:  session.ClockFunc(func() time.Time { return now }),
		In:     strings.NewReader(input),
		Out:    out,
	}
	return ctx, out
}

func weekly(t *testing.T, ctx *cli.Context) models.WeeklyHistory {
	t.Helper()
	w, err := ctx.State().LoadWeeklyHistory()
	if err != nil {
		t.Fatalf("LoadWeeklyHistory failed: %v", err)
	}
	return w
}

func TestStatusCmd_NotDecided(t *testing.T) {
	ctx, out := setupTestContext(t, monday, "")

	if err := (&StatusCmd{}).Run(ctx); err != nil {
		t.Fatalf("status failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{"Today is Monday", "Re-spins left: 3/3", "not decided yet", "Mon  -  ← today"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestStatusCmd_Weekend(t *testing.T) {
	saturday := monday.AddDate(0, 0, 5)
	ctx, out := setupTestContext(t, saturday, "")

	if err := (&StatusCmd{}).Run(ctx); err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !strings.Contains(out.String(), "It's the weekend") {
		t.Errorf("expected weekend notice, got:\n%s", out.String())
	}
	if strings.Contains(out.String(), "← today") {
		t.Error("no row should be highlighted on a weekend")
	}
}

func TestSpinCmd_CategoryAccept(t *testing.T) {
	ctx, out := setupTestContext(t, monday, "")

	cmd := &SpinCmd{Category: "mexican", Yes: true, Fast: true, Seed: "test"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("spin failed: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "Now, spinning for Mexican!") {
		t.Errorf("expected item wheel prompt, got:\n%s", got)
	}
	if !strings.Contains(got, "✓ Saved") {
		t.Errorf("expected save confirmation, got:\n%s", got)
	}

	v, ok := weekly(t, ctx).Get(models.Mon)
	if !ok || (v != "Tacos" && v != "Burrito") {
		t.Errorf("Mon = %q, %v; want a Mexican item", v, ok)
	}

	// Today is decided now
	err := (&SpinCmd{Yes: true, Fast: true}).Run(ctx)
	if !errors.Is(err, session.ErrLocked) {
		t.Errorf("second spin error = %v, want ErrLocked", err)
	}
}

func TestSpinCmd_SeededIsReproducible(t *testing.T) {
	run := func() string {
		ctx, _ := setupTestContext(t, monday, "")
		if err := (&SpinCmd{Seed: "friday-feeling", Yes: true, Fast: true}).Run(ctx); err != nil {
			t.Fatalf("spin failed: %v", err)
		}
		v, _ := weekly(t, ctx).Get(models.Mon)
		return v
	}

	first, second := run(), run()
	if first == "" || first != second {
		t.Errorf("seeded spins differ: %q vs %q", first, second)
	}
}

func TestSpinCmd_EmptyCategory(t *testing.T) {
	ctx, _ := setupTestContext(t, monday, "")
	if err := storage.PutJSON(ctx.Store, constants.KeyCategories, []models.Category{
		{ID: "1", Name: "Empty", Items: []string{}},
	}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	err := (&SpinCmd{Category: "Empty", Yes: true, Fast: true}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "no items in Empty") {
		t.Errorf("expected empty category error, got %v", err)
	}
	if weekly(t, ctx).Filled(models.Mon) {
		t.Error("nothing should be saved")
	}
}

func TestSpinCmd_SpinAgainThenAccept(t *testing.T) {
	ctx, out := setupTestContext(t, monday, "s\na\n")

	if err := (&SpinCmd{Category: "Asian", Fast: true, Seed: "x"}).Run(ctx); err != nil {
		t.Fatalf("spin failed: %v", err)
	}

	if n := strings.Count(out.String(), "You got..."); n != 2 {
		t.Errorf("expected two results, got %d", n)
	}
	respins, err := ctx.State().LoadRespins()
	if err != nil {
		t.Fatalf("LoadRespins failed: %v", err)
	}
	if respins != 2 {
		t.Errorf("respins = %d, want 2", respins)
	}
	if !weekly(t, ctx).Filled(models.Mon) {
		t.Error("expected Mon to be filled")
	}
}

func TestSpinCmd_QuitSavesNothing(t *testing.T) {
	ctx, out := setupTestContext(t, monday, "q\n")

	if err := (&SpinCmd{Category: "Asian", Fast: true}).Run(ctx); err != nil {
		t.Fatalf("spin failed: %v", err)
	}
	if !strings.Contains(out.String(), "Nothing saved.") {
		t.Errorf("expected quit message, got:\n%s", out.String())
	}
	if weekly(t, ctx).Filled(models.Mon) {
		t.Error("quit should not save")
	}
}

func TestSpinCmd_WeekendLogsOnly(t *testing.T) {
	sunday := monday.AddDate(0, 0, 6)
	ctx, out := setupTestContext(t, sunday, "")

	if err := (&SpinCmd{Category: "Asian", Yes: true, Fast: true}).Run(ctx); err != nil {
		t.Fatalf("spin failed: %v", err)
	}
	if !strings.Contains(out.String(), "weekend") {
		t.Errorf("expected weekend acceptance, got:\n%s", out.String())
	}

	log, err := ctx.State().LoadFullHistory()
	if err != nil {
		t.Fatalf("LoadFullHistory failed: %v", err)
	}
	if len(log) != 1 || log[0].CategoryName != "Asian" {
		t.Errorf("log = %+v, want one Asian entry", log)
	}
	for _, d := range models.Weekdays {
		if weekly(t, ctx).Filled(d) {
			t.Errorf("%s should stay empty on a weekend", d)
		}
	}
}

func TestHistoryShowCmd_Raw(t *testing.T) {
	ctx, out := setupTestContext(t, monday, "")
	if err := (&SpinCmd{Category: "Asian", Yes: true, Fast: true}).Run(ctx); err != nil {
		t.Fatalf("spin failed: %v", err)
	}
	out.Reset()

	if err := (&HistoryShowCmd{Raw: true}).Run(ctx); err != nil {
		t.Fatalf("history show failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "# Weekly Menu") {
		t.Errorf("expected markdown heading, got:\n%s", got)
	}
	v, _ := weekly(t, ctx).Get(models.Mon)
	if !strings.Contains(got, v) {
		t.Errorf("expected %q in history, got:\n%s", v, got)
	}
}

func TestHistoryClearCmd(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		yes     bool
		wantLen int
	}{
		{name: "confirmed", input: "y\n", wantLen: 0},
		{name: "declined", input: "n\n", wantLen: 1},
		{name: "skip prompt", yes: true, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := setupTestContext(t, monday, tt.input)
			if err := (&SpinCmd{Category: "Asian", Yes: true, Fast: true}).Run(ctx); err != nil {
				t.Fatalf("spin failed: %v", err)
			}

			if err := (&HistoryClearCmd{Yes: tt.yes}).Run(ctx); err != nil {
				t.Fatalf("history clear failed: %v", err)
			}

			log, err := ctx.State().LoadFullHistory()
			if err != nil {
				t.Fatalf("LoadFullHistory failed: %v", err)
			}
			if len(log) != tt.wantLen {
				t.Errorf("log length = %d, want %d", len(log), tt.wantLen)
			}
			// The weekly menu survives a clear
			if !weekly(t, ctx).Filled(models.Mon) {
				t.Error("weekly menu should be kept")
			}
		})
	}
}

func TestHistoryShareCmd(t *testing.T) {
	ctx, out := setupTestContext(t, monday, "")
	png := filepath.Join(t.TempDir(), "week.png")

	if err := (&HistoryShareCmd{PNG: png, Size: 128, NoQR: true}).Run(ctx); err != nil {
		t.Fatalf("history share failed: %v", err)
	}

	if !strings.Contains(out.String(), "Lunch this week:") {
		t.Errorf("expected share text, got:\n%s", out.String())
	}
	info, err := os.Stat(png)
	if err != nil {
		t.Fatalf("expected png to be written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("png is empty")
	}
}
