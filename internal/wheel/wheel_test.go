package wheel

import (
	"errors"
	"math"
	"testing"
	"time"
)

type fixedRNG float64

func (f fixedRNG) Float64() float64 { return float64(f) }

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{359.5, 359.5},
		{360, 0},
		{1890, 90},
		{-90, 270},
		{-720, 0},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIndex(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		rotation float64
		want     int
	}{
		{"no rotation lands on first", 4, 0, 0},
		{"quarter turn brings last segment up", 4, 90, 3},
		{"half turn", 4, 180, 2},
		{"three quarters", 4, 270, 1},
		{"just past a boundary", 4, 270.0000001, 0},
		{"five turns plus a bit", 6, 1800 + 10, 5},
		{"two items", 2, 1800 + 200, 0},
		{"negative input", 4, -90, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Index(tt.n, tt.rotation); got != tt.want {
				t.Errorf("Index(%d, %v) = %d, want %d", tt.n, tt.rotation, got, tt.want)
			}
		})
	}
}

// Every rotation maps to exactly the segment whose arc contains the angle under the pointer.
func TestIndexPartition(t *testing.T) {
	for n := 1; n <= 12; n++ {
		size := 360.0 / float64(n)
		for deg := 0.0; deg < 720; deg += 0.37 {
			idx := Index(n, deg)
			if idx < 0 || idx >= n {
				t.Fatalf("Index(%d, %v) = %d out of range", n, deg, idx)
			}
			effective := math.Mod(360-Normalize(deg), 360)
			start, end := Segment(n, idx)
			if effective < start-1e-9 || effective >= end+1e-9 {
				t.Fatalf("n=%d deg=%v: effective %v not in segment %d [%v,%v) size %v", n, deg, effective, idx, start, end, size)
			}
		}
	}
}

func TestNextRotationBounds(t *testing.T) {
	for _, u := range []float64{0, 0.5, 0.999999} {
		got := NextRotation(100, fixedRNG(u))
		if got < 1900 || got >= 2260 {
			t.Errorf("NextRotation(100, %v) = %v, want in [1900, 2260)", u, got)
		}
	}
}

func TestStartGuards(t *testing.T) {
	w := New(fixedRNG(0.25), 5*time.Second)

	if _, err := w.Start([]string{"Only"}); !errors.Is(err, ErrTooFewItems) {
		t.Errorf("Start with one item = %v, want ErrTooFewItems", err)
	}
	if _, err := w.Start(nil); !errors.Is(err, ErrTooFewItems) {
		t.Errorf("Start with no items = %v, want ErrTooFewItems", err)
	}

	spin, err := w.Start([]string{"A", "B"})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if spin.Duration != 5*time.Second {
		t.Errorf("Duration = %v", spin.Duration)
	}
	if !w.Spinning() {
		t.Error("wheel should report spinning")
	}
	if _, err := w.Start([]string{"A", "B"}); !errors.Is(err, ErrSpinning) {
		t.Errorf("second Start = %v, want ErrSpinning", err)
	}
	if w.Rotation() != spin.To {
		t.Errorf("Rotation = %v, want %v", w.Rotation(), spin.To)
	}
}

func TestFinishOnce(t *testing.T) {
	w := New(fixedRNG(0.25), time.Second)
	spin, err := w.Start([]string{"A", "B", "C", "D"})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// 1800 + 90 degrees: the last segment sits under the pointer
	winner, err := w.Finish(spin.ID)
	if err != nil {
		t.Fatalf("Finish failed: %v", err)
	}
	if winner != "D" {
		t.Errorf("winner = %q, want D", winner)
	}
	if _, err := w.Finish(spin.ID); !errors.Is(err, ErrStaleSpin) {
		t.Errorf("second Finish = %v, want ErrStaleSpin", err)
	}
	if w.Spinning() {
		t.Error("wheel still spinning after Finish")
	}
}

func TestCancelInvalidatesSpin(t *testing.T) {
	w := New(fixedRNG(0.1), time.Second)
	spin, _ := w.Start([]string{"A", "B"})
	w.Cancel()

	if _, err := w.Finish(spin.ID); !errors.Is(err, ErrStaleSpin) {
		t.Errorf("Finish after Cancel = %v, want ErrStaleSpin", err)
	}

	next, err := w.Start([]string{"A", "B"})
	if err != nil {
		t.Fatalf("Start after Cancel failed: %v", err)
	}
	if next.ID == spin.ID {
		t.Error("spin ids must not repeat")
	}
	if next.From != spin.To {
		t.Errorf("rotation should accumulate: From = %v, want %v", next.From, spin.To)
	}

	w.Reset()
	if w.Rotation() != 0 || w.Spinning() {
		t.Error("Reset should leave the wheel at rest at zero")
	}
}

func TestSeededIsDeterministic(t *testing.T) {
	a := New(Seeded("friday"), 0)
	b := New(Seeded("friday"), 0)
	items := []string{"Burger", "Pizza", "Sushi", "Salad", "Tacos", "Pasta"}

	for range 10 {
		sa, _ := a.Start(items)
		sb, _ := b.Start(items)
		if sa.To != sb.To || sa.Winner() != sb.Winner() {
			t.Fatalf("seeded wheels diverged: %v vs %v", sa.To, sb.To)
		}
		a.Cancel()
		b.Cancel()
	}

	if Seeded("friday").Float64() == Seeded("monday").Float64() {
		t.Error("different seeds produced the same first draw")
	}
}

func TestEase(t *testing.T) {
	if Ease(-1) != 0 || Ease(0) != 0 || Ease(1) != 1 || Ease(2) != 1 {
		t.Error("Ease should clamp to [0,1]")
	}
	prev := 0.0
	for i := 1; i <= 100; i++ {
		v := Ease(float64(i) / 100)
		if v < prev {
			t.Fatalf("Ease not monotonic at %d: %v < %v", i, v, prev)
		}
		prev = v
	}
	// The curve front-loads motion
	if Ease(0.5) <= 0.5 {
		t.Errorf("Ease(0.5) = %v, expected past the midpoint", Ease(0.5))
	}

	s := Spin{From: 10, To: 110}
	if s.At(0) != 10 || s.At(1) != 110 {
		t.Errorf("Spin.At endpoints = %v, %v", s.At(0), s.At(1))
	}
}
