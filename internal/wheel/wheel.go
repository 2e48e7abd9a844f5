// Package wheel picks a winner from a list of labels by simulating a
// spinning wheel with a fixed pointer at the top.
package wheel

import (
	"errors"
	"math"
	"time"

	"github.com/julianstephens/lunchwheel/internal/constants"
)

var (
	ErrTooFewItems = errors.New("wheel needs at least two items to spin")
	ErrSpinning    = errors.New("wheel is already spinning")
	ErrStaleSpin   = errors.New("spin is no longer active")
)

// RNG is the randomness the wheel draws from; *rand.Rand satisfies it
type RNG interface {
	Float64() float64
}

// NextRotation returns prior plus five full turns plus a uniform extra in [0,360)
func NextRotation(prior float64, rng RNG) float64 {
	return prior + constants.MinSpinDegrees + rng.Float64()*constants.FullCircle
}

// Normalize reduces a rotation to [0,360)
func Normalize(rotation float64) float64 {
	r := math.Mod(rotation, constants.FullCircle)
	if r < 0 {
		r += constants.FullCircle
	}
	return r
}

// Index returns the segment under the pointer after a clockwise rotation.
// Segment i spans [i*360/n, (i+1)*360/n) measured from the top.
func Index(n int, rotation float64) int {
	if n <= 0 {
		return -1
	}
	effective := math.Mod(constants.FullCircle-Normalize(rotation), constants.FullCircle)
	idx := int(math.Floor(effective / (constants.FullCircle / float64(n))))
	return max(0, min(idx, n-1))
}

// Segment returns the [start, end) angles of segment i on an n-way wheel
func Segment(n, i int) (float64, float64) {
	size := constants.FullCircle / float64(n)
	return float64(i) * size, float64(i+1) * size
}

// Spin is one in-flight rotation. The winner is fixed at start but must not
// be reported until Duration has elapsed.
type Spin struct {
	ID       uint64
	From     float64
	To       float64
	Items    []string
	Duration time.Duration
}

// Winner is the label under the pointer once the spin settles
func (s Spin) Winner() string {
	return s.Items[Index(len(s.Items), s.To)]
}

// At returns the eased rotation at progress t in [0,1]
func (s Spin) At(t float64) float64 {
	return s.From + (s.To-s.From)*Ease(t)
}

// Wheel keeps the cumulative rotation and guards against overlapping spins
type Wheel struct {
	rng      RNG
	duration time.Duration
	rotation float64
	active   *Spin
	lastID   uint64
}

func New(rng RNG, duration time.Duration) *Wheel {
	return &Wheel{rng: rng, duration: duration}
}

// Start begins a spin over items. It refuses fewer than two items and any
// call made while another spin is active.
func (w *Wheel) Start(items []string) (Spin, error) {
	if w.active != nil {
		return Spin{}, ErrSpinning
	}
	if len(items) < 2 {
		return Spin{}, ErrTooFewItems
	}

	w.lastID++
	spin := Spin{
		ID:       w.lastID,
		From:     w.rotation,
		To:       NextRotation(w.rotation, w.rng),
		Items:    append([]string(nil), items...),
		Duration: w.duration,
	}
	w.rotation = spin.To
	w.active = &spin
	return spin, nil
}

// Finish settles the active spin and returns its winner. Each spin can be
// finished once; unknown or already finished ids return ErrStaleSpin.
func (w *Wheel) Finish(id uint64) (string, error) {
	if w.active == nil || w.active.ID != id {
		return "", ErrStaleSpin
	}
	winner := w.active.Winner()
	w.active = nil
	return winner, nil
}

// Cancel drops the active spin so its pending result is ignored
func (w *Wheel) Cancel() {
	w.active = nil
}

func (w *Wheel) Spinning() bool {
	return w.active != nil
}

// Active returns the in-flight spin, if any
func (w *Wheel) Active() (Spin, bool) {
	if w.active == nil {
		return Spin{}, false
	}
	return *w.active, true
}

// Rotation is the cumulative rotation in degrees
func (w *Wheel) Rotation() float64 {
	return w.rotation
}

// Reset puts the wheel back at rest at zero degrees
func (w *Wheel) Reset() {
	w.rotation = 0
	w.active = nil
}
