package wheel

// Control points of the deceleration curve, cubic-bezier(0.25, 0.1, 0.25, 1)
const (
	easeX1, easeY1 = 0.25, 0.1
	easeX2, easeY2 = 0.25, 1.0
)

func bezier(s, p1, p2 float64) float64 {
	u := 1 - s
	return 3*u*u*s*p1 + 3*u*s*s*p2 + s*s*s
}

// Ease maps linear progress t to eased progress. Out-of-range t is clamped.
func Ease(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}

	// x(s) is monotonic for these control points, so bisection converges.
	lo, hi := 0.0, 1.0
	for range 40 {
		mid := (lo + hi) / 2
		if bezier(mid, easeX1, easeX2) < t {
			lo = mid
		} else {
			hi = mid
		}
	}
	return bezier((lo+hi)/2, easeY1, easeY2)
}
