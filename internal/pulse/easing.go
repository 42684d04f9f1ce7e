package pulse

import "math"

// bezier is a CSS-style cubic bezier easing curve anchored at (0,0) and (1,1)
type bezier struct {
	x1, y1, x2, y2 float64
}

// ease is the CSS "ease-in" shaped curve used as the base of the pulse
var ease = bezier{0.42, 0, 1, 1}

func (b bezier) sample(a1, a2, t float64) float64 {
	// B(t) for a curve with P0=0 and P3=1
	u := 1 - t
	return 3*u*u*t*a1 + 3*u*t*t*a2 + t*t*t
}

func (b bezier) slope(a1, a2, t float64) float64 {
	u := 1 - t
	return 3*u*u*a1 + 6*u*t*(a2-a1) + 3*t*t*(1-a2)
}

// at solves x(t)=x with Newton's method, falling back to bisection
func (b bezier) at(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}

	t := x
	for i := 0; i < 8; i++ {
		dx := b.sample(b.x1, b.x2, t) - x
		if math.Abs(dx) < 1e-6 {
			return b.sample(b.y1, b.y2, t)
		}
		d := b.slope(b.x1, b.x2, t)
		if math.Abs(d) < 1e-6 {
			break
		}
		t -= dx / d
		if t < 0 || t > 1 {
			break
		}
	}

	lo, hi := 0.0, 1.0
	t = x
	for i := 0; i < 32; i++ {
		v := b.sample(b.x1, b.x2, t)
		if math.Abs(v-x) < 1e-6 {
			break
		}
		if v < x {
			lo = t
		} else {
			hi = t
		}
		t = (lo + hi) / 2
	}
	return b.sample(b.y1, b.y2, t)
}

// easeInOut mirrors the ease curve around the midpoint
func easeInOut(t float64) float64 {
	if t < 0.5 {
		return ease.at(t*2) / 2
	}
	return 1 - ease.at((1-t)*2)/2
}
