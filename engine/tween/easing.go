package tween

import (
	"fmt"
	"math"
	"sort"
)

// Easing names a timing curve in the catalog.
type Easing string

const (
	Linear         Easing = "linear"
	EaseIn         Easing = "easeIn"
	EaseOut        Easing = "easeOut"
	EaseInOut      Easing = "easeInOut"
	EaseInOutCubic Easing = "easeInOutCubic"
	// CSSEase is the CSS "ease" keyword, cubic-bezier(0.25, 0.1, 0.25, 1).
	CSSEase Easing = "cssEase"
)

// Func maps normalized progress t in [0, 1] to eased progress in [0, 1].
type Func func(t float64) float64

// catalog is closed: every entry is registered here and nowhere else.
var catalog = map[Easing]Func{
	Linear:  func(t float64) float64 { return t },
	EaseIn:  func(t float64) float64 { return t * t },
	EaseOut: func(t float64) float64 { return t * (2 - t) },
	EaseInOut: func(t float64) float64 {
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t
	},
	EaseInOutCubic: func(t float64) float64 {
		if t < 0.5 {
			return 4 * t * t * t
		}
		return 1 - math.Pow(-2*t+2, 3)/2
	},
	CSSEase: CubicBezier{P1X: 0.25, P1Y: 0.1, P2X: 0.25, P2Y: 1}.Func(),
}

// Lookup returns the curve registered under the given name.
//
// Parameters:
//   - e: the easing name
//
// Returns:
//   - Func: the easing function
//   - error: ErrUnknownEasing if the name is not in the catalog
func Lookup(e Easing) (Func, error) {
	fn, ok := catalog[e]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEasing, string(e))
	}
	return fn, nil
}

// Names returns every easing in the catalog in lexical order.
//
// Returns:
//   - []Easing: the registered easing names
func Names() []Easing {
	names := make([]Easing, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

const (
	bezierBisections = 7
	bezierNewtonIter = 4
)

// CubicBezier is a CSS-style timing curve with fixed end points (0, 0) and (1, 1)
// and control points (P1X, P1Y), (P2X, P2Y).
type CubicBezier struct {
	P1X, P1Y float64
	P2X, P2Y float64
}

func (c CubicBezier) x(s float64) float64 {
	u := 1 - s
	return 3*u*u*s*c.P1X + 3*u*s*s*c.P2X + s*s*s
}

func (c CubicBezier) dx(s float64) float64 {
	u := 1 - s
	return 3*u*u*c.P1X + 6*u*s*(c.P2X-c.P1X) + 3*s*s*(1-c.P2X)
}

func (c CubicBezier) y(s float64) float64 {
	u := 1 - s
	return 3*u*u*s*c.P1Y + 3*u*s*s*c.P2Y + s*s*s
}

// Func solves the curve for x = t with a short bisection followed by Newton-Raphson refinement
// and returns the matching y.
//
// Returns:
//   - Func: the easing function for this curve
func (c CubicBezier) Func() Func {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}

		lo, hi, s := 0.0, 1.0, 0.0
		for range bezierBisections {
			s = (lo + hi) / 2
			if c.x(s) < t {
				lo = s
			} else {
				hi = s
			}
		}

		for range bezierNewtonIter {
			d := c.dx(s)
			if math.Abs(d) < 1e-6 {
				break
			}
			delta := (c.x(s) - t) / d
			s -= delta
			if math.Abs(delta) < 1e-5 {
				break
			}
		}

		return c.y(s)
	}
}
