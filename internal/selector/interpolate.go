package selector

import (
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Extrapolation controls how inputs outside the breakpoints are mapped.
type Extrapolation int

const (
	// Clamp holds the nearest endpoint's output.
	Clamp Extrapolation = iota
	// Extend continues the slope of the outermost segment.
	Extend
)

// Range is a piecewise-linear mapping from breakpoints to outputs.
// Breakpoints must be non-decreasing and the same length as outputs.
type Range struct {
	Input       []float64
	Output      []float64
	Extrapolate Extrapolation
}

// At evaluates the range at x.
func (r Range) At(x float64) float64 {
	switch len(r.Input) {
	case 0:
		return 0
	case 1:
		return r.Output[0]
	}
	i, t := locate(r.Input, x, r.Extrapolate)
	return r.Output[i] + (r.Output[i+1]-r.Output[i])*t
}

// ColorRange is a Range whose outputs are colors, blended in RGB.
type ColorRange struct {
	Input  []float64
	Output []colorful.Color
}

// At evaluates the color range at x. Colors never extrapolate.
func (r ColorRange) At(x float64) colorful.Color {
	switch len(r.Input) {
	case 0:
		return colorful.Color{}
	case 1:
		return r.Output[0]
	}
	i, t := locate(r.Input, x, Clamp)
	return r.Output[i].BlendRgb(r.Output[i+1], t).Clamped()
}

// locate finds the segment [in[i], in[i+1]] that governs x and the fractional
// position of x inside it. len(in) must be at least 2.
func locate(in []float64, x float64, policy Extrapolation) (int, float64) {
	last := len(in) - 1
	if x <= in[0] {
		return 0, edge(in[0], in[1], x, policy)
	}
	if x >= in[last] {
		return last - 1, edge(in[last-1], in[last], x, policy)
	}
	// First breakpoint strictly greater than x; x sits in the segment just before it.
	j := sort.Search(len(in), func(k int) bool { return in[k] > x })
	return j - 1, fraction(in[j-1], in[j], x)
}

func edge(lo, hi, x float64, policy Extrapolation) float64 {
	if policy == Extend {
		return fraction(lo, hi, x)
	}
	if x <= lo {
		return 0
	}
	return 1
}

func fraction(lo, hi, x float64) float64 {
	if hi == lo {
		return 0
	}
	return (x - lo) / (hi - lo)
}
