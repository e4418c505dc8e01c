package selector

import (
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
)

func TestRange_At(t *testing.T) {
	t.Parallel()

	r := Range{Input: []float64{44, 64, 84}, Output: []float64{1, 0.25, 1}}
	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{name: "below first breakpoint clamps", x: -100, want: 1},
		{name: "first breakpoint", x: 44, want: 1},
		{name: "midway down", x: 54, want: 0.625},
		{name: "center", x: 64, want: 0.25},
		{name: "midway up", x: 74, want: 0.625},
		{name: "above last breakpoint clamps", x: 500, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, r.At(tt.x), 1e-9)
		})
	}
}

func TestRange_Extend(t *testing.T) {
	t.Parallel()

	r := Range{Input: []float64{0, 10}, Output: []float64{0, 1}, Extrapolate: Extend}
	assert.InDelta(t, -0.5, r.At(-5), 1e-9)
	assert.InDelta(t, 2.0, r.At(20), 1e-9)
}

func TestRange_Degenerate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, Range{}.At(3))
	assert.Equal(t, 7.0, Range{Input: []float64{1}, Output: []float64{7}}.At(3))
	// Repeated breakpoints must not divide by zero.
	r := Range{Input: []float64{5, 5}, Output: []float64{2, 4}}
	assert.Equal(t, 2.0, r.At(4))
	assert.Equal(t, 4.0, r.At(6))
}

func TestColorRange_At(t *testing.T) {
	t.Parallel()

	black := colorful.Color{R: 0, G: 0, B: 0}
	white := colorful.Color{R: 1, G: 1, B: 1}
	r := ColorRange{Input: []float64{0, 20}, Output: []colorful.Color{black, white}}

	assert.Equal(t, black, r.At(-10))
	assert.Equal(t, white, r.At(30))
	mid := r.At(10)
	assert.InDelta(t, 0.5, mid.R, 1e-9)
	assert.InDelta(t, 0.5, mid.G, 1e-9)
	assert.InDelta(t, 0.5, mid.B, 1e-9)
}
