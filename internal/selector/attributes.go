package selector

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Style holds the near (handle on the item) and far (handle away) visual values.
type Style struct {
	// Spread is the distance on each side of an item's center over which it reacts.
	Spread     float64
	NearScale  float64
	FarScale   float64
	NearOffset float64
	FarOffset  float64
	Near       colorful.Color
	Far        colorful.Color
}

// DefaultStyle returns the grey-on-white look of the rating screen.
func DefaultStyle() Style {
	return Style{
		Spread:     20,
		NearScale:  0.25,
		FarScale:   1,
		NearOffset: 10,
		FarOffset:  0,
		Near:       mustHex("#222222"),
		Far:        mustHex("#999999"),
	}
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Attributes is the visual state of one reaction item at a position.
type Attributes struct {
	Scale   float64
	Offset  float64
	Color   colorful.Color
	Opacity float64 // large icon overlay opacity
}

// Frame is everything a renderer needs for one paint.
type Frame struct {
	Position float64
	// Handle is the on-track translation of the handle, clamped to the track.
	Handle float64
	Index  int
	State  State
	Items  []Attributes
}

type itemRanges struct {
	scale   Range
	offset  Range
	color   ColorRange
	opacity Range
}

// Interpolator precomputes per-item ranges for a track.
type Interpolator struct {
	track  Track
	items  []itemRanges
	handle Range
}

// NewInterpolator builds the per-item tables for track using style.
func NewInterpolator(track Track, style Style) *Interpolator {
	ip := &Interpolator{
		track:  track,
		items:  make([]itemRanges, track.Count()),
		handle: Range{Input: []float64{0, track.MaxPosition()}, Output: []float64{0, track.MaxPosition()}},
	}
	for i := range ip.items {
		ip.items[i] = newItemRanges(track, style, i)
	}
	return ip
}

func newItemRanges(track Track, style Style, i int) itemRanges {
	u := float64(i) * track.SegmentWidth()
	lo, hi := u-style.Spread, u+style.Spread

	input := []float64{lo, u, hi}
	// pick arranges (near, far) pairs to match input.
	pick := func(near, far float64) []float64 { return []float64{far, near, far} }
	pickColor := func(near, far colorful.Color) []colorful.Color { return []colorful.Color{far, near, far} }

	if lo < 0 {
		input = []float64{u, hi}
		pick = func(near, far float64) []float64 { return []float64{near, far} }
		pickColor = func(near, far colorful.Color) []colorful.Color { return []colorful.Color{near, far} }
	}
	if hi > track.MaxPosition() {
		input = []float64{lo, u}
		pick = func(near, far float64) []float64 { return []float64{far, near} }
		pickColor = func(near, far colorful.Color) []colorful.Color { return []colorful.Color{far, near} }
	}

	return itemRanges{
		scale:   Range{Input: input, Output: pick(style.NearScale, style.FarScale)},
		offset:  Range{Input: input, Output: pick(style.NearOffset, style.FarOffset)},
		color:   ColorRange{Input: input, Output: pickColor(style.Near, style.Far)},
		opacity: overlayRange(track, i),
	}
}

// overlayRange is the triangular cross-fade of item i's large icon.
func overlayRange(track Track, i int) Range {
	s := track.SegmentWidth()
	u := float64(i) * s
	switch {
	case i == 0:
		return Range{Input: []float64{0, s}, Output: []float64{1, 0}}
	case i == track.Count()-1:
		return Range{Input: []float64{u - s, u}, Output: []float64{0, 1}}
	default:
		return Range{Input: []float64{u - s, u, u + s}, Output: []float64{0, 1, 0}}
	}
}

// At returns the attributes of item i when the handle is at p.
func (ip *Interpolator) At(p float64, i int) Attributes {
	r := ip.items[ip.track.clampIndex(i)]
	return Attributes{
		Scale:   r.scale.At(p),
		Offset:  r.offset.At(p),
		Color:   r.color.At(p),
		Opacity: r.opacity.At(p),
	}
}

// Breakpoints returns the breakpoints used for item i's scale, offset and color.
func (ip *Interpolator) Breakpoints(i int) []float64 {
	in := ip.items[ip.track.clampIndex(i)].scale.Input
	out := make([]float64, len(in))
	copy(out, in)
	return out
}

// Handle returns the clamped on-track translation for p.
func (ip *Interpolator) Handle(p float64) float64 {
	return ip.handle.At(p)
}

// Attributes returns the attribute bundle of every item at p.
func (ip *Interpolator) Attributes(p float64) []Attributes {
	out := make([]Attributes, len(ip.items))
	for i := range ip.items {
		out[i] = ip.At(p, i)
	}
	return out
}
