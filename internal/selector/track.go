package selector

import (
	"errors"
	"fmt"
	"math"
)

// minItems is the smallest number of segments a track can be divided into.
const minItems = 2

// ErrInvalidTrack is returned when a track cannot be divided into segments.
var ErrInvalidTrack = errors.New("invalid track")

// Track is the immutable geometry of the selector axis.
type Track struct {
	width   float64
	count   int
	segment float64
}

// NewTrack divides a track of the given width into count equal segments.
func NewTrack(width float64, count int) (Track, error) {
	if count < minItems {
		return Track{}, fmt.Errorf("%w: need at least %d items, got %d", ErrInvalidTrack, minItems, count)
	}
	if width <= 0 || math.IsNaN(width) || math.IsInf(width, 0) {
		return Track{}, fmt.Errorf("%w: width must be positive, got %v", ErrInvalidTrack, width)
	}
	return Track{width: width, count: count, segment: width / float64(count)}, nil
}

func (t Track) Width() float64        { return t.width }
func (t Track) Count() int            { return t.count }
func (t Track) SegmentWidth() float64 { return t.segment }

// MaxPosition is the boundary of the last segment.
func (t Track) MaxPosition() float64 { return t.width - t.segment }

// Boundary returns the position of the segment boundary for index, clamping
// the index into the track.
func (t Track) Boundary(index int) float64 {
	return float64(t.clampIndex(index)) * t.segment
}

// Clamp bounds a raw position to [0, MaxPosition].
func (t Track) Clamp(p float64) float64 {
	switch {
	case p < 0 || math.IsNaN(p):
		return 0
	case p > t.MaxPosition():
		return t.MaxPosition()
	default:
		return p
	}
}

// Snap clamps p and rounds it to the nearer segment boundary. A position
// exactly halfway between two boundaries rounds up.
func (t Track) Snap(p float64) float64 {
	v := t.Clamp(p)
	modulo := math.Mod(v, t.segment)
	if modulo >= t.segment/2 {
		v += t.segment - modulo
	} else {
		v -= modulo
	}
	// Non-integral segment widths can leave a rounding residue above the last boundary.
	return math.Min(v, t.MaxPosition())
}

// IndexOf returns the index of the boundary p snaps to.
func (t Track) IndexOf(p float64) int {
	return t.clampIndex(int(math.Round(t.Snap(p) / t.segment)))
}

func (t Track) clampIndex(i int) int {
	if i < 0 {
		return 0
	}
	if i > t.count-1 {
		return t.count - 1
	}
	return i
}
