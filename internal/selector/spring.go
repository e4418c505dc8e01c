package selector

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

const (
	// DefaultFPS is the settle animation frame rate.
	DefaultFPS = 60
	// DefaultFrequency and DefaultDamping approximate a friction 7 spring at default tension.
	DefaultFrequency = 15.2
	DefaultDamping   = 0.72

	restDisplacement = 0.001
	restSpeed        = 0.001
	// maxSettleFrames bounds Settle for springs configured to never come to rest.
	maxSettleFrames = 10 * DefaultFPS
)

// Spring is a damped spring stepped at a fixed frame rate.
type Spring struct {
	spring harmonica.Spring
	fps    int
}

// NewSpring builds a spring; non-positive fps falls back to DefaultFPS.
func NewSpring(fps int, frequency, damping float64) Spring {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return Spring{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping), fps: fps}
}

// DefaultSpring returns the spring used when none is configured.
func DefaultSpring() Spring {
	return NewSpring(DefaultFPS, DefaultFrequency, DefaultDamping)
}

// FrameInterval is the wall time between two steps.
func (s Spring) FrameInterval() time.Duration {
	return time.Second / time.Duration(s.fps)
}

// Step advances one frame toward target.
func (s Spring) Step(pos, vel, target float64) (float64, float64) {
	return s.spring.Update(pos, vel, target)
}

func atRest(pos, vel, target float64) bool {
	return math.Abs(pos-target) < restDisplacement && math.Abs(vel) < restSpeed
}
