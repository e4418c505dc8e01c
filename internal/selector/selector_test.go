package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSelector(t *testing.T, opts ...Option) *Selector {
	t.Helper()
	return New(newTestTrack(t), append([]Option{WithInitialIndex(2)}, opts...)...)
}

func TestSelector_InitialState(t *testing.T) {
	t.Parallel()

	s := newTestSelector(t)
	assert.Equal(t, Idle, s.State())
	assert.Equal(t, 128.0, s.Position())
	assert.Equal(t, 2, s.SelectedIndex())
}

func TestSelector_DragReleaseSnapsUp(t *testing.T) {
	t.Parallel()

	s := newTestSelector(t)
	s.Start()
	require.Equal(t, Dragging, s.State())
	require.True(t, s.ApplyDelta(10))
	require.True(t, s.ApplyDelta(40))
	assert.Equal(t, 178.0, s.Position())

	gen, ok := s.End()
	require.True(t, ok)
	assert.Equal(t, s.Generation(), gen)
	assert.Equal(t, Settling, s.State())
	assert.Equal(t, 192.0, s.Target())
	// The rating is visible before the animation finishes.
	assert.Equal(t, 3, s.SelectedIndex())
	assert.Equal(t, 178.0, s.Position())

	s.Settle()
	assert.Equal(t, Idle, s.State())
	assert.Equal(t, 192.0, s.Position())
	assert.Equal(t, 3, s.SelectedIndex())
}

func TestSelector_DragToIsRelativeToGestureStart(t *testing.T) {
	t.Parallel()

	s := newTestSelector(t)
	s.Start()
	s.DragTo(10)
	s.DragTo(-40)
	assert.Equal(t, 88.0, s.Position())

	_, ok := s.End()
	require.True(t, ok)
	assert.Equal(t, 1, s.SelectedIndex())
}

func TestSelector_ClampLaw(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		delta float64
		pos   float64
		index int
	}{
		{name: "far left", delta: -1000, pos: 0, index: 0},
		{name: "just below zero", delta: -129, pos: 0, index: 0},
		{name: "far right", delta: 1000, pos: 256, index: 4},
		{name: "just past max", delta: 129, pos: 256, index: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := newTestSelector(t)
			s.Start()
			s.ApplyDelta(tt.delta)
			_, ok := s.End()
			require.True(t, ok)
			assert.Equal(t, tt.index, s.SelectedIndex())
			s.Settle()
			assert.Equal(t, tt.pos, s.Position())
		})
	}
}

func TestSelector_TapDuringDrag(t *testing.T) {
	t.Parallel()

	s := newTestSelector(t)
	s.Start()
	s.ApplyDelta(90)

	s.Tap(0)
	assert.Equal(t, 0.0, s.Target())
	assert.Equal(t, 0, s.SelectedIndex())
	assert.Equal(t, Settling, s.State())

	// The abandoned drag no longer moves the handle.
	assert.False(t, s.ApplyDelta(10))
	_, ok := s.End()
	assert.False(t, ok)

	s.Settle()
	assert.Equal(t, 0.0, s.Position())
}

func TestSelector_TapClampsIndex(t *testing.T) {
	t.Parallel()

	s := newTestSelector(t)
	s.Tap(99)
	assert.Equal(t, 4, s.SelectedIndex())
	s.Tap(-1)
	assert.Equal(t, 0, s.SelectedIndex())
}

func TestSelector_LastWriterWins(t *testing.T) {
	t.Parallel()

	s := newTestSelector(t)
	first := s.Tap(4)
	require.True(t, s.Step(first))

	second := s.Tap(1)
	assert.NotEqual(t, first, second)
	before := s.Position()
	assert.False(t, s.Step(first), "stale tick must be ignored")
	assert.Equal(t, before, s.Position())

	assert.True(t, s.Step(second))
	s.Settle()
	assert.Equal(t, 64.0, s.Position())
	assert.Equal(t, 1, s.SelectedIndex())
}

func TestSelector_StartCancelsSettle(t *testing.T) {
	t.Parallel()

	s := newTestSelector(t)
	gen := s.Tap(4)
	s.Step(gen)
	s.Step(gen)
	mid := s.Position()

	s.Start()
	assert.Equal(t, Dragging, s.State())
	assert.False(t, s.Step(gen))
	assert.Equal(t, mid, s.Position())

	s.ApplyDelta(5)
	assert.InDelta(t, mid+5, s.Position(), 1e-9)
}

func TestSelector_IgnoresDeltasWhenIdle(t *testing.T) {
	t.Parallel()

	s := newTestSelector(t)
	assert.False(t, s.ApplyDelta(12))
	assert.False(t, s.DragTo(12))
	_, ok := s.End()
	assert.False(t, ok)
	assert.Equal(t, 128.0, s.Position())
	assert.Equal(t, Idle, s.State())
}

func TestSelector_SubscriberSeesEveryUpdate(t *testing.T) {
	t.Parallel()

	var frames []Frame
	s := newTestSelector(t, WithSubscriber(func(f Frame) { frames = append(frames, f) }))

	s.Start()
	s.ApplyDelta(10)
	s.ApplyDelta(40)
	require.Len(t, frames, 2)
	assert.Equal(t, 138.0, frames[0].Position)
	assert.Equal(t, 178.0, frames[1].Position)
	assert.Len(t, frames[1].Items, 5)

	s.End()
	steps := s.Settle()
	require.Positive(t, steps)
	assert.Len(t, frames, 2+steps)
	last := frames[len(frames)-1]
	assert.Equal(t, 192.0, last.Position)
	assert.Equal(t, Idle, last.State)
	assert.Equal(t, 3, last.Index)
	assert.Equal(t, 1.0, last.Items[3].Opacity)
}

func TestSelector_SettleConverges(t *testing.T) {
	t.Parallel()

	s := newTestSelector(t)
	gen := s.Tap(0)
	frames := 0
	for s.Step(gen) {
		frames++
		require.Less(t, frames, maxSettleFrames)
	}
	assert.Equal(t, Idle, s.State())
	assert.Equal(t, 0.0, s.Position())
}

func TestSelector_FrameHandleStaysOnTrack(t *testing.T) {
	t.Parallel()

	s := newTestSelector(t)
	s.Start()
	s.ApplyDelta(-500)
	f := s.Frame()
	assert.Equal(t, -372.0, f.Position)
	assert.Equal(t, 0.0, f.Handle)
}
