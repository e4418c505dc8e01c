// Package selector maps a one-dimensional drag gesture onto a discrete set of
// positions and derives the visual feedback shown while the handle moves.
//
// A Selector is not safe for concurrent use. It is meant to be owned by a
// single event loop that delivers gesture events and settle ticks in order.
package selector

// State is the gesture lifecycle of a Selector.
type State int

const (
	Idle State = iota
	Dragging
	Settling
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Settling:
		return "settling"
	default:
		return "unknown"
	}
}

// Subscriber receives a frame after every position change.
type Subscriber func(Frame)

type gestureSession struct {
	baseOffset float64
	delta      float64
}

// Selector owns the continuous handle position.
type Selector struct {
	track  Track
	interp *Interpolator
	spring Spring

	position float64
	velocity float64
	target   float64
	selected int
	state    State
	session  *gestureSession

	// generation identifies the settle in flight; stale ticks carry an older value.
	generation  uint64
	subscribers []Subscriber
}

// Option configures a Selector.
type Option func(*Selector)

// WithInitialIndex places the handle on index at rest.
func WithInitialIndex(index int) Option {
	return func(s *Selector) {
		s.position = s.track.Boundary(index)
		s.target = s.position
		s.selected = s.track.IndexOf(s.position)
	}
}

// WithStyle replaces the default visual style.
func WithStyle(style Style) Option {
	return func(s *Selector) {
		s.interp = NewInterpolator(s.track, style)
	}
}

// WithSpring replaces the default settle spring.
func WithSpring(sp Spring) Option {
	return func(s *Selector) {
		s.spring = sp
	}
}

// WithSubscriber registers a render subscriber at construction.
func WithSubscriber(fn Subscriber) Option {
	return func(s *Selector) {
		s.Subscribe(fn)
	}
}

// New returns an idle Selector resting on index 0 unless configured otherwise.
func New(track Track, opts ...Option) *Selector {
	s := &Selector{
		track:  track,
		interp: NewInterpolator(track, DefaultStyle()),
		spring: DefaultSpring(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe adds a render subscriber. Nil is ignored.
func (s *Selector) Subscribe(fn Subscriber) {
	if fn != nil {
		s.subscribers = append(s.subscribers, fn)
	}
}

func (s *Selector) Track() Track                { return s.track }
func (s *Selector) Interpolator() *Interpolator { return s.interp }
func (s *Selector) Spring() Spring              { return s.spring }
func (s *Selector) Position() float64           { return s.position }
func (s *Selector) State() State                { return s.state }
func (s *Selector) Generation() uint64          { return s.generation }

// SelectedIndex is the index of the latest snap target. It changes as soon as
// a settle starts, not when it finishes.
func (s *Selector) SelectedIndex() int { return s.selected }

// Target is the position the selector is settling toward or resting on.
func (s *Selector) Target() float64 { return s.target }

// Frame computes the current render frame.
func (s *Selector) Frame() Frame {
	return Frame{
		Position: s.position,
		Handle:   s.interp.Handle(s.position),
		Index:    s.selected,
		State:    s.state,
		Items:    s.interp.Attributes(s.position),
	}
}

// Start begins a drag from the current position, cancelling any settle.
func (s *Selector) Start() {
	if s.state == Settling {
		s.generation++
		s.velocity = 0
	}
	s.session = &gestureSession{baseOffset: s.position}
	s.state = Dragging
}

// ApplyDelta adds an incremental drag delta. It reports false outside a drag.
func (s *Selector) ApplyDelta(d float64) bool {
	if s.session == nil {
		return false
	}
	return s.DragTo(s.session.delta + d)
}

// DragTo sets the cumulative delta since Start. It reports false outside a drag.
func (s *Selector) DragTo(dx float64) bool {
	if s.session == nil {
		return false
	}
	s.session.delta = dx
	s.position = s.session.baseOffset + dx
	s.notify()
	return true
}

// End releases the drag: the position is clamped, snapped and settled.
// It returns the settle generation, or false when no drag was active.
func (s *Selector) End() (uint64, bool) {
	if s.session == nil {
		return 0, false
	}
	flattened := s.session.baseOffset + s.session.delta
	s.session = nil
	s.position = flattened
	return s.settleTo(s.track.Snap(flattened)), true
}

// Tap settles directly on index, abandoning any drag in progress.
func (s *Selector) Tap(index int) uint64 {
	s.session = nil
	return s.SetTarget(index)
}

// SetTarget starts a settle toward index and returns its generation. Any
// settle already in flight is superseded.
func (s *Selector) SetTarget(index int) uint64 {
	return s.settleTo(s.track.Boundary(index))
}

func (s *Selector) settleTo(target float64) uint64 {
	s.generation++
	s.target = target
	s.selected = s.track.IndexOf(target)
	s.state = Settling
	return s.generation
}

// Step advances the settle animation by one frame if gen is still current.
// It reports whether more frames are needed for this generation.
func (s *Selector) Step(gen uint64) bool {
	if gen != s.generation || s.state != Settling {
		return false
	}
	s.position, s.velocity = s.spring.Step(s.position, s.velocity, s.target)
	more := true
	if atRest(s.position, s.velocity, s.target) {
		s.position, s.velocity = s.target, 0
		s.state = Idle
		more = false
	}
	s.notify()
	return more
}

// Settle runs the current settle to completion synchronously and returns the
// number of frames stepped.
func (s *Selector) Settle() int {
	gen := s.generation
	frames := 0
	for s.state == Settling && frames < maxSettleFrames {
		frames++
		if !s.Step(gen) {
			break
		}
	}
	if s.state == Settling {
		s.position, s.velocity = s.target, 0
		s.state = Idle
		s.notify()
	}
	return frames
}

func (s *Selector) notify() {
	if len(s.subscribers) == 0 {
		return
	}
	f := s.Frame()
	for _, fn := range s.subscribers {
		fn(f)
	}
}
