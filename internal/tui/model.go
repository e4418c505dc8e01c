package tui

import (
	"context"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	api "github.com/ensigniasec/reactions/internal/api"
	"github.com/ensigniasec/reactions/internal/rating"
	"github.com/ensigniasec/reactions/internal/reactions"
	"github.com/ensigniasec/reactions/internal/selector"
)

// focusArea selects which widget receives keys.
type focusArea int

const (
	focusSelector focusArea = iota
	focusIdentifier
)

// pointer tracks one mouse press on the track.
type pointer struct {
	down     bool
	dragging bool
	pressX   int
}

// Model is the root Bubble Tea model.
type Model struct {
	ctx       context.Context
	sel       *selector.Selector
	frame     *selector.Frame
	reactions reactions.Set
	submitter *rating.Submitter

	record     *api.Record
	loading    bool
	submitting bool
	notice     *rating.Notification

	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	focus    focusArea
	pointer  pointer
	nudgeSeq int
	width    int
	height   int
	quitting bool
}

// NewModel constructs a Model around sel. The selector's track must have one
// segment per reaction in set.
func NewModel(ctx context.Context, sel *selector.Selector, set reactions.Set, submitter *rating.Submitter) Model { // nolint:ireturn
	if ctx == nil {
		ctx = context.Background()
	}
	ti := textinput.New()
	ti.Placeholder = "Enter your email"
	ti.CharLimit = identifierCharLimit
	ti.Width = identifierWidth
	ti.Prompt = "✉ "

	// The subscriber keeps the last painted frame so View never recomputes mid-update.
	frame := sel.Frame()
	m := Model{
		ctx:       ctx,
		sel:       sel,
		frame:     &frame,
		reactions: set,
		submitter: submitter,
		loading:   submitter != nil,
		input:     ti,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:      help.New(),
		keys:      newKeyMap(),
	}
	sel.Subscribe(func(f selector.Frame) { *m.frame = f })
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.loading {
		cmds = append(cmds, m.spinner.Tick, m.loadRecord())
	}
	return tea.Batch(cmds...)
}

// loadRecord fetches the record in the background.
func (m Model) loadRecord() tea.Cmd {
	sub, ctx := m.submitter, m.ctx
	return func() tea.Msg {
		return recordMsg{Record: sub.LoadRecord(ctx)}
	}
}

// submit sends the current selection. The index is captured now, not when the request completes.
func (m Model) submit() tea.Cmd {
	sub, ctx, rec := m.submitter, m.ctx, m.record
	identifier, index := m.input.Value(), m.sel.SelectedIndex()
	return func() tea.Msg {
		n, _ := sub.Submit(ctx, rec, identifier, index)
		return submitResultMsg{Notification: n}
	}
}

// settle schedules the next animation frame of generation gen.
func (m Model) settle(gen uint64) tea.Cmd {
	return tea.Tick(m.sel.Spring().FrameInterval(), func(time.Time) tea.Msg {
		return settleTickMsg{Gen: gen}
	})
}

// releaseNudge schedules the end of a keyboard drag.
func (m Model) releaseNudge(seq int) tea.Cmd {
	return tea.Tick(nudgeReleaseInterval, func(time.Time) tea.Msg {
		return nudgeReleaseMsg{Seq: seq}
	})
}

// canSubmit mirrors the rating gate for the view and key handling.
func (m Model) canSubmit() bool {
	return !m.submitting && m.submitter.CanSubmit(m.input.Value(), m.record)
}

// unitsPerColumn converts terminal columns into track units.
func (m Model) unitsPerColumn() float64 {
	return m.sel.Track().Width() / float64(cellWidth*m.sel.Track().Count())
}

// handleColumn is the first column of the handle cell for the current frame.
func (m Model) handleColumn() int {
	return trackLeftMargin + int(math.Round(m.frame.Handle/m.unitsPerColumn()))
}

// cellAt returns the reaction index under column x.
func (m Model) cellAt(x int) (int, bool) {
	rel := x - trackLeftMargin
	if rel < 0 || rel >= cellWidth*m.sel.Track().Count() {
		return 0, false
	}
	return rel / cellWidth, true
}

// onHandle reports whether column x is inside the handle cell.
func (m Model) onHandle(x int) bool {
	start := m.handleColumn()
	return x >= start && x < start+cellWidth
}
