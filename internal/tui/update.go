package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ensigniasec/reactions/internal/selector"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) { // nolint:ireturn
	switch x := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = x.Width, x.Height
		m.help.Width = x.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(x)

	case tea.MouseMsg:
		cmd := m.handleMouse(x)
		return m, cmd

	case settleTickMsg:
		if m.sel.Step(x.Gen) {
			return m, m.settle(x.Gen)
		}
		return m, nil

	case nudgeReleaseMsg:
		// A newer nudge extends the drag; only the latest timer releases it.
		if x.Seq != m.nudgeSeq || m.pointer.down {
			return m, nil
		}
		if gen, ok := m.sel.End(); ok {
			return m, m.settle(gen)
		}
		return m, nil

	case recordMsg:
		m.loading = false
		m.record = x.Record
		return m, nil

	case submitResultMsg:
		m.submitting = false
		n := x.Notification
		m.notice = &n
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(x)
		return m, cmd
	}

	if m.focus == focusIdentifier {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes key bindings and returns updated model and command.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) { // nolint:ireturn
	switch {
	case msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Focus):
		return m.toggleFocus()

	case key.Matches(msg, m.keys.Submit):
		if !m.canSubmit() {
			return m, nil
		}
		m.submitting = true
		m.notice = nil
		return m, m.submit()
	}

	if m.focus == focusIdentifier {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Left):
		return m, m.settle(m.sel.Tap(m.sel.SelectedIndex() - 1))

	case key.Matches(msg, m.keys.Right):
		return m, m.settle(m.sel.Tap(m.sel.SelectedIndex() + 1))

	case key.Matches(msg, m.keys.Pick):
		idx := int(msg.String()[0] - '1')
		if idx >= m.sel.Track().Count() {
			return m, nil
		}
		return m, m.settle(m.sel.Tap(idx))

	case key.Matches(msg, m.keys.NudgeLeft):
		cmd := m.nudge(-nudgeUnits)
		return m, cmd

	case key.Matches(msg, m.keys.NudgeRight):
		cmd := m.nudge(nudgeUnits)
		return m, cmd
	}
	return m, nil
}

// nudge drags the handle from the keyboard; the drag ends after a short idle.
func (m *Model) nudge(units float64) tea.Cmd {
	if m.sel.State() != selector.Dragging {
		m.sel.Start()
	}
	m.sel.ApplyDelta(units)
	m.nudgeSeq++
	return m.releaseNudge(m.nudgeSeq)
}

func (m Model) toggleFocus() (Model, tea.Cmd) {
	if m.focus == focusIdentifier {
		m.focus = focusSelector
		m.input.Blur()
		return m, nil
	}
	m.focus = focusIdentifier
	return m, m.input.Focus()
}

// handleMouse adapts mouse events to gesture events. A press on the handle
// starts a drag; a press and release elsewhere on the track is a tap.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		if _, ok := m.cellAt(msg.X); !ok {
			return nil
		}
		m.pointer = pointer{down: true, pressX: msg.X, dragging: m.onHandle(msg.X)}
		if m.pointer.dragging {
			m.sel.Start()
		}
		return nil

	case tea.MouseActionMotion:
		if !m.pointer.down || !m.pointer.dragging {
			return nil
		}
		m.sel.DragTo(float64(msg.X-m.pointer.pressX) * m.unitsPerColumn())
		return nil

	case tea.MouseActionRelease:
		if !m.pointer.down {
			return nil
		}
		p := m.pointer
		m.pointer = pointer{}
		if p.dragging {
			m.sel.DragTo(float64(msg.X-p.pressX) * m.unitsPerColumn())
			if gen, ok := m.sel.End(); ok {
				return m.settle(gen)
			}
			return nil
		}
		// A tap counts only when released on the track.
		if idx, ok := m.cellAt(msg.X); ok {
			return m.settle(m.sel.Tap(idx))
		}
		return nil
	}
	return nil
}
