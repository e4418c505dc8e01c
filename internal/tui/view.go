package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ensigniasec/reactions/internal/rating"
	"github.com/ensigniasec/reactions/internal/selector"
)

func (m Model) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	var b strings.Builder
	b.WriteString(renderTitle(m))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#333333")).Render("How was this movie?"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(renderLine(m))
	b.WriteString("\n")
	b.WriteString(renderHandle(m))
	b.WriteString("\n")
	b.WriteString(renderIcons(m))
	b.WriteString("\n")
	b.WriteString(renderLabels(m))
	b.WriteString("\n")
	b.WriteString(renderSubmit(m))
	b.WriteString("\n")
	b.WriteString(renderNotice(m.notice))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func renderTitle(m Model) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#000000"))
	switch {
	case m.loading:
		return m.spinner.View() + " loading movie..."
	case m.record == nil:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted)).Render("No movie available; sending is disabled")
	default:
		return style.Render(m.record.Title)
	}
}

func indent() string { return strings.Repeat(" ", trackLeftMargin) }

func renderLine(m Model) string {
	width := cellWidth * m.sel.Track().Count()
	return indent() + lipgloss.NewStyle().Foreground(lipgloss.Color(colorLine)).Render(strings.Repeat("─", width))
}

// renderHandle paints the large icon of the dominant reaction at the handle
// position; its background fades with that icon's opacity.
func renderHandle(m Model) string {
	f := m.frame
	top, opacity := dominant(f.Items)
	bg := blend(colorBackground, colorHandle, opacity)
	glyph := string(m.reactions.At(top).LargeIcon)
	cell := lipgloss.NewStyle().
		Background(lipgloss.Color(bg.Hex())).
		Width(cellWidth).
		Align(lipgloss.Center).
		Render(glyph)
	return strings.Repeat(" ", m.handleColumn()) + cell
}

func renderIcons(m Model) string {
	var b strings.Builder
	b.WriteString(indent())
	for i, a := range m.frame.Items {
		icon := string(m.reactions.At(i).SmallIcon)
		if a.Scale < smallIconMinScale {
			icon = "·"
		}
		b.WriteString(lipgloss.PlaceHorizontal(cellWidth, lipgloss.Center, icon))
	}
	return b.String()
}

// renderLabels uses two rows so a label can drop by its vertical offset.
func renderLabels(m Model) string {
	rows := [2]strings.Builder{}
	for r := range rows {
		rows[r].WriteString(indent())
	}
	for i, a := range m.frame.Items {
		label := lipgloss.NewStyle().Foreground(lipgloss.Color(a.Color.Hex())).Render(m.reactions.At(i).Label)
		cell := lipgloss.PlaceHorizontal(cellWidth, lipgloss.Center, label)
		blank := strings.Repeat(" ", cellWidth)
		if a.Offset >= labelDropOffset {
			rows[0].WriteString(blank)
			rows[1].WriteString(cell)
			continue
		}
		rows[0].WriteString(cell)
		rows[1].WriteString(blank)
	}
	return rows[0].String() + "\n" + rows[1].String()
}

func renderSubmit(m Model) string {
	if m.submitting {
		return indent() + lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted)).Render("sending...")
	}
	if !m.canSubmit() {
		return ""
	}
	button := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ffffff")).
		Background(lipgloss.Color(colorAccent)).
		Padding(0, 2).
		Render("Send")
	return indent() + button + lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted)).Render("  enter")
}

func renderNotice(n *rating.Notification) string {
	if n == nil {
		return ""
	}
	color := colorError
	switch n.Outcome {
	case rating.Success:
		color = colorSuccess
	case rating.Duplicate:
		color = colorWarn
	case rating.Failure:
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color)).Render(n.Title)
	return indent() + fmt.Sprintf("%s %s", title, n.Message)
}

// dominant returns the item whose large icon is most opaque.
func dominant(items []selector.Attributes) (int, float64) {
	best, opacity := 0, -1.0
	for i, a := range items {
		if a.Opacity > opacity {
			best, opacity = i, a.Opacity
		}
	}
	return best, opacity
}

func blend(from, to string, t float64) colorful.Color {
	a, errA := colorful.Hex(from)
	b, errB := colorful.Hex(to)
	if errA != nil || errB != nil {
		return colorful.Color{}
	}
	return a.BlendRgb(b, t).Clamped()
}
