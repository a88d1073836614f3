package calendargrid

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/iterpolaris/polaris-cli/internal/projection"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	todayStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("212"))
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	cursorStyle = lipgloss.NewStyle().Padding(0, 1).Reverse(true)
	slotStyle   = lipgloss.NewStyle().Padding(0, 1).Faint(true)
	colStyle    = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderRight(true).BorderForeground(lipgloss.Color("238"))
)

func (m Model) View() string {
	colWidth := m.colWidth()
	cols := make([]string, 7)

	for day := 0; day < 7; day++ {
		date := m.weekStart.AddDate(0, 0, day)
		hs := headerStyle
		if isToday(date) {
			hs = todayStyle
		}
		lines := []string{hs.Width(colWidth - 1).Render(date.Format("Mon 02"))}

		items := m.dayItems(day)
		for i, it := range items {
			label := m.itemLabel(it)
			if grabbed, start, _, ok := m.GrabbedTimes(); ok && grabbed.ID() == it.ID() {
				label = fmt.Sprintf("✥ %s %s", start.Format("15:04"), it.Title())
			}
			style := cellStyle
			if day == m.cursorDay && i == m.cursorItem {
				style = cursorStyle
			}
			style = style.Foreground(lipgloss.Color(m.colors.ColorFor(it.QuestID())))
			lines = append(lines, style.Width(colWidth-1).MaxWidth(colWidth-1).Render(label))
		}

		// Empty-slot row: the keyboard stand-in for clicking a free slot.
		if day == m.cursorDay && m.cursorItem == -1 {
			marker := fmt.Sprintf("+ %02d:00", m.slotHour)
			if m.dragActive {
				marker = fmt.Sprintf("⇣ %02d:00", m.slotHour)
			}
			lines = append([]string{lines[0], cursorStyle.Width(colWidth - 1).Render(marker)}, lines[1:]...)
		} else if len(items) == 0 {
			lines = append(lines, slotStyle.Width(colWidth-1).Render("—"))
		}

		cols[day] = colStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	}

	grid := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	var footer string
	if _, start, end, ok := m.GrabbedTimes(); ok {
		verb := "moving"
		if m.mode == modeResize {
			verb = "resizing"
		}
		footer = fmt.Sprintf("\n %s → %s–%s  (enter: apply, esc: cancel)",
			verb, start.Format("Mon 15:04"), end.Format("15:04"))
	} else if m.dragActive {
		footer = "\n dragging pool mission: enter on a slot to drop, esc to cancel"
	}

	return grid + footer
}

func isToday(t time.Time) bool {
	return t.Format("2006-01-02") == time.Now().Format("2006-01-02")
}

// LegendView renders the quest color legend under the grid.
func LegendView(colors projection.ColorIndex, names map[int64]string) string {
	if len(names) == 0 {
		return ""
	}
	var b strings.Builder
	for id, name := range names {
		sw := lipgloss.NewStyle().Foreground(lipgloss.Color(colors.ColorFor(&id))).Render("■")
		fmt.Fprintf(&b, "%s %s  ", sw, name)
	}
	return b.String()
}
