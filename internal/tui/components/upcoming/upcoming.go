// Package upcoming renders the read-only ordered agenda: every calendar
// item in the loaded range, ascending by start time.
package upcoming

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iterpolaris/polaris-cli/internal/models"
	"github.com/iterpolaris/polaris-cli/internal/projection"
)

var (
	dayStyle  = lipgloss.NewStyle().Bold(true).MarginTop(1)
	doneStyle = lipgloss.NewStyle().Faint(true)
)

type Model struct {
	viewport viewport.Model
	items    []projection.CalendarItem
	colors   projection.ColorIndex
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

// SetItems replaces the agenda content. Items are sorted by start time; the
// caller passes the raw projection output.
func (m *Model) SetItems(items []projection.CalendarItem, colors projection.ColorIndex) {
	m.items = append([]projection.CalendarItem(nil), items...)
	projection.SortByStart(m.items)
	m.colors = colors
	m.viewport.SetContent(m.render())
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.viewport.SetContent(m.render())
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.items) == 0 {
		return "\n  Nothing scheduled."
	}
	return m.viewport.View()
}

func (m Model) render() string {
	var b strings.Builder
	lastDay := ""
	for _, it := range m.items {
		day := it.Start().Format("Monday, Jan 2")
		if day != lastDay {
			b.WriteString(dayStyle.Render(day) + "\n")
			lastDay = day
		}
		b.WriteString(m.renderItem(it) + "\n")
	}
	return b.String()
}

func (m Model) renderItem(it projection.CalendarItem) string {
	var when string
	if it.AllDay() {
		when = "all day    "
	} else {
		when = fmt.Sprintf("%s–%s", it.Start().Format("15:04"), it.End().Format("15:04"))
	}

	kind := ""
	if it.Kind() == projection.KindHabitOccurrence {
		kind = " ⟳"
	}

	line := fmt.Sprintf("  %s  %s%s", when, it.Title(), kind)
	switch it.Status() {
	case models.StatusCompleted:
		return doneStyle.Render(line + " ✓")
	case models.StatusSkipped:
		return doneStyle.Render(line + " ⤫")
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.ColorFor(it.QuestID()))).Render(line)
}
