package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/iterpolaris/polaris-cli/internal/constants"
	"github.com/iterpolaris/polaris-cli/internal/engine"
	"github.com/iterpolaris/polaris-cli/internal/session"
	"github.com/iterpolaris/polaris-cli/internal/tui/components/calendargrid"
)

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var content string
	switch m.State {
	case constants.StateCalendar:
		if m.Engine.Menu.IsOpen() {
			content = m.viewMenu()
		} else {
			content = docStyle.Render(m.Calendar.View())
		}
	case constants.StatePool:
		content = docStyle.Render(m.Pool.View())
	case constants.StateUpcoming:
		content = docStyle.Render(m.Upcoming.View())
	case constants.StateMissionForm, constants.StateHabitForm, constants.StatePoolForm,
		constants.StateConfirmDeleteMission, constants.StateConfirmDeleteTemplate:
		content = docStyle.Render(m.Form.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.viewTabs(), " ", m.viewHeader()),
		m.viewStatusLine(),
		content,
		m.Help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Calendar", "Pool", "Upcoming"} {
		if m.State == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// viewHeader shows the gamification totals from the session store.
func (m Model) viewHeader() string {
	snap := m.Snapshot
	if snap.Phase != session.PhaseAuthenticated {
		return headerStyle.Render("not signed in")
	}
	return headerStyle.Render(fmt.Sprintf(
		"%s · lvl %d · %d pts · %d⚡ · %d🔥",
		snap.User.Username, snap.User.Level, snap.User.TotalPoints,
		snap.Energy.Balance, snap.User.Streak,
	))
}

func (m Model) viewStatusLine() string {
	switch {
	case m.ErrorMsg != "":
		return dangerStyle.Render(m.ErrorMsg)
	case m.SuccessMsg != "":
		return successStyle.Render(m.SuccessMsg)
	case m.CalendarLoading || m.PoolLoading:
		return inactiveTabStyle.Render("loading…")
	}
	return calendargrid.LegendView(m.Colors, m.QuestNames)
}

// viewMenu draws the action menu at its clamped cell position over the
// calendar area.
func (m Model) viewMenu() string {
	entries := engine.MenuEntries(m.Engine.Menu.Item())
	rows := make([]string, 0, len(entries)+1)
	rows = append(rows, m.Engine.Menu.Item().Title())
	for i, e := range entries {
		label := e.Label
		switch {
		case !e.Enabled:
			label = menuDisabledStyle.Render(label)
		case i == m.MenuCursor:
			label = menuCursorStyle.Render("> " + label)
		}
		if e.Enabled && i != m.MenuCursor {
			label = "  " + label
		}
		rows = append(rows, label)
	}
	x, y := m.Engine.Menu.Position()
	box := menuStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	return lipgloss.NewStyle().MarginLeft(x).MarginTop(y).Render(box)
}
