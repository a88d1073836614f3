package handlers

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iterpolaris/polaris-cli/internal/constants"
	"github.com/iterpolaris/polaris-cli/internal/models"
	"github.com/iterpolaris/polaris-cli/internal/tui/components/poollist"
	"github.com/iterpolaris/polaris-cli/internal/tui/state"
)

// HandlePoolMsg routes pool component messages. It returns true when the
// message was consumed.
func HandlePoolMsg(m *state.Model, msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case poollist.AddMsg:
		OpenPoolForm(m, nil)
		return m.Form.Init(), true
	case poollist.EditMsg:
		mission := msg.Mission
		OpenPoolForm(m, &mission)
		return m.Form.Init(), true
	case poollist.DeleteMsg:
		return DeletePool(m, msg.Mission), true
	case poollist.CompleteMsg:
		return PatchPoolStatus(m, msg.Mission, models.StatusCompleted), true
	case poollist.ReopenMsg:
		return PatchPoolStatus(m, msg.Mission, models.StatusPending), true
	case poollist.ToggleFocusMsg:
		return TogglePoolFocus(m, msg.Mission), true
	case poollist.GrabMsg:
		m.Engine.StartDrag(msg.Mission)
		m.Calendar.SetDragActive(true)
		m.State = constants.StateCalendar
		return nil, true
	case poollist.ScheduleMsg:
		mission := msg.Mission
		m.ConvertingPool = &mission
		OpenMissionForm(m, nil, nil)
		return m.Form.Init(), true
	}
	return nil, false
}
