package handlers

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/iterpolaris/polaris-cli/internal/constants"
	"github.com/iterpolaris/polaris-cli/internal/models"
	"github.com/iterpolaris/polaris-cli/internal/tui/state"
)

// OpenDeleteMissionConfirm asks before deleting a scheduled mission.
func OpenDeleteMissionConfirm(m *state.Model, mission *models.ScheduledMission) {
	m.MissionToDelete = mission
	m.ConfirmValue = false
	m.Form = huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Delete %q?", mission.Title)).
			Affirmative("Delete").
			Negative("Cancel").
			Value(&m.ConfirmValue),
	))
	m.PreviousState = m.State
	m.State = constants.StateConfirmDeleteMission
}

// OpenDeleteTemplateConfirm asks before deleting a habit template. The
// prompt spells out the cascade to every generated occurrence.
func OpenDeleteTemplateConfirm(m *state.Model, id int64, title string) {
	m.TemplateToDelete = id
	m.ConfirmValue = false
	if title == "" {
		title = "this habit"
	}
	m.Form = huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Delete %s and all of its occurrences?", title)).
			Affirmative("Delete").
			Negative("Cancel").
			Value(&m.ConfirmValue),
	))
	m.PreviousState = m.State
	m.State = constants.StateConfirmDeleteTemplate
}

// ResolveConfirm runs after the confirmation form completes: a yes
// dispatches the pending delete, a no just closes.
func ResolveConfirm(m *state.Model) tea.Cmd {
	confirmed := m.ConfirmValue
	st := m.State
	mission := m.MissionToDelete
	template := m.TemplateToDelete

	m.Form = nil
	m.MissionToDelete = nil
	m.TemplateToDelete = 0
	m.State = m.PreviousState

	if !confirmed {
		return nil
	}
	switch st {
	case constants.StateConfirmDeleteMission:
		if mission != nil {
			return RunDeleteMission(m, *mission)
		}
	case constants.StateConfirmDeleteTemplate:
		if template != 0 {
			return RunDeleteTemplate(m, template)
		}
	}
	return nil
}
