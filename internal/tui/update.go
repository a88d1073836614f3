package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/iterpolaris/polaris-cli/internal/constants"
	"github.com/iterpolaris/polaris-cli/internal/engine"
	"github.com/iterpolaris/polaris-cli/internal/session"
	"github.com/iterpolaris/polaris-cli/internal/tui/handlers"
	"github.com/iterpolaris/polaris-cli/internal/tui/state"
)

// mainViews is the number of tab-cycled views.
const mainViews = 3

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Form states capture all input until completed or cancelled.
	switch m.State {
	case constants.StateMissionForm, constants.StateHabitForm, constants.StatePoolForm:
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			handlers.CloseForm(&m.Model)
			return m, nil
		}

		form, cmd := m.Form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.Form = f
		}
		cmds = append(cmds, cmd)

		switch m.Form.State {
		case huh.StateCompleted:
			var submit tea.Cmd
			switch m.State {
			case constants.StateMissionForm:
				submit = handlers.SubmitMissionForm(&m.Model)
			case constants.StateHabitForm:
				submit = handlers.SubmitHabitForm(&m.Model)
			case constants.StatePoolForm:
				submit = handlers.SubmitPoolForm(&m.Model)
			}
			if submit == nil {
				// Validation caught something the form could not; stay in
				// the form so the user can correct it.
				m.Form.State = huh.StateNormal
				return m, tea.Batch(cmds...)
			}
			handlers.CloseForm(&m.Model)
			cmds = append(cmds, submit)
		case huh.StateAborted:
			handlers.CloseForm(&m.Model)
		}
		return m, tea.Batch(cmds...)

	case constants.StateConfirmDeleteMission, constants.StateConfirmDeleteTemplate:
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.ConfirmValue = false
			return m, handlers.ResolveConfirm(&m.Model)
		}

		form, cmd := m.Form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.Form = f
		}
		cmds = append(cmds, cmd)

		switch m.Form.State {
		case huh.StateCompleted:
			cmds = append(cmds, handlers.ResolveConfirm(&m.Model))
		case huh.StateAborted:
			m.ConfirmValue = false
			cmds = append(cmds, handlers.ResolveConfirm(&m.Model))
		}
		return m, tea.Batch(cmds...)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		// Header, error/success lines and help eat four rows.
		contentHeight := msg.Height - 4

		h, v := docStyle.GetFrameSize()
		m.Calendar.SetSize(msg.Width-h, contentHeight-v)
		m.Pool.SetSize(msg.Width-h, contentHeight-v)
		m.Upcoming.SetSize(msg.Width-h, contentHeight-v)
		return m, nil

	case state.EventsLoadedMsg:
		m.CalendarLoading = false
		m.Items = msg.Result.Items
		if err := msg.Result.Err(); err != nil {
			m.ErrorMsg = err.Error()
		}
		m.syncItems()
		return m, nil

	case state.PoolLoadedMsg:
		m.PoolLoading = false
		if msg.Err != nil {
			m.ErrorMsg = msg.Err.Error()
			return m, nil
		}
		m.PoolMissions = msg.Missions
		m.Pool.SetMissions(msg.Missions)
		return m, nil

	case state.ReferenceLoadedMsg:
		if msg.Err != nil {
			m.ErrorMsg = msg.Err.Error()
			return m, nil
		}
		m.Quests = msg.Quests
		m.Tags = msg.Tags
		m.Colors = msg.Colors
		m.QuestNames = make(map[int64]string, len(msg.Quests))
		for _, q := range msg.Quests {
			m.QuestNames[q.ID] = q.Name
		}
		m.syncItems()
		return m, nil

	case state.OutcomeMsg:
		return m, m.applyOutcome(msg.Outcome)

	case state.ClearSuccessMsg:
		m.SuccessMsg = ""
		return m, nil

	case state.SessionChangedMsg:
		m.Snapshot = msg.Snapshot
		if msg.Snapshot.Phase == session.PhaseUnauthenticated {
			m.ErrorMsg = "Session expired. Run `polaris login` and restart."
		}
		return m, m.waitForSession()

	case state.IntentsDrainedMsg:
		if msg.Err != nil {
			m.ErrorMsg = msg.Err.Error()
			return m, nil
		}
		if msg.Resolved > 0 {
			m.SuccessMsg = "Recovered pending conversions"
			return m, tea.Batch(handlers.ClearSuccessAfter(), handlers.LoadEvents(&m.Model), handlers.LoadPool(&m.Model))
		}
		return m, nil

	case tea.KeyMsg:
		if cmd, ok := handlers.HandleMenuKey(&m.Model, msg); ok {
			return m, cmd
		}
		switch {
		case key.Matches(msg, m.Keys.Quit):
			m.Quitting = true
			m.unsubscribe()
			m.Session.Teardown()
			return m, tea.Quit
		case key.Matches(msg, m.Keys.Tab):
			m.State = (m.State + 1) % mainViews
			return m, nil
		case key.Matches(msg, m.Keys.ShiftTab):
			m.State = (m.State - 1 + mainViews) % mainViews
			return m, nil
		case key.Matches(msg, m.Keys.Help):
			m.Help.ShowAll = !m.Help.ShowAll
			return m, nil
		case key.Matches(msg, m.Keys.Refresh):
			return m, tea.Batch(handlers.LoadEvents(&m.Model), handlers.LoadPool(&m.Model), handlers.LoadReference(&m.Model))
		case key.Matches(msg, m.Keys.Retry):
			return m, handlers.DrainIntents(&m.Model)
		}
	}

	if cmd, ok := handlers.HandleCalendarMsg(&m.Model, msg); ok {
		return m, cmd
	}
	if cmd, ok := handlers.HandlePoolMsg(&m.Model, msg); ok {
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.State {
	case constants.StateCalendar:
		m.Calendar, cmd = m.Calendar.Update(msg)
		cmds = append(cmds, cmd)
	case constants.StatePool:
		m.Pool, cmd = m.Pool.Update(msg)
		cmds = append(cmds, cmd)
	case constants.StateUpcoming:
		m.Upcoming, cmd = m.Upcoming.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// syncItems pushes the current projection, with any pending optimistic
// patches applied, into the calendar and agenda views.
func (m *Model) syncItems() {
	items := m.Engine.Patches.Overlay(m.Items)
	m.Calendar.SetItems(items, m.Colors)
	m.Upcoming.SetItems(items, m.Colors)
}

func (m *Model) applyOutcome(o engine.Outcome) tea.Cmd {
	var cmds []tea.Cmd

	if o.Err != nil {
		m.ErrorMsg = o.Err.Error()
	} else if o.Message != "" {
		m.ErrorMsg = ""
		m.SuccessMsg = o.Message
		cmds = append(cmds, handlers.ClearSuccessAfter())
	}
	if o.RefetchEvents {
		cmds = append(cmds, handlers.LoadEvents(&m.Model))
	}
	if o.RefetchPool {
		cmds = append(cmds, handlers.LoadPool(&m.Model))
	}
	if o.EditMission != nil {
		handlers.OpenMissionForm(&m.Model, o.EditMission, nil)
		cmds = append(cmds, m.Form.Init())
	}
	if o.EditTemplate != nil {
		handlers.OpenHabitForm(&m.Model, o.EditTemplate)
		cmds = append(cmds, m.Form.Init())
	}
	if o.ConfirmDeleteMission != nil {
		handlers.OpenDeleteMissionConfirm(&m.Model, o.ConfirmDeleteMission)
		cmds = append(cmds, m.Form.Init())
	}
	if o.ConfirmDeleteTemplate != 0 {
		handlers.OpenDeleteTemplateConfirm(&m.Model, o.ConfirmDeleteTemplate, "")
		cmds = append(cmds, m.Form.Init())
	}
	return tea.Batch(cmds...)
}
