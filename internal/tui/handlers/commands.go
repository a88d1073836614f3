package handlers

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iterpolaris/polaris-cli/internal/api"
	"github.com/iterpolaris/polaris-cli/internal/constants"
	"github.com/iterpolaris/polaris-cli/internal/engine"
	"github.com/iterpolaris/polaris-cli/internal/models"
	"github.com/iterpolaris/polaris-cli/internal/projection"
	"github.com/iterpolaris/polaris-cli/internal/tui/state"
)

// LoadEvents refetches the combined calendar projection for the rendered
// week plus the following one (the upcoming panel looks ahead).
func LoadEvents(m *state.Model) tea.Cmd {
	client := m.Client
	from, _ := m.Calendar.WeekRange()
	to := from.AddDate(0, 0, 14)
	m.CalendarLoading = true
	return func() tea.Msg {
		res := projection.Build(context.Background(), client, api.ListFilter{From: from, To: to})
		return state.EventsLoadedMsg{Result: res}
	}
}

// LoadPool refetches the pool listing.
func LoadPool(m *state.Model) tea.Cmd {
	client := m.Client
	m.PoolLoading = true
	return func() tea.Msg {
		missions, err := client.ListPoolMissions(context.Background(), "")
		return state.PoolLoadedMsg{Missions: missions, Err: err}
	}
}

// LoadReference fetches quests and tags for colors and form selectors.
func LoadReference(m *state.Model) tea.Cmd {
	client := m.Client
	return func() tea.Msg {
		quests, err := client.ListQuests(context.Background())
		if err != nil {
			return state.ReferenceLoadedMsg{Err: err}
		}
		colors := make(projection.ColorIndex, len(quests))
		for _, q := range quests {
			colors[q.ID] = q.Color
		}
		tags, err := client.ListTags(context.Background())
		return state.ReferenceLoadedMsg{Quests: quests, Tags: tags, Colors: colors, Err: err}
	}
}

// ClearSuccessAfter expires the transient success message.
func ClearSuccessAfter() tea.Cmd {
	return tea.Tick(constants.SuccessMessageSeconds*time.Second, func(time.Time) tea.Msg {
		return state.ClearSuccessMsg{}
	})
}

// RunAction executes a menu action through the engine.
func RunAction(m *state.Model, action engine.Action, item projection.CalendarItem) tea.Cmd {
	eng := m.Engine
	return func() tea.Msg {
		return state.OutcomeMsg{Outcome: eng.EventAction(context.Background(), action, item)}
	}
}

// RunMove commits a calendar move through the engine.
func RunMove(m *state.Model, item projection.CalendarItem, newStart, newEnd time.Time) tea.Cmd {
	eng := m.Engine
	return func() tea.Msg {
		return state.OutcomeMsg{Outcome: eng.Move(context.Background(), item, newStart, newEnd)}
	}
}

// RunResize commits a calendar resize through the engine.
func RunResize(m *state.Model, item projection.CalendarItem, newStart, newEnd time.Time) tea.Cmd {
	eng := m.Engine
	return func() tea.Msg {
		return state.OutcomeMsg{Outcome: eng.Resize(context.Background(), item, newStart, newEnd)}
	}
}

// RunDrop lands the dragged pool mission on the slot.
func RunDrop(m *state.Model, start, end time.Time, allDay bool) tea.Cmd {
	eng := m.Engine
	return func() tea.Msg {
		return state.OutcomeMsg{Outcome: eng.DropFromOutside(context.Background(), start, end, allDay)}
	}
}

// RunDeleteMission deletes a confirmed scheduled mission.
func RunDeleteMission(m *state.Model, mission models.ScheduledMission) tea.Cmd {
	eng := m.Engine
	return func() tea.Msg {
		return state.OutcomeMsg{Outcome: eng.DeleteMission(context.Background(), mission)}
	}
}

// RunDeleteTemplate deletes a confirmed habit template (cascading to all
// of its occurrences).
func RunDeleteTemplate(m *state.Model, id int64) tea.Cmd {
	eng := m.Engine
	return func() tea.Msg {
		return state.OutcomeMsg{Outcome: eng.DeleteTemplate(context.Background(), id)}
	}
}

// DrainIntents retries pending compensating deletes from earlier
// conversions.
func DrainIntents(m *state.Model) tea.Cmd {
	intents, client := m.Intents, m.Client
	if intents == nil {
		return nil
	}
	return func() tea.Msg {
		resolved, err := intents.Drain(context.Background(), client)
		return state.IntentsDrainedMsg{Resolved: resolved, Err: err}
	}
}

// PatchPoolStatus transitions a pool mission's completion status and
// propagates gamification totals.
func PatchPoolStatus(m *state.Model, mission models.PoolMission, status models.Status) tea.Cmd {
	client, sess := m.Client, m.Session
	return func() tea.Msg {
		_, delta, err := client.PatchPoolMissionStatus(context.Background(), mission.ID, status)
		if err != nil {
			return state.OutcomeMsg{Outcome: engine.Outcome{Err: err}}
		}
		if err := sess.ApplyMutation(context.Background(), delta); err != nil {
			return state.OutcomeMsg{Outcome: engine.Outcome{Err: err, RefetchPool: true}}
		}
		return state.OutcomeMsg{Outcome: engine.Outcome{Message: "Pool mission updated", RefetchPool: true}}
	}
}

// TogglePoolFocus flips a pool mission between ACTIVE and DEFERRED.
func TogglePoolFocus(m *state.Model, mission models.PoolMission) tea.Cmd {
	client := m.Client
	next := models.FocusDeferred
	if mission.FocusStatus == models.FocusDeferred {
		next = models.FocusActive
	}
	return func() tea.Msg {
		if _, err := client.PatchPoolMissionFocus(context.Background(), mission.ID, next); err != nil {
			return state.OutcomeMsg{Outcome: engine.Outcome{Err: err}}
		}
		return state.OutcomeMsg{Outcome: engine.Outcome{RefetchPool: true}}
	}
}

// DeletePool deletes a pool mission outright.
func DeletePool(m *state.Model, mission models.PoolMission) tea.Cmd {
	client := m.Client
	return func() tea.Msg {
		if err := client.DeletePoolMission(context.Background(), mission.ID); err != nil {
			return state.OutcomeMsg{Outcome: engine.Outcome{Err: err}}
		}
		return state.OutcomeMsg{Outcome: engine.Outcome{Message: "Pool mission deleted", RefetchPool: true}}
	}
}
