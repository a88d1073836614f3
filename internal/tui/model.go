package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iterpolaris/polaris-cli/internal/api"
	"github.com/iterpolaris/polaris-cli/internal/constants"
	"github.com/iterpolaris/polaris-cli/internal/convert"
	"github.com/iterpolaris/polaris-cli/internal/engine"
	"github.com/iterpolaris/polaris-cli/internal/intentlog"
	"github.com/iterpolaris/polaris-cli/internal/session"
	"github.com/iterpolaris/polaris-cli/internal/tui/handlers"
	"github.com/iterpolaris/polaris-cli/internal/tui/state"
)

// Model is the program root. All shared state lives in the embedded
// state.Model so the handlers package can mutate it without importing
// this package back.
type Model struct {
	state.Model

	// sessionCh bridges store subscription callbacks into the bubbletea
	// message loop.
	sessionCh   chan session.Snapshot
	unsubscribe func()
}

func NewModel(client *api.Client, sess *session.Store, eng *engine.Engine, wf *convert.Workflow, intents *intentlog.Log) Model {
	m := Model{
		Model:     state.New(client, sess, eng, wf, intents),
		sessionCh: make(chan session.Snapshot, 8),
	}
	m.unsubscribe = sess.Subscribe(func(snap session.Snapshot) {
		select {
		case m.sessionCh <- snap:
		default:
		}
	})
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.Keys.Tab, m.Keys.Quit, m.Keys.Help}
	switch m.State {
	case constants.StateCalendar:
		k := m.Calendar.Keys()
		keys = append(keys, k.Select, k.AddSlot, k.Move)
	case constants.StatePool:
		k := m.Pool.Keys()
		keys = append(keys, k.Add, k.Grab, k.Schedule)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.Keys.Tab, m.Keys.ShiftTab, m.Keys.Quit, m.Keys.Help, m.Keys.Refresh, m.Keys.Retry}

	var actions []key.Binding
	switch m.State {
	case constants.StateCalendar:
		k := m.Calendar.Keys()
		actions = []key.Binding{k.PrevDay, k.NextDay, k.PrevItem, k.NextItem, k.PrevWeek, k.NextWeek, k.Today, k.Select, k.AddSlot, k.AddAllDay, k.Move, k.Resize}
	case constants.StatePool:
		k := m.Pool.Keys()
		actions = []key.Binding{k.Add, k.Edit, k.Delete, k.Complete, k.Reopen, k.Focus, k.Grab, k.Schedule}
	}

	return [][]key.Binding{global, actions}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		handlers.LoadReference(&m.Model),
		handlers.LoadEvents(&m.Model),
		handlers.LoadPool(&m.Model),
		handlers.DrainIntents(&m.Model),
		m.waitForSession(),
	)
}

func (m Model) waitForSession() tea.Cmd {
	ch := m.sessionCh
	return func() tea.Msg {
		return state.SessionChangedMsg{Snapshot: <-ch}
	}
}
