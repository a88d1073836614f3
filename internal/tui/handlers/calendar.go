package handlers

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iterpolaris/polaris-cli/internal/engine"
	"github.com/iterpolaris/polaris-cli/internal/tui/components/calendargrid"
	"github.com/iterpolaris/polaris-cli/internal/tui/state"
)

// Menu dimensions used for clamping against the calendar box. Width covers
// the longest label plus padding; height is the deepest entry list.
const (
	menuWidth  = 28
	menuHeight = 11
)

// HandleCalendarMsg routes calendar component messages into engine calls
// and form openings. It returns true when the message was consumed.
func HandleCalendarMsg(m *state.Model, msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case calendargrid.SelectItemMsg:
		m.Engine.Menu.Open(msg.Item, msg.X, msg.Y, m.Width, m.Height, menuWidth, menuHeight)
		m.MenuCursor = 0
		return nil, true
	case calendargrid.SelectSlotMsg:
		prefill := m.Engine.SelectSlot(msg.Start, msg.End, msg.MultiDay)
		OpenMissionForm(m, nil, &prefill)
		return m.Form.Init(), true
	case calendargrid.CommitMoveMsg:
		return RunMove(m, msg.Item, msg.NewStart, msg.NewEnd), true
	case calendargrid.CommitResizeMsg:
		return RunResize(m, msg.Item, msg.NewStart, msg.NewEnd), true
	case calendargrid.DropMsg:
		m.Calendar.SetDragActive(false)
		return RunDrop(m, msg.Start, msg.End, msg.AllDay), true
	case calendargrid.CancelDropMsg:
		m.Calendar.SetDragActive(false)
		m.Engine.CancelDrag()
		return nil, true
	}
	return nil, false
}

// HandleMenuKey drives the open action menu. Disabled entries are skipped
// by the cursor and inert on enter.
func HandleMenuKey(m *state.Model, msg tea.KeyMsg) (tea.Cmd, bool) {
	if !m.Engine.Menu.IsOpen() {
		return nil, false
	}
	entries := engine.MenuEntries(m.Engine.Menu.Item())
	switch msg.String() {
	case "esc":
		m.Engine.Menu.Close()
		return nil, true
	case "j", "down":
		m.MenuCursor = nextEnabled(entries, m.MenuCursor, 1)
		return nil, true
	case "k", "up":
		m.MenuCursor = nextEnabled(entries, m.MenuCursor, -1)
		return nil, true
	case "enter":
		if m.MenuCursor >= len(entries) || !entries[m.MenuCursor].Enabled {
			return nil, true
		}
		action := entries[m.MenuCursor].Action
		item := m.Engine.Menu.Item()
		return RunAction(m, action, item), true
	}
	return nil, true
}

func nextEnabled(entries []engine.MenuEntry, from, dir int) int {
	if len(entries) == 0 {
		return 0
	}
	i := from
	for range entries {
		i = (i + dir + len(entries)) % len(entries)
		if entries[i].Enabled {
			return i
		}
	}
	return from
}
