package poollist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iterpolaris/polaris-cli/internal/models"
)

type AddMsg struct{}

type EditMsg struct {
	Mission models.PoolMission
}

type DeleteMsg struct {
	Mission models.PoolMission
}

type CompleteMsg struct {
	Mission models.PoolMission
}

type ReopenMsg struct {
	Mission models.PoolMission
}

type ToggleFocusMsg struct {
	Mission models.PoolMission
}

// GrabMsg starts a drag toward the calendar.
type GrabMsg struct {
	Mission models.PoolMission
}

// ScheduleMsg opens the conversion form on the mission.
type ScheduleMsg struct {
	Mission models.PoolMission
}

type Item struct {
	Mission models.PoolMission
}

func (i Item) Title() string {
	glyph := "○"
	if i.Mission.Status == models.StatusCompleted {
		glyph = "✓"
	} else if i.Mission.FocusStatus == models.FocusDeferred {
		glyph = "◌"
	}
	return glyph + " " + i.Mission.Title
}

func (i Item) Description() string {
	parts := []string{strings.ToLower(string(i.Mission.FocusStatus))}
	if i.Mission.PointsValue != 0 {
		parts = append(parts, fmt.Sprintf("%d pts", i.Mission.PointsValue))
	}
	if i.Mission.EnergyValue != 0 {
		parts = append(parts, fmt.Sprintf("%+d energy", i.Mission.EnergyValue))
	}
	return strings.Join(parts, " · ")
}

func (i Item) FilterValue() string { return i.Mission.Title }

type KeyMap struct {
	Add      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Complete key.Binding
	Reopen   key.Binding
	Focus    key.Binding
	Grab     key.Binding
	Schedule key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Complete: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "complete"),
		),
		Reopen: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "reopen"),
		),
		Focus: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "toggle focus"),
		),
		Grab: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "grab for calendar"),
		),
		Schedule: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "schedule"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(missions []models.PoolMission, width, height int) Model {
	l := list.New(itemsFrom(missions), list.NewDefaultDelegate(), width, height)
	l.Title = "Mission Pool"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Grab, keys.Schedule, keys.Complete, keys.Focus}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete, keys.Complete, keys.Reopen, keys.Focus, keys.Grab, keys.Schedule}
	}

	return Model{list: l, keys: keys}
}

func itemsFrom(missions []models.PoolMission) []list.Item {
	items := make([]list.Item, len(missions))
	for i, m := range missions {
		items[i] = Item{Mission: m}
	}
	return items
}

func (m *Model) SetMissions(missions []models.PoolMission) {
	m.list.SetItems(itemsFrom(missions))
}

func (m Model) Keys() KeyMap { return m.keys }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		selected, ok := m.list.SelectedItem().(Item)
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if ok {
				return m, func() tea.Msg { return EditMsg{Mission: selected.Mission} }
			}
		case key.Matches(msg, m.keys.Delete):
			if ok {
				return m, func() tea.Msg { return DeleteMsg{Mission: selected.Mission} }
			}
		case key.Matches(msg, m.keys.Complete):
			if ok && selected.Mission.Status != models.StatusCompleted {
				return m, func() tea.Msg { return CompleteMsg{Mission: selected.Mission} }
			}
		case key.Matches(msg, m.keys.Reopen):
			if ok && selected.Mission.Status == models.StatusCompleted {
				return m, func() tea.Msg { return ReopenMsg{Mission: selected.Mission} }
			}
		case key.Matches(msg, m.keys.Focus):
			if ok {
				return m, func() tea.Msg { return ToggleFocusMsg{Mission: selected.Mission} }
			}
		case key.Matches(msg, m.keys.Grab):
			if ok && selected.Mission.Status == models.StatusPending {
				return m, func() tea.Msg { return GrabMsg{Mission: selected.Mission} }
			}
		case key.Matches(msg, m.keys.Schedule):
			if ok && selected.Mission.Status == models.StatusPending {
				return m, func() tea.Msg { return ScheduleMsg{Mission: selected.Mission} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  Pool is empty.\n  Press 'a' to add a mission."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
