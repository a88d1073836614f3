// Package calendargrid renders the weekly calendar surface and translates
// keyboard gestures into the same event stream a pointer calendar would
// emit: select-slot, select-event, move, resize, drop-from-outside.
package calendargrid

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iterpolaris/polaris-cli/internal/projection"
)

// SelectItemMsg asks the parent to open the action menu on the item, near
// the cell position.
type SelectItemMsg struct {
	Item projection.CalendarItem
	X, Y int
}

// SelectSlotMsg asks the parent to open a create form pre-filled with the
// slot. MultiDay selections become all-day missions.
type SelectSlotMsg struct {
	Start    time.Time
	End      time.Time
	MultiDay bool
}

// CommitMoveMsg commits a grabbed item at its new times.
type CommitMoveMsg struct {
	Item     projection.CalendarItem
	NewStart time.Time
	NewEnd   time.Time
}

// CommitResizeMsg commits a resize: only the end edge moved.
type CommitResizeMsg struct {
	Item     projection.CalendarItem
	NewStart time.Time
	NewEnd   time.Time
}

// DropMsg lands the externally dragged pool mission on the slot.
type DropMsg struct {
	Start  time.Time
	End    time.Time
	AllDay bool
}

// CancelDropMsg abandons the externally dragged pool mission without
// dropping it anywhere.
type CancelDropMsg struct{}

type mode int

const (
	modeBrowse mode = iota
	modeMove
	modeResize
)

type KeyMap struct {
	PrevDay   key.Binding
	NextDay   key.Binding
	PrevItem  key.Binding
	NextItem  key.Binding
	PrevWeek  key.Binding
	NextWeek  key.Binding
	Today     key.Binding
	Select    key.Binding
	AddSlot   key.Binding
	AddAllDay key.Binding
	SlotUp    key.Binding
	SlotDown  key.Binding
	Move      key.Binding
	Resize    key.Binding
	Cancel    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		PrevDay:   key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "prev day")),
		NextDay:   key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "next day")),
		PrevItem:  key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "prev item")),
		NextItem:  key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "next item")),
		PrevWeek:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev week")),
		NextWeek:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next week")),
		Today:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Select:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "actions/drop")),
		AddSlot:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add at slot")),
		AddAllDay: key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "add all-day")),
		SlotUp:    key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "later slot")),
		SlotDown:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "earlier slot")),
		Move:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		Resize:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "resize")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

type Model struct {
	items  []projection.CalendarItem
	colors projection.ColorIndex
	keys   KeyMap

	weekStart  time.Time // Monday of the rendered week
	cursorDay  int       // 0..6
	cursorItem int       // index into the day's items; -1 selects the empty slot
	slotHour   int       // hour used for empty-slot selections and drops

	mode       mode
	grabbed    projection.CalendarItem
	grabStart  time.Time
	grabEnd    time.Time
	dragActive bool // a pool mission is being dragged toward the calendar

	width, height int
}

func New(width, height int) Model {
	now := time.Now()
	return Model{
		keys:       DefaultKeyMap(),
		weekStart:  startOfWeek(now),
		cursorDay:  weekdayIndex(now),
		cursorItem: -1,
		slotHour:   9,
		width:      width,
		height:     height,
	}
}

func startOfWeek(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return t.AddDate(0, 0, -weekdayIndex(t))
}

// weekdayIndex maps Monday..Sunday onto 0..6.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// WeekRange returns the rendered week's bounds for list filters.
func (m Model) WeekRange() (time.Time, time.Time) {
	return m.weekStart, m.weekStart.AddDate(0, 0, 7)
}

// SetItems replaces the rendered items and quest colors.
func (m *Model) SetItems(items []projection.CalendarItem, colors projection.ColorIndex) {
	m.items = items
	m.colors = colors
	m.clampCursor()
}

// SetDragActive toggles the drop-target rendering for a pool drag.
func (m *Model) SetDragActive(active bool) {
	m.dragActive = active
}

// Moving reports whether a grab (move or resize) is in progress.
func (m Model) Moving() bool { return m.mode != modeBrowse }

func (m Model) Keys() KeyMap { return m.keys }

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) dayItems(day int) []projection.CalendarItem {
	dayStart := m.weekStart.AddDate(0, 0, day)
	dayEnd := dayStart.AddDate(0, 0, 1)
	var out []projection.CalendarItem
	for _, it := range m.items {
		s := it.Start()
		if !s.Before(dayStart) && s.Before(dayEnd) {
			out = append(out, it)
		}
	}
	projection.SortByStart(out)
	return out
}

func (m *Model) clampCursor() {
	n := len(m.dayItems(m.cursorDay))
	if m.cursorItem >= n {
		m.cursorItem = n - 1
	}
}

// selected returns the item under the cursor, if any.
func (m Model) selected() (projection.CalendarItem, bool) {
	items := m.dayItems(m.cursorDay)
	if m.cursorItem < 0 || m.cursorItem >= len(items) {
		return projection.CalendarItem{}, false
	}
	return items[m.cursorItem], true
}

// cursorSlot is the empty-slot instant under the cursor.
func (m Model) cursorSlot() time.Time {
	return m.weekStart.AddDate(0, 0, m.cursorDay).Add(time.Duration(m.slotHour) * time.Hour)
}

// CellPosition approximates the selected cell's pixel-ish position inside
// the calendar box, used to anchor the action menu.
func (m Model) CellPosition() (x, y int) {
	colWidth := m.colWidth()
	return m.cursorDay*colWidth + colWidth/2, (m.cursorItem+1)*2 + 2
}

func (m Model) colWidth() int {
	w := m.width / 7
	if w < 12 {
		w = 12
	}
	return w
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.mode != modeBrowse {
		return m.updateGrab(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, m.keys.Cancel):
		if m.dragActive {
			m.dragActive = false
			return m, func() tea.Msg { return CancelDropMsg{} }
		}
	case key.Matches(keyMsg, m.keys.PrevDay):
		if m.cursorDay > 0 {
			m.cursorDay--
			m.clampCursor()
		}
	case key.Matches(keyMsg, m.keys.NextDay):
		if m.cursorDay < 6 {
			m.cursorDay++
			m.clampCursor()
		}
	case key.Matches(keyMsg, m.keys.PrevItem):
		if m.cursorItem > -1 {
			m.cursorItem--
		}
	case key.Matches(keyMsg, m.keys.NextItem):
		if m.cursorItem < len(m.dayItems(m.cursorDay))-1 {
			m.cursorItem++
		}
	case key.Matches(keyMsg, m.keys.PrevWeek):
		m.weekStart = m.weekStart.AddDate(0, 0, -7)
		m.clampCursor()
	case key.Matches(keyMsg, m.keys.NextWeek):
		m.weekStart = m.weekStart.AddDate(0, 0, 7)
		m.clampCursor()
	case key.Matches(keyMsg, m.keys.Today):
		now := time.Now()
		m.weekStart = startOfWeek(now)
		m.cursorDay = weekdayIndex(now)
		m.clampCursor()
	case key.Matches(keyMsg, m.keys.SlotUp):
		if m.slotHour < 23 {
			m.slotHour++
		}
	case key.Matches(keyMsg, m.keys.SlotDown):
		if m.slotHour > 0 {
			m.slotHour--
		}
	case key.Matches(keyMsg, m.keys.Select):
		if m.dragActive {
			start := m.cursorSlot()
			return m, func() tea.Msg {
				return DropMsg{Start: start, End: start.Add(time.Hour), AllDay: false}
			}
		}
		if it, ok := m.selected(); ok {
			x, y := m.CellPosition()
			return m, func() tea.Msg { return SelectItemMsg{Item: it, X: x, Y: y} }
		}
		start := m.cursorSlot()
		return m, func() tea.Msg {
			return SelectSlotMsg{Start: start, End: start.Add(time.Hour)}
		}
	case key.Matches(keyMsg, m.keys.AddSlot):
		start := m.cursorSlot()
		return m, func() tea.Msg {
			return SelectSlotMsg{Start: start, End: start.Add(time.Hour)}
		}
	case key.Matches(keyMsg, m.keys.AddAllDay):
		day := m.weekStart.AddDate(0, 0, m.cursorDay)
		return m, func() tea.Msg {
			return SelectSlotMsg{Start: day, End: day.AddDate(0, 0, 1), MultiDay: true}
		}
	case key.Matches(keyMsg, m.keys.Move):
		if it, ok := m.selected(); ok {
			m.mode = modeMove
			m.grabbed = it
			m.grabStart = it.Start()
			m.grabEnd = it.End()
		}
	case key.Matches(keyMsg, m.keys.Resize):
		if it, ok := m.selected(); ok {
			m.mode = modeResize
			m.grabbed = it
			m.grabStart = it.Start()
			m.grabEnd = it.End()
		}
	}
	return m, nil
}

// updateGrab handles the move/resize grab modes. A move shifts both bounds
// together; a resize moves only the end edge.
func (m Model) updateGrab(msg tea.KeyMsg) (Model, tea.Cmd) {
	shift := func(d time.Duration) {
		if m.mode == modeMove {
			m.grabStart = m.grabStart.Add(d)
		}
		m.grabEnd = m.grabEnd.Add(d)
	}

	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeBrowse
	case key.Matches(msg, m.keys.PrevDay):
		if m.mode == modeMove {
			shift(-24 * time.Hour)
		}
	case key.Matches(msg, m.keys.NextDay):
		if m.mode == modeMove {
			shift(24 * time.Hour)
		}
	case key.Matches(msg, m.keys.PrevItem):
		shift(-30 * time.Minute)
	case key.Matches(msg, m.keys.NextItem):
		shift(30 * time.Minute)
	case key.Matches(msg, m.keys.Select):
		item, start, end, wasMove := m.grabbed, m.grabStart, m.grabEnd, m.mode == modeMove
		m.mode = modeBrowse
		if wasMove {
			return m, func() tea.Msg { return CommitMoveMsg{Item: item, NewStart: start, NewEnd: end} }
		}
		return m, func() tea.Msg { return CommitResizeMsg{Item: item, NewStart: start, NewEnd: end} }
	}
	return m, nil
}

// GrabbedTimes exposes the in-progress grab bounds for rendering.
func (m Model) GrabbedTimes() (projection.CalendarItem, time.Time, time.Time, bool) {
	if m.mode == modeBrowse {
		return projection.CalendarItem{}, time.Time{}, time.Time{}, false
	}
	return m.grabbed, m.grabStart, m.grabEnd, true
}

func statusGlyph(it projection.CalendarItem) string {
	switch it.Status() {
	case "COMPLETED":
		return "✓"
	case "SKIPPED":
		return "⤫"
	default:
		if !it.Movable() {
			// Either a habit occurrence or a settled mission; both render
			// with the pin to show they cannot be dragged.
			if it.Kind() == projection.KindHabitOccurrence {
				return "⟳"
			}
		}
		return "·"
	}
}

func (m Model) itemLabel(it projection.CalendarItem) string {
	if it.AllDay() {
		return fmt.Sprintf("%s %s", statusGlyph(it), it.Title())
	}
	return fmt.Sprintf("%s %s %s", statusGlyph(it), it.Start().Format("15:04"), it.Title())
}
