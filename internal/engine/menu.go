package engine

import (
	"sync"

	"github.com/iterpolaris/polaris-cli/internal/constants"
	"github.com/iterpolaris/polaris-cli/internal/projection"
)

// MenuState is the action menu's finite state: closed, or open on exactly
// one item. Opening while open replaces the previous menu.
type MenuState int

const (
	MenuClosed MenuState = iota
	MenuOpen
)

// Menu is the single-instance action menu attached to the calendar surface.
// Action handlers close it on command goroutines while the render loop
// reads it, so every access takes the menu lock.
type Menu struct {
	mu    sync.Mutex
	state MenuState
	item  projection.CalendarItem
	x, y  int
}

// IsOpen reports whether the menu is showing.
func (m *Menu) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == MenuOpen
}

// Item returns the item the menu is open on. Only meaningful while open.
func (m *Menu) Item() projection.CalendarItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.item
}

// Position returns the clamped menu position. Only meaningful while open.
func (m *Menu) Position() (x, y int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.x, m.y
}

// Open places the menu near the pointer position, clamped so it never
// overflows the calendar's bounding box. Any previously open menu is
// replaced.
func (m *Menu) Open(item projection.CalendarItem, x, y, calWidth, calHeight, menuWidth, menuHeight int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = MenuOpen
	m.item = item
	m.x, m.y = ClampPosition(x, y, calWidth, calHeight, menuWidth, menuHeight)
}

// Close dismisses the menu. Action handlers always close before mutating so
// a stale menu never floats over a mutated item.
func (m *Menu) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = MenuClosed
	m.item = projection.CalendarItem{}
}

// ClampPosition clamps a requested (x, y) so a menu of the given size stays
// inside the calendar box with at least the minimum inset on every edge.
func ClampPosition(x, y, calWidth, calHeight, menuWidth, menuHeight int) (int, int) {
	return clampAxis(x, calWidth, menuWidth), clampAxis(y, calHeight, menuHeight)
}

func clampAxis(pos, boxSize, menuSize int) int {
	max := boxSize - menuSize - constants.MenuInset
	if pos > max {
		pos = max
	}
	if pos < constants.MenuInset {
		pos = constants.MenuInset
	}
	return pos
}
