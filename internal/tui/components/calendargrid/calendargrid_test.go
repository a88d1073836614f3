package calendargrid

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iterpolaris/polaris-cli/internal/models"
	"github.com/iterpolaris/polaris-cli/internal/projection"
)

func TestStartOfWeekIsMonday(t *testing.T) {
	cases := []struct {
		name string
		day  string
		want string
	}{
		{"monday stays", "2026-03-09", "2026-03-09"},
		{"wednesday rewinds", "2026-03-11", "2026-03-09"},
		{"sunday rewinds six days", "2026-03-15", "2026-03-09"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			day, err := time.Parse("2006-01-02", tc.day)
			if err != nil {
				t.Fatalf("bad day: %v", err)
			}
			got := startOfWeek(day)
			if got.Format("2006-01-02") != tc.want {
				t.Errorf("startOfWeek(%s) = %s, want %s", tc.day, got.Format("2006-01-02"), tc.want)
			}
			if got.Hour() != 0 || got.Minute() != 0 {
				t.Errorf("week start not truncated to midnight: %v", got)
			}
		})
	}
}

func TestWeekRangeSpansSevenDays(t *testing.T) {
	m := New(80, 24)
	start, end := m.WeekRange()
	if got := end.Sub(start); got != 7*24*time.Hour {
		t.Errorf("week range = %v, want 168h", got)
	}
	if weekdayIndex(start) != 0 {
		t.Errorf("week range does not start on Monday: %v", start)
	}
}

func TestDayItemsFiltersAndSorts(t *testing.T) {
	m := New(80, 24)
	m.weekStart = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	monday := m.weekStart
	tuesday := monday.AddDate(0, 0, 1)
	mk := func(id int64, start time.Time) projection.CalendarItem {
		return projection.NewMissionItem(models.ScheduledMission{
			ID:            id,
			Title:         "m",
			Status:        models.StatusPending,
			StartDatetime: start,
			EndDatetime:   start.Add(time.Hour),
		})
	}

	m.SetItems([]projection.CalendarItem{
		mk(1, monday.Add(15*time.Hour)),
		mk(2, tuesday.Add(9*time.Hour)),
		mk(3, monday.Add(9*time.Hour)),
	}, nil)

	got := m.dayItems(0)
	if len(got) != 2 {
		t.Fatalf("monday items = %d, want 2", len(got))
	}
	if got[0].ID() != "sm-3" || got[1].ID() != "sm-1" {
		t.Errorf("monday order = %s, %s, want sm-3 then sm-1", got[0].ID(), got[1].ID())
	}
	if tue := m.dayItems(1); len(tue) != 1 || tue[0].ID() != "sm-2" {
		t.Errorf("tuesday items = %v", tue)
	}
}

func TestSetItemsClampsCursor(t *testing.T) {
	m := New(80, 24)
	m.weekStart = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	m.cursorDay = 0
	m.cursorItem = 5

	item := projection.NewMissionItem(models.ScheduledMission{
		ID:            1,
		Status:        models.StatusPending,
		StartDatetime: m.weekStart.Add(9 * time.Hour),
		EndDatetime:   m.weekStart.Add(10 * time.Hour),
	})
	m.SetItems([]projection.CalendarItem{item}, nil)

	if m.cursorItem != 0 {
		t.Errorf("cursorItem = %d, want clamped to 0", m.cursorItem)
	}

	m.SetItems(nil, nil)
	if m.cursorItem != -1 {
		t.Errorf("cursorItem with no items = %d, want -1 (empty slot)", m.cursorItem)
	}
}

func TestCursorSlotUsesSlotHour(t *testing.T) {
	m := New(80, 24)
	m.weekStart = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	m.cursorDay = 2
	m.slotHour = 14

	got := m.cursorSlot()
	want := time.Date(2026, 3, 11, 14, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("cursorSlot = %v, want %v", got, want)
	}
}

func TestEscapeCancelsActiveDrag(t *testing.T) {
	m := New(80, 24)
	m.SetDragActive(true)

	esc := tea.KeyMsg{Type: tea.KeyEsc}
	m, cmd := m.Update(esc)
	if m.dragActive {
		t.Error("esc should clear the drag-active state")
	}
	if cmd == nil {
		t.Fatal("esc during a drag should emit a cancel message")
	}
	if _, ok := cmd().(CancelDropMsg); !ok {
		t.Errorf("cmd produced %T, want CancelDropMsg", cmd())
	}
}

func TestEscapeWithoutDragIsInert(t *testing.T) {
	m := New(80, 24)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd != nil {
		t.Errorf("esc without a drag emitted %T", cmd())
	}
	if m.dragActive {
		t.Error("dragActive should stay false")
	}
}

func TestColWidthHasFloor(t *testing.T) {
	m := New(20, 24)
	if got := m.colWidth(); got != 12 {
		t.Errorf("colWidth on narrow terminal = %d, want floor 12", got)
	}
	m.SetSize(140, 24)
	if got := m.colWidth(); got != 20 {
		t.Errorf("colWidth = %d, want 20", got)
	}
}
