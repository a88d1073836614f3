package projection

import (
	"fmt"
	"time"

	"github.com/iterpolaris/polaris-cli/internal/models"
)

// Kind discriminates the entity behind a CalendarItem.
type Kind int

const (
	KindScheduledMission Kind = iota
	KindHabitOccurrence
)

func (k Kind) String() string {
	switch k {
	case KindScheduledMission:
		return "scheduled_mission"
	case KindHabitOccurrence:
		return "habit_occurrence"
	}
	return "unknown"
}

// CalendarItem is the normalized calendar/list shape shared by scheduled
// missions and habit occurrences. It is a tagged union: exactly one of the
// two backing entities is set, and every consumer switches exhaustively on
// Kind rather than sniffing fields.
type CalendarItem struct {
	kind       Kind
	mission    models.ScheduledMission
	occurrence models.HabitOccurrence
}

// NewMissionItem wraps a scheduled mission.
func NewMissionItem(m models.ScheduledMission) CalendarItem {
	return CalendarItem{kind: KindScheduledMission, mission: m}
}

// NewOccurrenceItem wraps a habit occurrence.
func NewOccurrenceItem(o models.HabitOccurrence) CalendarItem {
	return CalendarItem{kind: KindHabitOccurrence, occurrence: o}
}

// Kind returns the discriminator.
func (it CalendarItem) Kind() Kind { return it.kind }

// Mission returns the backing scheduled mission, if that is the item's kind.
func (it CalendarItem) Mission() (models.ScheduledMission, bool) {
	return it.mission, it.kind == KindScheduledMission
}

// Occurrence returns the backing habit occurrence, if that is the item's kind.
func (it CalendarItem) Occurrence() (models.HabitOccurrence, bool) {
	return it.occurrence, it.kind == KindHabitOccurrence
}

// ID is the prefixed identity: the two collections share a numeric id
// space, so "sm-" / "ho-" keeps them distinct in one view.
func (it CalendarItem) ID() string {
	switch it.kind {
	case KindScheduledMission:
		return fmt.Sprintf("sm-%d", it.mission.ID)
	case KindHabitOccurrence:
		return fmt.Sprintf("ho-%d", it.occurrence.ID)
	}
	return ""
}

// Title returns the display title.
func (it CalendarItem) Title() string {
	switch it.kind {
	case KindScheduledMission:
		return it.mission.Title
	case KindHabitOccurrence:
		return it.occurrence.Title
	}
	return ""
}

// Start returns the item's start instant.
func (it CalendarItem) Start() time.Time {
	switch it.kind {
	case KindScheduledMission:
		return it.mission.StartDatetime
	case KindHabitOccurrence:
		return it.occurrence.ScheduledStartDatetime
	}
	return time.Time{}
}

// End returns the item's end instant.
func (it CalendarItem) End() time.Time {
	switch it.kind {
	case KindScheduledMission:
		return it.mission.EndDatetime
	case KindHabitOccurrence:
		return it.occurrence.ScheduledEndDatetime
	}
	return time.Time{}
}

// AllDay reports whether the item spans whole day cells.
func (it CalendarItem) AllDay() bool {
	switch it.kind {
	case KindScheduledMission:
		return it.mission.IsAllDay
	case KindHabitOccurrence:
		return it.occurrence.IsAllDay
	}
	return false
}

// Status returns the completion status.
func (it CalendarItem) Status() models.Status {
	switch it.kind {
	case KindScheduledMission:
		return it.mission.Status
	case KindHabitOccurrence:
		return it.occurrence.Status
	}
	return ""
}

// QuestID returns the owning quest, when set.
func (it CalendarItem) QuestID() *int64 {
	switch it.kind {
	case KindScheduledMission:
		return it.mission.QuestID
	case KindHabitOccurrence:
		return it.occurrence.QuestID
	}
	return nil
}

// Tags returns the item's tag set. Occurrences inherit their template's
// tags; the set is empty when the server sent neither form.
func (it CalendarItem) Tags() []models.Tag {
	switch it.kind {
	case KindScheduledMission:
		return it.mission.Tags
	case KindHabitOccurrence:
		return it.occurrence.EffectiveTags()
	}
	return nil
}

// Movable reports whether the item may be dragged or resized: scheduled
// missions only, and only while PENDING. Habit occurrences are never
// movable; their schedule belongs to the template.
func (it CalendarItem) Movable() bool {
	switch it.kind {
	case KindScheduledMission:
		return it.mission.Movable()
	case KindHabitOccurrence:
		return false
	}
	return false
}
