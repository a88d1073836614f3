package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iterpolaris/polaris-cli/internal/convert"
	"github.com/iterpolaris/polaris-cli/internal/logger"
	"github.com/iterpolaris/polaris-cli/internal/models"
	"github.com/iterpolaris/polaris-cli/internal/projection"
)

// ErrOccurrenceImmovable is surfaced when a drag or resize targets a habit
// occurrence. Rescheduling one means editing its template.
var ErrOccurrenceImmovable = errors.New("Habit occurrences cannot be rescheduled. Edit the habit definition.")

// Move reschedules a PENDING scheduled mission to a new start/end. The full
// mission payload is rebuilt around the new times so the PUT preserves
// every other field. The move renders speculatively through the patch
// ledger and reverts explicitly on failure.
//
// A habit occurrence is rejected with ErrOccurrenceImmovable and a forced
// refetch, restoring its original position.
func (e *Engine) Move(ctx context.Context, item projection.CalendarItem, newStart, newEnd time.Time) Outcome {
	return e.reschedule(ctx, item, newStart, newEnd)
}

// Resize changes one edge of a PENDING scheduled mission. The caller keeps
// the untouched bound identical to the item's current value; the contract
// is otherwise the same as Move.
func (e *Engine) Resize(ctx context.Context, item projection.CalendarItem, newStart, newEnd time.Time) Outcome {
	return e.reschedule(ctx, item, newStart, newEnd)
}

func (e *Engine) reschedule(ctx context.Context, item projection.CalendarItem, newStart, newEnd time.Time) Outcome {
	switch item.Kind() {
	case projection.KindHabitOccurrence:
		// The view may already have rendered the speculative move; the
		// refetch puts the occurrence back.
		return Outcome{Err: ErrOccurrenceImmovable, RefetchEvents: true}
	case projection.KindScheduledMission:
		// fall through
	default:
		return Outcome{}
	}

	m, _ := item.Mission()
	if !m.Movable() {
		// Guard violation: silently restore, per the menu's disabled-state
		// contract.
		return Outcome{RefetchEvents: true}
	}
	if !newEnd.After(newStart) {
		return Outcome{Err: fmt.Errorf("invalid time range: start must precede end"), RefetchEvents: true}
	}

	e.Patches.Stage(PendingPatch{ItemID: item.ID(), NewStart: newStart, NewEnd: newEnd})

	payload := models.PayloadFrom(m)
	payload.StartDatetime = newStart
	payload.EndDatetime = newEnd

	if _, err := e.api.UpdateScheduledMission(ctx, m.ID, payload); err != nil {
		e.Patches.Revert(item.ID())
		return Outcome{Err: err, RefetchEvents: true}
	}
	e.Patches.Discard(item.ID())
	return Outcome{Message: fmt.Sprintf("%q rescheduled", m.Title), RefetchEvents: true}
}

// DropFromOutside lands the currently dragged pool mission on the calendar
// at the target slot. With no drag in flight it is a no-op. The drag
// reference clears regardless of outcome so a failed drop cannot leave a
// stuck drag ghost.
func (e *Engine) DropFromOutside(ctx context.Context, targetStart, targetEnd time.Time, allDay bool) Outcome {
	pm, ok := e.Dragging()
	if !ok {
		return Outcome{}
	}
	defer e.CancelDrag()

	created, err := e.conv.PoolToScheduled(ctx, pm, targetStart, targetEnd, allDay)
	if err != nil {
		if errors.Is(err, convert.ErrCompensationPending) {
			return Outcome{Err: err, RefetchEvents: true, RefetchPool: true}
		}
		// Roll back the speculative placement.
		return Outcome{Err: err, RefetchEvents: true}
	}

	// Totals unchanged by a PENDING creation, but the refresh is
	// unconditional for consistency.
	if err := e.game.ApplyMutation(ctx, models.GamificationDelta{}); err != nil {
		logger.Warn("gamification refresh failed", "error", err)
	}
	return Outcome{
		Message:       fmt.Sprintf("%q scheduled", created.Title),
		RefetchEvents: true,
		RefetchPool:   true,
	}
}
