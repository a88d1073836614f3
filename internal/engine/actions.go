package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/iterpolaris/polaris-cli/internal/convert"
	"github.com/iterpolaris/polaris-cli/internal/logger"
	"github.com/iterpolaris/polaris-cli/internal/models"
	"github.com/iterpolaris/polaris-cli/internal/projection"
)

// Action is a menu action on a calendar item.
type Action string

const (
	ActionComplete            Action = "complete"
	ActionSkip                Action = "skip"
	ActionPending             Action = "pending"
	ActionEdit                Action = "edit"
	ActionDelete              Action = "delete"
	ActionMoveToPool          Action = "move_to_pool"
	ActionEditHabitTemplate   Action = "edit_habit_template"
	ActionDeleteHabitTemplate Action = "delete_habit_template"
	ActionExtendHabit         Action = "extend_habit"
)

// MenuEntry is one row of the action menu. Disabled entries render greyed
// out; the dispatcher additionally ignores them if invoked anyway, since
// the menu's enabled state can be stale between render and keypress.
type MenuEntry struct {
	Action  Action
	Label   string
	Enabled bool
}

// MenuEntries returns the menu rows for an item, in display order.
func MenuEntries(item projection.CalendarItem) []MenuEntry {
	var entries []MenuEntry
	switch item.Kind() {
	case projection.KindScheduledMission:
		entries = statusEntries(item.Status())
		pending := item.Status() == models.StatusPending
		entries = append(entries,
			MenuEntry{Action: ActionEdit, Label: "Edit", Enabled: pending},
			MenuEntry{Action: ActionMoveToPool, Label: "Move to Pool", Enabled: true},
			MenuEntry{Action: ActionDelete, Label: "Delete", Enabled: pending},
		)
	case projection.KindHabitOccurrence:
		entries = statusEntries(item.Status())
		hasTemplate := false
		if o, ok := item.Occurrence(); ok {
			hasTemplate = o.HabitTemplateID != 0
		}
		entries = append(entries,
			MenuEntry{Action: ActionEditHabitTemplate, Label: "Edit Habit", Enabled: hasTemplate},
			MenuEntry{Action: ActionExtendHabit, Label: "Extend Habit", Enabled: hasTemplate},
			MenuEntry{Action: ActionDeleteHabitTemplate, Label: "Delete Habit", Enabled: hasTemplate},
		)
	}
	return entries
}

func statusEntries(status models.Status) []MenuEntry {
	// Any-to-any transitions: a COMPLETED or SKIPPED item can reopen to
	// PENDING, and a PENDING item can complete or skip.
	entries := []MenuEntry{}
	if status != models.StatusCompleted {
		entries = append(entries, MenuEntry{Action: ActionComplete, Label: "Mark Complete", Enabled: true})
	}
	if status != models.StatusSkipped {
		entries = append(entries, MenuEntry{Action: ActionSkip, Label: "Mark Skipped", Enabled: true})
	}
	if status != models.StatusPending {
		entries = append(entries, MenuEntry{Action: ActionPending, Label: "Mark Pending", Enabled: true})
	}
	return entries
}

// EventAction dispatches a menu action against an item. The menu closes
// first, then the mutation runs, so a stale menu never floats over a
// mutated item. Unknown (kind, action) pairs log and no-op.
func (e *Engine) EventAction(ctx context.Context, action Action, item projection.CalendarItem) Outcome {
	e.Menu.Close()

	switch item.Kind() {
	case projection.KindScheduledMission:
		m, _ := item.Mission()
		return e.missionAction(ctx, action, m)
	case projection.KindHabitOccurrence:
		o, _ := item.Occurrence()
		return e.occurrenceAction(ctx, action, o)
	}
	logger.Warn("action on unknown item kind", "kind", item.Kind().String(), "action", action)
	return Outcome{}
}

func (e *Engine) missionAction(ctx context.Context, action Action, m models.ScheduledMission) Outcome {
	switch action {
	case ActionComplete, ActionSkip, ActionPending:
		return e.missionStatus(ctx, m, statusFor(action))
	case ActionEdit:
		// Guarded: the menu disables edit on non-PENDING items, but the
		// handler re-checks because the disabled state can be stale.
		if m.Status != models.StatusPending {
			return Outcome{}
		}
		return Outcome{EditMission: &m}
	case ActionDelete:
		if m.Status != models.StatusPending {
			return Outcome{}
		}
		return Outcome{ConfirmDeleteMission: &m}
	case ActionMoveToPool:
		return e.moveToPool(ctx, m)
	}
	logger.Warn("unhandled mission action", "action", action)
	return Outcome{}
}

func (e *Engine) occurrenceAction(ctx context.Context, action Action, o models.HabitOccurrence) Outcome {
	switch action {
	case ActionComplete, ActionSkip, ActionPending:
		return e.occurrenceStatus(ctx, o, statusFor(action))
	case ActionEditHabitTemplate:
		if o.HabitTemplateID == 0 {
			return Outcome{}
		}
		tmpl, err := e.api.GetHabitTemplate(ctx, o.HabitTemplateID)
		if err != nil {
			return Outcome{Err: err}
		}
		return Outcome{EditTemplate: &tmpl}
	case ActionDeleteHabitTemplate:
		if o.HabitTemplateID == 0 {
			return Outcome{}
		}
		return Outcome{ConfirmDeleteTemplate: o.HabitTemplateID}
	case ActionExtendHabit:
		if o.HabitTemplateID == 0 {
			return Outcome{}
		}
		msg, err := e.api.GenerateOccurrences(ctx, o.HabitTemplateID)
		if err != nil {
			return Outcome{Err: err}
		}
		return Outcome{Message: msg, RefetchEvents: true}
	}
	logger.Warn("unhandled occurrence action", "action", action)
	return Outcome{}
}

func statusFor(action Action) models.Status {
	switch action {
	case ActionComplete:
		return models.StatusCompleted
	case ActionSkip:
		return models.StatusSkipped
	default:
		return models.StatusPending
	}
}

func (e *Engine) missionStatus(ctx context.Context, m models.ScheduledMission, status models.Status) Outcome {
	updated, delta, err := e.api.PatchScheduledMissionStatus(ctx, m.ID, status)
	if err != nil {
		return Outcome{Err: err}
	}
	if err := e.game.ApplyMutation(ctx, delta); err != nil {
		logger.Warn("gamification refresh failed", "error", err)
	}
	return Outcome{
		Message:       fmt.Sprintf("%q marked %s", updated.Title, statusLabel(status)),
		RefetchEvents: true,
	}
}

func (e *Engine) occurrenceStatus(ctx context.Context, o models.HabitOccurrence, status models.Status) Outcome {
	updated, delta, err := e.api.PatchHabitOccurrenceStatus(ctx, o.ID, status)
	if err != nil {
		return Outcome{Err: err}
	}
	if err := e.game.ApplyMutation(ctx, delta); err != nil {
		logger.Warn("gamification refresh failed", "error", err)
	}
	return Outcome{
		Message:       fmt.Sprintf("%q marked %s", updated.Title, statusLabel(status)),
		RefetchEvents: true,
	}
}

func statusLabel(s models.Status) string {
	switch s {
	case models.StatusCompleted:
		return "complete"
	case models.StatusSkipped:
		return "skipped"
	default:
		return "pending"
	}
}

func (e *Engine) moveToPool(ctx context.Context, m models.ScheduledMission) Outcome {
	created, err := e.conv.ScheduledToPool(ctx, m)
	if err != nil {
		if errors.Is(err, convert.ErrCompensationPending) {
			// The pool copy exists; the scheduled original is pending
			// removal. Both views refresh so the duplicate is visible.
			return Outcome{Err: err, RefetchEvents: true, RefetchPool: true}
		}
		return Outcome{Err: err}
	}
	// Deleting a PENDING item should not change totals, but the refresh is
	// unconditional for consistency.
	if err := e.game.ApplyMutation(ctx, models.GamificationDelta{}); err != nil {
		logger.Warn("gamification refresh failed", "error", err)
	}
	return Outcome{
		Message:       fmt.Sprintf("%q moved to pool", created.Title),
		RefetchEvents: true,
		RefetchPool:   true,
	}
}

// DeleteMission deletes a scheduled mission after the view confirmed.
func (e *Engine) DeleteMission(ctx context.Context, m models.ScheduledMission) Outcome {
	if m.Status != models.StatusPending {
		return Outcome{}
	}
	if err := e.api.DeleteScheduledMission(ctx, m.ID); err != nil {
		return Outcome{Err: err}
	}
	if err := e.game.ApplyMutation(ctx, models.GamificationDelta{}); err != nil {
		logger.Warn("gamification refresh failed", "error", err)
	}
	return Outcome{Message: fmt.Sprintf("%q deleted", m.Title), RefetchEvents: true}
}

// DeleteTemplate deletes a habit template after the view confirmed. The
// server cascades the delete to all generated occurrences.
func (e *Engine) DeleteTemplate(ctx context.Context, id int64) Outcome {
	if err := e.api.DeleteHabitTemplate(ctx, id); err != nil {
		return Outcome{Err: err}
	}
	return Outcome{Message: "Habit and all its occurrences deleted", RefetchEvents: true}
}
