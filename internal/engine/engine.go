// Package engine owns the interactive calendar surface: it serializes every
// user gesture into exactly one backend mutation and keeps the local view
// consistent while the server confirms.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/iterpolaris/polaris-cli/internal/models"
)

// API is the slice of the backend client the engine mutates through.
type API interface {
	UpdateScheduledMission(ctx context.Context, id int64, p models.ScheduledMissionPayload) (models.ScheduledMission, error)
	DeleteScheduledMission(ctx context.Context, id int64) error
	PatchScheduledMissionStatus(ctx context.Context, id int64, status models.Status) (models.ScheduledMission, models.GamificationDelta, error)
	PatchHabitOccurrenceStatus(ctx context.Context, id int64, status models.Status) (models.HabitOccurrence, models.GamificationDelta, error)
	GetHabitTemplate(ctx context.Context, id int64) (models.HabitTemplate, error)
	DeleteHabitTemplate(ctx context.Context, id int64) error
	GenerateOccurrences(ctx context.Context, id int64) (string, error)
}

// Gamification receives the post-mutation totals propagation. Exactly one
// call is made per status-changing mutation.
type Gamification interface {
	ApplyMutation(ctx context.Context, delta models.GamificationDelta) error
}

// Converter runs the pool↔scheduled conversion workflow.
type Converter interface {
	ScheduledToPool(ctx context.Context, m models.ScheduledMission) (models.PoolMission, error)
	PoolToScheduled(ctx context.Context, pm models.PoolMission, start, end time.Time, allDay bool) (models.ScheduledMission, error)
}

// Engine is the calendar reconciliation engine.
type Engine struct {
	api  API
	game Gamification
	conv Converter

	// Menu is the single-instance action menu.
	Menu Menu
	// Patches tracks speculative move/resize state.
	Patches *PatchLedger

	// drag is the single-slot "currently dragged pool mission" reference.
	// Only one drag can be in flight; it resets on both success and failure
	// of the drop. Guarded by dragMu: the drop runs on a command goroutine
	// while the render loop reads Dragging.
	dragMu sync.Mutex
	drag   *models.PoolMission
}

// New creates an engine over the given collaborators.
func New(api API, game Gamification, conv Converter) *Engine {
	return &Engine{
		api:     api,
		game:    game,
		conv:    conv,
		Patches: NewPatchLedger(),
	}
}

// Outcome is what a gesture handler hands back to the view layer: a
// transient success message or an inline error, plus which collections need
// a refetch and any follow-up surface to open.
type Outcome struct {
	Message string
	Err     error

	RefetchEvents bool
	RefetchPool   bool

	// EditMission asks the view to open the mission form on this mission.
	EditMission *models.ScheduledMission
	// ConfirmDeleteMission asks the view to confirm before DeleteMission.
	ConfirmDeleteMission *models.ScheduledMission
	// EditTemplate asks the view to open the habit form on this template.
	EditTemplate *models.HabitTemplate
	// ConfirmDeleteTemplate asks the view to confirm before DeleteTemplate.
	// Deleting a template cascades to every generated occurrence.
	ConfirmDeleteTemplate int64
}

// SlotPrefill is the pre-filled state for a create form opened from an
// empty slot selection. No backend call happens until the form submits.
type SlotPrefill struct {
	Start  time.Time
	End    time.Time
	AllDay bool
}

// SelectSlot translates an empty-slot selection into form prefill. A
// multi-day cell selection becomes an all-day mission.
func (e *Engine) SelectSlot(start, end time.Time, multiDay bool) SlotPrefill {
	return SlotPrefill{Start: start, End: end, AllDay: multiDay}
}

// StartDrag marks a pool mission as being dragged toward the calendar,
// replacing any previous drag.
func (e *Engine) StartDrag(pm models.PoolMission) {
	e.dragMu.Lock()
	defer e.dragMu.Unlock()
	e.drag = &pm
}

// CancelDrag clears the drag reference without dropping.
func (e *Engine) CancelDrag() {
	e.dragMu.Lock()
	defer e.dragMu.Unlock()
	e.drag = nil
}

// Dragging returns the in-flight dragged pool mission, if any.
func (e *Engine) Dragging() (models.PoolMission, bool) {
	e.dragMu.Lock()
	defer e.dragMu.Unlock()
	if e.drag == nil {
		return models.PoolMission{}, false
	}
	return *e.drag, true
}
