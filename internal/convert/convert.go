// Package convert moves an item's identity between the pool-mission and
// scheduled-mission collections. The two resources live in distinct backend
// collections, so a conversion is always create-new then delete-old, never
// an in-place type change.
package convert

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iterpolaris/polaris-cli/internal/constants"
	"github.com/iterpolaris/polaris-cli/internal/intentlog"
	"github.com/iterpolaris/polaris-cli/internal/logger"
	"github.com/iterpolaris/polaris-cli/internal/models"
)

// API is the slice of the backend client the workflow uses.
type API interface {
	CreatePoolMission(ctx context.Context, p models.PoolMissionPayload) (models.PoolMission, error)
	DeletePoolMission(ctx context.Context, id int64) error
	CreateScheduledMission(ctx context.Context, p models.ScheduledMissionPayload) (models.ScheduledMission, error)
	DeleteScheduledMission(ctx context.Context, id int64) error
}

// ErrCompensationPending signals that the create half of a conversion
// succeeded but the compensating delete failed: the item now exists in both
// collections. The delete has been recorded in the intent log and will be
// retried; until then the duplicate is visible.
var ErrCompensationPending = errors.New("conversion incomplete: the original item could not be removed and will be retried")

// Workflow performs pool↔scheduled conversions. When the compensating
// delete fails it records a persisted intent rather than leaving the
// duplicate silent.
type Workflow struct {
	api     API
	intents *intentlog.Log
}

// New creates a conversion workflow. intents may be nil, in which case a
// failed compensating delete is only surfaced, not retried.
func New(api API, intents *intentlog.Log) *Workflow {
	return &Workflow{api: api, intents: intents}
}

// ScheduledToPool moves a scheduled mission into the pool. The new pool
// mission preserves title, description, energy, points, quest and tags, and
// is forced ACTIVE. Ordering: create the pool row first, then delete the
// scheduled original, so a failure can never lose the item entirely.
func (w *Workflow) ScheduledToPool(ctx context.Context, m models.ScheduledMission) (models.PoolMission, error) {
	created, err := w.api.CreatePoolMission(ctx, models.PoolMissionPayload{
		Title:       m.Title,
		Description: m.Description,
		Status:      models.StatusPending,
		FocusStatus: models.FocusActive,
		EnergyValue: m.EnergyValue,
		PointsValue: m.PointsValue,
		QuestID:     m.QuestID,
		TagIDs:      m.TagIDs(),
	})
	if err != nil {
		return models.PoolMission{}, err
	}

	if err := w.api.DeleteScheduledMission(ctx, m.ID); err != nil {
		return created, w.recordCompensation(intentlog.ResourceScheduledMission, m.ID, err)
	}
	return created, nil
}

// PoolToScheduled moves a pool mission onto the calendar at the given slot.
// The new scheduled mission preserves the pool mission's fields and is
// forced PENDING. A missing or inverted end defaults the duration to 60
// minutes.
func (w *Workflow) PoolToScheduled(ctx context.Context, pm models.PoolMission, start, end time.Time, allDay bool) (models.ScheduledMission, error) {
	if end.IsZero() || !end.After(start) {
		end = start.Add(constants.DefaultDropDurationMin * time.Minute)
	}

	created, err := w.api.CreateScheduledMission(ctx, models.ScheduledMissionPayload{
		Title:         pm.Title,
		Description:   pm.Description,
		StartDatetime: start,
		EndDatetime:   end,
		IsAllDay:      allDay,
		Status:        models.StatusPending,
		EnergyValue:   pm.EnergyValue,
		PointsValue:   pm.PointsValue,
		QuestID:       pm.QuestID,
		TagIDs:        pm.TagIDs(),
	})
	if err != nil {
		return models.ScheduledMission{}, err
	}

	if err := w.api.DeletePoolMission(ctx, pm.ID); err != nil {
		return created, w.recordCompensation(intentlog.ResourcePoolMission, pm.ID, err)
	}
	return created, nil
}

// ScheduleFromForm is the explicit-form conversion path: the scheduled
// mission is created from an edited payload rather than the pool mission's
// raw fields. The pool original is deleted only after the create succeeds.
// The boolean reports whether a conversion actually happened (poolID != 0),
// so the caller knows to refresh the pool list as well.
func (w *Workflow) ScheduleFromForm(ctx context.Context, poolID int64, p models.ScheduledMissionPayload) (models.ScheduledMission, bool, error) {
	p.Status = models.StatusPending
	created, err := w.api.CreateScheduledMission(ctx, p)
	if err != nil {
		return models.ScheduledMission{}, false, err
	}
	if poolID == 0 {
		return created, false, nil
	}
	if err := w.api.DeletePoolMission(ctx, poolID); err != nil {
		return created, true, w.recordCompensation(intentlog.ResourcePoolMission, poolID, err)
	}
	return created, true, nil
}

func (w *Workflow) recordCompensation(resource intentlog.Resource, id int64, cause error) error {
	logger.Error("compensating delete failed", "resource", resource, "resource_id", id, "error", cause)
	if w.intents != nil {
		if recErr := w.intents.Record(resource, id, cause); recErr != nil {
			logger.Error("failed to persist compensation intent", "error", recErr)
		}
	}
	return fmt.Errorf("%w: %v", ErrCompensationPending, cause)
}
