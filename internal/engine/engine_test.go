package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/iterpolaris/polaris-cli/internal/convert"
	"github.com/iterpolaris/polaris-cli/internal/models"
	"github.com/iterpolaris/polaris-cli/internal/projection"
)

type fakeAPI struct {
	updates      []models.ScheduledMissionPayload
	updateErr    error
	deletes      []int64
	templateDels []int64

	patchedMissions    []int64
	patchedOccurrences []int64
	patchStatus        models.Status
	patchDelta         models.GamificationDelta
	patchErr           error

	template    models.HabitTemplate
	templateErr error
	generateMsg string
}

func (f *fakeAPI) UpdateScheduledMission(_ context.Context, id int64, p models.ScheduledMissionPayload) (models.ScheduledMission, error) {
	f.updates = append(f.updates, p)
	if f.updateErr != nil {
		return models.ScheduledMission{}, f.updateErr
	}
	return models.ScheduledMission{ID: id, Title: p.Title, StartDatetime: p.StartDatetime, EndDatetime: p.EndDatetime}, nil
}

func (f *fakeAPI) DeleteScheduledMission(_ context.Context, id int64) error {
	f.deletes = append(f.deletes, id)
	return nil
}

func (f *fakeAPI) PatchScheduledMissionStatus(_ context.Context, id int64, status models.Status) (models.ScheduledMission, models.GamificationDelta, error) {
	if f.patchErr != nil {
		return models.ScheduledMission{}, models.GamificationDelta{}, f.patchErr
	}
	f.patchedMissions = append(f.patchedMissions, id)
	f.patchStatus = status
	return models.ScheduledMission{ID: id, Title: "m", Status: status}, f.patchDelta, nil
}

func (f *fakeAPI) PatchHabitOccurrenceStatus(_ context.Context, id int64, status models.Status) (models.HabitOccurrence, models.GamificationDelta, error) {
	if f.patchErr != nil {
		return models.HabitOccurrence{}, models.GamificationDelta{}, f.patchErr
	}
	f.patchedOccurrences = append(f.patchedOccurrences, id)
	f.patchStatus = status
	return models.HabitOccurrence{ID: id, Title: "o", Status: status}, f.patchDelta, nil
}

func (f *fakeAPI) GetHabitTemplate(_ context.Context, id int64) (models.HabitTemplate, error) {
	if f.templateErr != nil {
		return models.HabitTemplate{}, f.templateErr
	}
	f.template.ID = id
	return f.template, nil
}

func (f *fakeAPI) DeleteHabitTemplate(_ context.Context, id int64) error {
	f.templateDels = append(f.templateDels, id)
	return nil
}

func (f *fakeAPI) GenerateOccurrences(_ context.Context, id int64) (string, error) {
	return f.generateMsg, nil
}

type fakeGame struct {
	applies int
}

func (g *fakeGame) ApplyMutation(context.Context, models.GamificationDelta) error {
	g.applies++
	return nil
}

type fakeConverter struct {
	toPool       func(models.ScheduledMission) (models.PoolMission, error)
	toScheduled  func(models.PoolMission, time.Time, time.Time, bool) (models.ScheduledMission, error)
}

func (c *fakeConverter) ScheduledToPool(_ context.Context, m models.ScheduledMission) (models.PoolMission, error) {
	return c.toPool(m)
}

func (c *fakeConverter) PoolToScheduled(_ context.Context, pm models.PoolMission, start, end time.Time, allDay bool) (models.ScheduledMission, error) {
	return c.toScheduled(pm, start, end, allDay)
}

func newTestEngine() (*Engine, *fakeAPI, *fakeGame, *fakeConverter) {
	a := &fakeAPI{}
	g := &fakeGame{}
	c := &fakeConverter{}
	return New(a, g, c), a, g, c
}

func pendingMission(id int64) projection.CalendarItem {
	return projection.NewMissionItem(models.ScheduledMission{
		ID: id, Title: fmt.Sprintf("mission-%d", id), Status: models.StatusPending,
		StartDatetime: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		EndDatetime:   time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC),
	})
}

func occurrence(id, templateID int64) projection.CalendarItem {
	return projection.NewOccurrenceItem(models.HabitOccurrence{
		ID: id, HabitTemplateID: templateID, Status: models.StatusPending,
		ScheduledStartDatetime: time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC),
	})
}

func TestMenuEntriesMissionGuards(t *testing.T) {
	tests := []struct {
		status      models.Status
		editEnabled bool
	}{
		{models.StatusPending, true},
		{models.StatusCompleted, false},
		{models.StatusSkipped, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			item := projection.NewMissionItem(models.ScheduledMission{ID: 1, Status: tt.status})
			byAction := map[Action]MenuEntry{}
			for _, e := range MenuEntries(item) {
				byAction[e.Action] = e
			}
			if got := byAction[ActionEdit].Enabled; got != tt.editEnabled {
				t.Errorf("edit enabled = %v, want %v", got, tt.editEnabled)
			}
			if got := byAction[ActionDelete].Enabled; got != tt.editEnabled {
				t.Errorf("delete enabled = %v, want %v", got, tt.editEnabled)
			}
			if !byAction[ActionMoveToPool].Enabled {
				t.Error("move to pool should always be enabled")
			}
			// The current status never offers itself as a transition.
			for _, e := range MenuEntries(item) {
				if e.Action == ActionComplete && tt.status == models.StatusCompleted {
					t.Error("completed item offers complete")
				}
			}
		})
	}
}

func TestMenuEntriesStatusTransitionsAnyToAny(t *testing.T) {
	item := projection.NewMissionItem(models.ScheduledMission{ID: 1, Status: models.StatusCompleted})
	var actions []Action
	for _, e := range MenuEntries(item) {
		actions = append(actions, e.Action)
	}
	has := func(a Action) bool {
		for _, x := range actions {
			if x == a {
				return true
			}
		}
		return false
	}
	if !has(ActionPending) {
		t.Error("completed item must offer reopen to pending")
	}
	if !has(ActionSkip) {
		t.Error("completed item must offer skip")
	}
	if has(ActionComplete) {
		t.Error("completed item must not offer complete")
	}
}

func TestMenuEntriesOrphanOccurrence(t *testing.T) {
	for _, e := range MenuEntries(occurrence(1, 0)) {
		switch e.Action {
		case ActionEditHabitTemplate, ActionDeleteHabitTemplate, ActionExtendHabit:
			if e.Enabled {
				t.Errorf("%s enabled on occurrence without template", e.Action)
			}
		}
	}
}

func TestStatusMutationRefreshesGamificationOnce(t *testing.T) {
	eng, api, game, _ := newTestEngine()
	out := eng.EventAction(context.Background(), ActionComplete, pendingMission(1))
	if out.Err != nil {
		t.Fatalf("outcome err: %v", out.Err)
	}
	if !out.RefetchEvents {
		t.Error("status change must refetch events")
	}
	if game.applies != 1 {
		t.Errorf("gamification applies = %d, want exactly 1", game.applies)
	}
	if api.patchStatus != models.StatusCompleted {
		t.Errorf("patched status = %s", api.patchStatus)
	}
}

func TestStatusMutationFailureSkipsGamification(t *testing.T) {
	eng, api, game, _ := newTestEngine()
	api.patchErr = errors.New("boom")
	out := eng.EventAction(context.Background(), ActionComplete, pendingMission(1))
	if out.Err == nil {
		t.Fatal("want error")
	}
	if game.applies != 0 {
		t.Errorf("gamification applies = %d, want 0 on failure", game.applies)
	}
}

func TestOccurrenceStatusRoutesToOccurrenceEndpoint(t *testing.T) {
	eng, api, game, _ := newTestEngine()
	out := eng.EventAction(context.Background(), ActionSkip, occurrence(7, 3))
	if out.Err != nil {
		t.Fatalf("outcome err: %v", out.Err)
	}
	if len(api.patchedOccurrences) != 1 || api.patchedOccurrences[0] != 7 {
		t.Errorf("patched occurrences = %v", api.patchedOccurrences)
	}
	if len(api.patchedMissions) != 0 {
		t.Errorf("mission endpoint hit for an occurrence: %v", api.patchedMissions)
	}
	if game.applies != 1 {
		t.Errorf("gamification applies = %d", game.applies)
	}
}

func TestUndoRoundTrip(t *testing.T) {
	eng, api, _, _ := newTestEngine()
	done := projection.NewMissionItem(models.ScheduledMission{ID: 2, Title: "m", Status: models.StatusCompleted})
	out := eng.EventAction(context.Background(), ActionPending, done)
	if out.Err != nil {
		t.Fatalf("outcome err: %v", out.Err)
	}
	if api.patchStatus != models.StatusPending {
		t.Errorf("status = %s, want PENDING", api.patchStatus)
	}
}

func TestEditOnStaleNonPendingMissionNoOps(t *testing.T) {
	eng, api, _, _ := newTestEngine()
	done := projection.NewMissionItem(models.ScheduledMission{ID: 2, Status: models.StatusCompleted})
	out := eng.EventAction(context.Background(), ActionEdit, done)
	if out.EditMission != nil || out.Err != nil {
		t.Errorf("stale edit should no-op, got %+v", out)
	}
	if len(api.updates) != 0 {
		t.Error("stale edit must not touch the API")
	}
}

func TestEventActionClosesMenu(t *testing.T) {
	eng, _, _, _ := newTestEngine()
	item := pendingMission(1)
	eng.Menu.Open(item, 10, 10, 100, 40, 20, 8)
	eng.EventAction(context.Background(), ActionComplete, item)
	if eng.Menu.IsOpen() {
		t.Error("menu must close before the mutation runs")
	}
}

func TestDeleteMissionGuardedOnPending(t *testing.T) {
	eng, api, _, _ := newTestEngine()
	out := eng.DeleteMission(context.Background(), models.ScheduledMission{ID: 3, Status: models.StatusCompleted})
	if len(api.deletes) != 0 {
		t.Error("non-pending mission must not be deleted")
	}
	if out.Err != nil {
		t.Errorf("guard should no-op, not error: %v", out.Err)
	}

	out = eng.DeleteMission(context.Background(), models.ScheduledMission{ID: 3, Title: "m", Status: models.StatusPending})
	if len(api.deletes) != 1 || api.deletes[0] != 3 {
		t.Errorf("deletes = %v", api.deletes)
	}
	if !out.RefetchEvents {
		t.Error("delete must refetch events")
	}
}

func TestMoveToPoolCompensationPending(t *testing.T) {
	eng, _, game, conv := newTestEngine()
	conv.toPool = func(models.ScheduledMission) (models.PoolMission, error) {
		return models.PoolMission{}, fmt.Errorf("wrap: %w", convert.ErrCompensationPending)
	}
	out := eng.EventAction(context.Background(), ActionMoveToPool, pendingMission(1))
	if !errors.Is(out.Err, convert.ErrCompensationPending) {
		t.Fatalf("err = %v", out.Err)
	}
	if !out.RefetchEvents || !out.RefetchPool {
		t.Error("duplicate must be made visible in both views")
	}
	if game.applies != 0 {
		t.Error("no totals refresh on a failed conversion")
	}
}

func TestExtendHabitSurfacesServerMessage(t *testing.T) {
	eng, api, _, _ := newTestEngine()
	api.generateMsg = "Generated 12 occurrences through 2025-06-01"
	out := eng.EventAction(context.Background(), ActionExtendHabit, occurrence(1, 3))
	if out.Message != api.generateMsg {
		t.Errorf("message = %q, want the server text verbatim", out.Message)
	}
}
