package convert

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/iterpolaris/polaris-cli/internal/intentlog"
	"github.com/iterpolaris/polaris-cli/internal/models"
)

type fakeAPI struct {
	calls []string

	createdPool      models.PoolMissionPayload
	createdScheduled models.ScheduledMissionPayload
	deletedPoolID    int64
	deletedSchedID   int64

	createPoolErr      error
	createScheduledErr error
	deletePoolErr      error
	deleteScheduledErr error
}

func (f *fakeAPI) CreatePoolMission(_ context.Context, p models.PoolMissionPayload) (models.PoolMission, error) {
	f.calls = append(f.calls, "create-pool")
	if f.createPoolErr != nil {
		return models.PoolMission{}, f.createPoolErr
	}
	f.createdPool = p
	return models.PoolMission{ID: 100, Title: p.Title, Status: p.Status, FocusStatus: p.FocusStatus}, nil
}

func (f *fakeAPI) DeletePoolMission(_ context.Context, id int64) error {
	f.calls = append(f.calls, "delete-pool")
	f.deletedPoolID = id
	return f.deletePoolErr
}

func (f *fakeAPI) CreateScheduledMission(_ context.Context, p models.ScheduledMissionPayload) (models.ScheduledMission, error) {
	f.calls = append(f.calls, "create-scheduled")
	if f.createScheduledErr != nil {
		return models.ScheduledMission{}, f.createScheduledErr
	}
	f.createdScheduled = p
	return models.ScheduledMission{ID: 200, Title: p.Title, Status: p.Status}, nil
}

func (f *fakeAPI) DeleteScheduledMission(_ context.Context, id int64) error {
	f.calls = append(f.calls, "delete-scheduled")
	f.deletedSchedID = id
	return f.deleteScheduledErr
}

func questID(id int64) *int64 { return &id }

func TestScheduledToPoolPreservesFields(t *testing.T) {
	api := &fakeAPI{}
	w := New(api, nil)

	m := models.ScheduledMission{
		ID:          7,
		Title:       "write report",
		Description: "quarterly",
		Status:      models.StatusCompleted,
		EnergyValue: 3,
		PointsValue: 25,
		QuestID:     questID(4),
		Tags:        []models.Tag{{ID: 1}, {ID: 9}},
	}

	created, err := w.ScheduledToPool(context.Background(), m)
	if err != nil {
		t.Fatalf("ScheduledToPool: %v", err)
	}
	if created.ID != 100 {
		t.Fatalf("created.ID = %d, want 100", created.ID)
	}

	p := api.createdPool
	if p.Title != "write report" || p.Description != "quarterly" {
		t.Errorf("payload title/description = %q/%q", p.Title, p.Description)
	}
	if p.EnergyValue != 3 || p.PointsValue != 25 {
		t.Errorf("payload energy/points = %d/%d", p.EnergyValue, p.PointsValue)
	}
	if p.QuestID == nil || *p.QuestID != 4 {
		t.Errorf("payload quest = %v", p.QuestID)
	}
	if len(p.TagIDs) != 2 || p.TagIDs[0] != 1 || p.TagIDs[1] != 9 {
		t.Errorf("payload tags = %v", p.TagIDs)
	}
	if p.Status != models.StatusPending {
		t.Errorf("pool status = %q, want forced PENDING", p.Status)
	}
	if p.FocusStatus != models.FocusActive {
		t.Errorf("pool focus = %q, want forced ACTIVE", p.FocusStatus)
	}
}

func TestScheduledToPoolCreatesBeforeDeleting(t *testing.T) {
	api := &fakeAPI{}
	w := New(api, nil)

	if _, err := w.ScheduledToPool(context.Background(), models.ScheduledMission{ID: 7, Title: "t"}); err != nil {
		t.Fatalf("ScheduledToPool: %v", err)
	}

	want := []string{"create-pool", "delete-scheduled"}
	if len(api.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", api.calls, want)
	}
	for i := range want {
		if api.calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", api.calls, want)
		}
	}
	if api.deletedSchedID != 7 {
		t.Errorf("deleted scheduled id = %d, want 7", api.deletedSchedID)
	}
}

func TestScheduledToPoolCreateFailureSkipsDelete(t *testing.T) {
	api := &fakeAPI{createPoolErr: errors.New("server down")}
	w := New(api, nil)

	if _, err := w.ScheduledToPool(context.Background(), models.ScheduledMission{ID: 7}); err == nil {
		t.Fatal("expected create error")
	}
	if api.deletedSchedID != 0 {
		t.Errorf("delete ran after failed create, id = %d", api.deletedSchedID)
	}
}

func TestScheduledToPoolDeleteFailureRecordsIntent(t *testing.T) {
	log, err := intentlog.Open(filepath.Join(t.TempDir(), "intents.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer log.Close()

	api := &fakeAPI{deleteScheduledErr: errors.New("gateway timeout")}
	w := New(api, log)

	created, err := w.ScheduledToPool(context.Background(), models.ScheduledMission{ID: 42, Title: "t"})
	if !errors.Is(err, ErrCompensationPending) {
		t.Fatalf("err = %v, want ErrCompensationPending", err)
	}
	if created.ID != 100 {
		t.Errorf("created pool mission should still be returned, got %+v", created)
	}

	pending, err := log.Pending()
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending intents = %d, want 1", len(pending))
	}
	it := pending[0]
	if it.Resource != intentlog.ResourceScheduledMission || it.ResourceID != 42 {
		t.Errorf("intent = %s/%d, want scheduled_mission/42", it.Resource, it.ResourceID)
	}
	if it.LastError != "gateway timeout" {
		t.Errorf("intent last error = %q", it.LastError)
	}
}

func TestPoolToScheduledDefaultsDuration(t *testing.T) {
	start := time.Date(2026, 3, 9, 14, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		end  time.Time
	}{
		{"zero end", time.Time{}},
		{"end equals start", start},
		{"inverted end", start.Add(-time.Hour)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			api := &fakeAPI{}
			w := New(api, nil)

			if _, err := w.PoolToScheduled(context.Background(), models.PoolMission{ID: 5, Title: "t"}, start, tc.end, false); err != nil {
				t.Fatalf("PoolToScheduled: %v", err)
			}
			got := api.createdScheduled.EndDatetime
			if want := start.Add(60 * time.Minute); !got.Equal(want) {
				t.Errorf("end = %v, want %v", got, want)
			}
		})
	}
}

func TestPoolToScheduledPreservesFieldsAndForcesPending(t *testing.T) {
	api := &fakeAPI{}
	w := New(api, nil)

	start := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	pm := models.PoolMission{
		ID:          5,
		Title:       "deep work",
		Description: "focus block",
		Status:      models.StatusCompleted,
		EnergyValue: 4,
		PointsValue: 40,
		QuestID:     questID(2),
		Tags:        []models.Tag{{ID: 3}},
	}

	created, err := w.PoolToScheduled(context.Background(), pm, start, end, true)
	if err != nil {
		t.Fatalf("PoolToScheduled: %v", err)
	}
	if created.ID != 200 {
		t.Fatalf("created.ID = %d, want 200", created.ID)
	}

	p := api.createdScheduled
	if p.Title != "deep work" || p.Description != "focus block" {
		t.Errorf("payload title/description = %q/%q", p.Title, p.Description)
	}
	if !p.StartDatetime.Equal(start) || !p.EndDatetime.Equal(end) {
		t.Errorf("payload times = %v..%v", p.StartDatetime, p.EndDatetime)
	}
	if !p.IsAllDay {
		t.Error("payload should carry all-day flag")
	}
	if p.Status != models.StatusPending {
		t.Errorf("status = %q, want forced PENDING", p.Status)
	}
	if p.QuestID == nil || *p.QuestID != 2 || len(p.TagIDs) != 1 || p.TagIDs[0] != 3 {
		t.Errorf("quest/tags = %v/%v", p.QuestID, p.TagIDs)
	}
	if api.deletedPoolID != 5 {
		t.Errorf("deleted pool id = %d, want 5", api.deletedPoolID)
	}
}

func TestPoolToScheduledDeleteFailureRecordsIntent(t *testing.T) {
	log, err := intentlog.Open(filepath.Join(t.TempDir(), "intents.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer log.Close()

	api := &fakeAPI{deletePoolErr: errors.New("conflict")}
	w := New(api, log)

	start := time.Now()
	if _, err := w.PoolToScheduled(context.Background(), models.PoolMission{ID: 8}, start, start.Add(time.Hour), false); !errors.Is(err, ErrCompensationPending) {
		t.Fatalf("err = %v, want ErrCompensationPending", err)
	}

	pending, err := log.Pending()
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(pending) != 1 || pending[0].Resource != intentlog.ResourcePoolMission || pending[0].ResourceID != 8 {
		t.Fatalf("pending = %+v, want one pool_mission/8 intent", pending)
	}
}

func TestPoolToScheduledDeleteFailureWithoutLogStillSurfaces(t *testing.T) {
	api := &fakeAPI{deletePoolErr: errors.New("conflict")}
	w := New(api, nil)

	start := time.Now()
	created, err := w.PoolToScheduled(context.Background(), models.PoolMission{ID: 8, Title: "t"}, start, start.Add(time.Hour), false)
	if !errors.Is(err, ErrCompensationPending) {
		t.Fatalf("err = %v, want ErrCompensationPending", err)
	}
	if created.ID != 200 {
		t.Errorf("created = %+v, want the new scheduled mission", created)
	}
}

func TestScheduleFromFormPlainCreate(t *testing.T) {
	api := &fakeAPI{}
	w := New(api, nil)

	p := models.ScheduledMissionPayload{Title: "t", Status: models.StatusCompleted}
	created, wasConversion, err := w.ScheduleFromForm(context.Background(), 0, p)
	if err != nil {
		t.Fatalf("ScheduleFromForm: %v", err)
	}
	if wasConversion {
		t.Error("poolID 0 should not report a conversion")
	}
	if created.ID != 200 {
		t.Errorf("created.ID = %d, want 200", created.ID)
	}
	if api.createdScheduled.Status != models.StatusPending {
		t.Errorf("status = %q, want forced PENDING", api.createdScheduled.Status)
	}
	if api.deletedPoolID != 0 {
		t.Errorf("unexpected pool delete, id = %d", api.deletedPoolID)
	}
}

func TestScheduleFromFormConversionDeletesOriginal(t *testing.T) {
	api := &fakeAPI{}
	w := New(api, nil)

	_, wasConversion, err := w.ScheduleFromForm(context.Background(), 33, models.ScheduledMissionPayload{Title: "t"})
	if err != nil {
		t.Fatalf("ScheduleFromForm: %v", err)
	}
	if !wasConversion {
		t.Error("poolID 33 should report a conversion")
	}
	if api.deletedPoolID != 33 {
		t.Errorf("deleted pool id = %d, want 33", api.deletedPoolID)
	}
}

func TestScheduleFromFormConversionDeleteFailure(t *testing.T) {
	api := &fakeAPI{deletePoolErr: errors.New("conflict")}
	w := New(api, nil)

	_, wasConversion, err := w.ScheduleFromForm(context.Background(), 33, models.ScheduledMissionPayload{Title: "t"})
	if !errors.Is(err, ErrCompensationPending) {
		t.Fatalf("err = %v, want ErrCompensationPending", err)
	}
	if !wasConversion {
		t.Error("conversion flag should be set so the caller refreshes the pool view")
	}
}
