package projection

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iterpolaris/polaris-cli/internal/api"
	"github.com/iterpolaris/polaris-cli/internal/models"
)

type fakeSource struct {
	missions    []models.ScheduledMission
	occurrences []models.HabitOccurrence
	missionErr  error
	occErr      error
}

func (s fakeSource) ListScheduledMissions(context.Context, api.ListFilter) ([]models.ScheduledMission, error) {
	return s.missions, s.missionErr
}

func (s fakeSource) ListHabitOccurrences(context.Context, api.ListFilter) ([]models.HabitOccurrence, error) {
	return s.occurrences, s.occErr
}

func at(h int) time.Time {
	return time.Date(2025, 3, 10, h, 0, 0, 0, time.UTC)
}

func TestBuildCombinesBothSources(t *testing.T) {
	src := fakeSource{
		missions:    []models.ScheduledMission{{ID: 1, Title: "Plan", StartDatetime: at(9)}},
		occurrences: []models.HabitOccurrence{{ID: 2, HabitTemplateID: 4, ScheduledStartDatetime: at(7)}},
	}
	res := Build(context.Background(), src, api.ListFilter{})
	if res.Err() != nil {
		t.Fatalf("err = %v", res.Err())
	}
	if len(res.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(res.Items))
	}
}

func TestBuildDegradesPerLeg(t *testing.T) {
	missionFail := errors.New("missions down")
	src := fakeSource{
		missionErr:  missionFail,
		occurrences: []models.HabitOccurrence{{ID: 2, ScheduledStartDatetime: at(7)}},
	}
	res := Build(context.Background(), src, api.ListFilter{})
	if !errors.Is(res.MissionErr, missionFail) {
		t.Errorf("MissionErr = %v", res.MissionErr)
	}
	if res.OccurrenceErr != nil {
		t.Errorf("OccurrenceErr = %v", res.OccurrenceErr)
	}
	if len(res.Items) != 1 {
		t.Fatalf("surviving leg should still render, got %d items", len(res.Items))
	}
	if _, ok := res.Items[0].Occurrence(); !ok {
		t.Error("surviving item should be the occurrence")
	}
}

func TestBuildBothLegsFail(t *testing.T) {
	src := fakeSource{missionErr: errors.New("a"), occErr: errors.New("b")}
	res := Build(context.Background(), src, api.ListFilter{})
	if len(res.Items) != 0 {
		t.Errorf("items = %d, want 0", len(res.Items))
	}
	if res.Err() == nil {
		t.Error("Err() should surface a leg failure")
	}
}

func TestItemIDsAreNamespaced(t *testing.T) {
	m := NewMissionItem(models.ScheduledMission{ID: 12})
	o := NewOccurrenceItem(models.HabitOccurrence{ID: 12})
	if m.ID() == o.ID() {
		t.Fatalf("mission and occurrence with equal numeric ids must not collide: %s", m.ID())
	}
	if m.ID() != "sm-12" {
		t.Errorf("mission id = %s", m.ID())
	}
	if o.ID() != "ho-12" {
		t.Errorf("occurrence id = %s", o.ID())
	}
}

func TestAccessorsByKind(t *testing.T) {
	item := NewMissionItem(models.ScheduledMission{
		ID: 1, Title: "Deep work", StartDatetime: at(9), EndDatetime: at(11),
		Status: models.StatusPending,
	})
	if item.Title() != "Deep work" {
		t.Errorf("title = %q", item.Title())
	}
	if !item.Movable() {
		t.Error("pending mission should be movable")
	}
	if _, ok := item.Occurrence(); ok {
		t.Error("mission item must not unwrap as occurrence")
	}

	occ := NewOccurrenceItem(models.HabitOccurrence{
		ID: 2, ScheduledStartDatetime: at(7), Status: models.StatusPending,
		Template: &models.HabitTemplate{Title: "Morning run"},
	})
	if occ.Movable() {
		t.Error("occurrences are never movable")
	}
}

func TestOccurrenceTagFallback(t *testing.T) {
	direct := models.HabitOccurrence{TemplateTags: []models.Tag{{ID: 1, Name: "health"}}}
	if got := direct.EffectiveTags(); len(got) != 1 || got[0].Name != "health" {
		t.Errorf("direct tags = %v", got)
	}

	viaTemplate := models.HabitOccurrence{Template: &models.HabitTemplate{Tags: []models.Tag{{ID: 2, Name: "focus"}}}}
	if got := viaTemplate.EffectiveTags(); len(got) != 1 || got[0].Name != "focus" {
		t.Errorf("template tags = %v", got)
	}

	var none models.HabitOccurrence
	if got := none.EffectiveTags(); got != nil {
		t.Errorf("no tags = %v, want nil", got)
	}
}

func TestSortByStart(t *testing.T) {
	items := []CalendarItem{
		NewMissionItem(models.ScheduledMission{ID: 1, StartDatetime: at(15)}),
		NewOccurrenceItem(models.HabitOccurrence{ID: 2, ScheduledStartDatetime: at(7)}),
		NewMissionItem(models.ScheduledMission{ID: 3, StartDatetime: at(9)}),
	}
	SortByStart(items)
	want := []string{"ho-2", "sm-3", "sm-1"}
	for i, id := range want {
		if items[i].ID() != id {
			t.Errorf("items[%d] = %s, want %s", i, items[i].ID(), id)
		}
	}
}

type fakeQuestSource []models.Quest

func (s fakeQuestSource) ListQuests(context.Context) ([]models.Quest, error) {
	return s, nil
}

func TestColorIndex(t *testing.T) {
	idx, err := BuildColorIndex(context.Background(), fakeQuestSource{
		{ID: 1, Color: "#ff0000"},
		{ID: 2, Color: "#00ff00"},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	one := int64(1)
	if got := idx.ColorFor(&one); got != "#ff0000" {
		t.Errorf("quest 1 color = %s", got)
	}
	missing := int64(99)
	if got := idx.ColorFor(&missing); got != DefaultQuestColor {
		t.Errorf("unknown quest color = %s, want default", got)
	}
	if got := idx.ColorFor(nil); got != DefaultQuestColor {
		t.Errorf("nil quest color = %s, want default", got)
	}
}
