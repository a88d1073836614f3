package handlers

import (
	"testing"
	"time"

	"github.com/iterpolaris/polaris-cli/internal/constants"
	"github.com/iterpolaris/polaris-cli/internal/engine"
	"github.com/iterpolaris/polaris-cli/internal/models"
	"github.com/iterpolaris/polaris-cli/internal/tui/components/calendargrid"
	"github.com/iterpolaris/polaris-cli/internal/tui/components/poollist"
	"github.com/iterpolaris/polaris-cli/internal/tui/state"
)

func newTestModel() *state.Model {
	return &state.Model{Engine: engine.New(nil, nil, nil)}
}

// Forms opened from component messages must queue the form's init command,
// just like the menu-driven edit paths do, or the first field never
// focuses.

func TestSlotSelectionOpensInitializedForm(t *testing.T) {
	m := newTestModel()
	start := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)

	cmd, handled := HandleCalendarMsg(m, calendargrid.SelectSlotMsg{Start: start, End: start.Add(time.Hour)})
	if !handled {
		t.Fatal("slot selection should be consumed")
	}
	if m.State != constants.StateMissionForm {
		t.Errorf("state = %d, want StateMissionForm", m.State)
	}
	if m.Form == nil {
		t.Fatal("form not built")
	}
	if cmd == nil {
		t.Error("form init command not queued")
	}
}

func TestPoolAddOpensInitializedForm(t *testing.T) {
	m := newTestModel()

	cmd, handled := HandlePoolMsg(m, poollist.AddMsg{})
	if !handled {
		t.Fatal("add should be consumed")
	}
	if m.State != constants.StatePoolForm {
		t.Errorf("state = %d, want StatePoolForm", m.State)
	}
	if cmd == nil {
		t.Error("form init command not queued")
	}
}

func TestPoolEditOpensInitializedForm(t *testing.T) {
	m := newTestModel()
	mission := models.PoolMission{ID: 3, Title: "p", Status: models.StatusPending, FocusStatus: models.FocusActive}

	cmd, handled := HandlePoolMsg(m, poollist.EditMsg{Mission: mission})
	if !handled {
		t.Fatal("edit should be consumed")
	}
	if m.EditingPool == nil || m.EditingPool.ID != 3 {
		t.Errorf("editing pool = %+v, want mission 3", m.EditingPool)
	}
	if cmd == nil {
		t.Error("form init command not queued")
	}
}

func TestPoolScheduleOpensInitializedConversionForm(t *testing.T) {
	m := newTestModel()
	mission := models.PoolMission{ID: 3, Title: "p", Status: models.StatusPending}

	cmd, handled := HandlePoolMsg(m, poollist.ScheduleMsg{Mission: mission})
	if !handled {
		t.Fatal("schedule should be consumed")
	}
	if m.ConvertingPool == nil || m.ConvertingPool.ID != 3 {
		t.Errorf("converting pool = %+v, want mission 3", m.ConvertingPool)
	}
	if m.State != constants.StateMissionForm {
		t.Errorf("state = %d, want StateMissionForm", m.State)
	}
	if cmd == nil {
		t.Error("form init command not queued")
	}
}

func TestCancelDropClearsDragState(t *testing.T) {
	m := newTestModel()
	m.Engine.StartDrag(models.PoolMission{ID: 3, Title: "p"})
	m.Calendar.SetDragActive(true)

	_, handled := HandleCalendarMsg(m, calendargrid.CancelDropMsg{})
	if !handled {
		t.Fatal("cancel should be consumed")
	}
	if _, dragging := m.Engine.Dragging(); dragging {
		t.Error("engine drag reference should be cleared")
	}
}
