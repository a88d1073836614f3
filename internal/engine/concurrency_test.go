package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/iterpolaris/polaris-cli/internal/models"
	"github.com/iterpolaris/polaris-cli/internal/projection"
)

// Mutations run on command goroutines while the render loop reads the same
// engine state, so the shared pieces must tolerate concurrent access.
// These fail under the race detector if a lock goes missing.

func TestPatchLedgerConcurrentStageAndOverlay(t *testing.T) {
	l := NewPatchLedger()
	items := []projection.CalendarItem{pendingMission(1), pendingMission(2)}
	start := time.Now()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			l.Stage(PendingPatch{ItemID: "sm-1", NewStart: start, NewEnd: start.Add(time.Hour)})
			l.Discard("sm-1")
			l.Stage(PendingPatch{ItemID: "sm-2", NewStart: start, NewEnd: start.Add(time.Hour)})
			l.Revert("sm-2")
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			l.Overlay(items)
			l.Pending("sm-1")
		}
	}()
	wg.Wait()

	if l.Pending("sm-1") || l.Pending("sm-2") {
		t.Error("ledger should be empty after every patch was discarded or reverted")
	}
}

func TestMenuConcurrentOpenCloseAndRead(t *testing.T) {
	var m Menu
	item := pendingMission(1)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			m.Open(item, 10, 10, 100, 40, 28, 11)
			m.Close()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			if m.IsOpen() {
				_ = m.Item()
				m.Position()
			}
		}
	}()
	wg.Wait()

	if m.IsOpen() {
		t.Error("menu should end closed")
	}
}

func TestEngineConcurrentDragAccess(t *testing.T) {
	eng, _, _, _ := newTestEngine()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			eng.StartDrag(models.PoolMission{ID: 4, Title: "p", Status: models.StatusPending})
			eng.CancelDrag()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			eng.Dragging()
		}
	}()
	wg.Wait()

	if _, ok := eng.Dragging(); ok {
		t.Error("drag reference should end cleared")
	}
}
