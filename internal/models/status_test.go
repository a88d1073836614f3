package models

import "testing"

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusCompleted, StatusSkipped} {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	for _, s := range []Status{"", "DONE", "pending"} {
		if s.Valid() {
			t.Errorf("%q should be invalid", s)
		}
	}
}

func TestFocusStatusValid(t *testing.T) {
	if !FocusActive.Valid() || !FocusDeferred.Valid() {
		t.Error("known focus states should be valid")
	}
	if FocusStatus("PAUSED").Valid() {
		t.Error("unknown focus state should be invalid")
	}
}
