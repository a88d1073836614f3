package missions

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/iterpolaris/polaris-cli/internal/api"
	"github.com/iterpolaris/polaris-cli/internal/cli"
	"github.com/iterpolaris/polaris-cli/internal/models"
)

func editServer(t *testing.T, status models.Status) (*httptest.Server, *models.ScheduledMissionPayload) {
	t.Helper()
	var put models.ScheduledMissionPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/scheduled-missions":
			start := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
			json.NewEncoder(w).Encode([]models.ScheduledMission{{
				ID:            12,
				Title:         "draft report",
				Description:   "first pass",
				Status:        status,
				StartDatetime: start,
				EndDatetime:   start.Add(time.Hour),
				EnergyValue:   2,
				PointsValue:   15,
				Tags:          []models.Tag{{ID: 3}},
			}})
		case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/scheduled-missions/"):
			if err := json.NewDecoder(r.Body).Decode(&put); err != nil {
				t.Errorf("decode PUT body: %v", err)
			}
			json.NewEncoder(w).Encode(models.ScheduledMission{ID: 12, Title: put.Title})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &put
}

func strPtr(s string) *string { return &s }

func TestEditMergesFlagsOverExistingFields(t *testing.T) {
	srv, put := editServer(t, models.StatusPending)
	ctx := &cli.Context{Client: api.New(srv.URL, "tok"), LoggedIn: true}

	cmd := EditCmd{ID: 12, Title: strPtr("final report")}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if put.Title != "final report" {
		t.Errorf("title = %q, want the new value", put.Title)
	}
	if put.Description != "first pass" {
		t.Errorf("description = %q, want preserved", put.Description)
	}
	if put.EnergyValue != 2 || put.PointsValue != 15 {
		t.Errorf("energy/points = %d/%d, want preserved 2/15", put.EnergyValue, put.PointsValue)
	}
	if len(put.TagIDs) != 1 || put.TagIDs[0] != 3 {
		t.Errorf("tags = %v, want preserved [3]", put.TagIDs)
	}
	if put.Status != models.StatusPending {
		t.Errorf("status = %q, want PENDING", put.Status)
	}
}

func TestEditRejectsNonPendingMission(t *testing.T) {
	srv, put := editServer(t, models.StatusCompleted)
	ctx := &cli.Context{Client: api.New(srv.URL, "tok"), LoggedIn: true}

	cmd := EditCmd{ID: 12, Title: strPtr("final report")}
	if err := cmd.Run(ctx); err == nil {
		t.Fatal("editing a completed mission should fail")
	}
	if put.Title != "" {
		t.Error("no PUT should have been issued")
	}
}

func TestEditUnknownMission(t *testing.T) {
	srv, _ := editServer(t, models.StatusPending)
	ctx := &cli.Context{Client: api.New(srv.URL, "tok"), LoggedIn: true}

	cmd := EditCmd{ID: 999}
	if err := cmd.Run(ctx); err == nil {
		t.Fatal("unknown id should fail")
	}
}

func TestEditRequiresAuth(t *testing.T) {
	cmd := EditCmd{ID: 12}
	if err := cmd.Run(&cli.Context{Client: api.New("http://unused", "")}); err == nil {
		t.Fatal("unauthenticated edit should fail")
	}
}
