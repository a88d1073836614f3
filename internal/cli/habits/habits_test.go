package habits

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iterpolaris/polaris-cli/internal/api"
	"github.com/iterpolaris/polaris-cli/internal/cli"
	"github.com/iterpolaris/polaris-cli/internal/models"
)

func strPtr(s string) *string { return &s }
func boolPtr(v bool) *bool    { return &v }

func editServer(t *testing.T) (*httptest.Server, *models.HabitTemplatePayload) {
	t.Helper()
	at := "06:30"
	dur := 20
	var put models.HabitTemplatePayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/habit-templates/"):
			json.NewEncoder(w).Encode(models.HabitTemplate{
				ID:                  4,
				Title:               "morning run",
				RecByDay:            []models.RecDay{models.RecMO, models.RecWE},
				RecStartTime:        &at,
				RecDurationMinutes:  &dur,
				RecPatternStartDate: "2026-03-01",
				IsActive:            true,
				PointsValue:         10,
				Tags:                []models.Tag{{ID: 5}},
			})
		case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/habit-templates/"):
			if err := json.NewDecoder(r.Body).Decode(&put); err != nil {
				t.Errorf("decode PUT body: %v", err)
			}
			json.NewEncoder(w).Encode(models.HabitTemplate{ID: 4, Title: put.Title, RecByDay: put.RecByDay})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &put
}

func TestEditMergesFlagsOverTemplate(t *testing.T) {
	srv, put := editServer(t)
	ctx := &cli.Context{Client: api.New(srv.URL, "tok"), LoggedIn: true}

	cmd := EditCmd{ID: 4, Days: strPtr("mo,we,fr"), Active: boolPtr(false)}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []models.RecDay{models.RecMO, models.RecWE, models.RecFR}
	if len(put.RecByDay) != len(want) {
		t.Fatalf("days = %v, want %v", put.RecByDay, want)
	}
	for i := range want {
		if put.RecByDay[i] != want[i] {
			t.Fatalf("days = %v, want %v", put.RecByDay, want)
		}
	}
	if put.IsActive {
		t.Error("active flag not applied")
	}
	if put.Title != "morning run" {
		t.Errorf("title = %q, want preserved", put.Title)
	}
	if put.RecStartTime == nil || *put.RecStartTime != "06:30" {
		t.Errorf("start time = %v, want preserved 06:30", put.RecStartTime)
	}
	if put.RecPatternStartDate != "2026-03-01" {
		t.Errorf("pattern start = %q, want preserved", put.RecPatternStartDate)
	}
	if len(put.TagIDs) != 1 || put.TagIDs[0] != 5 {
		t.Errorf("tags = %v, want preserved [5]", put.TagIDs)
	}
}

func TestEditClearsOptionalTime(t *testing.T) {
	srv, put := editServer(t)
	ctx := &cli.Context{Client: api.New(srv.URL, "tok"), LoggedIn: true}

	cmd := EditCmd{ID: 4, At: strPtr("")}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if put.RecStartTime != nil {
		t.Errorf("start time = %q, want cleared", *put.RecStartTime)
	}
}

func TestEditRejectsInvalidDays(t *testing.T) {
	srv, put := editServer(t)
	ctx := &cli.Context{Client: api.New(srv.URL, "tok"), LoggedIn: true}

	cmd := EditCmd{ID: 4, Days: strPtr("DAILY,MO")}
	if err := cmd.Run(ctx); err == nil {
		t.Fatal("DAILY mixed with a weekday should fail")
	}
	if put.Title != "" {
		t.Error("no PUT should have been issued")
	}
}
