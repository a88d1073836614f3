package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iterpolaris/polaris-cli/internal/models"
)

type occurrenceWithDelta struct {
	models.HabitOccurrence
	models.GamificationDelta
}

// ListHabitOccurrences returns habit occurrences matching the filter.
func (c *Client) ListHabitOccurrences(ctx context.Context, f ListFilter) ([]models.HabitOccurrence, error) {
	var out []models.HabitOccurrence
	err := c.do(ctx, http.MethodGet, "/habit-occurrences", f.query(), nil, &out, "failed to load habit occurrences")
	return out, err
}

// PatchHabitOccurrenceStatus transitions an occurrence's status. The
// occurrence's schedule is never touched here; only the template can change
// when an occurrence happens.
func (c *Client) PatchHabitOccurrenceStatus(ctx context.Context, id int64, status models.Status) (models.HabitOccurrence, models.GamificationDelta, error) {
	var out occurrenceWithDelta
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/habit-occurrences/%d/status", id), nil, statusBody{Status: status}, &out, "failed to update occurrence status")
	return out.HabitOccurrence, out.GamificationDelta, err
}
