package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iterpolaris/polaris-cli/internal/models"
)

// statusBody is the PATCH body for status endpoints.
type statusBody struct {
	Status models.Status `json:"status"`
}

// missionWithDelta decodes a mutation response that may carry updated
// gamification totals alongside the entity.
type missionWithDelta struct {
	models.ScheduledMission
	models.GamificationDelta
}

// ListScheduledMissions returns scheduled missions matching the filter.
func (c *Client) ListScheduledMissions(ctx context.Context, f ListFilter) ([]models.ScheduledMission, error) {
	var out []models.ScheduledMission
	err := c.do(ctx, http.MethodGet, "/scheduled-missions", f.query(), nil, &out, "failed to load scheduled missions")
	return out, err
}

// CreateScheduledMission creates a scheduled mission.
func (c *Client) CreateScheduledMission(ctx context.Context, p models.ScheduledMissionPayload) (models.ScheduledMission, error) {
	var out models.ScheduledMission
	err := c.do(ctx, http.MethodPost, "/scheduled-missions", nil, p, &out, "failed to create scheduled mission")
	return out, err
}

// UpdateScheduledMission replaces a scheduled mission with the full payload.
func (c *Client) UpdateScheduledMission(ctx context.Context, id int64, p models.ScheduledMissionPayload) (models.ScheduledMission, error) {
	var out models.ScheduledMission
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/scheduled-missions/%d", id), nil, p, &out, "failed to update scheduled mission")
	return out, err
}

// DeleteScheduledMission deletes a scheduled mission.
func (c *Client) DeleteScheduledMission(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/scheduled-missions/%d", id), nil, nil, nil, "failed to delete scheduled mission")
}

// PatchScheduledMissionStatus transitions a scheduled mission's status. Any
// current status may transition to any other, including back to PENDING.
func (c *Client) PatchScheduledMissionStatus(ctx context.Context, id int64, status models.Status) (models.ScheduledMission, models.GamificationDelta, error) {
	var out missionWithDelta
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/scheduled-missions/%d/status", id), nil, statusBody{Status: status}, &out, "failed to update mission status")
	return out.ScheduledMission, out.GamificationDelta, err
}
