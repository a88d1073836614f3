package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/iterpolaris/polaris-cli/internal/models"
)

type poolWithDelta struct {
	models.PoolMission
	models.GamificationDelta
}

type focusBody struct {
	FocusStatus models.FocusStatus `json:"focus_status"`
}

// ListPoolMissions returns pool missions, optionally narrowed by focus.
func (c *Client) ListPoolMissions(ctx context.Context, focus models.FocusStatus) ([]models.PoolMission, error) {
	q := url.Values{}
	if focus != "" {
		q.Set("focus", string(focus))
	}
	var out []models.PoolMission
	err := c.do(ctx, http.MethodGet, "/pool-missions", q, nil, &out, "failed to load pool missions")
	return out, err
}

// CreatePoolMission creates a pool mission.
func (c *Client) CreatePoolMission(ctx context.Context, p models.PoolMissionPayload) (models.PoolMission, error) {
	var out models.PoolMission
	err := c.do(ctx, http.MethodPost, "/pool-missions", nil, p, &out, "failed to create pool mission")
	return out, err
}

// UpdatePoolMission replaces a pool mission with the full payload.
func (c *Client) UpdatePoolMission(ctx context.Context, id int64, p models.PoolMissionPayload) (models.PoolMission, error) {
	var out models.PoolMission
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/pool-missions/%d", id), nil, p, &out, "failed to update pool mission")
	return out, err
}

// DeletePoolMission deletes a pool mission.
func (c *Client) DeletePoolMission(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/pool-missions/%d", id), nil, nil, nil, "failed to delete pool mission")
}

// PatchPoolMissionStatus transitions a pool mission's completion status.
func (c *Client) PatchPoolMissionStatus(ctx context.Context, id int64, status models.Status) (models.PoolMission, models.GamificationDelta, error) {
	var out poolWithDelta
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/pool-missions/%d/status", id), nil, statusBody{Status: status}, &out, "failed to update pool mission status")
	return out.PoolMission, out.GamificationDelta, err
}

// PatchPoolMissionFocus flips a pool mission between ACTIVE and DEFERRED.
func (c *Client) PatchPoolMissionFocus(ctx context.Context, id int64, focus models.FocusStatus) (models.PoolMission, error) {
	var out models.PoolMission
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/pool-missions/%d/focus", id), nil, focusBody{FocusStatus: focus}, &out, "failed to update focus status")
	return out, err
}
