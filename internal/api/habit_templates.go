package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iterpolaris/polaris-cli/internal/models"
)

// ListHabitTemplates returns all habit templates.
func (c *Client) ListHabitTemplates(ctx context.Context) ([]models.HabitTemplate, error) {
	var out []models.HabitTemplate
	err := c.do(ctx, http.MethodGet, "/habit-templates", nil, nil, &out, "failed to load habit templates")
	return out, err
}

// GetHabitTemplate fetches a single template by id, used when a calendar
// action needs the full recurrence definition behind an occurrence.
func (c *Client) GetHabitTemplate(ctx context.Context, id int64) (models.HabitTemplate, error) {
	var out models.HabitTemplate
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/habit-templates/%d", id), nil, nil, &out, "failed to load habit template")
	return out, err
}

// CreateHabitTemplate creates a template. The server generates the initial
// occurrence window as part of creation.
func (c *Client) CreateHabitTemplate(ctx context.Context, p models.HabitTemplatePayload) (models.HabitTemplate, error) {
	var out models.HabitTemplate
	err := c.do(ctx, http.MethodPost, "/habit-templates", nil, p, &out, "failed to create habit template")
	return out, err
}

// UpdateHabitTemplate replaces a template. The server regenerates future
// occurrences to match the new recurrence pattern.
func (c *Client) UpdateHabitTemplate(ctx context.Context, id int64, p models.HabitTemplatePayload) (models.HabitTemplate, error) {
	var out models.HabitTemplate
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/habit-templates/%d", id), nil, p, &out, "failed to update habit template")
	return out, err
}

// DeleteHabitTemplate deletes a template. The server cascades the delete to
// every generated occurrence, including future ones.
func (c *Client) DeleteHabitTemplate(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/habit-templates/%d", id), nil, nil, nil, "failed to delete habit template")
}

type generateResponse struct {
	Message string `json:"message"`
}

// GenerateOccurrences asks the server to extend the template's occurrence
// window (roughly the next 30 days, without duplicating existing rows).
// The server's message is returned verbatim for display.
func (c *Client) GenerateOccurrences(ctx context.Context, id int64) (string, error) {
	var out generateResponse
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/habit-templates/%d/generate-occurrences", id), nil, nil, &out, "failed to extend habit")
	return out.Message, err
}
