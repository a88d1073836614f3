package api

import (
	"context"
	"net/http"

	"github.com/iterpolaris/polaris-cli/internal/models"
)

// ListQuests returns the user's quests. The calendar only needs these to
// build the id→color lookup.
func (c *Client) ListQuests(ctx context.Context) ([]models.Quest, error) {
	var out []models.Quest
	err := c.do(ctx, http.MethodGet, "/quests", nil, nil, &out, "failed to load quests")
	return out, err
}

// ListTags returns the user's tags, used to populate form selectors.
func (c *Client) ListTags(ctx context.Context) ([]models.Tag, error) {
	var out []models.Tag
	err := c.do(ctx, http.MethodGet, "/tags", nil, nil, &out, "failed to load tags")
	return out, err
}

// GetProfile fetches the authoritative user profile, including totals.
func (c *Client) GetProfile(ctx context.Context) (models.User, error) {
	var out models.User
	err := c.do(ctx, http.MethodGet, "/users/me", nil, nil, &out, "failed to load profile")
	return out, err
}

// GetEnergyBalance fetches the aggregate energy figure.
func (c *Client) GetEnergyBalance(ctx context.Context) (models.EnergyBalance, error) {
	var out models.EnergyBalance
	err := c.do(ctx, http.MethodGet, "/users/me/energy", nil, nil, &out, "failed to load energy balance")
	return out, err
}

type loginBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var out loginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, loginBody{Username: username, Password: password}, &out, "login failed")
	if err != nil {
		return "", err
	}
	c.token = out.Token
	return out.Token, nil
}
