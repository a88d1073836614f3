package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iterpolaris/polaris-cli/internal/logger"
	"github.com/iterpolaris/polaris-cli/internal/models"
)

// Client talks to the Iter Polaris REST backend. Every call carries the
// bearer token; every mutation carries a client-generated Idempotency-Key
// so a retried request cannot double-apply.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a client for the given backend base URL and bearer token.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken replaces the bearer token, e.g. after login.
func (c *Client) SetToken(token string) {
	c.token = token
}

// ListFilter narrows list requests by tag set, status, quest and date range.
// Zero values are omitted from the query string.
type ListFilter struct {
	TagIDs  []int64
	Status  models.Status
	QuestID *int64
	From    time.Time
	To      time.Time
}

func (f ListFilter) query() url.Values {
	q := url.Values{}
	if len(f.TagIDs) > 0 {
		parts := make([]string, len(f.TagIDs))
		for i, id := range f.TagIDs {
			parts[i] = strconv.FormatInt(id, 10)
		}
		q.Set("tags", strings.Join(parts, ","))
	}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.QuestID != nil {
		q.Set("quest_id", strconv.FormatInt(*f.QuestID, 10))
	}
	if !f.From.IsZero() {
		q.Set("start", f.From.Format(time.RFC3339))
	}
	if !f.To.IsZero() {
		q.Set("end", f.To.Format(time.RFC3339))
	}
	return q
}

// do executes a request and decodes the response body into out (when out is
// non-nil). Non-2xx responses are decoded through the error envelope and
// returned as *APIError; fallback is the per-operation message.
func (c *Client) do(ctx context.Context, method, path string, q url.Values, in, out any, fallback string) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if method != http.MethodGet {
		req.Header.Set("Idempotency-Key", uuid.New().String())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", fallback, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeErrorEnvelope(resp.Body, resp.StatusCode, fallback)
		logger.Debug("API request failed", "method", method, "path", path, "status", resp.StatusCode, "error", apiErr.Message)
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
