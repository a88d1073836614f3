package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
)

// ErrUnauthorized is returned for any 401 response. The session store
// listens for it and transitions to the unauthenticated state.
var ErrUnauthorized = errors.New("not authenticated")

// APIError is a non-2xx backend response reduced to a displayable message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// errorEnvelope matches the backend's failure body: either a flat `error`
// string, or a per-field `errors` map whose values are a string or a list
// of strings.
type errorEnvelope struct {
	Error  string                     `json:"error"`
	Errors map[string]json.RawMessage `json:"errors"`
}

// decodeErrorEnvelope extracts the most specific message available:
// `error`, then the first entry of `errors`, then the fallback.
func decodeErrorEnvelope(r io.Reader, status int, fallback string) *APIError {
	apiErr := &APIError{StatusCode: status, Message: fallback}

	var env errorEnvelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return apiErr
	}
	if env.Error != "" {
		apiErr.Message = env.Error
		return apiErr
	}
	if len(env.Errors) == 0 {
		return apiErr
	}

	// Map iteration order is random; sort the keys so the surfaced message
	// is stable across identical responses.
	fields := make([]string, 0, len(env.Errors))
	for f := range env.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	first := env.Errors[fields[0]]
	var single string
	if err := json.Unmarshal(first, &single); err == nil && single != "" {
		apiErr.Message = fmt.Sprintf("%s: %s", fields[0], single)
		return apiErr
	}
	var many []string
	if err := json.Unmarshal(first, &many); err == nil && len(many) > 0 {
		apiErr.Message = fmt.Sprintf("%s: %s", fields[0], many[0])
	}
	return apiErr
}
