package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/iterpolaris/polaris-cli/internal/api"
	"github.com/iterpolaris/polaris-cli/internal/constants"
	"github.com/iterpolaris/polaris-cli/internal/convert"
	"github.com/iterpolaris/polaris-cli/internal/intentlog"
	"github.com/iterpolaris/polaris-cli/internal/models"
	"github.com/iterpolaris/polaris-cli/internal/projection"
	"github.com/iterpolaris/polaris-cli/internal/session"
)

type Context struct {
	Client   *api.Client
	Session  *session.Store
	Workflow *convert.Workflow
	Intents  *intentlog.Log

	ConfigDir string
	// LoggedIn is set when a bearer token was found at startup.
	LoggedIn bool
}

// RequireAuth fails fast for commands that talk to the backend.
func (c *Context) RequireAuth() error {
	if !c.LoggedIn {
		return fmt.Errorf("not signed in; run `polaris login` first")
	}
	return nil
}

// ApplyAndReport propagates a status-change delta into the session store
// and prints the refreshed totals.
func (c *Context) ApplyAndReport(ctx context.Context, delta models.GamificationDelta) {
	if err := c.Session.ApplyMutation(ctx, delta); err != nil {
		fmt.Printf("  (totals refresh failed: %v)\n", err)
		return
	}
	snap := c.Session.Current()
	fmt.Printf("  lvl %d · %d pts · %d energy\n",
		snap.User.Level, snap.User.TotalPoints, snap.Energy.Balance)
}

// ParseDatetime accepts "YYYY-MM-DD HH:MM" or a bare date, which becomes
// midnight local time.
func ParseDatetime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(constants.DateFormat+" "+constants.TimeFormat, s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(constants.DateFormat, s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid datetime %q (want YYYY-MM-DD [HH:MM])", s)
}

// ParseTagIDs parses a comma-separated id list.
func ParseTagIDs(s string) ([]int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid tag id %q", p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// QuestPtr maps the zero flag value onto "no quest".
func QuestPtr(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

// StatusGlyph renders a status for list output.
func StatusGlyph(s models.Status) string {
	switch s {
	case models.StatusCompleted:
		return "✓"
	case models.StatusSkipped:
		return "⤫"
	default:
		return "○"
	}
}

// FormatItem renders one calendar item line for agenda-style output.
func FormatItem(it projection.CalendarItem) string {
	when := it.Start().Format("Mon Jan 02 15:04")
	if it.AllDay() {
		when = it.Start().Format("Mon Jan 02") + " (all day)"
	}
	kind := ""
	if _, ok := it.Occurrence(); ok {
		kind = " ⟳"
	}
	return fmt.Sprintf("%s %s  %s%s", StatusGlyph(it.Status()), when, it.Title(), kind)
}
