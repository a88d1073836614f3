package validation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/iterpolaris/polaris-cli/internal/constants"
	"github.com/iterpolaris/polaris-cli/internal/models"
)

// Title checks that a task-like entity has a non-blank title.
func Title(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("title cannot be empty")
	}
	return nil
}

// MissionTimes checks the scheduled-mission invariant start < end.
func MissionTimes(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("start and end times are required")
	}
	if !end.After(start) {
		return fmt.Errorf("start must precede end")
	}
	return nil
}

// TimeOfDay checks an HH:MM string. Empty is allowed (the field is
// optional on templates).
func TimeOfDay(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := time.Parse(constants.TimeFormat, s); err != nil {
		return fmt.Errorf("invalid time, expected HH:MM")
	}
	return nil
}

// Date checks a YYYY-MM-DD string.
func Date(s string) error {
	if _, err := time.Parse(constants.DateFormat, s); err != nil {
		return fmt.Errorf("invalid date, expected YYYY-MM-DD")
	}
	return nil
}

// OptionalDate checks a YYYY-MM-DD string, allowing empty.
func OptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return Date(s)
}

// PositiveMinutes checks a duration field given as a string of minutes.
// Empty is allowed.
func PositiveMinutes(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	if i <= 0 {
		return fmt.Errorf("duration must be a positive number of minutes")
	}
	return nil
}

// IntValue checks a numeric attribute field (energy/points).
func IntValue(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := strconv.Atoi(s); err != nil {
		return fmt.Errorf("must be a whole number")
	}
	return nil
}

// RecDays checks a recurrence day set: non-empty, known codes only, and
// DAILY never combined with specific weekdays.
func RecDays(days []models.RecDay) error {
	if len(days) == 0 {
		return fmt.Errorf("select at least one recurrence day")
	}
	known := map[models.RecDay]bool{
		models.RecDaily: true,
		models.RecMO:    true, models.RecTU: true, models.RecWE: true,
		models.RecTH: true, models.RecFR: true, models.RecSA: true, models.RecSU: true,
	}
	hasDaily := false
	for _, d := range days {
		if !known[d] {
			return fmt.Errorf("unknown recurrence day %q", d)
		}
		if d == models.RecDaily {
			hasDaily = true
		}
	}
	if hasDaily && len(days) > 1 {
		return fmt.Errorf("DAILY cannot be combined with specific weekdays")
	}
	return nil
}
