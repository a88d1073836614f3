// Package recurrence projects habit template patterns onto concrete dates
// for display. The server remains the generator of record; nothing here is
// persisted.
package recurrence

import (
	"fmt"
	"strings"
	"time"

	"github.com/iterpolaris/polaris-cli/internal/constants"
	"github.com/iterpolaris/polaris-cli/internal/models"
)

// OccursOn reports whether the template's pattern lands on the given day,
// honoring the pattern start date and the optional end date.
func OccursOn(t models.HabitTemplate, day time.Time) bool {
	day = truncateToDay(day)

	start, err := time.Parse(constants.DateFormat, t.RecPatternStartDate)
	if err != nil || day.Before(start) {
		return false
	}
	if t.RecEndsOnDate != nil {
		end, err := time.Parse(constants.DateFormat, *t.RecEndsOnDate)
		if err == nil && day.After(end) {
			return false
		}
	}
	return dayMatches(t.RecByDay, day.Weekday())
}

func dayMatches(recByDay []models.RecDay, wd time.Weekday) bool {
	code := models.WeekdayCodes[wd]
	for _, d := range recByDay {
		if d == models.RecDaily || d == code {
			return true
		}
	}
	return false
}

// Preview returns the next n occurrence start instants of the template on
// or after from. With a recurrence start time set, instants land at that
// time of day; otherwise at midnight. The scan is bounded so an inactive
// pattern cannot loop forever.
func Preview(t models.HabitTemplate, from time.Time, n int) []time.Time {
	if n <= 0 || len(t.RecByDay) == 0 {
		return nil
	}

	var out []time.Time
	day := truncateToDay(from)
	for i := 0; i < 366 && len(out) < n; i++ {
		if OccursOn(t, day) {
			out = append(out, withStartTime(t, day))
		}
		day = day.AddDate(0, 0, 1)
	}
	return out
}

func withStartTime(t models.HabitTemplate, day time.Time) time.Time {
	if t.RecStartTime == nil {
		return day
	}
	tod, err := time.Parse(constants.TimeFormat, *t.RecStartTime)
	if err != nil {
		return day
	}
	return day.Add(time.Duration(tod.Hour())*time.Hour + time.Duration(tod.Minute())*time.Minute)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Describe formats a template's pattern into a human-readable string.
func Describe(t models.HabitTemplate) string {
	if len(t.RecByDay) == 0 {
		return "never"
	}
	for _, d := range t.RecByDay {
		if d == models.RecDaily {
			return describeTime(t, "daily")
		}
	}
	days := make([]string, len(t.RecByDay))
	for i, d := range t.RecByDay {
		days[i] = string(d)
	}
	return describeTime(t, fmt.Sprintf("weekly on %s", strings.Join(days, ",")))
}

func describeTime(t models.HabitTemplate, base string) string {
	if t.RecStartTime != nil {
		base += " at " + *t.RecStartTime
	}
	if t.RecDurationMinutes != nil {
		base += fmt.Sprintf(" (%d min)", *t.RecDurationMinutes)
	}
	return base
}
