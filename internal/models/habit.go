package models

import "time"

// RecDay is a recurrence day code: DAILY, or an ISO weekday abbreviation.
type RecDay string

const (
	RecDaily RecDay = "DAILY"
	RecMO    RecDay = "MO"
	RecTU    RecDay = "TU"
	RecWE    RecDay = "WE"
	RecTH    RecDay = "TH"
	RecFR    RecDay = "FR"
	RecSA    RecDay = "SA"
	RecSU    RecDay = "SU"
)

// WeekdayCodes maps time.Weekday onto the wire day codes.
var WeekdayCodes = map[time.Weekday]RecDay{
	time.Monday:    RecMO,
	time.Tuesday:   RecTU,
	time.Wednesday: RecWE,
	time.Thursday:  RecTH,
	time.Friday:    RecFR,
	time.Saturday:  RecSA,
	time.Sunday:    RecSU,
}

// HabitTemplate is a recurrence definition that generates HabitOccurrence
// rows server-side. Deleting a template cascades to all its occurrences.
type HabitTemplate struct {
	ID                  int64    `json:"id"`
	Title               string   `json:"title"`
	Description         string   `json:"description,omitempty"`
	RecByDay            []RecDay `json:"rec_by_day"`
	RecStartTime        *string  `json:"rec_start_time,omitempty"`       // HH:MM format
	RecDurationMinutes  *int     `json:"rec_duration_minutes,omitempty"`
	RecPatternStartDate string   `json:"rec_pattern_start_date"`         // YYYY-MM-DD format
	RecEndsOnDate       *string  `json:"rec_ends_on_date,omitempty"`     // YYYY-MM-DD format
	IsActive            bool     `json:"is_active"`
	EnergyValue         int      `json:"energy_value"`
	PointsValue         int      `json:"points_value"`
	QuestID             *int64   `json:"quest_id,omitempty"`
	Tags                []Tag    `json:"tags,omitempty"`
}

// TagIDs returns the ids of the template's tags.
func (t HabitTemplate) TagIDs() []int64 {
	return tagIDs(t.Tags)
}

// HabitTemplatePayload is the create/update body for habit templates.
type HabitTemplatePayload struct {
	Title               string   `json:"title"`
	Description         string   `json:"description,omitempty"`
	RecByDay            []RecDay `json:"rec_by_day"`
	RecStartTime        *string  `json:"rec_start_time,omitempty"`
	RecDurationMinutes  *int     `json:"rec_duration_minutes,omitempty"`
	RecPatternStartDate string   `json:"rec_pattern_start_date"`
	RecEndsOnDate       *string  `json:"rec_ends_on_date,omitempty"`
	IsActive            bool     `json:"is_active"`
	EnergyValue         int      `json:"energy_value"`
	PointsValue         int      `json:"points_value"`
	QuestID             *int64   `json:"quest_id,omitempty"`
	TagIDs              []int64  `json:"tag_ids"`
}

// HabitOccurrence is one materialized, date-specific instance generated
// from a HabitTemplate. It is never independently reschedulable.
type HabitOccurrence struct {
	ID                     int64          `json:"id"`
	HabitTemplateID        int64          `json:"habit_template_id"`
	Title                  string         `json:"title"`
	ScheduledStartDatetime time.Time      `json:"scheduled_start_datetime"`
	ScheduledEndDatetime   time.Time      `json:"scheduled_end_datetime"`
	IsAllDay               bool           `json:"is_all_day"`
	Status                 Status         `json:"status"`
	QuestID                *int64         `json:"quest_id,omitempty"`
	TemplateTags           []Tag          `json:"template_tags,omitempty"`
	Template               *HabitTemplate `json:"template,omitempty"`
}

// EffectiveTags returns the occurrence's tag set: the denormalized
// template_tags when present, the nested template's tags otherwise, and an
// empty set when neither is populated.
func (o HabitOccurrence) EffectiveTags() []Tag {
	if len(o.TemplateTags) > 0 {
		return o.TemplateTags
	}
	if o.Template != nil {
		return o.Template.Tags
	}
	return nil
}
