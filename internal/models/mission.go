package models

import "time"

// ScheduledMission is a task anchored to fixed start/end instants on the
// calendar. It is movable and resizable only while PENDING.
type ScheduledMission struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	StartDatetime time.Time `json:"start_datetime"`
	EndDatetime   time.Time `json:"end_datetime"`
	IsAllDay      bool      `json:"is_all_day"`
	Status        Status    `json:"status"`
	EnergyValue   int       `json:"energy_value"`
	PointsValue   int       `json:"points_value"`
	QuestID       *int64    `json:"quest_id,omitempty"`
	Tags          []Tag     `json:"tags,omitempty"`
}

// Movable reports whether the mission may be dragged or resized.
func (m ScheduledMission) Movable() bool {
	return m.Status == StatusPending
}

// TagIDs returns the ids of the mission's tags.
func (m ScheduledMission) TagIDs() []int64 {
	return tagIDs(m.Tags)
}

// ScheduledMissionPayload is the create/update body for scheduled missions.
type ScheduledMissionPayload struct {
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	StartDatetime time.Time `json:"start_datetime"`
	EndDatetime   time.Time `json:"end_datetime"`
	IsAllDay      bool      `json:"is_all_day"`
	Status        Status    `json:"status"`
	EnergyValue   int       `json:"energy_value"`
	PointsValue   int       `json:"points_value"`
	QuestID       *int64    `json:"quest_id,omitempty"`
	TagIDs        []int64   `json:"tag_ids"`
}

// PayloadFrom builds a full update payload carrying every field of m. Move
// and resize rebuild the whole body so a PUT never drops fields the
// gesture did not touch.
func PayloadFrom(m ScheduledMission) ScheduledMissionPayload {
	return ScheduledMissionPayload{
		Title:         m.Title,
		Description:   m.Description,
		StartDatetime: m.StartDatetime,
		EndDatetime:   m.EndDatetime,
		IsAllDay:      m.IsAllDay,
		Status:        m.Status,
		EnergyValue:   m.EnergyValue,
		PointsValue:   m.PointsValue,
		QuestID:       m.QuestID,
		TagIDs:        m.TagIDs(),
	}
}

func tagIDs(tags []Tag) []int64 {
	ids := make([]int64, len(tags))
	for i, t := range tags {
		ids[i] = t.ID
	}
	return ids
}
