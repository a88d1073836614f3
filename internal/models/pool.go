package models

// PoolMission is an unscheduled task sitting in the backlog. It has no time
// anchor and carries a focus axis independent of its completion status.
type PoolMission struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Status      Status      `json:"status"`
	FocusStatus FocusStatus `json:"focus_status"`
	EnergyValue int         `json:"energy_value"`
	PointsValue int         `json:"points_value"`
	QuestID     *int64      `json:"quest_id,omitempty"`
	Tags        []Tag       `json:"tags,omitempty"`
}

// TagIDs returns the ids of the mission's tags.
func (m PoolMission) TagIDs() []int64 {
	return tagIDs(m.Tags)
}

// PoolMissionPayload is the create/update body for pool missions.
type PoolMissionPayload struct {
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Status      Status      `json:"status"`
	FocusStatus FocusStatus `json:"focus_status"`
	EnergyValue int         `json:"energy_value"`
	PointsValue int         `json:"points_value"`
	QuestID     *int64      `json:"quest_id,omitempty"`
	TagIDs      []int64     `json:"tag_ids"`
}
