package models

// User is the authenticated profile, including gamification totals.
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email,omitempty"`
	TotalPoints int64  `json:"total_points"`
	Level       int    `json:"level"`
	Streak      int    `json:"streak,omitempty"`
}

// EnergyBalance is the aggregate energy figure, fetched separately from the
// profile and recomputed server-side after status mutations.
type EnergyBalance struct {
	Balance int `json:"balance"`
}

// GamificationDelta carries the optional updated totals a status-mutating
// response may include. Nil fields mean the server omitted them and only
// the authoritative profile refetch can refresh the value.
type GamificationDelta struct {
	UserTotalPoints *int64 `json:"user_total_points,omitempty"`
	UserLevel       *int   `json:"user_level,omitempty"`
}

// Empty reports whether the response carried no totals at all.
func (d GamificationDelta) Empty() bool {
	return d.UserTotalPoints == nil && d.UserLevel == nil
}
