package state

import (
	"github.com/iterpolaris/polaris-cli/internal/engine"
	"github.com/iterpolaris/polaris-cli/internal/models"
	"github.com/iterpolaris/polaris-cli/internal/projection"
	"github.com/iterpolaris/polaris-cli/internal/session"
)

// EventsLoadedMsg carries the combined calendar projection.
type EventsLoadedMsg struct {
	Result projection.Result
}

// PoolLoadedMsg carries the pool listing.
type PoolLoadedMsg struct {
	Missions []models.PoolMission
	Err      error
}

// ReferenceLoadedMsg carries quests, tags and the quest color index.
type ReferenceLoadedMsg struct {
	Quests []models.Quest
	Tags   []models.Tag
	Colors projection.ColorIndex
	Err    error
}

// OutcomeMsg carries the result of an engine gesture back to the view.
type OutcomeMsg struct {
	Outcome engine.Outcome
}

// ClearSuccessMsg expires the transient success line.
type ClearSuccessMsg struct{}

// SessionChangedMsg carries a new session snapshot from the store.
type SessionChangedMsg struct {
	Snapshot session.Snapshot
}

// IntentsDrainedMsg carries the result of retrying pending conversions.
type IntentsDrainedMsg struct {
	Resolved int
	Err      error
}
