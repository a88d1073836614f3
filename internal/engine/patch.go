package engine

import (
	"sync"
	"time"

	"github.com/iterpolaris/polaris-cli/internal/projection"
)

// PendingPatch is a speculative local move/resize awaiting server
// confirmation: the item renders at the new times while the PUT is in
// flight, and reverts explicitly if it fails.
type PendingPatch struct {
	ItemID   string
	NewStart time.Time
	NewEnd   time.Time
}

// PatchLedger tracks pending local patches keyed by item id. On success a
// patch is discarded and the next refetch carries the truth; on failure the
// patch is reverted, restoring the item's last confirmed position.
//
// Mutations run on command goroutines while the render loop reads through
// Overlay, so every access takes the ledger lock.
type PatchLedger struct {
	mu      sync.Mutex
	patches map[string]PendingPatch
}

// NewPatchLedger creates an empty ledger.
func NewPatchLedger() *PatchLedger {
	return &PatchLedger{patches: make(map[string]PendingPatch)}
}

// Stage records a speculative patch for the item.
func (l *PatchLedger) Stage(p PendingPatch) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.patches[p.ItemID] = p
}

// Discard drops the patch after the mutation succeeded.
func (l *PatchLedger) Discard(itemID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.patches, itemID)
}

// Revert drops the patch after the mutation failed, restoring the
// confirmed position on the next render.
func (l *PatchLedger) Revert(itemID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.patches, itemID)
}

// Pending reports whether the item has an in-flight patch.
func (l *PatchLedger) Pending(itemID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.patches[itemID]
	return ok
}

// Overlay projects pending patches onto a copy of the item sequence.
// Confirmed state is never mutated; only the rendered copy moves.
func (l *PatchLedger) Overlay(items []projection.CalendarItem) []projection.CalendarItem {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.patches) == 0 {
		return items
	}
	out := make([]projection.CalendarItem, len(items))
	for i, it := range items {
		if p, ok := l.patches[it.ID()]; ok {
			if m, isMission := it.Mission(); isMission {
				m.StartDatetime = p.NewStart
				m.EndDatetime = p.NewEnd
				out[i] = projection.NewMissionItem(m)
				continue
			}
		}
		out[i] = it
	}
	return out
}
