package projection

import (
	"context"

	"github.com/iterpolaris/polaris-cli/internal/models"
)

// DefaultQuestColor is used for items without a quest or when the quest
// lookup is unavailable.
const DefaultQuestColor = "#6b7280"

// QuestSource lists quests for the color lookup.
type QuestSource interface {
	ListQuests(ctx context.Context) ([]models.Quest, error)
}

// ColorIndex maps quest ids to display colors. It is fetched independently
// of the item projection and joined at render time, keeping the projection
// itself presentation-agnostic.
type ColorIndex map[int64]string

// BuildColorIndex fetches quests and reduces them to the id→color lookup.
func BuildColorIndex(ctx context.Context, src QuestSource) (ColorIndex, error) {
	quests, err := src.ListQuests(ctx)
	if err != nil {
		return nil, err
	}
	idx := make(ColorIndex, len(quests))
	for _, q := range quests {
		idx[q.ID] = q.Color
	}
	return idx, nil
}

// ColorFor resolves a quest id to its color, falling back to the default.
func (c ColorIndex) ColorFor(questID *int64) string {
	if questID == nil {
		return DefaultQuestColor
	}
	if color, ok := c[*questID]; ok && color != "" {
		return color
	}
	return DefaultQuestColor
}
