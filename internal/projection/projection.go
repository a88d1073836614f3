package projection

import (
	"context"
	"sort"
	"sync"

	"github.com/iterpolaris/polaris-cli/internal/api"
	"github.com/iterpolaris/polaris-cli/internal/logger"
	"github.com/iterpolaris/polaris-cli/internal/models"
)

// Source is the slice of the API client the projection reads from.
type Source interface {
	ListScheduledMissions(ctx context.Context, f api.ListFilter) ([]models.ScheduledMission, error)
	ListHabitOccurrences(ctx context.Context, f api.ListFilter) ([]models.HabitOccurrence, error)
}

// Result is the combined view of both source collections. The legs degrade
// independently: a failed fetch leaves its error set and its contribution
// empty while the surviving leg still renders.
type Result struct {
	Items         []CalendarItem
	MissionErr    error
	OccurrenceErr error
}

// Err returns the first leg error, for callers that only surface one line.
func (r Result) Err() error {
	if r.MissionErr != nil {
		return r.MissionErr
	}
	return r.OccurrenceErr
}

// Build fetches scheduled missions and habit occurrences concurrently and
// normalizes them into one item sequence. Calendar consumers take the
// sequence as-is; list consumers sort it with SortByStart.
func Build(ctx context.Context, src Source, f api.ListFilter) Result {
	var (
		wg          sync.WaitGroup
		missions    []models.ScheduledMission
		occurrences []models.HabitOccurrence
		res         Result
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		missions, res.MissionErr = src.ListScheduledMissions(ctx, f)
	}()
	go func() {
		defer wg.Done()
		occurrences, res.OccurrenceErr = src.ListHabitOccurrences(ctx, f)
	}()
	wg.Wait()

	if res.MissionErr != nil {
		logger.Warn("scheduled mission fetch failed", "error", res.MissionErr)
		missions = nil
	}
	if res.OccurrenceErr != nil {
		logger.Warn("habit occurrence fetch failed", "error", res.OccurrenceErr)
		occurrences = nil
	}

	res.Items = make([]CalendarItem, 0, len(missions)+len(occurrences))
	for _, m := range missions {
		res.Items = append(res.Items, NewMissionItem(m))
	}
	for _, o := range occurrences {
		res.Items = append(res.Items, NewOccurrenceItem(o))
	}
	return res
}

// SortByStart orders items ascending by start time, in place. Used by the
// upcoming/agenda list contexts.
func SortByStart(items []CalendarItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Start().Before(items[j].Start())
	})
}
