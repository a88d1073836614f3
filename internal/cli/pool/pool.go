package pool

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iterpolaris/polaris-cli/internal/cli"
	"github.com/iterpolaris/polaris-cli/internal/convert"
	"github.com/iterpolaris/polaris-cli/internal/models"
	"github.com/iterpolaris/polaris-cli/internal/validation"
)

type ListCmd struct {
	Focus string `help:"Filter by focus status (ACTIVE, DEFERRED)."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAuth(); err != nil {
		return err
	}
	missions, err := ctx.Client.ListPoolMissions(context.Background(), models.FocusStatus(c.Focus))
	if err != nil {
		return err
	}
	if len(missions) == 0 {
		fmt.Println("The pool is empty")
		return nil
	}
	for _, m := range missions {
		focus := ""
		if m.FocusStatus == models.FocusDeferred {
			focus = " (deferred)"
		}
		fmt.Printf("%s %4d  %s%s (%d pts)\n",
			cli.StatusGlyph(m.Status), m.ID, m.Title, focus, m.PointsValue)
	}
	return nil
}

type AddCmd struct {
	Title       string `arg:"" help:"Mission title."`
	Description string `help:"Description."`
	Energy      int    `help:"Energy value."`
	Points      int    `help:"Points value."`
	Deferred    bool   `help:"Start deferred instead of active."`
	Quest       int64  `help:"Quest id."`
	Tags        string `help:"Tag ids, comma separated."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAuth(); err != nil {
		return err
	}
	if err := validation.Title(c.Title); err != nil {
		return err
	}
	tags, err := cli.ParseTagIDs(c.Tags)
	if err != nil {
		return err
	}
	focus := models.FocusActive
	if c.Deferred {
		focus = models.FocusDeferred
	}

	m, err := ctx.Client.CreatePoolMission(context.Background(), models.PoolMissionPayload{
		Title:       c.Title,
		Description: c.Description,
		Status:      models.StatusPending,
		FocusStatus: focus,
		EnergyValue: c.Energy,
		PointsValue: c.Points,
		QuestID:     cli.QuestPtr(c.Quest),
		TagIDs:      tags,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Added %q to the pool (id %d)\n", m.Title, m.ID)
	return nil
}

type DoneCmd struct {
	ID int64 `arg:"" help:"Pool mission id."`
}

func (c *DoneCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAuth(); err != nil {
		return err
	}
	m, delta, err := ctx.Client.PatchPoolMissionStatus(context.Background(), c.ID, models.StatusCompleted)
	if err != nil {
		return err
	}
	fmt.Printf("Completed %s\n", m.Title)
	ctx.ApplyAndReport(context.Background(), delta)
	return nil
}

type FocusCmd struct {
	ID    int64 `arg:"" help:"Pool mission id."`
	Defer bool  `help:"Defer instead of activating."`
}

func (c *FocusCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAuth(); err != nil {
		return err
	}
	focus := models.FocusActive
	if c.Defer {
		focus = models.FocusDeferred
	}
	m, err := ctx.Client.PatchPoolMissionFocus(context.Background(), c.ID, focus)
	if err != nil {
		return err
	}
	fmt.Printf("%s is now %s\n", m.Title, m.FocusStatus)
	return nil
}

type ScheduleCmd struct {
	ID    int64  `arg:"" help:"Pool mission id."`
	Start string `help:"Start (YYYY-MM-DD HH:MM)." required:""`
	End   string `help:"End. Defaults to an hour after start."`
}

func (c *ScheduleCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAuth(); err != nil {
		return err
	}

	start, err := cli.ParseDatetime(c.Start)
	if err != nil {
		return err
	}
	var end time.Time
	if c.End != "" {
		if end, err = cli.ParseDatetime(c.End); err != nil {
			return err
		}
	}

	bg := context.Background()
	missions, err := ctx.Client.ListPoolMissions(bg, "")
	if err != nil {
		return err
	}
	for _, pm := range missions {
		if pm.ID != c.ID {
			continue
		}
		m, err := ctx.Workflow.PoolToScheduled(bg, pm, start, end, false)
		if err != nil {
			if errors.Is(err, convert.ErrCompensationPending) {
				fmt.Printf("⚠ %v\n", err)
				return nil
			}
			return err
		}
		fmt.Printf("Scheduled %q for %s (mission id %d)\n",
			m.Title, m.StartDatetime.Format("Mon Jan 02 15:04"), m.ID)
		return nil
	}
	return fmt.Errorf("pool mission %d not found", c.ID)
}

type RmCmd struct {
	ID int64 `arg:"" help:"Pool mission id."`
}

func (c *RmCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAuth(); err != nil {
		return err
	}
	if err := ctx.Client.DeletePoolMission(context.Background(), c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted pool mission %d\n", c.ID)
	return nil
}
