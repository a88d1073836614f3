package missions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iterpolaris/polaris-cli/internal/api"
	"github.com/iterpolaris/polaris-cli/internal/cli"
	"github.com/iterpolaris/polaris-cli/internal/convert"
	"github.com/iterpolaris/polaris-cli/internal/models"
	"github.com/iterpolaris/polaris-cli/internal/validation"
)

type ListCmd struct {
	Days   int    `help:"Window of days starting today." default:"7"`
	Status string `help:"Filter by status (PENDING, COMPLETED, SKIPPED)."`
	Quest  int64  `help:"Filter by quest id."`
	Tags   string `help:"Filter by tag ids, comma separated."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAuth(); err != nil {
		return err
	}

	from := time.Now().Truncate(24 * time.Hour)
	f := api.ListFilter{
		From:   from,
		To:     from.AddDate(0, 0, c.Days),
		Status: models.Status(c.Status),
	}
	if c.Quest != 0 {
		f.QuestID = &c.Quest
	}
	tags, err := cli.ParseTagIDs(c.Tags)
	if err != nil {
		return err
	}
	f.TagIDs = tags

	missions, err := ctx.Client.ListScheduledMissions(context.Background(), f)
	if err != nil {
		return err
	}
	if len(missions) == 0 {
		fmt.Println("No scheduled missions")
		return nil
	}
	for _, m := range missions {
		fmt.Printf("%s %4d  %s  %s (%d pts)\n",
			cli.StatusGlyph(m.Status), m.ID,
			m.StartDatetime.Format("Mon Jan 02 15:04"), m.Title, m.PointsValue)
	}
	return nil
}

type AddCmd struct {
	Title       string `arg:"" help:"Mission title."`
	Start       string `help:"Start (YYYY-MM-DD HH:MM)." required:""`
	End         string `help:"End (YYYY-MM-DD HH:MM). Defaults to an hour after start."`
	AllDay      bool   `help:"All-day mission."`
	Description string `help:"Description."`
	Energy      int    `help:"Energy value."`
	Points      int    `help:"Points value."`
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

	start, err := cli.ParseDatetime(c.Start)
	if err != nil {
		return err
	}
	end := start.Add(time.Hour)
	if c.End != "" {
		if end, err = cli.ParseDatetime(c.End); err != nil {
			return err
		}
	}
	if err := validation.MissionTimes(start, end); err != nil {
		return err
	}
	tags, err := cli.ParseTagIDs(c.Tags)
	if err != nil {
		return err
	}

	m, err := ctx.Client.CreateScheduledMission(context.Background(), models.ScheduledMissionPayload{
		Title:         c.Title,
		Description:   c.Description,
		StartDatetime: start,
		EndDatetime:   end,
		IsAllDay:      c.AllDay,
		Status:        models.StatusPending,
		EnergyValue:   c.Energy,
		PointsValue:   c.Points,
		QuestID:       cli.QuestPtr(c.Quest),
		TagIDs:        tags,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Created mission %d: %s\n", m.ID, m.Title)
	return nil
}

type EditCmd struct {
	ID          int64   `arg:"" help:"Mission id."`
	Title       *string `help:"New title."`
	Start       *string `help:"New start (YYYY-MM-DD HH:MM)."`
	End         *string `help:"New end (YYYY-MM-DD HH:MM)."`
	AllDay      *bool   `help:"All-day mission."`
	Description *string `help:"New description."`
	Energy      *int    `help:"New energy value."`
	Points      *int    `help:"New points value."`
	Quest       *int64  `help:"New quest id, 0 to clear."`
	Tags        *string `help:"New tag ids, comma separated. Empty clears."`
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAuth(); err != nil {
		return err
	}

	bg := context.Background()
	missions, err := ctx.Client.ListScheduledMissions(bg, api.ListFilter{})
	if err != nil {
		return err
	}
	for _, m := range missions {
		if m.ID != c.ID {
			continue
		}
		if m.Status != models.StatusPending {
			return fmt.Errorf("only pending missions can be edited; undo mission %d first", c.ID)
		}

		p := models.PayloadFrom(m)
		if c.Title != nil {
			if err := validation.Title(*c.Title); err != nil {
				return err
			}
			p.Title = *c.Title
		}
		if c.Description != nil {
			p.Description = *c.Description
		}
		if c.Start != nil {
			if p.StartDatetime, err = cli.ParseDatetime(*c.Start); err != nil {
				return err
			}
		}
		if c.End != nil {
			if p.EndDatetime, err = cli.ParseDatetime(*c.End); err != nil {
				return err
			}
		}
		if err := validation.MissionTimes(p.StartDatetime, p.EndDatetime); err != nil {
			return err
		}
		if c.AllDay != nil {
			p.IsAllDay = *c.AllDay
		}
		if c.Energy != nil {
			p.EnergyValue = *c.Energy
		}
		if c.Points != nil {
			p.PointsValue = *c.Points
		}
		if c.Quest != nil {
			p.QuestID = cli.QuestPtr(*c.Quest)
		}
		if c.Tags != nil {
			if p.TagIDs, err = cli.ParseTagIDs(*c.Tags); err != nil {
				return err
			}
		}

		updated, err := ctx.Client.UpdateScheduledMission(bg, m.ID, p)
		if err != nil {
			return err
		}
		fmt.Printf("Updated mission %d: %s\n", updated.ID, updated.Title)
		return nil
	}
	return fmt.Errorf("mission %d not found", c.ID)
}

type statusCmd struct {
	ID int64 `arg:"" help:"Mission id."`
}

func (c *statusCmd) patch(ctx *cli.Context, status models.Status, verb string) error {
	if err := ctx.RequireAuth(); err != nil {
		return err
	}
	m, delta, err := ctx.Client.PatchScheduledMissionStatus(context.Background(), c.ID, status)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s\n", verb, m.Title)
	ctx.ApplyAndReport(context.Background(), delta)
	return nil
}

type DoneCmd struct{ statusCmd }

func (c *DoneCmd) Run(ctx *cli.Context) error {
	return c.patch(ctx, models.StatusCompleted, "Completed")
}

type SkipCmd struct{ statusCmd }

func (c *SkipCmd) Run(ctx *cli.Context) error {
	return c.patch(ctx, models.StatusSkipped, "Skipped")
}

type UndoCmd struct{ statusCmd }

func (c *UndoCmd) Run(ctx *cli.Context) error {
	return c.patch(ctx, models.StatusPending, "Reopened")
}

type MoveToPoolCmd struct {
	ID int64 `arg:"" help:"Mission id."`
}

func (c *MoveToPoolCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAuth(); err != nil {
		return err
	}

	bg := context.Background()
	missions, err := ctx.Client.ListScheduledMissions(bg, api.ListFilter{})
	if err != nil {
		return err
	}
	for _, m := range missions {
		if m.ID != c.ID {
			continue
		}
		pm, err := ctx.Workflow.ScheduledToPool(bg, m)
		if err != nil {
			if errors.Is(err, convert.ErrCompensationPending) {
				fmt.Printf("⚠ %v\n", err)
				return nil
			}
			return err
		}
		fmt.Printf("Moved %q to the pool (pool id %d)\n", pm.Title, pm.ID)
		return nil
	}
	return fmt.Errorf("mission %d not found", c.ID)
}

type RmCmd struct {
	ID int64 `arg:"" help:"Mission id."`
}

func (c *RmCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAuth(); err != nil {
		return err
	}
	if err := ctx.Client.DeleteScheduledMission(context.Background(), c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted mission %d\n", c.ID)
	return nil
}
