package habits

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iterpolaris/polaris-cli/internal/cli"
	"github.com/iterpolaris/polaris-cli/internal/models"
	"github.com/iterpolaris/polaris-cli/internal/recurrence"
	"github.com/iterpolaris/polaris-cli/internal/validation"
)

type ListCmd struct {
	All bool `help:"Include inactive habits."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAuth(); err != nil {
		return err
	}
	templates, err := ctx.Client.ListHabitTemplates(context.Background())
	if err != nil {
		return err
	}
	shown := 0
	for _, t := range templates {
		if !c.All && !t.IsActive {
			continue
		}
		shown++
		status := ""
		if !t.IsActive {
			status = " (inactive)"
		}
		fmt.Printf("%4d  %s%s\n      %s\n", t.ID, t.Title, status, recurrence.Describe(t))
	}
	if shown == 0 {
		fmt.Println("No habits")
	}
	return nil
}

type AddCmd struct {
	Title        string `arg:"" help:"Habit title."`
	Days         string `help:"Recurrence days: DAILY or comma-separated MO,TU,WE,TH,FR,SA,SU." required:""`
	At           string `help:"Start time (HH:MM). Omit for all-day occurrences."`
	Duration     int    `help:"Duration in minutes." default:"60"`
	From         string `help:"Pattern start date (YYYY-MM-DD), defaults to today."`
	Until        string `help:"Pattern end date (YYYY-MM-DD)."`
	Description  string `help:"Description."`
	Energy       int    `help:"Energy value."`
	Points       int    `help:"Points value."`
	Quest        int64  `help:"Quest id."`
	Tags         string `help:"Tag ids, comma separated."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAuth(); err != nil {
		return err
	}
	if err := validation.Title(c.Title); err != nil {
		return err
	}

	var days []models.RecDay
	for _, d := range strings.Split(c.Days, ",") {
		days = append(days, models.RecDay(strings.ToUpper(strings.TrimSpace(d))))
	}
	if err := validation.RecDays(days); err != nil {
		return err
	}
	if err := validation.TimeOfDay(c.At); err != nil {
		return err
	}
	from := c.From
	if from == "" {
		from = time.Now().Format("2006-01-02")
	}
	if err := validation.Date(from); err != nil {
		return err
	}
	if err := validation.OptionalDate(c.Until); err != nil {
		return err
	}
	tags, err := cli.ParseTagIDs(c.Tags)
	if err != nil {
		return err
	}

	p := models.HabitTemplatePayload{
		Title:               c.Title,
		Description:         c.Description,
		RecByDay:            days,
		RecPatternStartDate: from,
		IsActive:            true,
		EnergyValue:         c.Energy,
		PointsValue:         c.Points,
		QuestID:             cli.QuestPtr(c.Quest),
		TagIDs:              tags,
	}
	if c.At != "" {
		at := c.At
		p.RecStartTime = &at
		dur := c.Duration
		p.RecDurationMinutes = &dur
	}
	if c.Until != "" {
		until := c.Until
		p.RecEndsOnDate = &until
	}

	t, err := ctx.Client.CreateHabitTemplate(context.Background(), p)
	if err != nil {
		return err
	}
	fmt.Printf("Created habit %d: %s\n      %s\n", t.ID, t.Title, recurrence.Describe(t))
	return nil
}

type EditCmd struct {
	ID          int64   `arg:"" help:"Habit template id."`
	Title       *string `help:"New title."`
	Days        *string `help:"New recurrence days: DAILY or comma-separated MO,TU,WE,TH,FR,SA,SU."`
	At          *string `help:"New start time (HH:MM). Empty clears it."`
	Duration    *int    `help:"New duration in minutes."`
	From        *string `help:"New pattern start date (YYYY-MM-DD)."`
	Until       *string `help:"New pattern end date (YYYY-MM-DD). Empty clears it."`
	Description *string `help:"New description."`
	Active      *bool   `help:"Activate or deactivate the habit."`
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
	t, err := ctx.Client.GetHabitTemplate(bg, c.ID)
	if err != nil {
		return err
	}

	p := models.HabitTemplatePayload{
		Title:               t.Title,
		Description:         t.Description,
		RecByDay:            t.RecByDay,
		RecStartTime:        t.RecStartTime,
		RecDurationMinutes:  t.RecDurationMinutes,
		RecPatternStartDate: t.RecPatternStartDate,
		RecEndsOnDate:       t.RecEndsOnDate,
		IsActive:            t.IsActive,
		EnergyValue:         t.EnergyValue,
		PointsValue:         t.PointsValue,
		QuestID:             t.QuestID,
		TagIDs:              t.TagIDs(),
	}

	if c.Title != nil {
		if err := validation.Title(*c.Title); err != nil {
			return err
		}
		p.Title = *c.Title
	}
	if c.Description != nil {
		p.Description = *c.Description
	}
	if c.Days != nil {
		var days []models.RecDay
		for _, d := range strings.Split(*c.Days, ",") {
			days = append(days, models.RecDay(strings.ToUpper(strings.TrimSpace(d))))
		}
		if err := validation.RecDays(days); err != nil {
			return err
		}
		p.RecByDay = days
	}
	if c.At != nil {
		if err := validation.TimeOfDay(*c.At); err != nil {
			return err
		}
		if *c.At == "" {
			p.RecStartTime = nil
		} else {
			p.RecStartTime = c.At
		}
	}
	if c.Duration != nil {
		if *c.Duration <= 0 {
			return fmt.Errorf("duration must be a positive number of minutes")
		}
		p.RecDurationMinutes = c.Duration
	}
	if c.From != nil {
		if err := validation.Date(*c.From); err != nil {
			return err
		}
		p.RecPatternStartDate = *c.From
	}
	if c.Until != nil {
		if err := validation.OptionalDate(*c.Until); err != nil {
			return err
		}
		if *c.Until == "" {
			p.RecEndsOnDate = nil
		} else {
			p.RecEndsOnDate = c.Until
		}
	}
	if c.Active != nil {
		p.IsActive = *c.Active
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

	updated, err := ctx.Client.UpdateHabitTemplate(bg, c.ID, p)
	if err != nil {
		return err
	}
	fmt.Printf("Updated habit %d: %s\n      %s\n", updated.ID, updated.Title, recurrence.Describe(updated))
	return nil
}

type ShowCmd struct {
	ID int64 `arg:"" help:"Habit template id."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAuth(); err != nil {
		return err
	}
	t, err := ctx.Client.GetHabitTemplate(context.Background(), c.ID)
	if err != nil {
		return err
	}
	fmt.Printf("%s\n", t.Title)
	if t.Description != "" {
		fmt.Printf("  %s\n", t.Description)
	}
	fmt.Printf("  pattern: %s\n", recurrence.Describe(t))
	fmt.Printf("  active:  %v\n", t.IsActive)
	fmt.Printf("  points:  %d, energy: %d\n", t.PointsValue, t.EnergyValue)

	fmt.Println("  next occurrences:")
	for _, day := range recurrence.Preview(t, time.Now(), 5) {
		fmt.Printf("    %s\n", day.Format("Mon Jan 02 15:04"))
	}
	return nil
}

type ExtendCmd struct {
	ID int64 `arg:"" help:"Habit template id."`
}

func (c *ExtendCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAuth(); err != nil {
		return err
	}
	msg, err := ctx.Client.GenerateOccurrences(context.Background(), c.ID)
	if err != nil {
		return err
	}
	fmt.Println(msg)
	return nil
}

type RmCmd struct {
	ID int64 `arg:"" help:"Habit template id."`
}

func (c *RmCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAuth(); err != nil {
		return err
	}
	if err := ctx.Client.DeleteHabitTemplate(context.Background(), c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted habit %d and all of its occurrences\n", c.ID)
	return nil
}
