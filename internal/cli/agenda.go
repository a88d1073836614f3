package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/iterpolaris/polaris-cli/internal/api"
	"github.com/iterpolaris/polaris-cli/internal/constants"
	"github.com/iterpolaris/polaris-cli/internal/projection"
)

type AgendaCmd struct {
	Days int    `help:"Number of days to show." default:"7"`
	From string `help:"Start date (YYYY-MM-DD), defaults to today."`
}

func (c *AgendaCmd) Run(ctx *Context) error {
	if err := ctx.RequireAuth(); err != nil {
		return err
	}

	from := time.Now()
	if c.From != "" {
		parsed, err := ParseDatetime(c.From)
		if err != nil {
			return err
		}
		from = parsed
	}
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 0, c.Days)

	res := projection.Build(context.Background(), ctx.Client, api.ListFilter{From: from, To: to})
	if res.MissionErr != nil {
		fmt.Printf("⚠ missions unavailable: %v\n", res.MissionErr)
	}
	if res.OccurrenceErr != nil {
		fmt.Printf("⚠ habit occurrences unavailable: %v\n", res.OccurrenceErr)
	}
	if len(res.Items) == 0 {
		fmt.Println("Nothing scheduled")
		return nil
	}

	projection.SortByStart(res.Items)
	lastDay := ""
	for _, it := range res.Items {
		day := it.Start().Format(constants.DateFormat)
		if day != lastDay {
			fmt.Printf("\n%s\n", it.Start().Format("Monday, Jan 02"))
			lastDay = day
		}
		fmt.Printf("  %s\n", FormatItem(it))
	}
	return nil
}
