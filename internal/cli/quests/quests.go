package quests

import (
	"context"
	"fmt"

	"github.com/iterpolaris/polaris-cli/internal/cli"
)

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAuth(); err != nil {
		return err
	}
	quests, err := ctx.Client.ListQuests(context.Background())
	if err != nil {
		return err
	}
	if len(quests) == 0 {
		fmt.Println("No quests")
		return nil
	}
	for _, q := range quests {
		def := ""
		if q.IsDefault {
			def = " (default)"
		}
		fmt.Printf("%4d  %s  %s%s\n", q.ID, q.Color, q.Name, def)
	}
	return nil
}

type TagsCmd struct{}

func (c *TagsCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAuth(); err != nil {
		return err
	}
	tags, err := ctx.Client.ListTags(context.Background())
	if err != nil {
		return err
	}
	if len(tags) == 0 {
		fmt.Println("No tags")
		return nil
	}
	for _, t := range tags {
		fmt.Printf("%4d  %s\n", t.ID, t.Name)
	}
	return nil
}
