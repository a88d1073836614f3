package system

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iterpolaris/polaris-cli/internal/cli"
	"github.com/iterpolaris/polaris-cli/internal/convert"
	"github.com/iterpolaris/polaris-cli/internal/engine"
	"github.com/iterpolaris/polaris-cli/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAuth(); err != nil {
		return err
	}

	wf := ctx.Workflow
	if wf == nil {
		wf = convert.New(ctx.Client, ctx.Intents)
	}
	eng := engine.New(ctx.Client, ctx.Session, wf)

	p := tea.NewProgram(tui.NewModel(ctx.Client, ctx.Session, eng, wf, ctx.Intents), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
	return nil
}
