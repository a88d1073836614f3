package auth

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/iterpolaris/polaris-cli/internal/cli"
	"github.com/iterpolaris/polaris-cli/internal/keyring"
)

type LoginCmd struct {
	Username string `help:"Username. Prompted when omitted."`
	Password string `help:"Password. Prompted when omitted; prefer the prompt over shell history."`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	username, password := c.Username, c.Password
	var fields []huh.Field
	if username == "" {
		fields = append(fields, huh.NewInput().Title("Username").Value(&username))
	}
	if password == "" {
		fields = append(fields, huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&password))
	}
	if len(fields) > 0 {
		if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
			return err
		}
	}

	token, err := ctx.Client.Login(context.Background(), username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if err := keyring.SetToken(token); err != nil {
		return fmt.Errorf("login succeeded but storing the token failed: %w", err)
	}

	if err := ctx.Session.Hydrate(context.Background(), token); err != nil {
		return err
	}
	snap := ctx.Session.Current()
	fmt.Printf("Signed in as %s (lvl %d, %d pts)\n",
		snap.User.Username, snap.User.Level, snap.User.TotalPoints)
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteToken(); err != nil && err != keyring.ErrNotFound {
		return err
	}
	ctx.Session.SetUnauthenticated()
	fmt.Println("Signed out")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAuth(); err != nil {
		return err
	}
	if err := ctx.Session.Refresh(context.Background()); err != nil {
		return err
	}
	snap := ctx.Session.Current()
	fmt.Printf("%s <%s>\n", snap.User.Username, snap.User.Email)
	fmt.Printf("  level:  %d\n", snap.User.Level)
	fmt.Printf("  points: %d\n", snap.User.TotalPoints)
	fmt.Printf("  streak: %d\n", snap.User.Streak)
	fmt.Printf("  energy: %d\n", snap.Energy.Balance)
	return nil
}
