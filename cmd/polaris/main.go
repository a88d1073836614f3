package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/iterpolaris/polaris-cli/internal/api"
	"github.com/iterpolaris/polaris-cli/internal/cli"
	"github.com/iterpolaris/polaris-cli/internal/cli/auth"
	"github.com/iterpolaris/polaris-cli/internal/cli/habits"
	"github.com/iterpolaris/polaris-cli/internal/cli/missions"
	"github.com/iterpolaris/polaris-cli/internal/cli/pool"
	"github.com/iterpolaris/polaris-cli/internal/cli/quests"
	"github.com/iterpolaris/polaris-cli/internal/cli/system"
	"github.com/iterpolaris/polaris-cli/internal/constants"
	"github.com/iterpolaris/polaris-cli/internal/convert"
	apperrors "github.com/iterpolaris/polaris-cli/internal/errors"
	"github.com/iterpolaris/polaris-cli/internal/intentlog"
	"github.com/iterpolaris/polaris-cli/internal/keyring"
	"github.com/iterpolaris/polaris-cli/internal/logger"
	"github.com/iterpolaris/polaris-cli/internal/session"
)

var CLI struct {
	Version kong.VersionFlag
	Debug   bool   `help:"Enable debug logging."`
	APIURL  string `help:"Backend base URL." name:"api-url" env:"POLARIS_API_URL"`

	Login  auth.LoginCmd  `cmd:"" help:"Sign in and store the API token."`
	Logout auth.LogoutCmd `cmd:"" help:"Remove the stored API token."`
	Whoami auth.WhoamiCmd `cmd:"" help:"Show the signed-in profile and totals."`
	Tui    system.TuiCmd  `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Agenda cli.AgendaCmd  `cmd:"" help:"Show the combined schedule."`
	Mission struct {
		List       missions.ListCmd       `cmd:"" help:"List scheduled missions." default:"1"`
		Add        missions.AddCmd        `cmd:"" help:"Add a scheduled mission."`
		Edit       missions.EditCmd       `cmd:"" help:"Edit a pending mission's fields."`
		Done       missions.DoneCmd       `cmd:"" help:"Mark a mission completed."`
		Skip       missions.SkipCmd       `cmd:"" help:"Mark a mission skipped."`
		Undo       missions.UndoCmd       `cmd:"" help:"Return a mission to pending."`
		MoveToPool missions.MoveToPoolCmd `cmd:"" name:"move-to-pool" help:"Move a mission back into the pool."`
		Rm         missions.RmCmd         `cmd:"" help:"Delete a mission."`
	} `cmd:"" help:"Manage scheduled missions."`
	Pool struct {
		List     pool.ListCmd     `cmd:"" help:"List pool missions." default:"1"`
		Add      pool.AddCmd      `cmd:"" help:"Add a pool mission."`
		Done     pool.DoneCmd     `cmd:"" help:"Mark a pool mission completed."`
		Focus    pool.FocusCmd    `cmd:"" help:"Change a pool mission's focus status."`
		Schedule pool.ScheduleCmd `cmd:"" help:"Convert a pool mission into a scheduled one."`
		Rm       pool.RmCmd       `cmd:"" help:"Delete a pool mission."`
	} `cmd:"" help:"Manage the mission pool."`
	Habit struct {
		List   habits.ListCmd   `cmd:"" help:"List habits." default:"1"`
		Add    habits.AddCmd    `cmd:"" help:"Add a recurring habit."`
		Edit   habits.EditCmd   `cmd:"" help:"Edit a habit's fields or pattern."`
		Show   habits.ShowCmd   `cmd:"" help:"Show a habit and its next occurrences."`
		Extend habits.ExtendCmd `cmd:"" help:"Generate further occurrences."`
		Rm     habits.RmCmd     `cmd:"" help:"Delete a habit and its occurrences."`
	} `cmd:"" help:"Manage recurring habits."`
	Quest struct {
		List quests.ListCmd `cmd:"" help:"List quests." default:"1"`
		Tags quests.TagsCmd `cmd:"" help:"List tags."`
	} `cmd:"" help:"Browse quests and tags."`
	Sync struct {
		Retry  system.SyncRetryCmd  `cmd:"" help:"Retry pending conversion cleanups."`
		Status system.SyncStatusCmd `cmd:"" help:"Show pending conversion cleanups."`
	} `cmd:"" help:"Inspect and repair interrupted conversions."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Gamified planner client: missions, habits and quests on a weekly calendar"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	configDir := defaultConfigDir()
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	baseURL := CLI.APIURL
	if baseURL == "" {
		baseURL = constants.DefaultAPIURL
	}

	token := os.Getenv(constants.EnvToken)
	if token == "" {
		stored, err := keyring.GetToken()
		if err == nil {
			token = stored
		} else if err != keyring.ErrNotFound {
			logger.Warn("keyring unavailable", "error", err)
		}
	}

	client := api.New(baseURL, token)
	sess := session.NewStore(client)

	intentsDSN := os.Getenv(constants.EnvIntentsDB)
	if intentsDSN == "" {
		intentsDSN = filepath.Join(configDir, "intents.db")
	}
	intents, err := intentlog.OpenDSN(intentsDSN)
	if err != nil {
		logger.Warn("intent log unavailable; failed conversions will not be retried", "error", err)
		intents = nil
	} else {
		defer intents.Close()
	}

	appCtx := &cli.Context{
		Client:    client,
		Session:   sess,
		Workflow:  convert.New(client, intents),
		Intents:   intents,
		ConfigDir: configDir,
		LoggedIn:  token != "",
	}

	// The TUI reads session state from the first frame, so hydrate before
	// handing over the terminal. Other commands fetch on demand.
	if token != "" && kctx.Selected() != nil && kctx.Selected().Name == "tui" {
		if err := sess.Hydrate(context.Background(), token); err != nil {
			logger.Warn("session hydrate failed", "error", err)
		}
	}

	if err := kctx.Run(appCtx); err != nil {
		if intents != nil {
			intents.Close()
		}
		apperrors.Fatal(err)
	}
}

func defaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + constants.AppName
	}
	return filepath.Join(home, ".config", constants.AppName)
}
