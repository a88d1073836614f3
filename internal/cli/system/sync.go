package system

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/iterpolaris/polaris-cli/internal/cli"
	"github.com/iterpolaris/polaris-cli/internal/constants"
	"github.com/iterpolaris/polaris-cli/internal/intentlog"
)

type SyncRetryCmd struct{}

func (c *SyncRetryCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAuth(); err != nil {
		return err
	}
	if ctx.Intents == nil {
		fmt.Println("No intent log available")
		return nil
	}

	release, err := intentlog.AcquireLock(filepath.Join(ctx.ConfigDir, constants.IntentLockfileName))
	if err != nil {
		return err
	}
	defer release()

	pending, err := ctx.Intents.Pending()
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		fmt.Println("No pending conversions")
		return nil
	}

	resolved, err := ctx.Intents.Drain(context.Background(), ctx.Client)
	if err != nil {
		return err
	}
	fmt.Printf("Resolved %d of %d pending conversions\n", resolved, len(pending))
	if resolved < len(pending) {
		fmt.Println("Remaining intents will be retried next time; see the log for details")
	}
	return nil
}

type SyncStatusCmd struct{}

func (c *SyncStatusCmd) Run(ctx *cli.Context) error {
	if ctx.Intents == nil {
		fmt.Println("No intent log available")
		return nil
	}
	pending, err := ctx.Intents.Pending()
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		fmt.Println("No pending conversions")
		return nil
	}
	for _, in := range pending {
		fmt.Printf("%s  delete %s %d  attempts=%d  last: %s\n",
			in.CreatedAt.Format("2006-01-02 15:04"), in.Resource, in.ResourceID, in.Attempts, in.LastError)
	}
	return nil
}
