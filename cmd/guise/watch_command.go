package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"guise/internal/scene"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow scene changes and re-render the panel",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withScene(cmd, func(cctx context.Context, ses *session) error {
				cctx, stop := signal.NotifyContext(cctx, syscall.SIGINT, syscall.SIGTERM)
				defer stop()

				if interval == 0 {
					interval = time.Duration(ses.cfg.Watch.PollIntervalMS) * time.Millisecond
				}

				ctrl := ctx.newPanel(cmd, ses, nil)
				if err := ctrl.Refresh(cctx); err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				err := ses.scene.Watch(cctx, interval, func(changed []scene.Item) {
					for _, item := range changed {
						fmt.Fprintf(out, "changed: %s (%s)\n", item.Name, item.ID)
					}
					if err := ctrl.Refresh(cctx); err != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "refresh: %v\n", err)
					}
				})
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			})
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", 0, "Poll interval (configured default when unset)")
	return cmd
}
