package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"guise/internal/scene"
)

func newSelectCommand(ctx *commandContext) *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "select [item-ids...]",
		Short: "Set the current selection",
		RunE: func(cmd *cobra.Command, args []string) error {
			if clear && len(args) > 0 {
				return fmt.Errorf("--clear takes no item ids")
			}
			if !clear && len(args) == 0 {
				return fmt.Errorf("pass item ids to select, or --clear")
			}
			return ctx.withScene(cmd, func(cctx context.Context, ses *session) error {
				if clear {
					if err := ses.scene.SetSelection(cctx, nil); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), "Selection cleared")
					return nil
				}

				// Reject unknown ids up front rather than selecting ghosts.
				items, err := ses.scene.Items(cctx, args...)
				if err != nil {
					return fmt.Errorf("resolve items: %w", err)
				}
				known := make(map[string]struct{}, len(items))
				for _, item := range items {
					known[item.ID] = struct{}{}
				}
				for _, id := range args {
					if _, ok := known[id]; !ok {
						return fmt.Errorf("item %s: %w", id, scene.ErrItemNotFound)
					}
				}

				if err := ses.scene.SetSelection(cctx, args); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Selected %d item(s)\n", len(args))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&clear, "clear", false, "Clear the selection")
	return cmd
}
