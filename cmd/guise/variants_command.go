package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"guise/internal/panel"
)

func newVariantsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "variants [item-id]",
		Short: "Show the variant panel for the selection or one item",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withScene(cmd, func(cctx context.Context, ses *session) error {
				if len(args) == 1 {
					// Narrow the selection to the named item for this view.
					if err := ses.scene.SetSelection(cctx, args); err != nil {
						return fmt.Errorf("focus item: %w", err)
					}
				}

				var renderer panel.Renderer
				if jsonOutput {
					renderer = nopRenderer{}
				}
				ctrl := ctx.newPanel(cmd, ses, renderer)
				if err := ctrl.Refresh(cctx); err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, ctrl.Entries())
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the variant list as JSON")
	return cmd
}
