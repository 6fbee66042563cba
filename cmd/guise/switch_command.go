package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newSwitchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "switch <record-id>",
		Short: "Switch the selected items to a variant, preserving footprints",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withScene(cmd, func(cctx context.Context, ses *session) error {
				return ctx.newPanel(cmd, ses, nil).Switch(cctx, args[0])
			})
		},
	}
}
