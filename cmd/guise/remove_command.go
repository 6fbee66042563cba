package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <record-id>",
		Short: "Remove a variant from the selected items",
		Long: `Remove a variant record from every selected item's list.

The record whose image an item is currently showing cannot be removed;
switch to another variant first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withScene(cmd, func(cctx context.Context, ses *session) error {
				return ctx.newPanel(cmd, ses, nil).Remove(cctx, args[0])
			})
		},
	}
}
