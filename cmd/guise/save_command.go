package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newSaveCommand(ctx *commandContext) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save each selected item's current appearance as a variant",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withScene(cmd, func(cctx context.Context, ses *session) error {
				return ctx.newPanel(cmd, ses, nil).Save(cctx, name)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Name for the saved variant (item name when empty)")
	return cmd
}
