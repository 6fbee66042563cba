package main

import (
	"context"

	"github.com/spf13/cobra"

	"guise/internal/variant"
	"guise/internal/variantstore"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var (
		name    string
		width   float64
		height  float64
		dpi     float64
		offsetX float64
		offsetY float64
	)

	cmd := &cobra.Command{
		Use:   "add <url>",
		Short: "Add an image variant to the selected items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withScene(cmd, func(cctx context.Context, ses *session) error {
				asset := variantstore.Asset{
					URL:    args[0],
					Width:  width,
					Height: height,
					Name:   name,
					DPI:    dpi,
				}
				if cmd.Flags().Changed("offset-x") || cmd.Flags().Changed("offset-y") {
					asset.Offset = &variant.Offset{X: offsetX, Y: offsetY}
				}
				return ctx.newPanel(cmd, ses, nil).Add(cctx, asset)
			})
		},
	}
	cmd.Flags().Float64Var(&width, "width", 0, "Native image width in pixels")
	cmd.Flags().Float64Var(&height, "height", 0, "Native image height in pixels")
	cmd.Flags().StringVar(&name, "name", "", "Display name (derived from the url when empty)")
	cmd.Flags().Float64Var(&dpi, "dpi", 0, "Grid scale stored with the variant")
	cmd.Flags().Float64Var(&offsetX, "offset-x", 0, "Grid offset x stored with the variant")
	cmd.Flags().Float64Var(&offsetY, "offset-y", 0, "Grid offset y stored with the variant")
	_ = cmd.MarkFlagRequired("width")
	_ = cmd.MarkFlagRequired("height")
	return cmd
}
