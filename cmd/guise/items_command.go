package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"guise/internal/scene"
)

func newItemsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "items",
		Short: "List scene items",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withScene(cmd, func(cctx context.Context, ses *session) error {
				items, err := ses.scene.Items(cctx)
				if err != nil {
					return fmt.Errorf("list items: %w", err)
				}
				if jsonOutput {
					return writeJSON(cmd, items)
				}

				selected, err := ses.scene.Selection(cctx)
				if err != nil {
					return fmt.Errorf("read selection: %w", err)
				}
				selectedSet := make(map[string]struct{}, len(selected))
				for _, id := range selected {
					selectedSet[id] = struct{}{}
				}

				rows := make([][]string, 0, len(items))
				for _, item := range items {
					mark := ""
					if _, ok := selectedSet[item.ID]; ok {
						mark = "*"
					}
					size := ""
					if item.HasImage() {
						size = fmt.Sprintf("%gx%g", item.VisualWidth(), item.VisualHeight())
					}
					rows = append(rows, []string{
						mark, item.ID, item.Name, string(item.Layer), size, item.ImageURL,
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(cmd.OutOrStdout(),
					[]string{"", "ID", "NAME", "LAYER", "SIZE", "IMAGE"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
				))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")

	cmd.AddCommand(newItemsAddCommand(ctx))
	cmd.AddCommand(newItemsRemoveCommand(ctx))
	return cmd
}

func newItemsAddCommand(ctx *commandContext) *cobra.Command {
	var (
		name   string
		url    string
		width  float64
		height float64
		layer  string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a scene item",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsedLayer, ok := scene.ParseLayer(layer)
			if !ok {
				return fmt.Errorf("unknown layer %q (expected one of %s)", layer, layerNames())
			}
			if url != "" && (width <= 0 || height <= 0) {
				return fmt.Errorf("items with an image need positive --width and --height")
			}
			return ctx.withScene(cmd, func(cctx context.Context, ses *session) error {
				item, err := ses.scene.CreateItem(cctx, scene.Item{
					Name:        name,
					Layer:       parsedLayer,
					CreatedBy:   ctx.playerID(),
					ImageURL:    url,
					ImageWidth:  width,
					ImageHeight: height,
				})
				if err != nil {
					return fmt.Errorf("create item: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created item %s\n", item.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&url, "url", "", "Image url")
	cmd.Flags().Float64Var(&width, "width", 0, "Native image width in pixels")
	cmd.Flags().Float64Var(&height, "height", 0, "Native image height in pixels")
	cmd.Flags().StringVar(&layer, "layer", string(scene.LayerCharacter), "Scene layer")
	return cmd
}

func newItemsRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <item-id>",
		Short: "Delete a scene item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withScene(cmd, func(cctx context.Context, ses *session) error {
				deleted, err := ses.scene.DeleteItem(cctx, args[0])
				if err != nil {
					return fmt.Errorf("delete item: %w", err)
				}
				if !deleted {
					return fmt.Errorf("item %s: %w", args[0], scene.ErrItemNotFound)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted item %s\n", args[0])
				return nil
			})
		},
	}
}

func layerNames() string {
	layers := scene.AllLayers()
	names := make([]string, len(layers))
	for i, layer := range layers {
		names[i] = string(layer)
	}
	return strings.Join(names, ", ")
}
