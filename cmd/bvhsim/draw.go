package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/setanarut/bvh"
	"github.com/setanarut/bvh/render"
)

var (
	flagWidth  int
	flagHeight int
	flagPlain  bool
)

var drawCmd = &cobra.Command{
	Use:   "draw <scene.yaml>",
	Short: "Simulate a scene and draw the final tree top-down",
	Long: `Steps the scene and draws the tree's boxes projected onto the X/Z plane.
Overlapping leaves are red, other leaves green, branches fade from white with
depth, and pairs are joined by blue lines.`,
	Args: cobra.ExactArgs(1),
	RunE: runDraw,
}

func init() {
	drawCmd.Flags().IntVar(&flagTicks, "ticks", 0, "Number of ticks (0 = the scene's)")
	drawCmd.Flags().IntVar(&flagWidth, "width", 80, "Canvas width in characters")
	drawCmd.Flags().IntVar(&flagHeight, "height", 40, "Canvas height in characters")
	drawCmd.Flags().BoolVar(&flagPlain, "plain", false, "No colors")
}

func runDraw(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	world, err := loadWorld(args[0], logger)
	if err != nil {
		return err
	}
	if err := world.Run(cmd.Context(), world.Scene().Ticks, nil); err != nil {
		return err
	}

	// only the last tick is shown: boxes first, pair lines on top
	canvas := render.NewCanvas(flagWidth, flagHeight, world.Scene().Bounds.AABB())
	tree := world.Tree()
	tree.SetDrawer(canvas)
	tree.DebugDraw()
	tree.CollisionPairs()

	out := cmd.OutOrStdout()
	if flagPlain {
		fmt.Fprintln(out, canvas.Plain())
	} else {
		fmt.Fprintln(out, canvas.String())
	}
	fmt.Fprintln(out, bvh.DebugInfo(world.Tree()))
	return nil
}
