package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/setanarut/bvh"
	"github.com/setanarut/bvh/internal/sim"
	"github.com/setanarut/bvh/internal/store"
)

var (
	flagRecord   string
	flagValidate bool
)

var runCmd = &cobra.Command{
	Use:   "run <scene.yaml>",
	Short: "Simulate a scene and print tree statistics",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().IntVar(&flagTicks, "ticks", 0, "Number of ticks (0 = the scene's)")
	runCmd.Flags().StringVar(&flagRecord, "record", "", "SQLite database to record per-tick statistics in")
	runCmd.Flags().BoolVar(&flagValidate, "validate", false, "Check the tree's invariants after every tick")
}

func runRun(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	world, err := loadWorld(args[0], logger)
	if err != nil {
		return err
	}
	scene := world.Scene()

	var (
		rec   *store.Recorder
		runID string
	)
	if flagRecord != "" {
		rec, err = store.Open(flagRecord)
		if err != nil {
			return err
		}
		defer rec.Close()
		if runID, err = rec.BeginRun(scene.Name); err != nil {
			return err
		}
	}

	total := 0
	err = world.Run(cmd.Context(), scene.Ticks, func(res sim.TickResult) error {
		total += res.Reinserted
		if flagValidate {
			if err := world.Tree().Validate(); err != nil {
				return fmt.Errorf("tick %d: %w", res.Tick, err)
			}
		}
		if rec != nil {
			return rec.RecordTick(runID, res)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("run finished", zap.String("scene", scene.Name), zap.Int("ticks", world.Tick()), zap.Int("reinserted", total))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d bodies, %d ticks, %d reinsertions\n", scene.Name, len(world.Bodies()), world.Tick(), total)
	fmt.Fprintln(out, bvh.DebugInfo(world.Tree()))
	if runID != "" {
		fmt.Fprintf(out, "recorded as %s\n", runID)
	}
	return nil
}
