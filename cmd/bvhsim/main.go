// bvhsim steps a scene of moving bodies through the BVH broad phase.
//
// Usage:
//
//	bvhsim run <scene.yaml>     - Simulate and print tree statistics
//	bvhsim draw <scene.yaml>    - Simulate and draw the tree top-down in the terminal
//	bvhsim serve <scene.yaml>   - Simulate forever and stream frames over a websocket
//	bvhsim stats <db> [run-id]  - Show recorded runs
//
// Global flags:
//
//	--verbose        - Development logging at debug level
//	--config <path>  - Tree config overriding the scene's tree section
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/setanarut/bvh"
	"github.com/setanarut/bvh/internal/sim"
)

var (
	flagVerbose bool
	flagConfig  string
	flagTicks   int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bvhsim",
	Short: "Drive a dynamic AABB tree with a simulated scene",
	Long: `bvhsim moves the bodies of a YAML scene around a bounded box and runs the
broad phase every tick: refit, pair collection and optional debug drawing.

Examples:
  bvhsim run scenes/rain.yaml --ticks 1000 --record runs.db
  bvhsim draw scenes/rain.yaml --width 100 --height 40
  bvhsim serve scenes/rain.yaml --addr :8080
  bvhsim stats runs.db`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Tree config file overriding the scene's tree section")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(drawCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
}

func newLogger() (*zap.Logger, error) {
	if flagVerbose {
		return zap.NewDevelopment()
	}
	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zap.WarnLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}
	return config.Build()
}

// loadWorld reads the scene, applies --config and --ticks and builds the world.
func loadWorld(path string, logger *zap.Logger, opts ...bvh.Option) (*sim.World, error) {
	scene, err := sim.LoadScene(path)
	if err != nil {
		return nil, err
	}
	if flagConfig != "" {
		cfg, err := bvh.LoadConfig(flagConfig)
		if err != nil {
			return nil, err
		}
		scene.Tree = cfg
	}
	if flagTicks > 0 {
		scene.Ticks = flagTicks
	}
	return sim.NewWorld(scene, logger, opts...)
}
