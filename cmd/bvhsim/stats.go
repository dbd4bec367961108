package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/setanarut/bvh/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats <db> [run-id]",
	Short: "List recorded runs, or summarize one",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	rec, err := store.Open(args[0])
	if err != nil {
		return err
	}
	defer rec.Close()

	out := cmd.OutOrStdout()
	if len(args) == 2 {
		s, err := rec.Summary(args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Run:         %s\n", s.ID)
		fmt.Fprintf(out, "Scene:       %s\n", s.Scene)
		fmt.Fprintf(out, "Started:     %s\n", s.StartedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "Ticks:       %d\n", s.Ticks)
		fmt.Fprintf(out, "Reinserted:  %d\n", s.TotalReinserted)
		fmt.Fprintf(out, "Pairs:       max %d, avg %.2f\n", s.MaxPairs, s.AvgPairs)
		fmt.Fprintf(out, "Height:      max %d\n", s.MaxHeight)
		fmt.Fprintf(out, "Pool in use: max %d\n", s.MaxPoolInUse)
		return nil
	}

	runs, err := rec.Runs()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded.")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tSTARTED")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.ID, r.Scene, r.StartedAt.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}
