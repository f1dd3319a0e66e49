package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/grindboard/practice-service/internal/models"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print global practice statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		app, err := newApplication(ctx, os.Stderr)
		if err != nil {
			return err
		}
		defer app.Close(ctx)

		stats, err := app.services.Stats().Global(ctx)
		if err != nil {
			return fmt.Errorf("failed to compute stats: %w", err)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		}
		return printStats(cmd.OutOrStdout(), stats)
	},
}

func printStats(out io.Writer, stats *models.GlobalStats) error {
	fmt.Fprintf(out, "Sessions: %d  Solved: %d  Unsolved: %d  Partial: %d  Avg time: %.1f min\n\n",
		stats.TotalSessions, stats.Solved, stats.Unsolved, stats.Partial, stats.AvgTime)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TOPIC\tSESSIONS\tSOLVED\tSOLVE RATE\tAVG TIME")
	for _, t := range stats.ByTopic {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d%%\t%.1f\n", t.Topic, t.Total, t.Solved, t.SolveRate, t.AvgTime)
	}
	return w.Flush()
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().Bool("json", false, "print the raw JSON document")
}
