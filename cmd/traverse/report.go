package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sarchlab/traverse/recording"
)

var reportLimit int

var reportCmd = &cobra.Command{
	Use:   "report [database file]",
	Short: "Print recorded traversal rounds.",
	Long: "`report [database file]` prints the traversal rounds recorded " +
		"in a SQLite statistics database, most recent runs first.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 1 {
			fmt.Fprintln(os.Stderr, "Error: database file argument is required")
			os.Exit(1)
		}

		reader := recording.NewSQLiteReader(args[0])
		defer reader.Close()

		reader.MapTable(recording.RoundStatsTable, recording.RoundStats{})

		results, total, err := reader.Query(
			context.Background(),
			recording.RoundStatsTable,
			recording.QueryParams{
				OrderBy: "RunID DESC",
				Limit:   reportLimit,
			})
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("%d rounds recorded\n", total)
		for _, result := range results {
			round := result.(*recording.RoundStats)
			fmt.Printf("%s  %-20s %-10s source=%-6d visited=%-8d peak=%-8d %v\n",
				round.RunID,
				round.Traverser,
				round.Algorithm,
				round.Source,
				round.NodesVisited,
				round.FrontierPeak,
				time.Duration(round.DurationNS))
		}
	},
}

func init() {
	reportCmd.Flags().IntVar(&reportLimit, "limit", 20,
		"maximum number of rounds to print")

	rootCmd.AddCommand(reportCmd)
}
