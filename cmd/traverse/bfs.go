package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	bfsSource  int
	bfsWorkers int
	bfsRounds  int
)

var bfsCmd = &cobra.Command{
	Use:   "bfs",
	Short: "Run breadth-first search from a source node.",
	Long: "`bfs` runs breadth-first search from the source node and reports " +
		"the number of reachable nodes. With more than one worker, the " +
		"frontier is expanded in parallel.",
	Run: func(cmd *cobra.Command, args []string) {
		traverser, recorder := setupTraverser("BFS")

		var visited int
		for round := 0; round < bfsRounds; round++ {
			if bfsWorkers > 1 {
				visited = traverser.ParallelBFS(bfsSource, bfsWorkers)
			} else {
				visited = len(traverser.BFS(bfsSource))
			}
		}

		if recorder != nil {
			recorder.Flush()
		}

		fmt.Printf("%d nodes reachable from node %d\n", visited, bfsSource)
	},
}

func init() {
	bfsCmd.Flags().IntVarP(&bfsSource, "source", "s", 0,
		"node to start the search from")
	bfsCmd.Flags().IntVarP(&bfsWorkers, "workers", "w", 1,
		"number of frontier workers, >1 enables parallel expansion")
	bfsCmd.Flags().IntVar(&bfsRounds, "rounds", 1,
		"number of times to repeat the search")

	rootCmd.AddCommand(bfsCmd)
}
