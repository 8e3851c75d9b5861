package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var componentsCmd = &cobra.Command{
	Use:   "components",
	Short: "Label connected components.",
	Long: "`components` labels every node with a component id and reports " +
		"the number of components. Undirected semantics require the " +
		"edge-list to contain both directions of each edge.",
	Run: func(cmd *cobra.Command, args []string) {
		traverser, recorder := setupTraverser("Components")

		labels := traverser.ConnectedComponents()

		numComponents := 0
		for _, label := range labels {
			if label+1 > numComponents {
				numComponents = label + 1
			}
		}

		if recorder != nil {
			recorder.Flush()
		}

		fmt.Printf("%d components over %d nodes\n",
			numComponents, len(labels))
	},
}

func init() {
	rootCmd.AddCommand(componentsCmd)
}
