package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/traverse/graphs"
	"github.com/sarchlab/traverse/monitoring"
	"github.com/sarchlab/traverse/recording"
	"github.com/sarchlab/traverse/traversing"
)

var (
	graphPath    string
	recorderKind string
	outputName   string
	monitorOn    bool
	monitorPort  int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "traverse",
	Short: "Traverse runs graph traversal algorithms over edge-list files.",
	Long: `Traverse runs graph traversal algorithms over edge-list files. ` +
		`It can record per-round statistics into SQLite or ClickHouse and ` +
		`serve live traversal progress over HTTP.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	// Runs registered atexit handlers, flushing any buffered recordings.
	atexit.Exit(0)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&graphPath, "graph", "g", "",
		"path to the edge-list file to load")
	rootCmd.PersistentFlags().StringVar(&recorderKind, "recorder", "sqlite",
		"statistics backend: sqlite, clickhouse, or none")
	rootCmd.PersistentFlags().StringVarP(&outputName, "output", "o", "",
		"output database name for the sqlite recorder")
	rootCmd.PersistentFlags().BoolVar(&monitorOn, "monitor", false,
		"serve live traversal progress over HTTP")
	rootCmd.PersistentFlags().IntVar(&monitorPort, "monitor-port", 0,
		"port for the monitoring server, 0 picks a free port")
}

func loadGraph() *graphs.Graph {
	if graphPath == "" {
		fmt.Fprintln(os.Stderr, "Error: a graph file is required, see --graph")
		atexit.Exit(1)
	}

	f, err := os.Open(graphPath)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	g, err := graphs.LoadEdgeList(f)
	if err != nil {
		log.Fatalf("cannot load %s: %s", graphPath, err)
	}

	return g
}

func buildRecorder() recording.Recorder {
	switch recorderKind {
	case "sqlite":
		writer := recording.NewSQLiteWriter(outputName)
		writer.Init()
		return writer
	case "clickhouse":
		opts := recording.ClickHouseOptionsFromEnv()
		return recording.NewClickHouseRecorder(opts, 0)
	case "none":
		return nil
	default:
		log.Fatalf("unknown recorder backend %q", recorderKind)
		return nil
	}
}

// setupTraverser wires the recorder and monitor into a traverser built over
// the loaded graph.
func setupTraverser(name string) (
	*traversing.Traverser[uint32],
	recording.Recorder,
) {
	g := loadGraph()

	traverser := traversing.MakeBuilder[uint32]().
		WithGraph(g).
		Build(name)

	recorder := buildRecorder()
	if recorder != nil {
		collector := recording.NewCollector(recorder)
		traverser.AcceptHook(collector)
	}

	if monitorOn {
		monitor := monitoring.NewMonitor()
		if monitorPort > 0 {
			monitor.WithPortNumber(monitorPort)
		}
		monitor.RegisterTraverser(traverser)
		monitor.StartServer()

		hook := monitoring.NewTraversalProgressHook(monitor, g.NumNodes())
		traverser.AcceptHook(hook)
	}

	return traverser, recorder
}
