package traversing

import (
	"log"

	"github.com/sarchlab/traverse/graphs"
	"github.com/sarchlab/traverse/visiting"
)

// A Builder can build traversers. T selects the visited tracker's counter
// width: narrow widths save memory on huge graphs at the cost of a full
// tracker re-zero every few hundred rounds.
type Builder[T visiting.Unsigned] struct {
	graph *graphs.Graph
}

// MakeBuilder creates a default builder.
func MakeBuilder[T visiting.Unsigned]() Builder[T] {
	return Builder[T]{}
}

// WithGraph sets the graph to traverse.
func (b Builder[T]) WithGraph(g *graphs.Graph) Builder[T] {
	b.graph = g
	return b
}

// Build builds a traverser with a fresh tracker sized to the graph.
func (b Builder[T]) Build(name string) *Traverser[T] {
	if name == "" {
		log.Panic("traverser name must not be empty")
	}

	if b.graph == nil {
		log.Panic("traverser requires a graph")
	}

	return &Traverser[T]{
		name:    name,
		graph:   b.graph,
		tracker: visiting.NewTracker[T](b.graph.NumNodes()),
	}
}
