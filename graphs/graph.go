// Package graphs provides the directed graph structure that the traversal
// algorithms operate on. Nodes are dense integer ids, which is what makes
// the visiting package's counter-array trackers applicable.
package graphs

import "log"

// A Graph is a directed graph over nodes 0 through NumNodes()-1, stored as
// per-node out-edge lists.
type Graph struct {
	out [][]int
}

// NewGraph creates a graph with numNodes nodes and no edges.
func NewGraph(numNodes int) *Graph {
	if numNodes < 0 {
		log.Panic("graph size must not be negative")
	}

	return &Graph{out: make([][]int, numNodes)}
}

// NumNodes returns the number of nodes in the graph.
func (g *Graph) NumNodes() int {
	return len(g.out)
}

// NumEdges returns the number of directed edges in the graph.
func (g *Graph) NumEdges() int {
	n := 0
	for _, edges := range g.out {
		n += len(edges)
	}

	return n
}

// AddEdge adds a directed edge from src to dst. Both must be existing nodes.
func (g *Graph) AddEdge(src, dst int) {
	g.nodeMustExist(src)
	g.nodeMustExist(dst)

	g.out[src] = append(g.out[src], dst)
}

// AddBiEdge adds edges in both directions between a and b. Algorithms with
// undirected semantics, such as connected-component labeling, expect graphs
// built this way.
func (g *Graph) AddBiEdge(a, b int) {
	g.AddEdge(a, b)
	g.AddEdge(b, a)
}

// Outgoing returns the out-neighbors of node. The returned slice is owned by
// the graph and must not be modified.
func (g *Graph) Outgoing(node int) []int {
	g.nodeMustExist(node)

	return g.out[node]
}

func (g *Graph) nodeMustExist(node int) {
	if node < 0 || node >= len(g.out) {
		log.Panicf("node %d out of range [0, %d)", node, len(g.out))
	}
}
