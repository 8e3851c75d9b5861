package graphs

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// LoadEdgeList reads a graph from a whitespace-separated edge-list text
// stream. Each non-empty line holds "src dst"; lines starting with '#' are
// comments. The graph is sized to the largest node id seen.
func LoadEdgeList(r io.Reader) (*Graph, error) {
	type edge struct {
		src, dst int
	}

	var edges []edge
	maxNode := -1

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf(
				"line %d: expected 2 fields, got %d", lineNum, len(fields))
		}

		src, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad source node: %w", lineNum, err)
		}

		dst, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad destination node: %w",
				lineNum, err)
		}

		if src < 0 || dst < 0 {
			return nil, fmt.Errorf("line %d: node ids must not be negative",
				lineNum)
		}

		edges = append(edges, edge{src, dst})
		if src > maxNode {
			maxNode = src
		}
		if dst > maxNode {
			maxNode = dst
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	g := NewGraph(maxNode + 1)
	for _, e := range edges {
		g.AddEdge(e.src, e.dst)
	}

	return g, nil
}
