package traversing

import (
	"log"
	"sync"
)

// ParallelBFS visits all nodes reachable from source using numWorkers
// goroutines per frontier level and returns the number of nodes visited.
//
// Workers claim nodes through the tracker's racing entry points under the
// duplicate-tolerant discipline: when two workers race on the same neighbor,
// both may claim it and the node is expanded twice. Marks are idempotent, so
// the set of visited nodes is still exact; only the amount of work done per
// node is approximate. Per-node hooks are not invoked, as they would run
// concurrently; round hooks fire as usual from the calling goroutine.
func (t *Traverser[T]) ParallelBFS(source, numWorkers int) int {
	t.sourceMustBeInGraph(source)

	if numWorkers < 1 {
		log.Panic("parallel BFS requires at least one worker")
	}

	info := t.startRound("ParallelBFS", source)

	t.tracker.SetVisitedRacing(source)
	frontier := []int{source}

	for len(frontier) > 0 {
		if len(frontier) > info.FrontierPeak {
			info.FrontierPeak = len(frontier)
		}

		frontier = t.expandInParallel(frontier, numWorkers)
	}

	visited := 0
	for i := 0; i < t.graph.NumNodes(); i++ {
		if t.tracker.IsVisited(i) {
			visited++
		}
	}

	t.endRound(info, visited)

	return visited
}

// expandInParallel splits the frontier into per-worker chunks and collects
// the claimed neighbors into the next frontier.
func (t *Traverser[T]) expandInParallel(
	frontier []int,
	numWorkers int,
) []int {
	if numWorkers > len(frontier) {
		numWorkers = len(frontier)
	}

	nextByWorker := make([][]int, numWorkers)
	chunkSize := (len(frontier) + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		begin := w * chunkSize
		if begin > len(frontier) {
			begin = len(frontier)
		}
		end := begin + chunkSize
		if end > len(frontier) {
			end = len(frontier)
		}

		wg.Add(1)
		go func(worker int, chunk []int) {
			defer wg.Done()

			var next []int
			for _, node := range chunk {
				for _, neighbor := range t.graph.Outgoing(node) {
					if !t.tracker.SetAndGetVisitedRacing(neighbor) {
						next = append(next, neighbor)
					}
				}
			}

			nextByWorker[worker] = next
		}(w, frontier[begin:end])
	}
	wg.Wait()

	var next []int
	for _, chunk := range nextByWorker {
		next = append(next, chunk...)
	}

	return next
}
