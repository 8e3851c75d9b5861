// Package traversing implements graph traversal algorithms on top of the
// visiting package's generation-marked trackers.
//
// A Traverser owns one tracker for the lifetime of the graph and reuses it
// across traversal rounds. Each BFS or DFS call is one round: the tracker is
// cleared in O(1) at the start, so running many traversals over a large
// graph never pays a per-round O(V) reset.
//
// Traversers are hookable. Observers such as the recording collector and the
// monitoring progress bars attach through the hooking package and are
// notified at round boundaries and, optionally, at every node visit.
package traversing
