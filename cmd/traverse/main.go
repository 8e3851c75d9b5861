// The traverse command runs graph traversal algorithms over edge-list files,
// optionally recording per-round statistics and serving live progress.
package main

func main() {
	Execute()
}
