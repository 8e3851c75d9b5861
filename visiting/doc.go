// Package visiting provides a visited-marker structure for graph traversal
// algorithms.
//
// A Tracker answers "has node i been seen in the current round" in O(1) and
// can invalidate all marks for a new round in amortized O(1). It does so by
// pairing a dense counter array with a single generation counter: a node is
// visited when its counter equals the current generation, so bumping the
// generation un-marks every node at once. Only when the generation counter
// saturates does the Tracker fall back to re-zeroing the whole array.
//
// The counter width is a type parameter. Narrow widths save memory but
// saturate after fewer rounds; a Tracker[uint8] re-zeroes every 254 rounds
// while a Tracker[uint32] practically never does.
package visiting
