// Package iter implements the iterator algebra of spec §4.4: primitive
// and compound iterators that produce streams of message ("zgram") or
// word positions, composable via AND/OR/NOT/NEAR, with lazy evaluation
// and small-batch, pull-driven streaming (no internal threads, no
// blocking I/O - cancellation is simply "the caller stops calling
// GetMore").
//
// Every iterator operates on "relative" coordinates (ZgramRel, WordRel)
// that equal the underlying offset in forward mode and the offset's
// bit-complement (relative to a fixed ceiling) in reverse mode, so a
// single implementation of each primitive serves both directions; only
// the leaves that touch the underlying index arrays convert between rel
// and off.
package iter
