// Package chunker splits raw text into overlapping fixed-size fragments
// for embedding and retrieval.
//
// Whitespace runs are collapsed to single spaces before chunking, so chunk
// boundaries are stable regardless of the original formatting. For inputs
// shorter than the requested chunk size the effective size shrinks to
// max(50, len/3) with overlap max(10, size/5); without this a short email
// would produce a single chunk and starve clustering and retrieval of
// candidates.
//
// Splitting is pure: the same text with the same parameters always yields
// the same chunk sequence, which is what makes a persisted index
// addressable by content and position alone.
package chunker
