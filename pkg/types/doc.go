// Package types defines the shared value types of the mailsense pipeline:
// text chunks, retrieval results, theme clusters, and the result shapes of
// the question-answering and classification operations.
//
// These types are deliberately plain data. Behavior lives in the internal
// packages that produce and consume them.
package types
