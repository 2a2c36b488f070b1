// Package rag orchestrates retrieval-augmented question answering.
//
// One invocation walks a fixed sequence: ensure the "qa" index exists for
// the supplied text (building it on first sight, reusing it afterwards),
// retrieve the top-k nearest chunks, generate a grounded answer from them,
// and optionally run a second generation pass that rewrites the answer for
// fluency. The correction pass is best-effort: if it fails the raw answer
// ships. Only index, retrieval and primary-generation failures terminate a
// request.
package rag
