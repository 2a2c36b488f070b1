// Package vectorstore persists chunk embeddings per knowledge base and
// serves nearest-neighbor similarity search over them.
//
// Each knowledge-base id maps to one sqlite file under the manager's root
// directory. An index is either absent or fully built: rebuilds go to a
// uniquely named staging file that replaces the addressable one with a
// rename, so a crash mid-build leaves the previous complete index intact
// and concurrent readers never observe partial state.
//
// Loading an existing index reconstructs its chunks from the store rather
// than re-chunking the caller's text; persistence is what amortizes the
// embedding cost across repeated questions against the same document.
// Unreadable or inconsistent persisted state surfaces as ErrCorrupted,
// never as a silent cold start.
//
// Concurrent BuildOrLoad calls for the same id are collapsed into a single
// build via singleflight; distinct ids do not contend.
package vectorstore
