// Package embedder maps text to fixed-dimension vectors for similarity
// search and clustering.
//
// The only production provider is the hashed bag-of-words model: tokens
// are hashed into a 256-bucket count vector which is then normalized to
// unit length. It runs locally, needs no credentials, and is fully
// deterministic, which is what makes index persistence and reuse safe:
// re-embedding the same chunk always reproduces the stored vector.
//
// Embeddings are cached in-memory by SHA-256 content hash with LRU
// eviction, so re-indexing unchanged text is cheap.
//
// Vectors carry their model id. Vectors produced under different model
// ids must never be compared; the vector store enforces this when loading
// a persisted index.
package embedder
