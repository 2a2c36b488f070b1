// Package retriever turns a similarity search into prompt-ready context.
//
// The top-k chunk texts are joined nearest-first with single spaces into
// one string for grounding a generation call. Near-duplicate chunks are
// not deduplicated; with overlapping chunking the duplication is bounded
// and the simplicity is worth it.
package retriever

import (
	"context"
	"strings"

	"mailsense/internal/vectorstore"
	"mailsense/pkg/types"
)

// Retriever assembles grounded context from a vector index
type Retriever struct{}

// New creates a new Retriever instance
func New() *Retriever {
	return &Retriever{}
}

// Retrieve returns the topK nearest chunks for the query along with their
// texts joined into a single context string, nearest first.
func (r *Retriever) Retrieve(ctx context.Context, ix *vectorstore.Index, query string, topK int) (string, []types.ScoredChunk, error) {
	results, err := ix.Search(ctx, query, topK)
	if err != nil {
		return "", nil, err
	}

	texts := make([]string, len(results))
	for i, sc := range results {
		texts[i] = sc.Chunk.Text
	}

	return strings.Join(texts, " "), results, nil
}
