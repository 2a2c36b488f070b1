package vectorstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"mailsense/internal/chunker"
	"mailsense/internal/embedder"
	"mailsense/pkg/types"
)

var (
	// ErrCorrupted is returned when a persisted index exists but cannot be
	// read back. Deliberately distinct from the absent case so data loss is
	// never masked as a cold start.
	ErrCorrupted = errors.New("index corrupted or unreadable")

	// ErrModelMismatch is returned when a persisted index was built by a
	// different embedding model than the one in use
	ErrModelMismatch = errors.New("index built with different embedding model")
)

// Index is a fully built, immutable vector index for one knowledge base.
// Chunks and vectors are parallel slices in insertion order.
type Index struct {
	kbID    string
	model   string
	chunks  []types.Chunk
	vectors [][]float32
	emb     embedder.Embedder
}

// Len returns the number of indexed chunks
func (ix *Index) Len() int {
	return len(ix.chunks)
}

// Chunks returns the indexed chunks in insertion order
func (ix *Index) Chunks() []types.Chunk {
	return ix.chunks
}

// Vectors returns the chunk embeddings, parallel to Chunks
func (ix *Index) Vectors() [][]float32 {
	return ix.vectors
}

// Search embeds the query and returns the topK nearest chunks by
// Euclidean distance, nearest first. topK is clamped to [1, Len()]; ties
// are broken by lower chunk index.
func (ix *Index) Search(ctx context.Context, query string, topK int) ([]types.ScoredChunk, error) {
	if query == "" {
		return nil, types.ErrEmptyQuery
	}
	if ix.Len() == 0 {
		return nil, types.ErrZeroChunks
	}

	if topK < 1 {
		topK = 1
	}
	if topK > ix.Len() {
		topK = ix.Len()
	}

	q, err := ix.emb.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	scored := make([]types.ScoredChunk, ix.Len())
	for i, v := range ix.vectors {
		scored[i] = types.ScoredChunk{
			Chunk:    ix.chunks[i],
			Distance: euclideanDistance(q.Vector, v),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Distance != scored[j].Distance {
			return scored[i].Distance < scored[j].Distance
		}
		return scored[i].Chunk.Index < scored[j].Chunk.Index
	})

	return scored[:topK], nil
}

// Manager owns the persisted indexes under a root directory, one sqlite
// file per knowledge-base id.
type Manager struct {
	rootDir string
	emb     embedder.Embedder
	chunker *chunker.Chunker
	logger  *log.Logger
	group   singleflight.Group
}

// NewManager creates a Manager rooted at rootDir, creating it if needed
func NewManager(rootDir string, emb embedder.Embedder, logger *log.Logger) (*Manager, error) {
	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		return nil, fmt.Errorf("create index root: %w", err)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		rootDir: rootDir,
		emb:     emb,
		chunker: chunker.New(),
		logger:  logger,
	}, nil
}

// Exists reports whether a persisted index is addressable for kbID
func (m *Manager) Exists(kbID string) bool {
	_, err := os.Stat(m.dbPath(kbID))
	return err == nil
}

type buildResult struct {
	index  *Index
	chunks []types.Chunk
}

// BuildOrLoad returns the index for kbID together with its chunks.
//
// When a persisted index exists and force is false it is loaded verbatim:
// the chunks come from the store, not from re-chunking text, so a stored
// index built under an older chunking configuration is returned as-is.
// Otherwise the text is chunked and embedded into a staging store which
// replaces the addressable one only once fully written. Concurrent calls
// for the same kbID share one build; different ids are independent.
func (m *Manager) BuildOrLoad(ctx context.Context, text, kbID string, chunkSize, overlap int, force bool) (*Index, []types.Chunk, error) {
	v, err, _ := m.group.Do(kbID, func() (interface{}, error) {
		if !force && m.Exists(kbID) {
			ix, err := m.load(ctx, kbID)
			if err != nil {
				return nil, err
			}
			m.logger.Debug("loaded existing index", "kb", kbID, "chunks", ix.Len())
			return buildResult{index: ix, chunks: ix.Chunks()}, nil
		}

		ix, err := m.build(ctx, text, kbID, chunkSize, overlap)
		if err != nil {
			return nil, err
		}
		return buildResult{index: ix, chunks: ix.Chunks()}, nil
	})
	if err != nil {
		return nil, nil, err
	}

	res := v.(buildResult)
	return res.index, res.chunks, nil
}

func (m *Manager) dbPath(kbID string) string {
	return filepath.Join(m.rootDir, kbID+".db")
}

// build chunks and embeds text into a fresh staging store, then renames it
// over the addressable path. Readers holding the old file keep a complete
// old index; new opens see the complete new one.
func (m *Manager) build(ctx context.Context, text, kbID string, chunkSize, overlap int) (*Index, error) {
	chunks := m.chunker.Split(text, chunkSize, overlap)
	if len(chunks) == 0 {
		return nil, types.ErrZeroChunks
	}
	m.logger.Info("building index", "kb", kbID, "chunks", len(chunks))

	vectors := make([][]float32, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, ch := range chunks {
		g.Go(func() error {
			emb, err := m.emb.Embed(gctx, ch.Text)
			if err != nil {
				return fmt.Errorf("embed chunk %d: %w", ch.Index, err)
			}
			vectors[i] = emb.Vector
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	staging := filepath.Join(m.rootDir, kbID+"."+uuid.NewString()+".staging.db")
	if err := writeStore(ctx, staging, m.emb.Model(), chunks, vectors); err != nil {
		_ = os.Remove(staging)
		return nil, fmt.Errorf("write index: %w", err)
	}

	if err := os.Rename(staging, m.dbPath(kbID)); err != nil {
		_ = os.Remove(staging)
		return nil, fmt.Errorf("swap index: %w", err)
	}

	return &Index{
		kbID:    kbID,
		model:   m.emb.Model(),
		chunks:  chunks,
		vectors: vectors,
		emb:     m.emb,
	}, nil
}

// load reads a persisted index back into memory
func (m *Manager) load(ctx context.Context, kbID string) (*Index, error) {
	model, chunks, vectors, err := readStore(ctx, m.dbPath(kbID))
	if err != nil {
		return nil, err
	}
	if model != m.emb.Model() {
		return nil, fmt.Errorf("%w: index has %q, embedder is %q", ErrModelMismatch, model, m.emb.Model())
	}
	return &Index{
		kbID:    kbID,
		model:   model,
		chunks:  chunks,
		vectors: vectors,
		emb:     m.emb,
	}, nil
}
