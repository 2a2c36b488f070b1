package embedder

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

const (
	// ModelHashedBOW identifies the hashed bag-of-words embedding model.
	// Stored alongside every index; vectors from different model ids are
	// never compared.
	ModelHashedBOW = "hashed-bow-v1"

	// HashedDimension is the vector dimension of the hashed model
	HashedDimension = 256
)

// HashedProvider is a local, deterministic embedder. Each token hashes to
// a bucket; the bucket counts form the vector, which is normalized to unit
// length. No network dependency, and identical input always yields an
// identical vector.
type HashedProvider struct {
	dimension int
	cache     *Cache
}

// NewHashedProvider creates a local embedder with an optional cache
func NewHashedProvider(cache *Cache) *HashedProvider {
	return &HashedProvider{
		dimension: HashedDimension,
		cache:     cache,
	}
}

func (p *HashedProvider) Embed(ctx context.Context, text string) (*Embedding, error) {
	if text == "" {
		return nil, ErrEmptyText
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hash := ComputeHash(text)
	if p.cache != nil {
		if emb, ok := p.cache.Get(hash); ok {
			return emb, nil
		}
	}

	vector := make([]float32, p.dimension)
	for _, tok := range tokenize(text) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(tok))
		vector[h.Sum32()%uint32(p.dimension)]++
	}

	emb := &Embedding{
		Vector: NormalizeVector(vector),
		Model:  ModelHashedBOW,
		Hash:   hash,
	}

	if p.cache != nil {
		p.cache.Set(hash, emb)
	}
	return emb, nil
}

func (p *HashedProvider) EmbedBatch(ctx context.Context, texts []string) ([]*Embedding, error) {
	if err := ValidateBatch(texts); err != nil {
		return nil, err
	}

	embeddings := make([]*Embedding, len(texts))
	for i, text := range texts {
		emb, err := p.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		embeddings[i] = emb
	}
	return embeddings, nil
}

func (p *HashedProvider) Dimension() int {
	return p.dimension
}

func (p *HashedProvider) Model() string {
	return ModelHashedBOW
}

// tokenize lower-cases the text and splits on anything that is not a
// letter or digit
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// NormalizeVector scales a vector to unit length. The zero vector is
// returned unchanged.
func NormalizeVector(v []float32) []float32 {
	var sum float64
	for _, val := range v {
		sum += float64(val) * float64(val)
	}
	if sum == 0 {
		return v
	}

	norm := float32(math.Sqrt(sum))
	result := make([]float32, len(v))
	for i, val := range v {
		result[i] = val / norm
	}
	return result
}
