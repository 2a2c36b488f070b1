package embedder

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeHash(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty string", text: ""},
		{name: "simple text", text: "hello world"},
		{name: "unicode", text: "réunion prévue à 14h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := ComputeHash(tt.text)
			second := ComputeHash(tt.text)
			if first != second {
				t.Errorf("ComputeHash() not consistent: %v != %v", first, second)
			}
			if len(first) != 64 {
				t.Errorf("ComputeHash() length = %d, want 64", len(first))
			}
		})
	}
}

func TestHashedProviderDeterminism(t *testing.T) {
	p := NewHashedProvider(nil)
	ctx := context.Background()

	first, err := p.Embed(ctx, "the cat sat on the mat")
	require.NoError(t, err)
	second, err := p.Embed(ctx, "the cat sat on the mat")
	require.NoError(t, err)

	assert.Equal(t, first.Vector, second.Vector)
	assert.Equal(t, ModelHashedBOW, first.Model)
	assert.Len(t, first.Vector, HashedDimension)
}

func TestHashedProviderUnitNorm(t *testing.T) {
	p := NewHashedProvider(nil)

	emb, err := p.Embed(context.Background(), "irrigation systems and solar pumps")
	require.NoError(t, err)

	var sum float64
	for _, v := range emb.Vector {
		sum += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(sum), 1e-5)
}

func TestHashedProviderEmptyText(t *testing.T) {
	p := NewHashedProvider(nil)

	_, err := p.Embed(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestEmbedBatchMatchesSingle(t *testing.T) {
	p := NewHashedProvider(nil)
	ctx := context.Background()
	texts := []string{"first chunk", "second chunk", "third chunk"}

	batch, err := p.EmbedBatch(ctx, texts)
	require.NoError(t, err)
	require.Len(t, batch, 3)

	for i, text := range texts {
		single, err := p.Embed(ctx, text)
		require.NoError(t, err)
		assert.Equal(t, single.Vector, batch[i].Vector)
	}
}

func TestEmbedBatchValidation(t *testing.T) {
	p := NewHashedProvider(nil)
	ctx := context.Background()

	_, err := p.EmbedBatch(ctx, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = p.EmbedBatch(ctx, []string{"ok", ""})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCacheRoundTrip(t *testing.T) {
	cache := NewCache(10)
	p := NewHashedProvider(cache)
	ctx := context.Background()

	emb, err := p.Embed(ctx, "cached text")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Size())

	cached, ok := cache.Get(emb.Hash)
	require.True(t, ok)
	assert.Equal(t, emb.Vector, cached.Vector)

	// mutating the returned copy must not poison the cache
	cached.Vector[0] = 99
	again, ok := cache.Get(emb.Hash)
	require.True(t, ok)
	assert.Equal(t, emb.Vector, again.Vector)
}

func TestNormalizeVectorZero(t *testing.T) {
	zero := make([]float32, 8)
	assert.Equal(t, zero, NormalizeVector(zero))
}

func TestSimilarTextsCloser(t *testing.T) {
	p := NewHashedProvider(nil)
	ctx := context.Background()

	query, err := p.Embed(ctx, "What did the cat do?")
	require.NoError(t, err)
	cat, err := p.Embed(ctx, "The cat sat.")
	require.NoError(t, err)
	dog, err := p.Embed(ctx, "The dog ran.")
	require.NoError(t, err)

	assert.Greater(t, dot(query.Vector, cat.Vector), dot(query.Vector, dog.Vector))
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
