package chunker

import (
	"regexp"
	"strings"

	"mailsense/pkg/types"
)

const (
	// DefaultChunkSize is the target character count per chunk
	DefaultChunkSize = 600

	// DefaultOverlap is the character overlap between adjacent chunks
	DefaultOverlap = 100

	// MinChunkSize is the floor applied when shrinking chunks for short inputs
	MinChunkSize = 50

	// MinOverlap is the floor applied when shrinking overlap for short inputs
	MinOverlap = 10
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Chunker splits normalized text into overlapping fixed-size fragments
type Chunker struct{}

// New creates a new Chunker instance
func New() *Chunker {
	return &Chunker{}
}

// Normalize collapses all whitespace runs to a single space and trims the
// result. Chunk boundaries are always computed on normalized text.
func Normalize(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// EffectiveParams returns the chunk size and overlap actually used for a
// text of the given normalized length in runes. Inputs shorter than the requested
// size get proportionally smaller chunks so that short documents still
// yield several fragments instead of one.
func EffectiveParams(textLen, chunkSize, overlap int) (int, int) {
	if textLen >= chunkSize {
		return chunkSize, overlap
	}
	size := textLen / 3
	if size < MinChunkSize {
		size = MinChunkSize
	}
	ov := size / 5
	if ov < MinOverlap {
		ov = MinOverlap
	}
	return size, ov
}

// Split chunks text into overlapping fragments of roughly chunkSize
// characters. The same input always yields the same sequence. Empty input
// yields an empty slice and no error; callers decide whether zero chunks
// is acceptable for their operation.
func (c *Chunker) Split(text string, chunkSize, overlap int) []types.Chunk {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = chunkSize / 6
	}

	normalized := Normalize(text)
	if normalized == "" {
		return []types.Chunk{}
	}

	// boundaries are rune positions, so the adjustment works on runes too
	runes := []rune(normalized)
	size, ov := EffectiveParams(len(runes), chunkSize, overlap)
	step := size - ov
	chunks := make([]types.Chunk, 0, (len(runes)/step)+1)

	for start, idx := 0, 0; start < len(runes); start, idx = start+step, idx+1 {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, types.Chunk{
			Text:  strings.TrimSpace(string(runes[start:end])),
			Index: idx,
		})
		if end == len(runes) {
			break
		}
	}

	return chunks
}
