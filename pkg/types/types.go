package types

import "time"

// Chunk is an immutable fragment of normalized source text. Index is the
// ordinal position of the fragment within its source; together with Text
// it identifies the chunk across runs.
type Chunk struct {
	Text  string `json:"text"`
	Index int    `json:"index"`
}

// ScoredChunk pairs a chunk with its distance to a query vector.
// Lower distance means more similar.
type ScoredChunk struct {
	Chunk    Chunk   `json:"chunk"`
	Distance float64 `json:"distance"`
}

// ThemeCluster is one detected theme of a classified document.
type ThemeCluster struct {
	ID             int    `json:"id"`             // 1-based
	Label          string `json:"label"`          // model-generated topic label, or an inline error marker
	Representative string `json:"representative"` // preview of the chunk nearest the cluster centroid
}

// AnswerResult is the output of a RAG question-answering invocation.
type AnswerResult struct {
	Question       string        `json:"question"`
	Answer         string        `json:"answer"`
	RawAnswer      *string       `json:"raw_answer,omitempty"` // pre-correction answer; nil when correction was disabled
	ContextChunks  []string      `json:"context_chunks"`
	TotalChunks    int           `json:"total_chunks"`
	GenerationTime time.Duration `json:"generation_time_ns"`
}

// ClassificationResult is the output of a document classification invocation.
type ClassificationResult struct {
	Themes         []ThemeCluster `json:"themes"`
	TotalChunks    int            `json:"total_chunks"`
	ProcessingTime time.Duration  `json:"processing_time_ns"`
}
