package types

import "errors"

// Input validation errors shared across the pipeline.
var (
	ErrEmptyInput    = errors.New("input text is empty")
	ErrInvalidTopK   = errors.New("top_k must be positive")
	ErrInvalidK      = errors.New("cluster count must be positive")
	ErrZeroChunks    = errors.New("chunking produced no chunks")
	ErrEmptyQuery    = errors.New("query cannot be empty")
	ErrEmptyQuestion = errors.New("question cannot be empty")
)
