package rag

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"mailsense/internal/chunker"
	"mailsense/internal/llm"
	"mailsense/internal/retriever"
	"mailsense/internal/vectorstore"
	"mailsense/pkg/types"
)

const (
	// KnowledgeBaseID is the namespace under which the QA index persists.
	// Kept separate from classification so the two stores never collide.
	KnowledgeBaseID = "qa"

	// DefaultTopK is the retrieval depth used when a request names none
	DefaultTopK = 3

	// answerMaxTokens bounds the grounded answer
	answerMaxTokens = 300

	// correctionMaxTokens bounds the fluency rewrite; it only restates the
	// answer, so a short budget suffices
	correctionMaxTokens = 60
)

// AnswerRequest describes one question-answering invocation
type AnswerRequest struct {
	Question        string
	Text            string
	TopK            int
	ApplyCorrection bool
	ForceRebuild    bool
}

// Engine composes chunker, vector store, retriever and generation client
// into the question-answering operation
type Engine struct {
	indexes   *vectorstore.Manager
	retriever *retriever.Retriever
	client    *llm.Client
	logger    *log.Logger
	chunkSize int
	overlap   int
}

// NewEngine creates a RAG engine over the given index manager and client.
// chunkSize and overlap set the geometry for index builds; zero values
// fall back to the chunker defaults.
func NewEngine(indexes *vectorstore.Manager, client *llm.Client, chunkSize, overlap int, logger *log.Logger) *Engine {
	if chunkSize <= 0 {
		chunkSize = chunker.DefaultChunkSize
		overlap = chunker.DefaultOverlap
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		indexes:   indexes,
		retriever: retriever.New(),
		client:    client,
		logger:    logger,
		chunkSize: chunkSize,
		overlap:   overlap,
	}
}

// Answer runs the full pipeline: build or load the QA index for the
// supplied text, retrieve the topK nearest chunks, generate a grounded
// answer, and optionally rewrite it for fluency. A correction failure
// degrades to the raw answer; it never fails the request.
func (e *Engine) Answer(ctx context.Context, req AnswerRequest) (*types.AnswerResult, error) {
	if strings.TrimSpace(req.Question) == "" {
		return nil, types.ErrEmptyQuestion
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, types.ErrEmptyInput
	}
	topK := req.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}

	start := time.Now()

	ix, chunks, err := e.indexes.BuildOrLoad(ctx, req.Text, KnowledgeBaseID, e.chunkSize, e.overlap, req.ForceRebuild)
	if err != nil {
		return nil, fmt.Errorf("index: %w", err)
	}

	e.logger.Debug("retrieving context", "kb", KnowledgeBaseID, "top_k", topK)
	contextText, scored, err := e.retriever.Retrieve(ctx, ix, req.Question, topK)
	if err != nil {
		return nil, fmt.Errorf("retrieve: %w", err)
	}

	rawAnswer, err := e.client.Generate(ctx, llm.GenerationRequest{
		Prompt:    answerPrompt(contextText, req.Question),
		MaxTokens: answerMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}
	// generation time covers indexing through the primary answer; the
	// correction pass is cosmetic and not part of it
	elapsed := time.Since(start)

	finalAnswer := rawAnswer
	var rawOut *string
	if req.ApplyCorrection {
		rawOut = &rawAnswer
		corrected, err := e.client.Generate(ctx, llm.GenerationRequest{
			Prompt:    correctionPrompt(rawAnswer),
			MaxTokens: correctionMaxTokens,
		})
		if err != nil {
			// correction is cosmetic, not load-bearing
			e.logger.Warn("correction failed, using raw answer", "err", err)
		} else {
			finalAnswer = corrected
		}
	}

	contextChunks := make([]string, len(scored))
	for i, sc := range scored {
		contextChunks[i] = sc.Chunk.Text
	}

	return &types.AnswerResult{
		Question:       req.Question,
		Answer:         finalAnswer,
		RawAnswer:      rawOut,
		ContextChunks:  contextChunks,
		TotalChunks:    len(chunks),
		GenerationTime: elapsed,
	}, nil
}
