package classify

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"mailsense/internal/chunker"
	"mailsense/internal/llm"
	"mailsense/internal/vectorstore"
	"mailsense/pkg/types"
)

const (
	// KnowledgeBaseID is the vector store namespace used for theme
	// classification, kept separate from question answering
	KnowledgeBaseID = "classification"

	// DefaultK is the number of theme clusters when the caller does not
	// specify one
	DefaultK = 3

	labelMaxTokens = 20
	previewLen     = 200
)

// Classifier extracts the dominant themes of a document by clustering its
// chunk embeddings and labelling each cluster with the generation model.
type Classifier struct {
	indexes   *vectorstore.Manager
	client    *llm.Client
	logger    *log.Logger
	chunkSize int
	overlap   int
}

// New creates a classifier over the given index manager and client.
// chunkSize and overlap set the geometry for index builds; zero values
// fall back to the chunker defaults.
func New(indexes *vectorstore.Manager, client *llm.Client, chunkSize, overlap int, logger *log.Logger) *Classifier {
	if chunkSize <= 0 {
		chunkSize = chunker.DefaultChunkSize
		overlap = chunker.DefaultOverlap
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Classifier{
		indexes:   indexes,
		client:    client,
		logger:    logger,
		chunkSize: chunkSize,
		overlap:   overlap,
	}
}

// Request describes a classification run over a single document.
type Request struct {
	Text         string
	K            int // 0 means DefaultK
	ForceRebuild bool
}

// Classify chunks and embeds the document, clusters the embeddings into
// themes and asks the model for a short label per theme. A label failure
// for one cluster does not abort the run; the cluster is reported with an
// inline error label instead.
func (c *Classifier) Classify(ctx context.Context, req Request) (*types.ClassificationResult, error) {
	start := time.Now()

	k := req.K
	if k == 0 {
		k = DefaultK
	}
	if k < 0 {
		return nil, fmt.Errorf("%w: %d", types.ErrInvalidK, k)
	}

	ix, chunks, err := c.indexes.BuildOrLoad(ctx, req.Text, KnowledgeBaseID,
		c.chunkSize, c.overlap, req.ForceRebuild)
	if err != nil {
		return nil, fmt.Errorf("indexing document: %w", err)
	}

	if k > len(chunks) {
		c.logger.Warn("reducing cluster count to chunk count",
			"requested", k, "chunks", len(chunks))
		k = len(chunks)
	}

	assignments, centroids := kmeans(ix.Vectors(), k)
	reps := representatives(ix.Vectors(), assignments, centroids)

	themes := make([]types.ThemeCluster, 0, k)
	for cluster, rep := range reps {
		if rep < 0 {
			continue
		}
		repText := chunks[rep].Text

		label, err := c.labelCluster(ctx, repText)
		if err != nil {
			c.logger.Warn("labelling cluster failed", "cluster", cluster+1, "error", err)
			label = fmt.Sprintf("[error: %v]", err)
		}

		themes = append(themes, types.ThemeCluster{
			ID:             cluster + 1,
			Label:          label,
			Representative: preview(repText),
		})
	}

	return &types.ClassificationResult{
		Themes:         themes,
		TotalChunks:    len(chunks),
		ProcessingTime: time.Since(start),
	}, nil
}

// labelCluster makes a single labelling attempt. Retry policy belongs to
// callers; a failed attempt degrades to an inline error label upstream.
func (c *Classifier) labelCluster(ctx context.Context, repText string) (string, error) {
	return c.client.Generate(ctx, llm.GenerationRequest{
		Prompt:    labelPrompt(repText),
		MaxTokens: labelMaxTokens,
	})
}

func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLen {
		return text
	}
	return string(runes[:previewLen]) + "..."
}
