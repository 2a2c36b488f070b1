package mcp

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"

	"mailsense/internal/classify"
	"mailsense/internal/config"
	"mailsense/internal/embedder"
	"mailsense/internal/insight"
	"mailsense/internal/llm"
	"mailsense/internal/rag"
	"mailsense/internal/schedule"
	"mailsense/internal/translate"
	"mailsense/internal/vectorstore"
)

const (
	// ServerName is the MCP server name
	ServerName = "mailsense-mcp"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"

	embeddingCacheSize = 10000
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp        *server.MCPServer
	engine     *rag.Engine
	classifier *classify.Classifier
	analyzer   *insight.Analyzer
	translator *translate.Translator
	scheduler  *schedule.Scheduler
	logger     *log.Logger
}

// NewServer wires the full pipeline from a resolved configuration. A
// single embedder instance, with a single cache, is shared by the
// answering and classification paths.
func NewServer(cfg *config.Config, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	emb := embedder.NewHashedProvider(embedder.NewCache(embeddingCacheSize))

	indexes, err := vectorstore.NewManager(cfg.IndexDir(), emb, logger)
	if err != nil {
		return nil, fmt.Errorf("initializing vector store: %w", err)
	}

	client := llm.NewClient(cfg.LLMClientConfig())

	s := &Server{
		mcp:        server.NewMCPServer(ServerName, ServerVersion),
		engine:     rag.NewEngine(indexes, client, cfg.Chunking.Size, cfg.Chunking.Overlap, logger),
		classifier: classify.New(indexes, client, cfg.Chunking.Size, cfg.Chunking.Overlap, logger),
		analyzer:   insight.New(client, logger),
		translator: translate.New(client, cfg.TranslationCacheDir(), logger),
		// no calendar integration here, so conflict checks see a free week
		scheduler: schedule.New(client, schedule.EmptyCalendar{}, logger),
		logger:    logger,
	}

	s.registerTools()
	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("serving MCP over stdio", "server", ServerName, "version", ServerVersion)
	return server.ServeStdio(s.mcp)
}

func (s *Server) registerTools() {
	s.mcp.AddTool(answerQuestionTool(), s.handleAnswerQuestion)
	s.mcp.AddTool(classifyDocumentTool(), s.handleClassifyDocument)
	s.mcp.AddTool(summarizeEmailTool(), s.handleSummarizeEmail)
	s.mcp.AddTool(detectTasksTool(), s.handleDetectTasks)
	s.mcp.AddTool(autoReplyTool(), s.handleAutoReply)
	s.mcp.AddTool(analyzeEmailTool(), s.handleAnalyzeEmail)
	s.mcp.AddTool(translateEmailTool(), s.handleTranslateEmail)
	s.mcp.AddTool(extractScheduleTool(), s.handleExtractSchedule)
}
