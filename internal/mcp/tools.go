package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"mailsense/internal/classify"
	"mailsense/internal/llm"
	"mailsense/internal/rag"
	"mailsense/internal/schedule"
	"mailsense/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams    = -32602 // Invalid method parameters
	ErrorCodeInternalError    = -32603 // Internal JSON-RPC error
	ErrorCodeEmptyText        = -32001 // Supplied text produced no content to work on
	ErrorCodeGenerationFailed = -32002 // The generation backend rejected or failed the call
	ErrorCodeParseFailed      = -32003 // Model output could not be parsed into the expected shape
)

// handleAnswerQuestion handles the answer_question tool invocation
func (s *Server) handleAnswerQuestion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	question, ok := args["question"].(string)
	if !ok || question == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "question parameter is required", map[string]interface{}{
			"param":  "question",
			"reason": "missing or empty",
		})
	}
	text, ok := args["text"].(string)
	if !ok || text == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "text parameter is required", map[string]interface{}{
			"param":  "text",
			"reason": "missing or empty",
		})
	}

	topK := getIntDefault(args, "top_k", rag.DefaultTopK)
	if topK < 1 {
		return nil, newMCPError(ErrorCodeInvalidParams, "top_k must be at least 1", map[string]interface{}{
			"param": "top_k",
			"value": topK,
		})
	}

	result, err := s.engine.Answer(ctx, rag.AnswerRequest{
		Question:        question,
		Text:            text,
		TopK:            topK,
		ApplyCorrection: getBoolDefault(args, "apply_correction", true),
		ForceRebuild:    getBoolDefault(args, "force_rebuild", false),
	})
	if err != nil {
		return nil, toolError("answering question", err)
	}

	response := map[string]interface{}{
		"question":           result.Question,
		"answer":             result.Answer,
		"context_chunks":     result.ContextChunks,
		"total_chunks":       result.TotalChunks,
		"generation_time_ms": result.GenerationTime.Milliseconds(),
	}
	if result.RawAnswer != nil {
		response["raw_answer"] = *result.RawAnswer
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleClassifyDocument handles the classify_document tool invocation
func (s *Server) handleClassifyDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	text, ok := args["text"].(string)
	if !ok || text == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "text parameter is required", map[string]interface{}{
			"param":  "text",
			"reason": "missing or empty",
		})
	}

	numThemes := getIntDefault(args, "num_themes", classify.DefaultK)
	if numThemes < 1 {
		return nil, newMCPError(ErrorCodeInvalidParams, "num_themes must be at least 1", map[string]interface{}{
			"param": "num_themes",
			"value": numThemes,
		})
	}

	result, err := s.classifier.Classify(ctx, classify.Request{Text: text, K: numThemes})
	if err != nil {
		return nil, toolError("classifying document", err)
	}

	themes := make([]map[string]interface{}, len(result.Themes))
	for i, th := range result.Themes {
		themes[i] = map[string]interface{}{
			"id":             th.ID,
			"label":          th.Label,
			"representative": th.Representative,
		}
	}
	response := map[string]interface{}{
		"themes":             themes,
		"total_chunks":       result.TotalChunks,
		"processing_time_ms": result.ProcessingTime.Milliseconds(),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleSummarizeEmail handles the summarize_email tool invocation
func (s *Server) handleSummarizeEmail(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, merr := requireText(request)
	if merr != nil {
		return nil, merr
	}

	summary, err := s.analyzer.Summarize(ctx, text)
	if err != nil {
		return nil, toolError("summarizing email", err)
	}
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"summary":    summary.Summary,
		"key_points": summary.KeyPoints,
	})), nil
}

// handleDetectTasks handles the detect_tasks tool invocation
func (s *Server) handleDetectTasks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, merr := requireText(request)
	if merr != nil {
		return nil, merr
	}

	tasks, err := s.analyzer.DetectTasks(ctx, text)
	if err != nil {
		return nil, toolError("detecting tasks", err)
	}

	items := make([]map[string]interface{}, len(tasks.Tasks))
	for i, task := range tasks.Tasks {
		item := map[string]interface{}{
			"task_description": task.TaskDescription,
			"priority":         task.Priority,
		}
		if task.Assignee != nil {
			item["assignee"] = *task.Assignee
		}
		if task.Deadline != nil {
			item["deadline"] = *task.Deadline
		}
		items[i] = item
	}
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"tasks": items,
	})), nil
}

// handleAutoReply handles the auto_reply tool invocation
func (s *Server) handleAutoReply(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, merr := requireText(request)
	if merr != nil {
		return nil, merr
	}

	reply, err := s.analyzer.AutoReply(ctx, text)
	if err != nil {
		return nil, toolError("drafting reply", err)
	}
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"reply": reply.Reply,
		"tone":  reply.Tone,
	})), nil
}

// handleAnalyzeEmail handles the analyze_email tool invocation
func (s *Server) handleAnalyzeEmail(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, merr := requireText(request)
	if merr != nil {
		return nil, merr
	}

	analysis, err := s.analyzer.Analyze(ctx, text)
	if err != nil {
		return nil, toolError("analyzing email", err)
	}
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"main_subject":  analysis.MainSubject,
		"short_summary": analysis.ShortSummary,
		"email_type":    analysis.EmailType,
		"participants":  analysis.Participants,
		"sentiment":     analysis.Sentiment,
		"urgency": map[string]interface{}{
			"is_urgent":     analysis.Urgency.IsUrgent,
			"justification": analysis.Urgency.Justification,
		},
	})), nil
}

// handleTranslateEmail handles the translate_email tool invocation
func (s *Server) handleTranslateEmail(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, merr := requireText(request)
	if merr != nil {
		return nil, merr
	}

	lang, isFrench := s.translator.DetectLanguage(ctx, text)

	translated := text
	if isFrench {
		var err error
		translated, err = s.translator.ToEnglish(ctx, text)
		if err != nil {
			return nil, toolError("translating email", err)
		}
	}
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"language":  string(lang),
		"is_french": isFrench,
		"text":      translated,
	})), nil
}

// handleExtractSchedule handles the extract_schedule tool invocation
func (s *Server) handleExtractSchedule(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, merr := requireText(request)
	if merr != nil {
		return nil, merr
	}

	outcome, err := s.scheduler.Extract(ctx, text)
	if err != nil {
		return nil, toolError("extracting schedule", err)
	}

	var response map[string]interface{}
	switch o := outcome.(type) {
	case schedule.NoMeeting:
		response = map[string]interface{}{"outcome": "no_meeting"}
	case schedule.MeetingProposed:
		meetings := make([]map[string]interface{}, len(o.Meetings))
		for i, m := range o.Meetings {
			meetings[i] = map[string]interface{}{
				"date":             m.Date,
				"time":             m.Time,
				"duration_minutes": m.DurationMinutes,
				"summary":          m.Summary,
				"type":             m.Type,
			}
		}
		response = map[string]interface{}{"outcome": "meeting_proposed", "meetings": meetings}
	case schedule.SlotOccupied:
		response = map[string]interface{}{"outcome": "slot_occupied", "message": o.Message}
	case schedule.SuggestionsRequired:
		slots := make([]map[string]interface{}, len(o.Slots))
		for i, slot := range o.Slots {
			slots[i] = map[string]interface{}{"date": slot.Date, "time": slot.Time}
		}
		response = map[string]interface{}{"outcome": "suggestions_required", "slots": slots}
	default:
		return nil, newMCPError(ErrorCodeInternalError, "unknown scheduling outcome", nil)
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

// requireText extracts the mandatory text argument shared by the email
// tools
func requireText(request mcp.CallToolRequest) (string, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return "", newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}
	text, ok := args["text"].(string)
	if !ok || text == "" {
		return "", newMCPError(ErrorCodeInvalidParams, "text parameter is required", map[string]interface{}{
			"param":  "text",
			"reason": "missing or empty",
		})
	}
	return text, nil
}

// toolError maps pipeline failures onto MCP error codes
func toolError(action string, err error) error {
	var parseErr *llm.ParseError
	switch {
	case errors.Is(err, types.ErrEmptyInput),
		errors.Is(err, types.ErrZeroChunks),
		errors.Is(err, types.ErrEmptyQuestion),
		errors.Is(err, types.ErrInvalidTopK),
		errors.Is(err, types.ErrInvalidK):
		return newMCPError(ErrorCodeEmptyText, action+" failed", map[string]interface{}{
			"error": err.Error(),
		})
	case errors.Is(err, schedule.ErrDurationMissing), errors.Is(err, schedule.ErrInvalidProposal):
		return newMCPError(ErrorCodeParseFailed, action+" failed", map[string]interface{}{
			"error": err.Error(),
		})
	case errors.As(err, &parseErr):
		return newMCPError(ErrorCodeParseFailed, action+" failed: model output was not parseable", map[string]interface{}{
			"error": parseErr.Err.Error(),
			"raw":   truncate(parseErr.Raw, 200),
		})
	case errors.Is(err, llm.ErrAuthentication),
		errors.Is(err, llm.ErrModelNotFound),
		llm.IsRetryable(err):
		return newMCPError(ErrorCodeGenerationFailed, action+" failed", map[string]interface{}{
			"error": err.Error(),
		})
	default:
		return newMCPError(ErrorCodeInternalError, action+" failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
