package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// answerQuestionTool returns the tool definition for answer_question
func answerQuestionTool() mcp.Tool {
	return mcp.Tool{
		Name:        "answer_question",
		Description: "Answer a question using retrieval over the supplied document text",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "The question to answer",
				},
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Document text the answer must be grounded in",
				},
				"top_k": map[string]interface{}{
					"type":        "integer",
					"description": "Number of chunks to retrieve as context",
					"default":     3,
					"minimum":     1,
				},
				"apply_correction": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, run a best-effort rewrite pass over the answer",
					"default":     true,
				},
				"force_rebuild": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, rebuild the index even when one exists",
					"default":     false,
				},
			},
			Required: []string{"question", "text"},
		},
	}
}

// classifyDocumentTool returns the tool definition for classify_document
func classifyDocumentTool() mcp.Tool {
	return mcp.Tool{
		Name:        "classify_document",
		Description: "Cluster a document into labelled themes",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Document text to classify",
				},
				"num_themes": map[string]interface{}{
					"type":        "integer",
					"description": "Number of themes to extract (reduced if the document is too short)",
					"default":     3,
					"minimum":     1,
				},
			},
			Required: []string{"text"},
		},
	}
}

// summarizeEmailTool returns the tool definition for summarize_email
func summarizeEmailTool() mcp.Tool {
	return mcp.Tool{
		Name:        "summarize_email",
		Description: "Produce a concise summary and key points for an email",
		InputSchema: emailTextSchema("Email text to summarize"),
	}
}

// detectTasksTool returns the tool definition for detect_tasks
func detectTasksTool() mcp.Tool {
	return mcp.Tool{
		Name:        "detect_tasks",
		Description: "Extract actionable tasks with assignee, deadline and priority from an email",
		InputSchema: emailTextSchema("Email text to analyze for tasks"),
	}
}

// autoReplyTool returns the tool definition for auto_reply
func autoReplyTool() mcp.Tool {
	return mcp.Tool{
		Name:        "auto_reply",
		Description: "Draft a contextually appropriate reply to an email",
		InputSchema: emailTextSchema("Email text to reply to"),
	}
}

// analyzeEmailTool returns the tool definition for analyze_email
func analyzeEmailTool() mcp.Tool {
	return mcp.Tool{
		Name:        "analyze_email",
		Description: "Extract subject, type, participants, sentiment and urgency from an email",
		InputSchema: emailTextSchema("Email text to analyze"),
	}
}

// translateEmailTool returns the tool definition for translate_email
func translateEmailTool() mcp.Tool {
	return mcp.Tool{
		Name:        "translate_email",
		Description: "Detect the email language and translate French text to English",
		InputSchema: emailTextSchema("Email text to translate"),
	}
}

// extractScheduleTool returns the tool definition for extract_schedule
func extractScheduleTool() mcp.Tool {
	return mcp.Tool{
		Name:        "extract_schedule",
		Description: "Detect meeting proposals in an email and check them for conflicts",
		InputSchema: emailTextSchema("Email text to scan for meeting proposals"),
	}
}

// emailTextSchema is the shared single-argument schema for the email
// operations
func emailTextSchema(description string) mcp.ToolInputSchema {
	return mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"text": map[string]interface{}{
				"type":        "string",
				"description": description,
			},
		},
		Required: []string{"text"},
	}
}
