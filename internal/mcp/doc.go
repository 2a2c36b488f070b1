// Package mcp exposes the email-insight pipeline as Model Context
// Protocol tools over stdio.
//
// Eight tools are registered:
//   - answer_question: retrieval-grounded question answering over a document
//   - classify_document: theme clustering with model-generated labels
//   - summarize_email: concise summary plus key points
//   - detect_tasks: actionable items with assignee, deadline, priority
//   - auto_reply: a drafted response matching the email's tone
//   - analyze_email: subject, type, participants, sentiment, urgency
//   - translate_email: language detection and French-to-English translation
//   - extract_schedule: meeting-proposal detection with conflict checking
//
// MCP is JSON-RPC 2.0 over stdio; stdout carries protocol frames only,
// so all logging goes to stderr. Tool failures are returned as MCPError
// values with a code, message and structured data, never as panics.
package mcp
