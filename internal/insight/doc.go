// Package insight runs the semantic email operations: summarization,
// task detection, auto-reply drafting and full semantic analysis. Each
// operation prompts the generation model for a fixed JSON shape and
// parses the response leniently, tolerating prose and code fences around
// the JSON payload.
package insight
