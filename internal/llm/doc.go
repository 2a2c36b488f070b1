// Package llm wraps a remote OpenAI-style chat-completion endpoint.
//
// The client is stateless and synchronous: one prompt in, one completion
// out, with failures mapped to a small typed taxonomy: ErrAuthentication
// (401), ErrModelNotFound (404), *TransportError (network or timeout,
// retryable by the caller), ErrMalformedResponse (2xx without a
// completion). The client never retries; Retry is provided for callers
// that want backoff around individual calls.
//
// ExtractJSON implements lenient parsing of structured output: models
// asked for JSON routinely wrap it in prose, so the parser scans for the
// outermost object or array and reports failures as *ParseError carrying
// the raw text, which downstream code handles as a first-class case.
package llm
