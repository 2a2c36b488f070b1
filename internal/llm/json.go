package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseError reports that model output could not be parsed as JSON. It
// carries the raw text so callers can decide what to do with it; lenient
// extraction never panics and never hides the original output.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse model output as JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ExtractJSON scans free-form model text for the outermost JSON object or
// array and unmarshals it into v. Models often wrap JSON in prose or code
// fences; this takes the first opening brace/bracket through the last
// matching closing one. Failure returns a *ParseError carrying the raw
// text.
func ExtractJSON(raw string, v interface{}) error {
	startBrace := strings.Index(raw, "{")
	startBracket := strings.Index(raw, "[")

	start := -1
	var closer string
	switch {
	case startBrace == -1 && startBracket == -1:
		return &ParseError{Raw: raw, Err: fmt.Errorf("no JSON found in output")}
	case startBracket == -1 || (startBrace != -1 && startBrace < startBracket):
		start, closer = startBrace, "}"
	default:
		start, closer = startBracket, "]"
	}

	end := strings.LastIndex(raw, closer)
	if end < start {
		return &ParseError{Raw: raw, Err: fmt.Errorf("unterminated JSON in output")}
	}

	if err := json.Unmarshal([]byte(raw[start:end+1]), v); err != nil {
		return &ParseError{Raw: raw, Err: err}
	}
	return nil
}
