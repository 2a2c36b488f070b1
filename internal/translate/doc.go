// Package translate detects whether an email is French or English and
// translates French text to English before the downstream semantic
// operations run. Completed translations are cached on disk keyed by a
// SHA-1 of the source text, so re-processing the same email never pays
// for a second model call.
package translate
