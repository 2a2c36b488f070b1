// Package schedule detects meeting proposals in email text and checks
// them against the user's calendar. Extraction returns exactly one
// Outcome variant: no meeting mentioned, a concrete conflict-free
// proposal, a collision with an existing event, or a request for slot
// suggestions when the email names no time.
package schedule
