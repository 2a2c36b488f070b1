package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"mailsense/internal/llm"
	"mailsense/pkg/types"
)

// ErrDurationMissing is returned when the model detects a meeting
// proposal but cannot determine its duration. A proposal without a
// duration cannot be conflict-checked, so it is a hard error rather than
// a silent default.
var ErrDurationMissing = errors.New("meeting duration not detected")

// ErrInvalidProposal is returned when a detected proposal carries an
// unparseable date or time.
var ErrInvalidProposal = errors.New("invalid date format in proposal")

const (
	extractMaxTokens = 2048

	// availabilityDays is how far ahead free slots are computed
	availabilityDays = 7

	occupiedMessage = "I am busy at that time."
)

// slotHours are the one-hour windows considered for availability:
// mornings 8-12 and afternoons 14-17
var slotHours = []int{8, 9, 10, 11, 14, 15, 16}

// Event is a busy interval on the user's calendar.
type Event struct {
	Title string
	Start time.Time
	End   time.Time
}

// Calendar supplies the user's busy intervals. The concrete calendar
// backend lives outside this package.
type Calendar interface {
	EventsBetween(ctx context.Context, from, to time.Time) ([]Event, error)
}

// EmptyCalendar is a Calendar with no events, so every slot reads as
// free. It backs deployments without a calendar integration.
type EmptyCalendar struct{}

func (EmptyCalendar) EventsBetween(context.Context, time.Time, time.Time) ([]Event, error) {
	return nil, nil
}

// Meeting is one proposal detected in an email.
type Meeting struct {
	Date            string `json:"date"`  // YYYY-MM-DD
	Time            string `json:"heure"` // HH:MM
	DurationMinutes int    `json:"duree_minutes"`
	Summary         string `json:"summary"`
	Type            string `json:"type"`
}

// Slot is a proposed free one-hour window.
type Slot struct {
	Date string `json:"date"`
	Time string `json:"heure"`
}

// Outcome is the result of scheduling extraction. Exactly one concrete
// variant is returned: NoMeeting, MeetingProposed, SlotOccupied or
// SuggestionsRequired.
type Outcome interface {
	outcome()
}

// NoMeeting means the email mentions no meeting at all.
type NoMeeting struct{}

// MeetingProposed carries concrete, conflict-free proposals.
type MeetingProposed struct {
	Meetings []Meeting
}

// SlotOccupied means a proposed slot collides with an existing event.
type SlotOccupied struct {
	Message string
}

// SuggestionsRequired means the email asks for a meeting without naming a
// time; Slots holds free windows to offer.
type SuggestionsRequired struct {
	Slots []Slot
}

func (NoMeeting) outcome()           {}
func (MeetingProposed) outcome()     {}
func (SlotOccupied) outcome()        {}
func (SuggestionsRequired) outcome() {}

// Scheduler extracts meeting proposals from email text and validates
// them against the calendar.
type Scheduler struct {
	client   *llm.Client
	calendar Calendar
	logger   *log.Logger
	now      func() time.Time
}

func New(client *llm.Client, calendar Calendar, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.Default()
	}
	return &Scheduler{client: client, calendar: calendar, logger: logger, now: time.Now}
}

// Extract analyzes the email for meeting proposals. Proposals with a
// concrete time are conflict-checked against the calendar; a proposal
// without a detectable duration is a hard error.
func (s *Scheduler) Extract(ctx context.Context, text string) (Outcome, error) {
	if strings.TrimSpace(text) == "" {
		return nil, types.ErrEmptyInput
	}

	free, err := s.freeSlots(ctx)
	if err != nil {
		// availability is advisory context for the model; proceed without
		s.logger.Warn("computing availability failed", "err", err)
		free = nil
	}

	raw, err := llm.Retry(ctx, llm.DefaultRetryConfig(), func() (string, error) {
		return s.client.Generate(ctx, llm.GenerationRequest{
			Prompt:    extractPrompt(text, s.now().Format("2006-01-02"), formatSlots(free)),
			MaxTokens: extractMaxTokens,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("extracting schedule: %w", err)
	}

	return s.interpret(ctx, raw)
}

// interpret maps the model's JSON onto an Outcome variant.
func (s *Scheduler) interpret(ctx context.Context, raw string) (Outcome, error) {
	var payload json.RawMessage
	if err := llm.ExtractJSON(raw, &payload); err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(string(payload))
	if strings.HasPrefix(trimmed, "[") {
		return s.interpretProposals(ctx, payload)
	}

	var obj struct {
		Status             string `json:"status"`
		Message            string `json:"message"`
		SuggestionRequired bool   `json:"suggestion_requise"`
		ProposedSlots      []Slot `json:"creneaux_proposes"`
	}
	if err := json.Unmarshal(payload, &obj); err != nil {
		return nil, &llm.ParseError{Raw: raw, Err: err}
	}

	switch {
	case obj.Status == "occupied":
		msg := obj.Message
		if msg == "" {
			msg = occupiedMessage
		}
		return SlotOccupied{Message: msg}, nil
	case obj.SuggestionRequired:
		return SuggestionsRequired{Slots: obj.ProposedSlots}, nil
	default:
		return NoMeeting{}, nil
	}
}

func (s *Scheduler) interpretProposals(ctx context.Context, payload json.RawMessage) (Outcome, error) {
	// DurationMinutes is a pointer here so an absent duration is
	// distinguishable from an explicit zero
	var proposals []struct {
		Date            string `json:"date"`
		Time            string `json:"heure"`
		DurationMinutes *int   `json:"duree_minutes"`
		Summary         string `json:"summary"`
		Type            string `json:"type"`
	}
	if err := json.Unmarshal(payload, &proposals); err != nil {
		return nil, &llm.ParseError{Raw: string(payload), Err: err}
	}
	if len(proposals) == 0 {
		return NoMeeting{}, nil
	}

	meetings := make([]Meeting, 0, len(proposals))
	for _, p := range proposals {
		if p.DurationMinutes == nil {
			return nil, ErrDurationMissing
		}

		start, err := time.ParseInLocation("2006-01-02 15:04", p.Date+" "+p.Time, time.Local)
		if err != nil {
			return nil, fmt.Errorf("%w: %q %q", ErrInvalidProposal, p.Date, p.Time)
		}
		start = start.UTC()
		end := start.Add(time.Duration(*p.DurationMinutes) * time.Minute)

		events, err := s.calendar.EventsBetween(ctx, start, end)
		if err != nil {
			return nil, fmt.Errorf("checking calendar: %w", err)
		}
		if !slotFree(start, end, events) {
			return SlotOccupied{Message: occupiedMessage}, nil
		}

		meetings = append(meetings, Meeting{
			Date:            p.Date,
			Time:            p.Time,
			DurationMinutes: *p.DurationMinutes,
			Summary:         p.Summary,
			Type:            p.Type,
		})
	}

	return MeetingProposed{Meetings: meetings}, nil
}

// freeSlots returns the free one-hour windows over the next seven days.
func (s *Scheduler) freeSlots(ctx context.Context) ([]Slot, error) {
	now := s.now().UTC()
	events, err := s.calendar.EventsBetween(ctx, now, now.AddDate(0, 0, availabilityDays))
	if err != nil {
		return nil, err
	}

	var free []Slot
	for day := 1; day <= availabilityDays; day++ {
		date := now.AddDate(0, 0, day)
		midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		for _, h := range slotHours {
			start := midnight.Add(time.Duration(h) * time.Hour)
			end := start.Add(time.Hour)
			if slotFree(start, end, events) {
				free = append(free, Slot{
					Date: start.Format("2006-01-02"),
					Time: start.Format("15:04"),
				})
			}
		}
	}
	return free, nil
}

func slotFree(start, end time.Time, events []Event) bool {
	for _, ev := range events {
		if end.After(ev.Start) && start.Before(ev.End) {
			return false
		}
	}
	return true
}

func formatSlots(slots []Slot) string {
	if len(slots) == 0 {
		return "no free slots"
	}
	parts := make([]string, len(slots))
	for i, s := range slots {
		parts[i] = fmt.Sprintf("%s at %s", s.Date, s.Time)
	}
	return strings.Join(parts, "; ")
}
