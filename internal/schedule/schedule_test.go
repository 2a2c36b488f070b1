package schedule

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailsense/internal/llm"
	"mailsense/pkg/types"
)

type fakeCalendar struct {
	events []Event
	err    error
	calls  int
}

func (f *fakeCalendar) EventsBetween(_ context.Context, _, _ time.Time) ([]Event, error) {
	f.calls++
	return f.events, f.err
}

func newScheduler(t *testing.T, modelBody string, cal *fakeCalendar) *Scheduler {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprintf(w, `{"choices":[{"message":{"content":%q}}]}`, modelBody)
	}))
	t.Cleanup(srv.Close)
	client := llm.NewClient(llm.Config{Endpoint: srv.URL, APIKey: "test"})
	return New(client, cal, nil)
}

func TestExtractNoMeeting(t *testing.T) {
	s := newScheduler(t, "[]", &fakeCalendar{})

	out, err := s.Extract(context.Background(), "The cafeteria menu changed this week.")
	require.NoError(t, err)
	assert.IsType(t, NoMeeting{}, out)
}

func TestExtractMeetingProposed(t *testing.T) {
	body := `[{"date":"2026-09-03","heure":"10:00","duree_minutes":45,"summary":"Quarterly planning","type":"visio"}]`
	s := newScheduler(t, body, &fakeCalendar{})

	out, err := s.Extract(context.Background(), "Can we meet Thursday at 10 for 45 minutes to plan the quarter?")
	require.NoError(t, err)

	proposed, ok := out.(MeetingProposed)
	require.True(t, ok, "expected MeetingProposed, got %T", out)
	require.Len(t, proposed.Meetings, 1)
	m := proposed.Meetings[0]
	assert.Equal(t, "2026-09-03", m.Date)
	assert.Equal(t, "10:00", m.Time)
	assert.Equal(t, 45, m.DurationMinutes)
	assert.Equal(t, "Quarterly planning", m.Summary)
}

func TestExtractProposalConflicts(t *testing.T) {
	// event spans several days so the proposal collides regardless of the
	// local timezone offset applied during parsing
	busy := Event{
		Title: "Offsite",
		Start: time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
	}
	body := `[{"date":"2026-09-03","heure":"10:00","duree_minutes":60,"summary":"Sync","type":"visio"}]`
	s := newScheduler(t, body, &fakeCalendar{events: []Event{busy}})

	out, err := s.Extract(context.Background(), "Meet Thursday at 10?")
	require.NoError(t, err)

	occupied, ok := out.(SlotOccupied)
	require.True(t, ok, "expected SlotOccupied, got %T", out)
	assert.NotEmpty(t, occupied.Message)
}

func TestExtractModelReportsOccupied(t *testing.T) {
	s := newScheduler(t, `{"status":"occupied","message":"Already booked then."}`, &fakeCalendar{})

	out, err := s.Extract(context.Background(), "Meet tomorrow at 9?")
	require.NoError(t, err)

	occupied, ok := out.(SlotOccupied)
	require.True(t, ok)
	assert.Equal(t, "Already booked then.", occupied.Message)
}

func TestExtractSuggestionsRequired(t *testing.T) {
	body := `{"suggestion_requise":true,"creneaux_proposes":[
		{"date":"2026-09-03","heure":"08:00"},
		{"date":"2026-09-03","heure":"14:00"},
		{"date":"2026-09-04","heure":"09:00"}
	]}`
	s := newScheduler(t, body, &fakeCalendar{})

	out, err := s.Extract(context.Background(), "We should meet sometime next week to go over the draft.")
	require.NoError(t, err)

	sug, ok := out.(SuggestionsRequired)
	require.True(t, ok, "expected SuggestionsRequired, got %T", out)
	require.Len(t, sug.Slots, 3)
	assert.Equal(t, Slot{Date: "2026-09-03", Time: "08:00"}, sug.Slots[0])
}

func TestExtractDurationMissingIsHardError(t *testing.T) {
	body := `[{"date":"2026-09-03","heure":"10:00","summary":"Sync","type":"visio"}]`
	s := newScheduler(t, body, &fakeCalendar{})

	_, err := s.Extract(context.Background(), "Meet Thursday at 10?")
	require.ErrorIs(t, err, ErrDurationMissing)
}

func TestExtractInvalidProposalDate(t *testing.T) {
	body := `[{"date":"next thursday","heure":"10:00","duree_minutes":30,"summary":"Sync","type":"visio"}]`
	s := newScheduler(t, body, &fakeCalendar{})

	_, err := s.Extract(context.Background(), "Meet next Thursday at 10?")
	require.ErrorIs(t, err, ErrInvalidProposal)
}

func TestExtractEmptyInput(t *testing.T) {
	s := newScheduler(t, "[]", &fakeCalendar{})

	_, err := s.Extract(context.Background(), "   ")
	require.ErrorIs(t, err, types.ErrEmptyInput)
}

func TestExtractNonJSONResponse(t *testing.T) {
	s := newScheduler(t, "I could not find any scheduling information.", &fakeCalendar{})

	_, err := s.Extract(context.Background(), "Meet tomorrow?")
	var parseErr *llm.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestFreeSlotsSkipBusyWindows(t *testing.T) {
	// the whole morning of the first candidate day is blocked
	busy := Event{
		Title: "Workshop",
		Start: time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC),
	}
	cal := &fakeCalendar{events: []Event{busy}}
	s := New(nil, cal, nil)
	s.now = func() time.Time { return time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC) }

	free, err := s.freeSlots(context.Background())
	require.NoError(t, err)

	// 7 days x 7 windows, minus the four blocked morning slots
	assert.Len(t, free, 7*len(slotHours)-4)
	assert.Equal(t, Slot{Date: "2026-03-11", Time: "14:00"}, free[0])
	for _, slot := range free {
		if slot.Date == "2026-03-11" {
			assert.NotContains(t, []string{"08:00", "09:00", "10:00", "11:00"}, slot.Time)
		}
	}
}

func TestFreeSlotsCalendarErrorDegrades(t *testing.T) {
	cal := &fakeCalendar{err: fmt.Errorf("calendar unreachable")}
	s := newScheduler(t, "[]", cal)

	// availability failure must not fail extraction
	out, err := s.Extract(context.Background(), "No meetings here.")
	require.NoError(t, err)
	assert.IsType(t, NoMeeting{}, out)
}

func TestSlotFree(t *testing.T) {
	ev := Event{
		Start: time.Date(2026, 9, 3, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 9, 3, 11, 0, 0, 0, time.UTC),
	}
	at := func(h, m int) time.Time { return time.Date(2026, 9, 3, h, m, 0, 0, time.UTC) }

	assert.True(t, slotFree(at(9, 0), at(10, 0), []Event{ev}), "adjacent before")
	assert.True(t, slotFree(at(11, 0), at(12, 0), []Event{ev}), "adjacent after")
	assert.False(t, slotFree(at(10, 30), at(11, 30), []Event{ev}), "overlap tail")
	assert.False(t, slotFree(at(9, 30), at(10, 30), []Event{ev}), "overlap head")
	assert.False(t, slotFree(at(9, 0), at(12, 0), []Event{ev}), "contains event")
}
