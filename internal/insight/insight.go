package insight

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"mailsense/internal/llm"
	"mailsense/pkg/types"
)

// Token budgets per operation; summaries are short, task and reply
// extraction can carry longer structured output
const (
	summaryMaxTokens  = 1024
	tasksMaxTokens    = 2048
	replyMaxTokens    = 2048
	analysisMaxTokens = 2048
)

// Summary is a condensed view of one email.
type Summary struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"key_points"`
}

// Task is a single actionable item detected in an email. Assignee and
// Deadline are nil when the email does not specify them.
type Task struct {
	TaskDescription string  `json:"task_description"`
	Assignee        *string `json:"assignee"`
	Deadline        *string `json:"deadline"`
	Priority        string  `json:"priority"` // High, Medium or Low
}

// TaskList wraps the detected tasks; an email with no action items has an
// empty Tasks slice, not a nil result.
type TaskList struct {
	Tasks []Task `json:"tasks"`
}

// Reply is a generated response to an email.
type Reply struct {
	Reply string `json:"reply"`
	Tone  string `json:"tone"` // Professional, Casual or Formal
}

// Urgency carries the urgency verdict with its justification.
type Urgency struct {
	IsUrgent      bool   `json:"is_urgent"`
	Justification string `json:"justification"`
}

// Analysis is the semantic profile of one email.
type Analysis struct {
	MainSubject  string   `json:"main_subject"`
	ShortSummary string   `json:"short_summary"`
	EmailType    string   `json:"email_type"`
	Participants []string `json:"participants"`
	Sentiment    string   `json:"sentiment"` // Positive, Negative or Neutral
	Urgency      Urgency  `json:"urgency"`
}

// Analyzer runs the semantic email operations against the generation
// client. It is stateless and safe for concurrent use.
type Analyzer struct {
	client *llm.Client
	logger *log.Logger
}

func New(client *llm.Client, logger *log.Logger) *Analyzer {
	if logger == nil {
		logger = log.Default()
	}
	return &Analyzer{client: client, logger: logger}
}

// Summarize produces a 1-2 sentence summary plus key points.
func (a *Analyzer) Summarize(ctx context.Context, text string) (*Summary, error) {
	if strings.TrimSpace(text) == "" {
		return nil, types.ErrEmptyInput
	}
	raw, err := a.generate(ctx, summarizePrompt(text), summaryMaxTokens)
	if err != nil {
		return nil, err
	}
	var out Summary
	if err := llm.ExtractJSON(raw, &out); err != nil {
		return nil, fmt.Errorf("parsing summary: %w", err)
	}
	if out.KeyPoints == nil {
		out.KeyPoints = []string{}
	}
	return &out, nil
}

// DetectTasks extracts actionable items with assignee, deadline and
// priority.
func (a *Analyzer) DetectTasks(ctx context.Context, text string) (*TaskList, error) {
	if strings.TrimSpace(text) == "" {
		return nil, types.ErrEmptyInput
	}
	raw, err := a.generate(ctx, detectTasksPrompt(text), tasksMaxTokens)
	if err != nil {
		return nil, err
	}
	var out TaskList
	if err := llm.ExtractJSON(raw, &out); err != nil {
		return nil, fmt.Errorf("parsing tasks: %w", err)
	}
	if out.Tasks == nil {
		out.Tasks = []Task{}
	}
	return &out, nil
}

// AutoReply drafts a contextually appropriate response. When the model
// returns prose instead of the requested JSON, the prose itself becomes
// the reply with a Professional tone rather than failing the operation.
func (a *Analyzer) AutoReply(ctx context.Context, text string) (*Reply, error) {
	if strings.TrimSpace(text) == "" {
		return nil, types.ErrEmptyInput
	}
	raw, err := a.generate(ctx, autoReplyPrompt(text), replyMaxTokens)
	if err != nil {
		return nil, err
	}
	var out Reply
	if err := llm.ExtractJSON(raw, &out); err != nil {
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			a.logger.Warn("reply was not valid JSON, using raw model output")
			return &Reply{Reply: trimmed, Tone: "Professional"}, nil
		}
		return nil, fmt.Errorf("parsing reply: %w", err)
	}
	if out.Reply == "" {
		return nil, &llm.ParseError{Raw: raw, Err: fmt.Errorf("reply field missing")}
	}
	return &out, nil
}

// Analyze extracts subject, type, participants, sentiment and urgency.
// The sender, taken to be the last non-empty line, is excluded from the
// participant list.
func (a *Analyzer) Analyze(ctx context.Context, text string) (*Analysis, error) {
	if strings.TrimSpace(text) == "" {
		return nil, types.ErrEmptyInput
	}
	raw, err := a.generate(ctx, analyzePrompt(text, lastLine(text)), analysisMaxTokens)
	if err != nil {
		return nil, err
	}
	var out Analysis
	if err := llm.ExtractJSON(raw, &out); err != nil {
		return nil, fmt.Errorf("parsing analysis: %w", err)
	}
	if out.Participants == nil {
		out.Participants = []string{}
	}
	return &out, nil
}

func (a *Analyzer) generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	return llm.Retry(ctx, llm.DefaultRetryConfig(), func() (string, error) {
		return a.client.Generate(ctx, llm.GenerationRequest{
			Prompt:    prompt,
			MaxTokens: maxTokens,
		})
	})
}

// lastLine returns the last non-empty line, used as the probable sender
// signature
func lastLine(text string) string {
	lines := strings.Split(text, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}
