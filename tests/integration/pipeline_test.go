package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailsense/internal/classify"
	"mailsense/internal/embedder"
	"mailsense/internal/insight"
	"mailsense/internal/llm"
	"mailsense/internal/rag"
	"mailsense/internal/translate"
	"mailsense/internal/vectorstore"
)

// fakeLLM routes prompts to canned responses based on which pipeline
// stage produced them.
type fakeLLM struct {
	calls int
}

func (f *fakeLLM) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.calls++
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		prompt := req.Messages[0].Content

		var content string
		switch {
		case strings.Contains(prompt, "--- QUESTION ---"):
			content = "The cat sat on the mat."
		case strings.Contains(prompt, "theme label"):
			content = "Household pets"
		case strings.Contains(prompt, "email summarizer"):
			content = `{"summary":"A short note about pets.","key_points":["The cat sat"]}`
		case strings.Contains(prompt, "French or English"):
			content = "English"
		default:
			content = "{}"
		}
		_, _ = fmt.Fprintf(w, `{"choices":[{"message":{"content":%q}}]}`, content)
	}
}

func newClient(t *testing.T, fake *fakeLLM) *llm.Client {
	t.Helper()
	srv := httptest.NewServer(fake.handler(t))
	t.Cleanup(srv.Close)
	return llm.NewClient(llm.Config{Endpoint: srv.URL, APIKey: "test"})
}

// TestAnswerSurvivesRestart builds an index, then answers again through a
// fresh manager over the same data directory and verifies the persisted
// index is reused instead of rebuilt.
func TestAnswerSurvivesRestart(t *testing.T) {
	fake := &fakeLLM{}
	client := newClient(t, fake)
	dataDir := t.TempDir()
	ctx := context.Background()

	text := "The cat sat on the mat. The dog slept by the door. The fish swam in circles."

	m1, err := vectorstore.NewManager(dataDir, embedder.NewHashedProvider(nil), nil)
	require.NoError(t, err)
	first, err := rag.NewEngine(m1, client, 0, 0, nil).Answer(ctx, rag.AnswerRequest{
		Question: "What did the cat do?",
		Text:     text,
	})
	require.NoError(t, err)
	assert.Contains(t, first.Answer, "sat")

	// a fresh manager simulates a process restart; the text argument is
	// deliberately different and must be ignored in favor of the
	// persisted index
	m2, err := vectorstore.NewManager(dataDir, embedder.NewHashedProvider(nil), nil)
	require.NoError(t, err)
	second, err := rag.NewEngine(m2, client, 0, 0, nil).Answer(ctx, rag.AnswerRequest{
		Question: "What did the cat do?",
		Text:     "completely different text that must not be indexed",
	})
	require.NoError(t, err)
	assert.Equal(t, first.TotalChunks, second.TotalChunks)
}

// TestAnswerAndClassifyNamespacesIsolated runs question answering and
// classification over different documents through one manager and checks
// that neither operation disturbs the other's index.
func TestAnswerAndClassifyNamespacesIsolated(t *testing.T) {
	fake := &fakeLLM{}
	client := newClient(t, fake)
	ctx := context.Background()

	m, err := vectorstore.NewManager(t.TempDir(), embedder.NewHashedProvider(nil), nil)
	require.NoError(t, err)

	engine := rag.NewEngine(m, client, 0, 0, nil)
	classifier := classify.New(m, client, 0, 0, nil)

	answer, err := engine.Answer(ctx, rag.AnswerRequest{
		Question: "What did the cat do?",
		Text:     "The cat sat on the mat. The dog slept by the door.",
	})
	require.NoError(t, err)

	themes, err := classifier.Classify(ctx, classify.Request{
		Text: "Cats and dogs around the house.",
		K:    1,
	})
	require.NoError(t, err)
	require.Len(t, themes.Themes, 1)
	assert.Equal(t, "Household pets", themes.Themes[0].Label)

	// answering again still loads the qa index untouched
	again, err := engine.Answer(ctx, rag.AnswerRequest{
		Question: "What did the cat do?",
		Text:     "ignored, index already exists",
	})
	require.NoError(t, err)
	assert.Equal(t, answer.TotalChunks, again.TotalChunks)
}

// TestInsightAndTranslationFlow chains language detection with
// summarization the way a caller processing an inbound email would.
func TestInsightAndTranslationFlow(t *testing.T) {
	fake := &fakeLLM{}
	client := newClient(t, fake)
	ctx := context.Background()

	translator := translate.New(client, t.TempDir(), nil)
	analyzer := insight.New(client, nil)

	text := "The cat sat on the mat all afternoon.\n\nBest,\nDana"

	lang, isFrench := translator.DetectLanguage(ctx, text)
	require.False(t, isFrench)
	assert.Equal(t, translate.LanguageEnglish, lang)

	summary, err := analyzer.Summarize(ctx, text)
	require.NoError(t, err)
	assert.Equal(t, "A short note about pets.", summary.Summary)
	assert.Equal(t, []string{"The cat sat"}, summary.KeyPoints)
}
