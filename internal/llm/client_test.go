package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func completionBody(content string) string {
	b, _ := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	})
	return string(b)
}

func TestGenerateSuccess(t *testing.T) {
	srv := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "mistral-small", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)

		_, _ = w.Write([]byte(completionBody("  the answer  ")))
	})

	c := NewClient(Config{Endpoint: srv.URL, APIKey: "test-key"})
	got, err := c.Generate(context.Background(), GenerationRequest{Prompt: "question"})
	require.NoError(t, err)
	assert.Equal(t, "the answer", got)
}

func TestGenerateErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "auth rejected", status: http.StatusUnauthorized, body: "{}", wantErr: ErrAuthentication},
		{name: "unknown model", status: http.StatusNotFound, body: "{}", wantErr: ErrModelNotFound},
		{name: "missing choices", status: http.StatusOK, body: `{"choices":[]}`, wantErr: ErrMalformedResponse},
		{name: "not json", status: http.StatusOK, body: "definitely not json", wantErr: ErrMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			c := NewClient(Config{Endpoint: srv.URL, APIKey: "k"})
			_, err := c.Generate(context.Background(), GenerationRequest{Prompt: "p"})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.False(t, IsRetryable(err))
		})
	}
}

func TestGenerateServerErrorIsTransport(t *testing.T) {
	srv := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	c := NewClient(Config{Endpoint: srv.URL, APIKey: "k"})
	_, err := c.Generate(context.Background(), GenerationRequest{Prompt: "p"})

	var te *TransportError
	assert.True(t, errors.As(err, &te))
	assert.True(t, IsRetryable(err))
}

func TestGenerateTimeoutIsTransport(t *testing.T) {
	srv := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(completionBody("late")))
	})

	c := NewClient(Config{Endpoint: srv.URL, APIKey: "k", Timeout: 20 * time.Millisecond})
	_, err := c.Generate(context.Background(), GenerationRequest{Prompt: "p"})

	var te *TransportError
	assert.True(t, errors.As(err, &te))
}

func TestGenerateEmptyPrompt(t *testing.T) {
	c := NewClient(Config{Endpoint: "http://localhost:0", APIKey: "k"})
	_, err := c.Generate(context.Background(), GenerationRequest{Prompt: "   "})
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestRetryStopsOnNonRetryable(t *testing.T) {
	calls := 0
	_, err := Retry(context.Background(), DefaultRetryConfig(), func() (string, error) {
		calls++
		return "", ErrAuthentication
	})
	assert.ErrorIs(t, err, ErrAuthentication)
	assert.Equal(t, 1, calls)
}

func TestRetryRecoversTransientFailure(t *testing.T) {
	calls := 0
	cfg := RetryConfig{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, Multiplier: 2}
	got, err := Retry(context.Background(), cfg, func() (string, error) {
		calls++
		if calls < 3 {
			return "", &TransportError{Err: errors.New("flaky")}
		}
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, calls)
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "bare object", raw: `{"a":1}`},
		{name: "object in prose", raw: "Sure! Here is the JSON you asked for:\n{\"a\": 1}\nHope that helps."},
		{name: "array in fences", raw: "```json\n[{\"a\":1},{\"a\":2}]\n```"},
		{name: "no json at all", raw: "I could not find any tasks.", wantErr: true},
		{name: "truncated", raw: `{"a": 1`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v interface{}
			err := ExtractJSON(tt.raw, &v)
			if tt.wantErr {
				var pe *ParseError
				require.Error(t, err)
				assert.True(t, errors.As(err, &pe))
				assert.Equal(t, tt.raw, pe.Raw)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
