package translate

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"mailsense/internal/llm"
	"mailsense/pkg/types"
)

const (
	// detectSampleLen caps the text sent for language detection; the
	// opening of an email is enough to tell French from English
	detectSampleLen = 500

	detectMaxTokens = 10
)

// Language is a detected source language.
type Language string

const (
	LanguageFrench  Language = "French"
	LanguageEnglish Language = "English"
	LanguageUnknown Language = "Unknown"
)

// Translator detects email language and translates French text to
// English, caching translations on disk keyed by content hash.
type Translator struct {
	client   *llm.Client
	cacheDir string
	logger   *log.Logger
}

// New creates a Translator writing its cache under cacheDir. The
// directory is created lazily on the first cache write.
func New(client *llm.Client, cacheDir string, logger *log.Logger) *Translator {
	if logger == nil {
		logger = log.Default()
	}
	return &Translator{client: client, cacheDir: cacheDir, logger: logger}
}

// DetectLanguage reports whether the text is primarily French or English.
// A detection failure degrades to Unknown rather than failing the
// caller's pipeline; downstream treats Unknown as English.
func (t *Translator) DetectLanguage(ctx context.Context, text string) (Language, bool) {
	sample := text
	if runes := []rune(sample); len(runes) > detectSampleLen {
		sample = string(runes[:detectSampleLen])
	}

	detected, err := t.client.Generate(ctx, llm.GenerationRequest{
		Prompt:    detectPrompt(sample),
		MaxTokens: detectMaxTokens,
	})
	if err != nil {
		t.logger.Warn("language detection failed", "err", err)
		return LanguageUnknown, false
	}

	lower := strings.ToLower(strings.TrimSpace(detected))
	switch {
	case strings.Contains(lower, "french"), strings.Contains(lower, "français"):
		return LanguageFrench, true
	case strings.Contains(lower, "english"), strings.Contains(lower, "anglais"):
		return LanguageEnglish, false
	default:
		return LanguageEnglish, false
	}
}

// ToEnglish translates French text to English. Identical input hits the
// file cache and skips the model call entirely. Generation failures are
// surfaced; only an empty model response falls back to the source text.
func (t *Translator) ToEnglish(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", types.ErrEmptyInput
	}

	cachePath := t.cachePath(text)
	if cached, err := os.ReadFile(cachePath); err == nil {
		t.logger.Debug("translation cache hit", "file", filepath.Base(cachePath))
		return string(cached), nil
	}

	// generous budget: translations run close to source length
	maxTokens := len(strings.Fields(text))*2 + 100

	translated, err := llm.Retry(ctx, llm.DefaultRetryConfig(), func() (string, error) {
		return t.client.Generate(ctx, llm.GenerationRequest{
			Prompt:    translatePrompt(text),
			MaxTokens: maxTokens,
		})
	})
	if err != nil {
		return "", fmt.Errorf("translating text: %w", err)
	}

	result := strings.TrimSpace(translated)
	if result == "" {
		return text, nil
	}

	if err := t.writeCache(cachePath, result); err != nil {
		t.logger.Warn("writing translation cache failed", "err", err)
	}
	return result, nil
}

func (t *Translator) cachePath(text string) string {
	sum := sha1.Sum([]byte(text))
	name := "translation_" + hex.EncodeToString(sum[:]) + ".txt"
	return filepath.Join(t.cacheDir, name)
}

func (t *Translator) writeCache(path, content string) error {
	if err := os.MkdirAll(t.cacheDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
