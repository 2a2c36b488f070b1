package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mailsense/internal/translate"
)

var translateFile string

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Detect the email language and translate French text to English",
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(translateFile)
		if err != nil {
			return err
		}

		translator := translate.New(newLLMClient(), cfg.TranslationCacheDir(), logger)

		lang, isFrench := translator.DetectLanguage(cmd.Context(), text)
		translated := text
		if isFrench {
			translated, err = translator.ToEnglish(cmd.Context(), text)
			if err != nil {
				return fmt.Errorf("translating email: %w", err)
			}
		}

		return printJSON(map[string]interface{}{
			"language":  lang,
			"is_french": isFrench,
			"text":      translated,
		})
	},
}

func init() {
	translateCmd.Flags().StringVarP(&translateFile, "file", "f", "", "email file ('-' or empty reads stdin)")
}
