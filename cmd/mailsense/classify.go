package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mailsense/internal/classify"
)

var (
	classifyFile   string
	classifyThemes int
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Cluster a document into labelled themes",
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(classifyFile)
		if err != nil {
			return err
		}

		indexes, err := newIndexManager()
		if err != nil {
			return err
		}
		classifier := classify.New(indexes, newLLMClient(), cfg.Chunking.Size, cfg.Chunking.Overlap, logger)

		result, err := classifier.Classify(cmd.Context(), classify.Request{
			Text: text,
			K:    classifyThemes,
		})
		if err != nil {
			return fmt.Errorf("classifying document: %w", err)
		}
		return printJSON(result)
	},
}

func init() {
	classifyCmd.Flags().StringVarP(&classifyFile, "file", "f", "", "document file ('-' or empty reads stdin)")
	classifyCmd.Flags().IntVarP(&classifyThemes, "themes", "n", classify.DefaultK, "number of themes to extract")
}
