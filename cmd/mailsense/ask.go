package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mailsense/internal/rag"
)

var (
	askFile    string
	askTopK    int
	askCorrect bool
	askRebuild bool
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a question grounded in a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(askFile)
		if err != nil {
			return err
		}

		indexes, err := newIndexManager()
		if err != nil {
			return err
		}
		engine := rag.NewEngine(indexes, newLLMClient(), cfg.Chunking.Size, cfg.Chunking.Overlap, logger)

		result, err := engine.Answer(cmd.Context(), rag.AnswerRequest{
			Question:        args[0],
			Text:            text,
			TopK:            askTopK,
			ApplyCorrection: askCorrect,
			ForceRebuild:    askRebuild,
		})
		if err != nil {
			return fmt.Errorf("answering question: %w", err)
		}
		return printJSON(result)
	},
}

func init() {
	askCmd.Flags().StringVarP(&askFile, "file", "f", "", "document file ('-' or empty reads stdin)")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", rag.DefaultTopK, "number of chunks to retrieve")
	askCmd.Flags().BoolVar(&askCorrect, "correct", true, "run a best-effort rewrite pass over the answer")
	askCmd.Flags().BoolVar(&askRebuild, "rebuild", false, "rebuild the index even when one exists")
}
