package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mailsense/internal/insight"
)

var (
	analyzeFile    string
	analyzeSummary bool
	analyzeTasks   bool
	analyzeReply   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run semantic analysis over an email",
	Long: `Analyze extracts the subject, type, participants, sentiment and
urgency of an email. Optional flags add a summary, detected tasks and a
drafted reply to the output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(analyzeFile)
		if err != nil {
			return err
		}

		analyzer := insight.New(newLLMClient(), logger)
		ctx := cmd.Context()

		analysis, err := analyzer.Analyze(ctx, text)
		if err != nil {
			return fmt.Errorf("analyzing email: %w", err)
		}

		out := map[string]interface{}{"analysis": analysis}
		if analyzeSummary {
			summary, err := analyzer.Summarize(ctx, text)
			if err != nil {
				return fmt.Errorf("summarizing email: %w", err)
			}
			out["summary"] = summary
		}
		if analyzeTasks {
			tasks, err := analyzer.DetectTasks(ctx, text)
			if err != nil {
				return fmt.Errorf("detecting tasks: %w", err)
			}
			out["tasks"] = tasks.Tasks
		}
		if analyzeReply {
			reply, err := analyzer.AutoReply(ctx, text)
			if err != nil {
				return fmt.Errorf("drafting reply: %w", err)
			}
			out["reply"] = reply
		}
		return printJSON(out)
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "email file ('-' or empty reads stdin)")
	analyzeCmd.Flags().BoolVar(&analyzeSummary, "summary", false, "include a summary with key points")
	analyzeCmd.Flags().BoolVar(&analyzeTasks, "tasks", false, "include detected tasks")
	analyzeCmd.Flags().BoolVar(&analyzeReply, "reply", false, "include a drafted reply")
}
