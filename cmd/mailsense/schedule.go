package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mailsense/internal/schedule"
)

var scheduleFile string

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Detect meeting proposals in an email and check them for conflicts",
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(scheduleFile)
		if err != nil {
			return err
		}

		// no calendar integration on the CLI, so every slot reads as free
		scheduler := schedule.New(newLLMClient(), schedule.EmptyCalendar{}, logger)

		outcome, err := scheduler.Extract(cmd.Context(), text)
		if err != nil {
			return fmt.Errorf("extracting schedule: %w", err)
		}

		switch o := outcome.(type) {
		case schedule.NoMeeting:
			return printJSON(map[string]interface{}{"outcome": "no_meeting"})
		case schedule.MeetingProposed:
			return printJSON(map[string]interface{}{"outcome": "meeting_proposed", "meetings": o.Meetings})
		case schedule.SlotOccupied:
			return printJSON(map[string]interface{}{"outcome": "slot_occupied", "message": o.Message})
		case schedule.SuggestionsRequired:
			return printJSON(map[string]interface{}{"outcome": "suggestions_required", "slots": o.Slots})
		default:
			return fmt.Errorf("unknown scheduling outcome %T", outcome)
		}
	},
}

func init() {
	scheduleCmd.Flags().StringVarP(&scheduleFile, "file", "f", "", "email file ('-' or empty reads stdin)")
}
