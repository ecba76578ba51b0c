package main

import (
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show this month's progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, closeJournal, err := newTracker(cmd.Context())
		if err != nil {
			return err
		}
		defer closeJournal()

		return t.Summary(cmd.Context())
	},
}
