package main

import (
	"fmt"
	"io"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/digitaldrywood/habittracker/internal/journal"
)

var journalLimit int

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show recent spreadsheet updates",
	Long: `journal lists the batches most recently sent to the spreadsheet, newest
first, including failed ones. A failed template-values entry means a month
grid was inserted without its labels.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := journal.New(cfg.JournalPath, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		batches, err := db.Recent(cmd.Context(), journalLimit)
		if err != nil {
			return err
		}

		printBatches(cmd.OutOrStdout(), batches, cfg.Location())
		return nil
	},
}

func init() {
	journalCmd.Flags().IntVarP(&journalLimit, "number", "n", 20, "Number of entries to show")
}

func printBatches(w io.Writer, batches []journal.Batch, loc *time.Location) {
	if len(batches) == 0 {
		fmt.Fprintln(w, "No spreadsheet updates recorded yet.")
		return
	}

	for _, b := range batches {
		status := "ok"
		if !b.OK {
			status = "FAILED"
			if b.Error.Valid {
				status += ": " + b.Error.String
			}
		}
		fmt.Fprintf(w, "%s  %s  %s %s %s %d/%d  %s\n",
			b.CreatedAt.In(loc).Format("2006-01-02 15:04"),
			runewidth.FillRight(shortSession(b.Session), 8),
			runewidth.FillRight(string(b.Kind), 18),
			runewidth.FillRight(b.Sheet, 8),
			runewidth.FillRight(runewidth.Truncate(b.Label, 20, "…"), 20),
			b.CellsUpdated, b.CellsRequested,
			status)
	}
}

func shortSession(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
