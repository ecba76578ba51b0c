package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Check credentials and spreadsheet access",
	Long: `auth runs the OAuth flow if no token is cached yet, then reads the
spreadsheet title to confirm access. With a service account it prints the
address the spreadsheet has to be shared with.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "=== Habit Tracker Authentication ===")
		fmt.Fprintln(out)

		client, auth, err := connect(cmd.Context())
		if err != nil {
			return err
		}

		title, err := client.Title(cmd.Context())
		if err != nil {
			if email := auth.ServiceAccountEmail(); email != "" {
				return fmt.Errorf("failed to access spreadsheet (is it shared with %s?): %w", email, err)
			}
			return fmt.Errorf("failed to access spreadsheet: %w", err)
		}

		fmt.Fprintln(out, "✅ Authentication successful!")
		fmt.Fprintf(out, "📊 Connected to spreadsheet: %s\n", title)
		if email := auth.ServiceAccountEmail(); email != "" {
			fmt.Fprintf(out, "🔑 Service account: %s\n", email)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, "You can now use the habit commands:")
		fmt.Fprintln(out, "  habit          - Start a tracking session")
		fmt.Fprintln(out, "  habit summary  - Show this month's progress")
		fmt.Fprintln(out, "  habit journal  - Show recent spreadsheet updates")
		return nil
	},
}
