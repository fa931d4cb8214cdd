package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command; running the binary without a
// subcommand starts the API server.
var rootCmd = &cobra.Command{
	Use:   "media-review",
	Short: "Media review API server",
	Long: `Media review API server.

A REST backend for a catalogue of reviewable titles: categories, genres,
titles with aggregate ratings, user reviews and comments, plus email
confirmation-code sign-up and role-based moderation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
