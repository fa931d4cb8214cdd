package cmd

import (
	"context"

	"media-review/internal/seed"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedDir string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load fixture data from CSV files",
	Long: `Load fixture data from CSV files into the database.

Expects category.csv, genre.csv, users.csv, titles.csv, genre_title.csv,
review.csv and comments.csv in the data directory. Missing files are
skipped, so partial fixture sets work.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, db, repos, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()
		defer db.Close()

		loader := seed.NewLoader(repos, logger)
		if err := loader.Load(context.Background(), seedDir); err != nil {
			logger.Error("Seed failed", zap.Error(err))
			return err
		}

		logger.Info("Seed completed", zap.String("dir", seedDir))
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedDir, "data-dir", "./data", "Directory containing the CSV fixture files")
	rootCmd.AddCommand(seedCmd)
}
