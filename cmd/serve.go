package cmd

import (
	"fmt"
	"log"
	"net/http"

	"media-review/internal/data/repository"
	"media-review/internal/wire"
	"media-review/pkg/database"
	"media-review/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// bootstrap loads config and brings up logging, the database pool and
// the repositories. The caller owns db.Close and logger.Sync.
func bootstrap() (*utils.Config, *zap.Logger, database.PgxIface, *repository.Repository, error) {
	config, err := utils.LoadConfig()
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Error("Failed to connect to database", zap.Error(err))
		logger.Sync()
		return nil, nil, nil, nil, fmt.Errorf("connect database: %w", err)
	}

	repos := repository.NewRepository(db, logger)

	return config, logger, db, repos, nil
}

func runServe() error {
	config, logger, db, repos, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer db.Close()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	app, err := wire.Wiring(repos, config, logger)
	if err != nil {
		logger.Error("Failed to wire application", zap.Error(err))
		return err
	}

	addr := fmt.Sprintf(":%s", config.App.Port)
	logger.Info("Starting HTTP server", zap.String("addr", addr))
	fmt.Printf("Server running on http://localhost%s\n", addr)

	if err := http.ListenAndServe(addr, app.Router); err != nil {
		logger.Error("Server error", zap.Error(err))
		return err
	}

	return nil
}
