package cmd

import (
	"fmt"
	"os"

	"movie-catalog/internal/data/repository"
	"movie-catalog/pkg/apiclient"
	"movie-catalog/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string

	config *utils.Config
	logger *zap.Logger
	client *apiclient.Client
	repo   *repository.Repository
)

var rootCmd = &cobra.Command{
	Use:   "movie-catalog",
	Short: "Register, edit, view and delete movies of a remote catalog",
	Long: `movie-catalog is a client for a REST movie catalog.

It runs either as an HTTP session API for a browser front end (serve)
or as an interactive terminal UI (list, new, edit, view).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		config, err = utils.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		// the terminal UI owns stdout, so only the server logs to console
		console := cmd.Name() == serveCmd.Name()
		logger, err = utils.InitLogger(config.App.LogPath, config.App.Debug, console)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to init logger: %v. Using production logger.\n", err)
			logger, _ = zap.NewProduction()
		}

		logger.Info("Starting application",
			zap.String("app", config.App.Name),
			zap.String("command", cmd.Name()),
			zap.String("api", config.API.BaseURL),
			zap.Bool("debug", config.App.Debug),
		)

		client, err = apiclient.InitClient(config.API)
		if err != nil {
			logger.Error("Invalid movie API configuration", zap.Error(err))
			return err
		}

		repo = repository.NewRepository(client, config.API.Resource, logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".env", "path to the .env config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(viewCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
