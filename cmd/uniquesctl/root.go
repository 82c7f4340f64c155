package main

import (
	"fmt"

	"github.com/dom/poe-uniques-server/internal/config"
	"github.com/dom/poe-uniques-server/internal/repository"
	"github.com/dom/poe-uniques-server/internal/repository/postgres"
	"github.com/dom/poe-uniques-server/internal/service"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// rootCmd represents the uniquesctl command
var rootCmd = &cobra.Command{
	Use:           "uniquesctl",
	Short:         "Import and maintenance commands for the uniques catalog",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	cobra.OnInitialize(func() {
		_ = godotenv.Load()
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = log.With().Str("app", "uniquesctl").Logger()
	})
}

// setup loads config and wires the service layer against the database.
func setup() (*service.Services, *repository.Repositories, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}

	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connecting to database: %w", err)
	}

	repos := postgres.NewRepositories(db)
	services := service.NewServices(repos, postgres.NewTransactor(db), cfg)
	return services, repos, cfg, nil
}
