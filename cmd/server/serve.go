package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nitesh01487/natours/internal/adapter"
	"github.com/nitesh01487/natours/internal/cache"
	"github.com/nitesh01487/natours/internal/config"
	"github.com/nitesh01487/natours/internal/handler"
	"github.com/nitesh01487/natours/internal/logger"
	"github.com/nitesh01487/natours/internal/server"
	"github.com/nitesh01487/natours/internal/service"
	"github.com/nitesh01487/natours/internal/store"
	"github.com/nitesh01487/natours/internal/workers"
	"github.com/nitesh01487/natours/models"
)

func newServeCmd(flags *config.FlagValues, buildInfo models.AppBuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server and the background workers. Usage:

	natours serve --address 0.0.0.0:8080 --database postgres://...
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd, flags, buildInfo)
		},
	}
}

func serve(cmd *cobra.Command, flags *config.FlagValues, buildInfo models.AppBuildInfo) error {
	cfg, err := config.GetStructuredConfig(flags.Config())
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}
	cfg.App.Version = buildInfo.BuildVersion()

	log := logger.NewLogger("natours-server", logger.WithLevel(logger.LevelForEnv(cfg.App.Env)))
	log.Info().
		Str("version", buildInfo.BuildVersion()).
		Str("commit", buildInfo.BuildCommit()).
		Str("env", cfg.App.Env).
		Str("address", cfg.Server.HTTPAddress).
		Msg("starting natours")

	ctx := cmd.Context()

	repositories, err := store.NewRepositories(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Err(err).Msg("error creating repositories")
		return err
	}
	defer repositories.Close()

	statsCache, err := cache.New(ctx, cfg.Storage.Cache, log)
	if err != nil {
		log.Err(err).Msg("error creating aggregate cache")
		return err
	}
	defer statsCache.Close()

	payment, err := adapter.NewPaymentGateway(cfg.Adapter.Payment, log)
	if err != nil {
		log.Err(err).Msg("error creating payment gateway")
		return err
	}

	mailer, err := adapter.NewMailer(cfg.Adapter.Mailer, log)
	if err != nil {
		log.Err(err).Msg("error creating mailer")
		return err
	}
	defer mailer.Close()

	services, err := service.NewServices(repositories, service.Dependencies{
		Payment:    payment,
		Mailer:     mailer,
		StatsCache: statsCache,
	}, *cfg, log)
	if err != nil {
		log.Err(err).Msg("error creating services")
		return err
	}

	handlers, err := handler.NewHandlers(services, *cfg, log)
	if err != nil {
		log.Err(err).Msg("error creating handlers")
		return err
	}

	jobs := workers.NewWorkers(cfg.Workers, services.RatingAggregator, log)

	srv, err := server.NewServer(handlers, jobs, cfg.Server, log)
	if err != nil {
		log.Err(err).Msg("error creating server")
		return err
	}

	return srv.RunServer(ctx)
}
