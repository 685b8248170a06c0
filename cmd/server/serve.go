package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"mockgram/internal/adapters/cache"
	"mockgram/internal/adapters/placeholder"
	"mockgram/internal/adapters/web"
	"mockgram/internal/config"
	"mockgram/internal/mockdata"
	"mockgram/internal/usecases"
	"mockgram/pkg/log"
	"mockgram/pkg/log/transporters"
)

const (
	profilePollInterval = 5 * time.Second
	shutdownTimeout     = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		logger := log.New(cfg.LogLevel, transporters.NewStdout())
		log.SetDefault(logger)
		defer logger.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return serve(ctx, cfg)
	},
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	if envFile == "" {
		return config.FromEnv()
	}
	return config.Load(envFile)
}

func serve(ctx context.Context, cfg config.Config) error {
	profiles, err := config.LoadProfile(cfg.ProfilePath, profilePollInterval)
	if err != nil {
		return errors.Wrap(err, "loading profile")
	}
	defer profiles.Close()

	// Initialize adapters
	views := cache.NewViewStore(cfg.ViewTTL)
	defer views.Close()

	images := placeholder.NewRenderer(cfg.PlaceholderMaxSize, cfg.ViewTTL)
	defer images.Close()

	rateLimiter := web.NewRateLimiter(cfg.ActionRateLimit, cfg.ActionRateWindow)
	defer rateLimiter.Close()

	// Initialize use cases
	mount := usecases.NewMountProfileUseCase(views, profiles, cfg.Generator(), uuid.NewString,
		cfg.PostCount, mockdata.HighlightImageURL)
	interact := usecases.NewInteractUseCase(views)

	app := web.NewApp(web.NewHandlers(mount, interact, images), rateLimiter, "./static")

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.GlobalInfo("starting mockgram", "port", cfg.Port, "seeded", cfg.Seeded, "post_count", cfg.PostCount)
		return app.Listen(":" + cfg.Port)
	})
	g.Go(func() error {
		<-gCtx.Done()
		log.GlobalInfo("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	return g.Wait()
}
