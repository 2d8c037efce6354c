package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/spf13/cobra"

	"github.com/mzalewski/cardlearn/internal/bootstrap"
	"github.com/mzalewski/cardlearn/internal/config"
	"github.com/mzalewski/cardlearn/internal/database"
	"github.com/mzalewski/cardlearn/internal/flashcard"
	"github.com/mzalewski/cardlearn/internal/generation"
	"github.com/mzalewski/cardlearn/internal/generation/openrouter"
	"github.com/mzalewski/cardlearn/internal/ratelimit"
	"github.com/mzalewski/cardlearn/internal/reviewlog"
	"github.com/mzalewski/cardlearn/internal/server"
	"github.com/mzalewski/cardlearn/internal/statistics"
	"github.com/mzalewski/cardlearn/internal/study"
)

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:           "cardlearn-server",
		Short:         "Flashcard HTTP API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	app := bootstrap.New()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}
	if cfg.OpenRouter.APIKey == "" {
		return fmt.Errorf("OPENROUTER_API_KEY environment variable is required")
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("database.Open() > %w", err)
	}
	app.AddShutdownHook("database", func(ctx context.Context) error {
		return db.Close()
	})
	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("database.Migrate() > %w", err)
	}

	aiClient := openrouter.NewClient(
		cfg.OpenRouter.BaseURL,
		cfg.OpenRouter.APIKey,
		cfg.OpenRouter.Model,
		time.Duration(cfg.OpenRouter.TimeoutSeconds)*time.Second,
		cfg.OpenRouter.MaxRetryAttempts,
	)
	app.AddShutdownHook("openrouter client", func(ctx context.Context) error {
		return aiClient.Close()
	})

	cards := flashcard.NewDBRepository(db)
	logs := reviewlog.NewDBRepository(db)
	sessions := generation.NewDBSessionRepository(db)
	limiter := ratelimit.NewLimiter(
		ratelimit.NewMemoryStore(),
		cfg.Generation.RateLimit.Limit,
		time.Duration(cfg.Generation.RateLimit.WindowMinutes)*time.Minute,
		nil,
	)

	// Expired rate-limit windows pile up one per user, so sweep them on
	// a schedule instead of on every request.
	scheduler := gocron.NewScheduler(time.UTC)
	if _, err := scheduler.Every(1).Hour().Do(limiter.Sweep); err != nil {
		return fmt.Errorf("scheduler.Do() > %w", err)
	}
	scheduler.StartAsync()
	app.AddShutdownHook("scheduler", func(ctx context.Context) error {
		scheduler.Stop()
		return nil
	})

	handler := server.NewServer(
		cards,
		study.NewService(cards, logs, nil),
		generation.NewService(aiClient, sessions, nil),
		statistics.NewService(cards, sessions, nil),
		limiter,
		server.NewStaticTokenAuthenticator(cfg.Server.AuthTokens),
		cfg,
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: handler,
	}
	app.AddShutdownHook("http server", srv.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		slog.Info("Starting server", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}
