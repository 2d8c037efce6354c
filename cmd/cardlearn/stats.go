package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mzalewski/cardlearn/internal/cli"
	"github.com/mzalewski/cardlearn/internal/flashcard"
	"github.com/mzalewski/cardlearn/internal/generation"
	"github.com/mzalewski/cardlearn/internal/statistics"
)

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show collection and study statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			db, err := openDatabase(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			service := statistics.NewService(
				flashcard.NewDBRepository(db),
				generation.NewDBSessionRepository(db),
				nil,
			)
			profile, err := service.Profile(cmd.Context(), userID)
			if err != nil {
				return fmt.Errorf("statistics.Profile() > %w", err)
			}

			cli.RenderProfile(os.Stdout, profile)
			return nil
		},
	}
}
