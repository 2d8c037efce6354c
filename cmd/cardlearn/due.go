package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mzalewski/cardlearn/internal/cli"
	"github.com/mzalewski/cardlearn/internal/flashcard"
	"github.com/mzalewski/cardlearn/internal/reviewlog"
	"github.com/mzalewski/cardlearn/internal/study"
)

func newDueCommand() *cobra.Command {
	var limit int
	command := &cobra.Command{
		Use:   "due",
		Short: "List the cards that are due for review",
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

			if limit <= 0 {
				limit = cfg.Study.DefaultSessionLimit
			}

			service := study.NewService(flashcard.NewDBRepository(db), reviewlog.NewDBRepository(db), nil)
			session, err := service.GetDueSession(cmd.Context(), userID, limit)
			if err != nil {
				return fmt.Errorf("study.GetDueSession() > %w", err)
			}

			cli.RenderDue(os.Stdout, session)
			return nil
		},
	}
	command.Flags().IntVar(&limit, "limit", 0, "maximum cards to list")

	return command
}
