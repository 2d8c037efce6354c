package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mzalewski/cardlearn/internal/cli"
	"github.com/mzalewski/cardlearn/internal/flashcard"
	"github.com/mzalewski/cardlearn/internal/reviewlog"
	"github.com/mzalewski/cardlearn/internal/study"
)

func newStudyCommand() *cobra.Command {
	var limit int
	command := &cobra.Command{
		Use:   "study",
		Short: "Review the cards that are due in an interactive session",
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
			if limit > cfg.Study.MaxSessionLimit {
				limit = cfg.Study.MaxSessionLimit
			}

			repo := flashcard.NewDBRepository(db)
			logs := reviewlog.NewDBRepository(db)
			studyCLI := cli.NewStudyCLI(study.NewService(repo, logs, nil), userID, limit)
			fmt.Println("Interactive study session started!")
			return studyCLI.Run(cmd.Context(), studyCLI)
		},
	}
	command.Flags().IntVar(&limit, "limit", 0, "cards per session (defaults to the configured session size)")

	return command
}
