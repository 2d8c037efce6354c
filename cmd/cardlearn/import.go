package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mzalewski/cardlearn/internal/flashcard"
	"github.com/mzalewski/cardlearn/internal/importer"
)

func newImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <deck-file>",
		Short: "Import a deck of flashcards from a YAML or Excel file",
		Args:  cobra.ExactArgs(1),
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

			deckImporter := importer.NewImporter(flashcard.NewDBRepository(db), nil)
			result, err := deckImporter.Import(cmd.Context(), userID, args[0])
			if err != nil {
				return fmt.Errorf("importer.Import() > %w", err)
			}

			fmt.Printf("Imported %d of %d cards.\n", result.Imported, result.TotalRows)
			for _, message := range result.Errors {
				fmt.Printf("  skipped %s\n", message)
			}
			return nil
		},
	}
}
