// Package importer loads flashcard decks from YAML and Excel files.
package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/mzalewski/cardlearn/internal/flashcard"
)

// Deck is the YAML deck file format.
type Deck struct {
	Name  string `yaml:"name,omitempty"`
	Cards []Card `yaml:"cards"`
}

// Card is one deck entry before validation.
type Card struct {
	Front string `yaml:"front"`
	Back  string `yaml:"back"`
}

// Result reports what an import did. Rows that fail validation are
// skipped with a message rather than aborting the whole file.
type Result struct {
	TotalRows int
	Imported  int
	Skipped   int
	Errors    []string
}

// Importer writes deck files into a user's collection.
type Importer struct {
	repo flashcard.Repository
	now  func() time.Time
}

// NewImporter creates a new Importer. The now function may be nil, in
// which case time.Now is used.
func NewImporter(repo flashcard.Repository, now func() time.Time) *Importer {
	if now == nil {
		now = time.Now
	}
	return &Importer{
		repo: repo,
		now:  now,
	}
}

// Import reads the deck file at path and creates its cards for the user.
// The format is chosen by file extension: .yaml/.yml or .xlsx.
func (i *Importer) Import(ctx context.Context, userID, path string) (Result, error) {
	var cards []Card
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		cards, err = readYAMLDeck(path)
	case ".xlsx":
		cards, err = readExcelDeck(path)
	default:
		return Result{}, fmt.Errorf("unsupported deck format %q: use .yaml, .yml or .xlsx", ext)
	}
	if err != nil {
		return Result{}, err
	}

	result := Result{TotalRows: len(cards)}
	valid := make([]flashcard.Flashcard, 0, len(cards))
	now := i.now()
	for index, card := range cards {
		front := strings.TrimSpace(card.Front)
		back := strings.TrimSpace(card.Back)
		if message := validateCard(front, back); message != "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %s", index+1, message))
			continue
		}
		valid = append(valid, flashcard.New(userID, front, back, flashcard.SourceManual, now))
	}

	for start := 0; start < len(valid); start += flashcard.MaxBatchSize {
		end := start + flashcard.MaxBatchSize
		if end > len(valid) {
			end = len(valid)
		}
		if err := i.repo.Create(ctx, valid[start:end]); err != nil {
			return result, fmt.Errorf("repo.Create() > %w", err)
		}
		result.Imported += end - start
	}
	return result, nil
}

func validateCard(front, back string) string {
	switch {
	case front == "":
		return "front is empty"
	case back == "":
		return "back is empty"
	case utf8.RuneCountInString(front) > flashcard.MaxFrontLength:
		return fmt.Sprintf("front exceeds %d characters", flashcard.MaxFrontLength)
	case utf8.RuneCountInString(back) > flashcard.MaxBackLength:
		return fmt.Sprintf("back exceeds %d characters", flashcard.MaxBackLength)
	}
	return ""
}

func readYAMLDeck(path string) ([]Card, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	var deck Deck
	if err := yaml.Unmarshal(content, &deck); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal(%s) > %w", path, err)
	}
	return deck.Cards, nil
}

// readExcelDeck reads fronts from column A and backs from column B of
// the first sheet. A header row is detected by its first cell.
func readExcelDeck(path string) ([]Card, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("excelize.OpenFile(%s) > %w", path, err)
	}
	defer file.Close()

	sheet := file.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("no sheets in %s", path)
	}
	rows, err := file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("file.GetRows(%s) > %w", sheet, err)
	}

	cards := make([]Card, 0, len(rows))
	for index, row := range rows {
		if len(row) == 0 {
			continue
		}
		if index == 0 && strings.EqualFold(strings.TrimSpace(row[0]), "front") {
			continue
		}
		card := Card{Front: row[0]}
		if len(row) > 1 {
			card.Back = row[1]
		}
		cards = append(cards, card)
	}
	return cards, nil
}
