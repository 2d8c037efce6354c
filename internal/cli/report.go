package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/mzalewski/cardlearn/internal/statistics"
	"github.com/mzalewski/cardlearn/internal/study"
)

// RenderDue prints the due-card report for the due command.
func RenderDue(w io.Writer, session study.Session) {
	if session.TotalDue == 0 {
		fmt.Fprintln(w, "All caught up, no cards due for review!")
		return
	}

	bold := color.New(color.Bold)
	_, _ = bold.Fprintf(w, "%d cards due for review\n", session.TotalDue)
	for _, card := range session.Cards {
		fmt.Fprintf(w, "  - %s (due %s)\n", card.Front, card.NextReviewDate.Format("2006-01-02"))
	}
	if session.TotalDue > len(session.Cards) {
		fmt.Fprintf(w, "  ... and %d more\n", session.TotalDue-len(session.Cards))
	}
}

// RenderProfile prints the statistics report for the stats command.
func RenderProfile(w io.Writer, profile statistics.Profile) {
	bold := color.New(color.Bold)

	_, _ = bold.Fprintln(w, "Flashcards")
	fmt.Fprintf(w, "  Total:        %d\n", profile.Flashcards.Total)
	fmt.Fprintf(w, "  Manual:       %d\n", profile.Flashcards.Manual)
	fmt.Fprintf(w, "  AI generated: %d\n", profile.Flashcards.AIGenerated)
	fmt.Fprintf(w, "  Due now:      %d\n", profile.Flashcards.Due)

	_, _ = bold.Fprintln(w, "AI generation")
	fmt.Fprintf(w, "  Generated:    %d\n", profile.Generation.TotalGenerated)
	fmt.Fprintf(w, "  Accepted:     %d\n", profile.Generation.TotalAccepted)
	fmt.Fprintf(w, "  Acceptance:   %.2f%%\n", profile.Generation.AcceptanceRate)
}
