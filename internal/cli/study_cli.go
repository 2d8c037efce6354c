// Package cli implements the interactive study session and report
// rendering for the terminal.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/mzalewski/cardlearn/internal/flashcard"
	"github.com/mzalewski/cardlearn/internal/scheduler"
	"github.com/mzalewski/cardlearn/internal/study"
)

var errEnd = errors.New("end")

//go:generate mockgen -source=study_cli.go -destination=../mocks/cli/mock_session.go -package=mock_cli Session

type Session interface {
	Session(context context.Context) error
}

// StudyCLI runs an interactive review session against the study service.
type StudyCLI struct {
	study        *study.Service
	userID       string
	sessionLimit int

	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color

	queue    []flashcard.Flashcard
	loaded   bool
	reviewed int
	passed   int
}

// NewStudyCLI creates a new interactive study session.
func NewStudyCLI(studyService *study.Service, userID string, sessionLimit int) *StudyCLI {
	return &StudyCLI{
		study:        studyService,
		userID:       userID,
		sessionLimit: sessionLimit,
		stdinReader:  bufio.NewReader(os.Stdin),
		stdoutWriter: os.Stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
	}
}

// Run drives Session in a loop until the cards run out or the user
// interrupts.
func (cli *StudyCLI) Run(ctx context.Context, session Session) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	errCh := make(chan error)
	go func() {
		defer close(errCh)

	LOOP:
		for {
			select {
			case <-ctx.Done():
				break LOOP
			default:
			}

			if err := session.Session(ctx); err != nil {
				if errors.Is(err, errEnd) {
					break
				}
				errCh <- err
				break
			}
		}
	}()
	select {
	case <-ctx.Done():
		fmt.Fprintln(cli.stdoutWriter, "Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}

// Session shows one due card, reveals the answer and records the rating.
func (cli *StudyCLI) Session(ctx context.Context) error {
	card, err := cli.nextCard(ctx)
	if err != nil {
		return err
	}
	if card == nil {
		cli.printSummary()
		return errEnd
	}

	fmt.Fprintln(cli.stdoutWriter)
	_, _ = cli.bold.Fprintf(cli.stdoutWriter, "Q: %s\n", card.Front)
	fmt.Fprint(cli.stdoutWriter, "Press Enter to reveal the answer... ")
	if _, err := cli.stdinReader.ReadString('\n'); err != nil {
		if errors.Is(err, io.EOF) {
			return errEnd
		}
		return fmt.Errorf("error reading input: %w", err)
	}
	_, _ = cli.italic.Fprintf(cli.stdoutWriter, "A: %s\n", card.Back)

	rating, err := cli.readRating()
	if err != nil {
		return err
	}

	result, err := cli.study.Review(ctx, cli.userID, card.ID, rating)
	if err != nil {
		return fmt.Errorf("study.Review() > %w", err)
	}

	cli.reviewed++
	if rating.Passed() {
		cli.passed++
		color.Green("Scheduled again in %s.", formatDays(result.Interval))
	} else {
		color.Red("Back to the start, due again in %s.", formatDays(result.Interval))
	}
	cli.queue = cli.queue[1:]
	return nil
}

// nextCard returns the head of the queue, loading a new batch from the
// study service when the queue is empty.
func (cli *StudyCLI) nextCard(ctx context.Context) (*flashcard.Flashcard, error) {
	if len(cli.queue) > 0 {
		return &cli.queue[0], nil
	}
	if cli.loaded {
		// One batch per run keeps a failed card from cycling forever.
		return nil, nil
	}

	session, err := cli.study.GetDueSession(ctx, cli.userID, cli.sessionLimit)
	if err != nil {
		return nil, fmt.Errorf("study.GetDueSession() > %w", err)
	}
	cli.loaded = true
	if len(session.Cards) == 0 {
		fmt.Fprintln(cli.stdoutWriter, "All caught up, no cards due for review!")
		return nil, nil
	}

	cli.queue = session.Cards
	fmt.Fprintf(cli.stdoutWriter, "%d cards due, studying %d this session.\n",
		session.TotalDue, len(session.Cards))
	return &cli.queue[0], nil
}

// readRating prompts until the user enters 0-5 or quits.
func (cli *StudyCLI) readRating() (scheduler.Rating, error) {
	for {
		fmt.Fprint(cli.stdoutWriter, "How well did you recall it? (0=blackout .. 5=perfect, q=quit): ")
		input, err := cli.stdinReader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, errEnd
			}
			return 0, fmt.Errorf("error reading input: %w", err)
		}

		input = strings.TrimSpace(input)
		if strings.EqualFold(input, "q") {
			cli.printSummary()
			return 0, errEnd
		}
		value, err := strconv.Atoi(input)
		if err != nil || value < int(scheduler.RatingBlackout) || value > int(scheduler.RatingPerfect) {
			fmt.Fprintln(cli.stdoutWriter, "Please enter a number from 0 to 5.")
			continue
		}
		return scheduler.Rating(value), nil
	}
}

func (cli *StudyCLI) printSummary() {
	if cli.reviewed == 0 {
		return
	}
	fmt.Fprintf(cli.stdoutWriter, "\nSession finished: %d reviewed, %d passed.\n",
		cli.reviewed, cli.passed)
}

func formatDays(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
