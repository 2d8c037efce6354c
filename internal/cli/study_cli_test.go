package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mzalewski/cardlearn/internal/config"
	"github.com/mzalewski/cardlearn/internal/database"
	"github.com/mzalewski/cardlearn/internal/flashcard"
	mock_cli "github.com/mzalewski/cardlearn/internal/mocks/cli"
	"github.com/mzalewski/cardlearn/internal/reviewlog"
	"github.com/mzalewski/cardlearn/internal/study"
)

func newTestStudyCLI(t *testing.T, input string, fronts ...string) (*StudyCLI, *flashcard.DBRepository, *bytes.Buffer) {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{Driver: "sqlite3", Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db))

	repo := flashcard.NewDBRepository(db)
	created := time.Now().Add(-time.Hour)
	cards := make([]flashcard.Flashcard, 0, len(fronts))
	for _, front := range fronts {
		cards = append(cards, flashcard.New("user-1", front, "answer for "+front, flashcard.SourceManual, created))
	}
	if len(cards) > 0 {
		require.NoError(t, repo.Create(context.Background(), cards))
	}

	output := &bytes.Buffer{}
	studyCLI := &StudyCLI{
		study:        study.NewService(repo, reviewlog.NewDBRepository(db), nil),
		userID:       "user-1",
		sessionLimit: 20,
		stdinReader:  bufio.NewReader(strings.NewReader(input)),
		stdoutWriter: output,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
	}
	return studyCLI, repo, output
}

func TestStudyCLI_Session(t *testing.T) {
	t.Run("Reviews due cards until the batch is done", func(t *testing.T) {
		// Reveal + rating per card, two cards.
		studyCLI, repo, output := newTestStudyCLI(t, "\n4\n\n2\n", "Q1", "Q2")
		ctx := context.Background()

		require.NoError(t, studyCLI.Session(ctx))
		require.NoError(t, studyCLI.Session(ctx))
		err := studyCLI.Session(ctx)
		assert.ErrorIs(t, err, errEnd)

		assert.Contains(t, output.String(), "2 cards due")
		assert.Contains(t, output.String(), "Session finished: 2 reviewed, 1 passed.")

		// The passing card moved out of the due set, the failing one is
		// due tomorrow.
		count, err := repo.CountDue(ctx, "user-1", time.Now())
		require.NoError(t, err)
		assert.Equal(t, 0, count)
		count, err = repo.CountDue(ctx, "user-1", time.Now().AddDate(0, 0, 1))
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("Empty collection ends immediately", func(t *testing.T) {
		studyCLI, _, output := newTestStudyCLI(t, "")

		err := studyCLI.Session(context.Background())
		assert.ErrorIs(t, err, errEnd)
		assert.Contains(t, output.String(), "All caught up")
	})

	t.Run("Quit mid-session", func(t *testing.T) {
		studyCLI, _, _ := newTestStudyCLI(t, "\nq\n", "Q1", "Q2")

		err := studyCLI.Session(context.Background())
		assert.ErrorIs(t, err, errEnd)
	})

	t.Run("Invalid ratings are re-prompted", func(t *testing.T) {
		studyCLI, _, output := newTestStudyCLI(t, "\nabc\n7\n5\n", "Q1")

		require.NoError(t, studyCLI.Session(context.Background()))
		assert.Contains(t, output.String(), "Please enter a number from 0 to 5.")
		assert.Equal(t, 1, studyCLI.passed)
	})
}

func TestStudyCLI_Run(t *testing.T) {
	t.Run("Stops when the session ends", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		session := mock_cli.NewMockSession(ctrl)
		gomock.InOrder(
			session.EXPECT().Session(gomock.Any()).Return(nil),
			session.EXPECT().Session(gomock.Any()).Return(errEnd),
		)

		studyCLI, _, _ := newTestStudyCLI(t, "")
		assert.NoError(t, studyCLI.Run(context.Background(), session))
	})

	t.Run("Propagates session failures", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		session := mock_cli.NewMockSession(ctrl)
		wantErr := errors.New("boom")
		session.EXPECT().Session(gomock.Any()).Return(wantErr)

		studyCLI, _, _ := newTestStudyCLI(t, "")
		assert.ErrorIs(t, studyCLI.Run(context.Background(), session), wantErr)
	})
}
