package generation_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mzalewski/cardlearn/internal/generation"
	mock_generation "github.com/mzalewski/cardlearn/internal/mocks/generation"
)

var validSourceText = strings.Repeat("Mitochondria are the powerhouse of the cell. ", 30)

func TestService_Generate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	proposals := []generation.Proposal{
		{Front: "What organelle produces ATP?", Back: "The mitochondrion."},
		{Front: "What is ATP?", Back: "The cell's energy currency."},
	}

	t.Run("Successful generation records the session and its count", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mock_generation.NewMockClient(ctrl)
		sessions := mock_generation.NewMockSessionRepository(ctrl)
		service := generation.NewService(client, sessions, func() time.Time { return now })

		var createdID string
		sessions.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, session *generation.Session) error {
				require.NotEmpty(t, session.ID)
				assert.Equal(t, "user-1", session.UserID)
				assert.Equal(t, validSourceText, session.SourceText)
				assert.Equal(t, now, session.CreatedAt)
				assert.Zero(t, session.GeneratedCount)
				createdID = session.ID
				return nil
			})
		client.EXPECT().
			GenerateFlashcards(gomock.Any(), validSourceText).
			Return(proposals, nil)
		sessions.EXPECT().
			SetGeneratedCount(gomock.Any(), "user-1", gomock.Any(), 2).
			DoAndReturn(func(_ context.Context, _ string, id string, _ int) error {
				assert.Equal(t, createdID, id)
				return nil
			})

		result, err := service.Generate(context.Background(), "user-1", validSourceText)
		require.NoError(t, err)
		assert.Equal(t, createdID, result.GenerationID)
		assert.Equal(t, proposals, result.Proposals)
		assert.Equal(t, 2, result.GeneratedCount)
	})

	t.Run("Source text outside bounds is rejected before any calls", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mock_generation.NewMockClient(ctrl)
		sessions := mock_generation.NewMockSessionRepository(ctrl)
		service := generation.NewService(client, sessions, nil)

		for _, sourceText := range []string{
			"too short",
			strings.Repeat("x", generation.MinSourceTextLength-1),
			strings.Repeat("x", generation.MaxSourceTextLength+1),
		} {
			_, err := service.Generate(context.Background(), "user-1", sourceText)
			assert.ErrorIs(t, err, generation.ErrSourceTextLength)
		}
	})

	t.Run("Length bounds count runes not bytes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mock_generation.NewMockClient(ctrl)
		sessions := mock_generation.NewMockSessionRepository(ctrl)
		service := generation.NewService(client, sessions, func() time.Time { return now })

		// 1000 three-byte runes.
		sourceText := strings.Repeat("あ", generation.MinSourceTextLength)
		sessions.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		client.EXPECT().GenerateFlashcards(gomock.Any(), sourceText).Return(proposals, nil)
		sessions.EXPECT().SetGeneratedCount(gomock.Any(), "user-1", gomock.Any(), 2).Return(nil)

		_, err := service.Generate(context.Background(), "user-1", sourceText)
		require.NoError(t, err)
	})

	t.Run("AI failure keeps the session at zero generated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mock_generation.NewMockClient(ctrl)
		sessions := mock_generation.NewMockSessionRepository(ctrl)
		service := generation.NewService(client, sessions, func() time.Time { return now })

		sessions.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		client.EXPECT().
			GenerateFlashcards(gomock.Any(), validSourceText).
			Return(nil, generation.ErrUnavailable)
		// No SetGeneratedCount call: the zero from Create stands.

		_, err := service.Generate(context.Background(), "user-1", validSourceText)
		assert.ErrorIs(t, err, generation.ErrUnavailable)
	})

	t.Run("Session insert failure aborts before the AI call", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mock_generation.NewMockClient(ctrl)
		sessions := mock_generation.NewMockSessionRepository(ctrl)
		service := generation.NewService(client, sessions, func() time.Time { return now })

		wantErr := errors.New("insert failed")
		sessions.EXPECT().Create(gomock.Any(), gomock.Any()).Return(wantErr)

		_, err := service.Generate(context.Background(), "user-1", validSourceText)
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("Count update failure does not fail the generation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mock_generation.NewMockClient(ctrl)
		sessions := mock_generation.NewMockSessionRepository(ctrl)
		service := generation.NewService(client, sessions, func() time.Time { return now })

		sessions.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		client.EXPECT().GenerateFlashcards(gomock.Any(), validSourceText).Return(proposals, nil)
		sessions.EXPECT().
			SetGeneratedCount(gomock.Any(), "user-1", gomock.Any(), 2).
			Return(errors.New("update failed"))

		result, err := service.Generate(context.Background(), "user-1", validSourceText)
		require.NoError(t, err)
		assert.Equal(t, proposals, result.Proposals)
	})
}

func TestService_RecordAccepted(t *testing.T) {
	t.Run("Stores the accepted count", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sessions := mock_generation.NewMockSessionRepository(ctrl)
		service := generation.NewService(mock_generation.NewMockClient(ctrl), sessions, nil)

		want := &generation.Session{ID: "gen-1", UserID: "user-1", GeneratedCount: 8, AcceptedCount: 5}
		sessions.EXPECT().
			SetAcceptedCount(gomock.Any(), "user-1", "gen-1", 5).
			Return(want, nil)

		got, err := service.RecordAccepted(context.Background(), "user-1", "gen-1", 5)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("Unknown session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sessions := mock_generation.NewMockSessionRepository(ctrl)
		service := generation.NewService(mock_generation.NewMockClient(ctrl), sessions, nil)

		sessions.EXPECT().
			SetAcceptedCount(gomock.Any(), "user-1", "missing", 5).
			Return(nil, generation.ErrSessionNotFound)

		_, err := service.RecordAccepted(context.Background(), "user-1", "missing", 5)
		assert.ErrorIs(t, err, generation.ErrSessionNotFound)
	})

	t.Run("Negative count is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sessions := mock_generation.NewMockSessionRepository(ctrl)
		service := generation.NewService(mock_generation.NewMockClient(ctrl), sessions, nil)

		_, err := service.RecordAccepted(context.Background(), "user-1", "gen-1", -1)
		assert.Error(t, err)
	})
}
