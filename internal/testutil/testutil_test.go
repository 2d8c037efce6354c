package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupTestConfig(t *testing.T) {
	tmpDir := t.TempDir()
	got := SetupTestConfig(t, tmpDir)

	want := filepath.Join(tmpDir, "config.yml")
	assert.Equal(t, want, got)

	content, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Contains(t, string(content), "driver: sqlite3")
	assert.Contains(t, string(content), "auth_tokens")

	info, err := os.Stat(filepath.Join(tmpDir, "data"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSetupTestConfigWithAPIKey(t *testing.T) {
	tmpDir := t.TempDir()
	got := SetupTestConfigWithAPIKey(t, tmpDir)

	content, err := os.ReadFile(got)
	require.NoError(t, err)

	contentStr := string(content)
	assert.Contains(t, contentStr, "openrouter:")
	assert.Contains(t, contentStr, "api_key: fake-key-for-testing")
	assert.Contains(t, contentStr, "model: openai/gpt-4o-mini")
	// The base config fields should also be present.
	assert.Contains(t, contentStr, "driver: sqlite3")
}

func TestCreateDeckFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := CreateDeckFile(t, tmpDir, "biology", []DeckCard{
		{Front: "What is a cell?", Back: "The smallest unit of life."},
	})

	assert.Equal(t, filepath.Join(tmpDir, "biology.yaml"), path)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "What is a cell?")
}
