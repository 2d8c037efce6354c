// Package testutil provides shared test helpers for creating config
// files and deck fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// SetupTestConfig creates a minimal config file backed by a SQLite
// database under tmpDir. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "data"), 0755))

	configContent := fmt.Sprintf(`server:
  port: 8080
  auth_tokens:
    test-token: test-user
database:
  driver: sqlite3
  path: %s
`,
		filepath.Join(tmpDir, "data", "cardlearn.db"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SetupTestConfigWithAPIKey creates a config file with a fake OpenRouter
// API key for tests that require API key validation to pass.
func SetupTestConfigWithAPIKey(t *testing.T, tmpDir string) string {
	t.Helper()
	cfgPath := SetupTestConfig(t, tmpDir)

	content, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	content = append(content, []byte("openrouter:\n  api_key: fake-key-for-testing\n  model: openai/gpt-4o-mini\n")...)
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))
	return cfgPath
}

// DeckCard is one entry of a deck fixture.
type DeckCard struct {
	Front string `yaml:"front"`
	Back  string `yaml:"back"`
}

// CreateDeckFile writes a YAML deck fixture and returns its path.
func CreateDeckFile(t *testing.T, dir, name string, cards []DeckCard) string {
	t.Helper()

	content, err := yaml.Marshal(map[string]any{
		"name":  name,
		"cards": cards,
	})
	require.NoError(t, err)

	path := filepath.Join(dir, name+".yaml")
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}
