package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PROMPTME_PROVIDER", "PROMPTME_MODEL", "PROMPTME_BASE_URL", "PROMPTME_TARGET_MODEL",
		"PROMPTME_LOG_LEVEL", "PROMPTME_OPTIMIZE", "PROMPTME_API_KEY",
		"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "GEMINI_API_KEY", "GROQ_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadMissingReturnsNil(t *testing.T) {
	t.Setenv(EnvConfigDir, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Nil(t, cfg)
	assert.False(t, Exists())
}

func TestSaveAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	t.Setenv(EnvConfigDir, dir)

	cfg := DefaultConfig()
	cfg.Provider = "openai"
	cfg.APIKey = "sk-test"
	cfg.TargetModel = "claude-3-opus"
	cfg.Optimize = false
	require.NoError(t, cfg.Save())
	assert.True(t, Exists())

	info, err := os.Stat(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("provider: groq\nmodel: llama-3.1-8b-instant\n"), 0600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "groq", cfg.Provider)
	assert.Equal(t, "gpt-4o", cfg.TargetModel)
	assert.Equal(t, "sqlite", cfg.Tasks.Driver)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("provider: [oops"), 0600))

	_, err := Load()
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROMPTME_PROVIDER", "anthropic")
	t.Setenv("PROMPTME_TARGET_MODEL", "gemini-pro")
	t.Setenv("PROMPTME_OPTIMIZE", "false")
	t.Setenv("ANTHROPIC_API_KEY", "from-provider-env")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, "gemini-pro", cfg.TargetModel)
	assert.False(t, cfg.Optimize)
	assert.Equal(t, "from-provider-env", cfg.APIKey)
}

func TestApplyEnvExplicitKeyWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROMPTME_API_KEY", "explicit")
	t.Setenv("OPENAI_API_KEY", "conventional")

	cfg := &Config{Provider: "openai"}
	cfg.ApplyEnv()
	assert.Equal(t, "explicit", cfg.APIKey)
}

func TestResolveReadsDotEnv(t *testing.T) {
	clearEnv(t)
	// godotenv only fills variables that are absent.
	require.NoError(t, os.Unsetenv("PROMPTME_MODEL"))
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PROMPTME_MODEL=qwen2.5:7b\n"), 0600))

	cfg, err := Resolve()
	require.NoError(t, err)
	assert.Equal(t, "ollama", cfg.Provider)
	assert.Equal(t, "qwen2.5:7b", cfg.Model)
}

func TestPaths(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)

	templates, err := TemplatesDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "templates"), templates)

	cfg := DefaultConfig()
	db, err := cfg.TasksPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "tasks.db"), db)

	cfg.Tasks.Path = "/tmp/custom.db"
	db, err = cfg.TasksPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.db", db)
}

func TestGetProvider(t *testing.T) {
	p := GetProvider("gemini")
	require.NotNil(t, p)
	assert.Equal(t, "GEMINI_API_KEY", p.APIKeyEnv)
	assert.Nil(t, GetProvider("nope"))
}
