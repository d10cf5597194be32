package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvConfigDir overrides the configuration directory.
const EnvConfigDir = "PROMPTME_CONFIG_DIR"

type Config struct {
	// Completion service used to polish prompts.
	Provider string `yaml:"provider"`
	APIKey   string `yaml:"api_key,omitempty"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url,omitempty"`

	// TargetModel is the chat model prompts are written for.
	TargetModel string `yaml:"target_model"`
	Optimize    bool   `yaml:"optimize"`
	LogLevel    string `yaml:"log_level,omitempty"`

	Tasks *TasksConfig `yaml:"tasks,omitempty"`
}

type TasksConfig struct {
	// Driver is "sqlite" or "memory".
	Driver string `yaml:"driver"`
	Path   string `yaml:"path,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Provider:    "ollama",
		Model:       "llama3.1:8b",
		TargetModel: "gpt-4o",
		Optimize:    true,
		LogLevel:    "info",
		Tasks: &TasksConfig{
			Driver: "sqlite",
		},
	}
}

func ConfigDir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "promptme"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// TemplatesDir is where library templates live.
func TemplatesDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "templates"), nil
}

// TasksPath returns the SQLite database path for scheduled tasks.
func (c *Config) TasksPath() (string, error) {
	if c.Tasks != nil && c.Tasks.Path != "" {
		return c.Tasks.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tasks.db"), nil
}

// LogPath returns the log file used while the TUI owns the terminal.
func LogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "promptme.log"), nil
}

func Exists() bool {
	path, err := ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load reads the config file. A missing file returns nil, nil so callers
// can start the setup wizard.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadEnv loads a .env file from the working directory and the config
// directory. Variables already set in the environment win.
func LoadEnv() error {
	files := []string{".env"}
	if dir, err := ConfigDir(); err == nil {
		files = append(files, filepath.Join(dir, ".env"))
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return err
		}
	}
	return nil
}

// ApplyEnv overlays PROMPTME_* variables and the provider's conventional
// API key variable onto c.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("PROMPTME_PROVIDER"); v != "" {
		c.Provider = v
	}
	if v := os.Getenv("PROMPTME_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("PROMPTME_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("PROMPTME_TARGET_MODEL"); v != "" {
		c.TargetModel = v
	}
	if v := os.Getenv("PROMPTME_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v, err := strconv.ParseBool(os.Getenv("PROMPTME_OPTIMIZE")); err == nil {
		c.Optimize = v
	}

	if v := os.Getenv("PROMPTME_API_KEY"); v != "" {
		c.APIKey = v
	} else if c.APIKey == "" {
		if p := GetProvider(c.Provider); p != nil && p.APIKeyEnv != "" {
			c.APIKey = os.Getenv(p.APIKeyEnv)
		}
	}
}

// Resolve loads the .env files, the config file (or defaults when absent)
// and the environment overrides, in that order.
func Resolve() (*Config, error) {
	if err := LoadEnv(); err != nil {
		return nil, err
	}
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.ApplyEnv()
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	return cfg, nil
}

func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
