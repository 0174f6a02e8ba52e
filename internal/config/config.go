// Package config loads nio settings.
//
// Sources, lowest precedence first: built-in defaults, the TOML file
// (~/.config/nio/config.toml unless --config is given), a .env file in the
// working directory, NIO_* environment variables and finally CLI flags.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"nio/internal/db"
	"nio/internal/models"
)

const (
	DefaultBaseURL         = "https://openrouter.ai/api/v1"
	DefaultHistoryLimit    = 100
	DefaultScrollThreshold = 5
	DefaultCompactWidth    = 100
)

type Config struct {
	API     APIConfig     `toml:"api"`
	Storage StorageConfig `toml:"storage"`
	History HistoryConfig `toml:"history"`
	Chat    ChatConfig    `toml:"chat"`
	UI      UIConfig      `toml:"ui"`
	Notify  NotifyConfig  `toml:"notify"`
	Log     LogConfig     `toml:"log"`

	// Query is a prompt sent once after startup. Never read from the file.
	Query string `toml:"-"`
}

type APIConfig struct {
	BaseURL string `toml:"base_url"`
	// Key is the shared key used by anonymous sessions.
	Key string `toml:"key"`
	// Token overrides the personal token stored by the login prompt.
	Token string `toml:"token"`
}

type StorageConfig struct {
	Path string `toml:"path"`
}

type HistoryConfig struct {
	Limit int `toml:"limit"`
}

type ChatConfig struct {
	Model string `toml:"model"`
	Web   bool   `toml:"web"`
}

type UIConfig struct {
	Language string `toml:"language"`
	// ScrollThreshold is how many rows above the bottom reveal the jump affordance.
	ScrollThreshold int `toml:"scroll_threshold"`
	// CompactWidth is the terminal width below which the sidebar becomes a menu.
	CompactWidth int `toml:"compact_width"`
}

type NotifyConfig struct {
	Desktop bool `toml:"desktop"`
}

type LogConfig struct {
	Path  string `toml:"path"`
	Debug bool   `toml:"debug"`
}

func Default() *Config {
	dbPath, err := db.DefaultPath()
	if err != nil {
		dbPath = "nio.db"
	}
	return &Config{
		API:     APIConfig{BaseURL: DefaultBaseURL},
		Storage: StorageConfig{Path: dbPath},
		History: HistoryConfig{Limit: DefaultHistoryLimit},
		Chat:    ChatConfig{Model: models.BaselineModel, Web: true},
		UI: UIConfig{
			Language:        "en",
			ScrollThreshold: DefaultScrollThreshold,
			CompactWidth:    DefaultCompactWidth,
		},
		Log: LogConfig{Path: filepath.Join(filepath.Dir(dbPath), "nio.log")},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "nio", "config.toml"), nil
}

// Load reads path (or the default location when empty). A missing file is
// not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			if !errors.Is(err, os.ErrNotExist) || explicit {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	_ = godotenv.Load()
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) ApplyEnv() {
	if v := os.Getenv("NIO_BASE_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("NIO_API_KEY"); v != "" {
		c.API.Key = v
	}
	if v := os.Getenv("NIO_TOKEN"); v != "" {
		c.API.Token = v
	}
	if v := os.Getenv("NIO_DB_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("NIO_LANG"); v != "" {
		c.UI.Language = v
	}
	if v := os.Getenv("NIO_QUERY"); v != "" && c.Query == "" {
		c.Query = v
	}
	if v, err := strconv.ParseBool(os.Getenv("NIO_DEBUG")); err == nil {
		c.Log.Debug = v
	}
}

func (c *Config) Validate() error {
	var errs []error
	if u, err := url.Parse(c.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("api.base_url: invalid url %q", c.API.BaseURL))
	}
	if strings.TrimSpace(c.Storage.Path) == "" {
		errs = append(errs, errors.New("storage.path: required"))
	}
	if c.History.Limit < 1 {
		errs = append(errs, fmt.Errorf("history.limit: must be positive, got %d", c.History.Limit))
	}
	if _, _, ok := models.FindModel(c.Chat.Model); !ok {
		errs = append(errs, fmt.Errorf("chat.model: unknown model %q", c.Chat.Model))
	}
	if c.UI.ScrollThreshold < 0 {
		errs = append(errs, fmt.Errorf("ui.scroll_threshold: must not be negative, got %d", c.UI.ScrollThreshold))
	}
	if c.UI.CompactWidth < 0 {
		errs = append(errs, fmt.Errorf("ui.compact_width: must not be negative, got %d", c.UI.CompactWidth))
	}
	return errors.Join(errs...)
}
