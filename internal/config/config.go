package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mmcdole/marquee/internal/tmdb"
)

// Config holds all application configuration
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	UI      UIConfig      `mapstructure:"ui"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Browser BrowserConfig `mapstructure:"browser"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TMDBConfig holds API access settings
type TMDBConfig struct {
	APIKey       string `mapstructure:"api_key"`
	BaseURL      string `mapstructure:"base_url"`
	ImageBaseURL string `mapstructure:"image_base_url"`
	Language     string `mapstructure:"language"` // e.g. "en-US"
	Pages        int    `mapstructure:"pages"`    // listing pages merged per category
}

// UIConfig holds UI configuration
type UIConfig struct {
	PageSize      int           `mapstructure:"page_size"`
	Animations    bool          `mapstructure:"animations"`
	SlideFrames   int           `mapstructure:"slide_frames"`
	FrameInterval time.Duration `mapstructure:"frame_interval"`
}

// CacheConfig holds dataset cache configuration
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
	Dir     string        `mapstructure:"dir"`
}

// BrowserConfig holds the command used to open TMDB pages
type BrowserConfig struct {
	Command string   `mapstructure:"command"` // empty for system default
	Args    []string `mapstructure:"args"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			BaseURL:      tmdb.DefaultBaseURL,
			ImageBaseURL: tmdb.DefaultImageBaseURL,
			Language:     "en-US",
			Pages:        1,
		},
		UI: UIConfig{
			PageSize:      6,
			Animations:    true,
			SlideFrames:   8,
			FrameInterval: 30 * time.Millisecond,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     6 * time.Hour,
			Dir:     defaultCachePath(),
		},
		Browser: BrowserConfig{
			Args: []string{},
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee", "marquee.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "marquee", "marquee.log")
	}
}

// DefaultConfigDir returns the default config directory for the current OS
func DefaultConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "marquee")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "marquee", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "marquee", "cache")
	}
}

// Loader reads and writes the config file in one directory
type Loader struct {
	v   *viper.Viper
	dir string
}

// NewLoader creates a loader for dir, or DefaultConfigDir when dir is empty
func NewLoader(dir string) *Loader {
	if dir == "" {
		dir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	// MARQUEE_TMDB_API_KEY overrides tmdb.api_key
	v.SetEnvPrefix("MARQUEE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, DefaultConfig())
	return &Loader{v: v, dir: dir}
}

// setDefaults registers every key so env overrides reach Unmarshal
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("tmdb.api_key", cfg.TMDB.APIKey)
	v.SetDefault("tmdb.base_url", cfg.TMDB.BaseURL)
	v.SetDefault("tmdb.image_base_url", cfg.TMDB.ImageBaseURL)
	v.SetDefault("tmdb.language", cfg.TMDB.Language)
	v.SetDefault("tmdb.pages", cfg.TMDB.Pages)

	v.SetDefault("ui.page_size", cfg.UI.PageSize)
	v.SetDefault("ui.animations", cfg.UI.Animations)
	v.SetDefault("ui.slide_frames", cfg.UI.SlideFrames)
	v.SetDefault("ui.frame_interval", cfg.UI.FrameInterval)

	v.SetDefault("cache.enabled", cfg.Cache.Enabled)
	v.SetDefault("cache.ttl", cfg.Cache.TTL)
	v.SetDefault("cache.dir", cfg.Cache.Dir)

	v.SetDefault("browser.command", cfg.Browser.Command)
	v.SetDefault("browser.args", cfg.Browser.Args)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// BindFlags lets command-line flags override file and env values.
// Only flags present in fs are bound.
func (l *Loader) BindFlags(fs *pflag.FlagSet) error {
	bindings := map[string]string{
		"page-size": "ui.page_size",
		"language":  "tmdb.language",
		"log-level": "logging.level",
	}
	for flag, key := range bindings {
		f := fs.Lookup(flag)
		if f == nil {
			continue
		}
		if err := l.v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}
	return nil
}

// Load reads the config file if it exists and applies env and flag overrides
func (l *Loader) Load() (*Config, error) {
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := DefaultConfig()
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to the config file
func (l *Loader) Save(cfg *Config) error {
	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to keep snake_case key names
	l.v.Set("tmdb.api_key", cfg.TMDB.APIKey)
	l.v.Set("tmdb.base_url", cfg.TMDB.BaseURL)
	l.v.Set("tmdb.image_base_url", cfg.TMDB.ImageBaseURL)
	l.v.Set("tmdb.language", cfg.TMDB.Language)
	l.v.Set("tmdb.pages", cfg.TMDB.Pages)

	l.v.Set("ui.page_size", cfg.UI.PageSize)
	l.v.Set("ui.animations", cfg.UI.Animations)
	l.v.Set("ui.slide_frames", cfg.UI.SlideFrames)
	l.v.Set("ui.frame_interval", cfg.UI.FrameInterval.String())

	l.v.Set("cache.enabled", cfg.Cache.Enabled)
	l.v.Set("cache.ttl", cfg.Cache.TTL.String())
	l.v.Set("cache.dir", cfg.Cache.Dir)

	l.v.Set("browser.command", cfg.Browser.Command)
	l.v.Set("browser.args", cfg.Browser.Args)

	l.v.Set("logging.file", cfg.Logging.File)
	l.v.Set("logging.level", cfg.Logging.Level)

	if err := l.v.WriteConfigAs(l.Path()); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveAPIKey updates just the API key in the config file
func (l *Loader) SaveAPIKey(key string) error {
	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	l.v.Set("tmdb.api_key", key)
	if err := l.v.WriteConfigAs(l.Path()); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Path returns the config file path
func (l *Loader) Path() string {
	return filepath.Join(l.dir, "config.yaml")
}

// Validate rejects values the UI cannot work with
func (c *Config) Validate() error {
	if c.UI.PageSize < 1 {
		return fmt.Errorf("ui.page_size must be at least 1, got %d", c.UI.PageSize)
	}
	if c.UI.SlideFrames < 1 {
		return fmt.Errorf("ui.slide_frames must be at least 1, got %d", c.UI.SlideFrames)
	}
	if c.TMDB.Pages < 1 {
		return fmt.Errorf("tmdb.pages must be at least 1, got %d", c.TMDB.Pages)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got %s", c.Cache.TTL)
	}
	return nil
}

// IsConfigured returns true if an API key is set
func (c *Config) IsConfigured() bool {
	return strings.TrimSpace(c.TMDB.APIKey) != ""
}

// CacheScope identifies the cache partition for this configuration.
// Datasets fetched against another API root or language are not reused.
func (c *Config) CacheScope() string {
	return c.TMDB.BaseURL + "|" + c.TMDB.Language
}

// CacheDir returns the cache directory, or "" when caching is disabled
func (c *Config) CacheDir() string {
	if !c.Cache.Enabled {
		return ""
	}
	return c.Cache.Dir
}
