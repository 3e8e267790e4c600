package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mmcdole/marquee/internal/cache"
	"github.com/mmcdole/marquee/internal/catalog"
	"github.com/mmcdole/marquee/internal/query"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override (MARQUEE_CACHE_URL, ...)
const EnvPrefix = "MARQUEE"

// Config holds all application configuration
type Config struct {
	Cache   CacheConfig   `mapstructure:"cache"`
	Browse  BrowseConfig  `mapstructure:"browse"`
	Images  ImagesConfig  `mapstructure:"images"`
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CacheConfig holds the cache service location and fetch limits
type CacheConfig struct {
	URL         string        `mapstructure:"url"`
	MaxShards   int           `mapstructure:"max_shards"`  // Shards probed per load
	Concurrency int           `mapstructure:"concurrency"` // Shard fetches in flight
	Timeout     time.Duration `mapstructure:"timeout"`     // Per request
}

// BrowseConfig holds browsing defaults
type BrowseConfig struct {
	PageSize    int    `mapstructure:"page_size"`
	DefaultSort string `mapstructure:"default_sort"` // e.g. "vote.desc"
}

// ImagesConfig holds artwork preferences
type ImagesConfig struct {
	PosterSize string `mapstructure:"poster_size"`
}

// StorageConfig holds local persistence settings
type StorageConfig struct {
	Dir             string `mapstructure:"dir"` // Empty keeps everything in memory
	OfflineSnapshot bool   `mapstructure:"offline_snapshot"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			URL:         "http://localhost:3000",
			MaxShards:   catalog.DefaultMaxShards,
			Concurrency: catalog.DefaultConcurrency,
			Timeout:     10 * time.Second,
		},
		Browse: BrowseConfig{
			PageSize:    query.DefaultPageSize,
			DefaultSort: query.SortRatingDesc.String(),
		},
		Images: ImagesConfig{
			PosterSize: cache.DefaultPosterSize,
		},
		Storage: StorageConfig{
			Dir:             DefaultDataDir(),
			OfflineSnapshot: true,
		},
		Logging: LoggingConfig{
			File:  filepath.Join(DefaultDataDir(), "marquee.log"),
			Level: "INFO",
		},
	}
}

// DefaultDataDir returns the directory for the database and log file
func DefaultDataDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "marquee")
	}
}

// DefaultConfigDir returns the directory searched for config.yaml
func DefaultConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "marquee")
	}
}

// Load reads configuration from path, or from config.yaml in the default
// config directory and the working directory when path is empty. Environment
// variables override file values. A missing config file is not an error; an
// explicit path that does not exist is.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultConfigDir())
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.Storage.Dir = ExpandHome(cfg.Storage.Dir)
	cfg.Logging.File = ExpandHome(cfg.Logging.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so environment overrides apply even when
// the file does not mention them.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("cache.url", cfg.Cache.URL)
	v.SetDefault("cache.max_shards", cfg.Cache.MaxShards)
	v.SetDefault("cache.concurrency", cfg.Cache.Concurrency)
	v.SetDefault("cache.timeout", cfg.Cache.Timeout)

	v.SetDefault("browse.page_size", cfg.Browse.PageSize)
	v.SetDefault("browse.default_sort", cfg.Browse.DefaultSort)

	v.SetDefault("images.poster_size", cfg.Images.PosterSize)

	v.SetDefault("storage.dir", cfg.Storage.Dir)
	v.SetDefault("storage.offline_snapshot", cfg.Storage.OfflineSnapshot)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// Validate rejects settings the application cannot run with
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Cache.URL) == "" {
		errs = append(errs, errors.New("cache.url must not be empty"))
	}
	if c.Cache.MaxShards <= 0 {
		errs = append(errs, fmt.Errorf("cache.max_shards must be positive, got %d", c.Cache.MaxShards))
	}
	if c.Cache.Concurrency <= 0 {
		errs = append(errs, fmt.Errorf("cache.concurrency must be positive, got %d", c.Cache.Concurrency))
	}
	if c.Cache.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("cache.timeout must be positive, got %s", c.Cache.Timeout))
	}
	if c.Browse.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("browse.page_size must be positive, got %d", c.Browse.PageSize))
	}
	if _, err := query.ParseSortKey(c.Browse.DefaultSort); err != nil {
		errs = append(errs, fmt.Errorf("browse.default_sort: %w", err))
	}
	if !cache.ValidPosterSize(c.Images.PosterSize) {
		errs = append(errs, fmt.Errorf("images.poster_size: unknown size %q", c.Images.PosterSize))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// SortKey returns the parsed default sort. Validate has already checked it.
func (c *Config) SortKey() query.SortKey {
	key, _ := query.ParseSortKey(c.Browse.DefaultSort)
	return key
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
