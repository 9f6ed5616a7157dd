package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/dancefloor/internal/assign"
)

type Config struct {
	MusicDir string `koanf:"music_dir"` // directory scanned for tracks
	TreeFile string `koanf:"tree_file"` // dance tree JSON, empty means XDG data dir
	LogLevel string `koanf:"log_level"` // zerolog level name (default: "info")

	Queue    QueueConfig    `koanf:"queue"`
	Playback PlaybackConfig `koanf:"playback"`

	// Desktop notifications via D-Bus (default: true)
	DesktopNotifications *bool `koanf:"desktop_notifications"`

	// Alternative spellings of dance names
	Synonyms []SynonymConfig `koanf:"synonyms"`
}

// QueueConfig holds queue behavior settings.
type QueueConfig struct {
	MaxItems            int   `koanf:"max_items"`             // 0 = unbounded
	AllowDuplicates     bool  `koanf:"allow_duplicates"`      // allow re-queueing played or queued tracks
	AutoQueue           *bool `koanf:"auto_queue"`            // suggest a random track when idle (default: true)
	DefaultDelaySeconds int   `koanf:"default_delay_seconds"` // delay marker length (default: 30)
}

// PlaybackConfig holds countdown settings.
type PlaybackConfig struct {
	TickMillis int `koanf:"tick_ms"` // countdown tick (10-1000, default: 250)
}

// SynonymConfig is one [[synonyms]] table.
type SynonymConfig struct {
	Name     string   `koanf:"name"`
	Synonyms []string `koanf:"synonyms"`
}

func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the given files in order; later files override earlier ones.
// Missing files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.MusicDir = expandPath(cfg.MusicDir)
	cfg.TreeFile = expandPath(cfg.TreeFile)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/dancefloor/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "dancefloor", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

var (
	ErrNoMusicDir     = errors.New("no music directory configured")
	ErrMusicDirNotDir = errors.New("not a directory")
)

// HasMusicDir returns true if a music directory is configured.
func (c *Config) HasMusicDir() bool {
	return c.MusicDir != ""
}

// CheckMusicDir returns nil when dir is an existing directory, and the
// reason it cannot be scanned otherwise.
func CheckMusicDir(dir string) error {
	if dir == "" {
		return ErrNoMusicDir
	}
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w", dir, ErrMusicDirNotDir)
	}
	return nil
}

// GetLogLevel returns the log level, "info" when unset.
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return "info"
	}
	return c.LogLevel
}

// DesktopNotificationsEnabled reports whether D-Bus notifications are wanted.
func (c *Config) DesktopNotificationsEnabled() bool {
	return c.DesktopNotifications == nil || *c.DesktopNotifications
}

// GetQueueConfig returns the queue configuration with defaults applied.
func (c *Config) GetQueueConfig() QueueConfig {
	cfg := c.Queue

	if cfg.MaxItems < 0 {
		cfg.MaxItems = 0
	}
	if cfg.AutoQueue == nil {
		enabled := true
		cfg.AutoQueue = &enabled
	}
	if cfg.DefaultDelaySeconds <= 0 {
		cfg.DefaultDelaySeconds = 30
	}

	return cfg
}

// AutoQueueEnabled reports whether auto-queue starts enabled.
func (q QueueConfig) AutoQueueEnabled() bool {
	return q.AutoQueue == nil || *q.AutoQueue
}

// DefaultDelay returns the delay marker length as a duration.
func (q QueueConfig) DefaultDelay() time.Duration {
	return time.Duration(q.DefaultDelaySeconds) * time.Second
}

// CountdownTick returns the countdown tick with bounds applied.
func (c *Config) CountdownTick() time.Duration {
	ms := c.Playback.TickMillis
	if ms < 10 || ms > 1000 {
		ms = 250
	}
	return time.Duration(ms) * time.Millisecond
}

// SynonymGroups converts the synonym tables for the assignment index.
// Entries without a name are dropped.
func (c *Config) SynonymGroups() []assign.SynonymGroup {
	groups := make([]assign.SynonymGroup, 0, len(c.Synonyms))
	for _, s := range c.Synonyms {
		if strings.TrimSpace(s.Name) == "" {
			continue
		}
		groups = append(groups, assign.SynonymGroup{Name: s.Name, Synonyms: s.Synonyms})
	}
	return groups
}
