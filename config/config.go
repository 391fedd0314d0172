// Package config loads application settings from defaults, an optional yaml
// file and REACTIONTEST_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// EnvPrefix is the prefix for environment overrides, e.g. REACTIONTEST_AUDIO_ENABLED.
const EnvPrefix = "REACTIONTEST"

// Config is the top-level configuration structure.
type Config struct {
	Audio   AudioConfig   `mapstructure:"audio"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// AudioConfig controls the stimulus cue.
type AudioConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	FrequencyHz float64 `mapstructure:"frequency_hz"`
	DurationMs  int     `mapstructure:"duration_ms"`
	Volume      float64 `mapstructure:"volume"`
}

// UIConfig holds window and language settings.
type UIConfig struct {
	Language string  `mapstructure:"language"`
	Width    float32 `mapstructure:"width"`
	Height   float32 `mapstructure:"height"`
}

// LoggingConfig holds settings for the logger. File is optional; when empty
// logs only go to the console.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.frequency_hz", 880.0)
	v.SetDefault("audio.duration_ms", 120)
	v.SetDefault("audio.volume", 0.0)

	v.SetDefault("ui.language", "")
	v.SetDefault("ui.width", 420)
	v.SetDefault("ui.height", 560)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_size", 10)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age", 7)
	v.SetDefault("logging.compress", true)
}

// Loader owns the viper instance and the current Config.
type Loader struct {
	v *viper.Viper

	mu  sync.RWMutex
	cur Config
}

// Load reads the configuration. An empty path searches for config.yaml in
// the working directory and the user config directory; a missing file is not
// an error, an explicit path that does not exist is.
func Load(path string) (*Loader, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/reactiontest")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	l := &Loader{v: v}
	cfg, err := l.decode()
	if err != nil {
		return nil, err
	}
	l.cur = cfg
	return l, nil
}

func (l *Loader) decode() (Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Audio.FrequencyHz <= 0 || c.Audio.FrequencyHz > 20000 {
		return fmt.Errorf("audio.frequency_hz out of range: %v", c.Audio.FrequencyHz)
	}
	if c.Audio.DurationMs <= 0 || c.Audio.DurationMs > 2000 {
		return fmt.Errorf("audio.duration_ms out of range: %d", c.Audio.DurationMs)
	}
	if c.UI.Width <= 0 || c.UI.Height <= 0 {
		return fmt.Errorf("ui size must be positive: %vx%v", c.UI.Width, c.UI.Height)
	}
	return nil
}

// Config returns the current configuration.
func (l *Loader) Config() Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cur
}

// Set overrides a single key, e.g. from a command line flag.
func (l *Loader) Set(key string, value any) error {
	l.v.Set(key, value)
	cfg, err := l.decode()
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.cur = cfg
	l.mu.Unlock()
	return nil
}

// ConfigFile returns the file the configuration was read from, if any.
func (l *Loader) ConfigFile() string {
	return l.v.ConfigFileUsed()
}

// Watch reloads the configuration when the file changes and hands the new
// value to fn. Invalid edits are logged and ignored.
func (l *Loader) Watch(log *zap.Logger, fn func(Config)) {
	if l.v.ConfigFileUsed() == "" {
		return
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		log.Info("Configuration file changed, reloading.", zap.String("file", e.Name))
		cfg, err := l.decode()
		if err != nil {
			log.Error("Error reloading configuration", zap.Error(err))
			return
		}
		l.mu.Lock()
		l.cur = cfg
		l.mu.Unlock()
		if fn != nil {
			fn(cfg)
		}
	})
	l.v.WatchConfig()
}
