package config

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Load reads the file at path over the built-in defaults. An empty path
// returns the defaults untouched. Keys missing from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Watch re-reads the file on every change and hands the result to fn.
// Reload failures keep the previous config and are logged, never fatal.
// The watch runs for the life of the process.
func Watch(path string, fn func(Config)) error {
	if path == "" {
		return errors.New("config: no file to watch")
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("watch config %s: %w", path, err)
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		cfg := Defaults()
		if err := v.Unmarshal(&cfg); err != nil {
			slog.Warn("config reload failed", "path", path, "error", err)
			return
		}
		if err := cfg.Validate(); err != nil {
			slog.Warn("config reload rejected", "path", path, "error", err)
			return
		}
		slog.Info("config reloaded", "path", path, "op", e.Op.String())
		fn(cfg)
	})
	v.WatchConfig()
	return nil
}
