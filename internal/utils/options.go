package util

import (
	"bytes"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Options represents buffer manager configuration options
type Options struct {
	Path           string `yaml:"path"`
	PageSize       int    `yaml:"page_size"`
	BufferPoolSize int    `yaml:"buffer_pool_size"`
	InitialPages   int    `yaml:"initial_pages"`
	SyncWrites     bool   `yaml:"sync_writes"`
	LogLevel       string `yaml:"log_level"`

	// Logger overrides the logger built from LogLevel
	Logger *slog.Logger `yaml:"-"`
}

// DefaultOptions returns default options
func DefaultOptions() Options {
	return Options{
		Path:           "pagecache.dat",
		PageSize:       PageSize,
		BufferPoolSize: 1000, // 4MB default buffer pool
		InitialPages:   0,
		SyncWrites:     false,
		LogLevel:       "info",
	}
}

// LoadOptions reads a YAML file on top of DefaultOptions
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	raw, err := os.ReadFile(path)
	if err != nil {
		return opts, errors.Wrapf(err, "read config %s", path)
	}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil {
		return opts, errors.Wrapf(err, "decode config %s", path)
	}

	if err := opts.Validate(); err != nil {
		return opts, errors.Wrapf(err, "config %s", path)
	}
	return opts, nil
}

// Validate checks the numeric options and the log level
func (o Options) Validate() error {
	if o.PageSize <= 0 {
		return ErrInvalidPageSize
	}
	if o.BufferPoolSize <= 0 {
		return ErrInvalidPoolSize
	}
	if o.InitialPages < 0 {
		return ErrInvalidInitialPages
	}
	if _, err := o.level(); err != nil {
		return err
	}
	return nil
}

// NewLogger returns Options.Logger, or a text logger on stderr at LogLevel
func (o Options) NewLogger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	level, err := o.level()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func (o Options) level() (slog.Level, error) {
	var level slog.Level
	if o.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(o.LogLevel)); err != nil {
		return level, errors.Wrapf(err, "log level %q", o.LogLevel)
	}
	return level, nil
}
