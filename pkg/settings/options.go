package settings

import (
	"fmt"
	"maps"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Option mutates a pending settings snapshot. Options validate eagerly: an
// invalid value aborts the whole Configure call.
type Option func(*Snapshot) error

// WithTrigger sets the global timing policy.
func WithTrigger(t Trigger) Option {
	return func(c *Snapshot) error {
		if !t.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidTrigger, t)
		}
		c.Trigger = t
		return nil
	}
}

// WithMode sets the global execution policy.
func WithMode(m Mode) Option {
	return func(c *Snapshot) error {
		if !m.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidMode, m)
		}
		c.Mode = m
		return nil
	}
}

// WithQueue sets the global queue name.
func WithQueue(name string) Option {
	return func(c *Snapshot) error {
		if name == "" {
			return ErrEmptyQueue
		}
		c.Queue = name
		return nil
	}
}

// WithJobOptions sets the global job options. The map is copied; later
// mutations by the caller are not observed.
func WithJobOptions(opts map[string]any) Option {
	return func(c *Snapshot) error {
		c.JobOptions = maps.Clone(opts)
		return nil
	}
}

// WithBatchSize sets the bulk-delete chunk size.
func WithBatchSize(n int) Option {
	return func(c *Snapshot) error {
		if n <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidBatchSize, n)
		}
		c.BatchSize = n
		return nil
	}
}

// WithLogLevel sets the logging level from its configuration name
// (debug, info, warn, error).
func WithLogLevel(name string) Option {
	return func(c *Snapshot) error {
		level, err := ParseLevel(name)
		if err != nil {
			return err
		}
		c.LogLevel = level
		return nil
	}
}

// FromEnv overrides settings from SWEEP_* environment variables.
// Unset variables leave the current value untouched; set but invalid
// variables are configuration errors.
func FromEnv() Option {
	return func(c *Snapshot) error {
		if v, ok := os.LookupEnv("SWEEP_TRIGGER"); ok {
			if err := WithTrigger(Trigger(v))(c); err != nil {
				return err
			}
		}
		if v, ok := os.LookupEnv("SWEEP_MODE"); ok {
			if err := WithMode(Mode(v))(c); err != nil {
				return err
			}
		}
		if v, ok := os.LookupEnv("SWEEP_QUEUE"); ok {
			if err := WithQueue(v)(c); err != nil {
				return err
			}
		}
		if v, ok := os.LookupEnv("SWEEP_BATCH_SIZE"); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%w: %q", ErrInvalidBatchSize, v)
			}
			if err := WithBatchSize(n)(c); err != nil {
				return err
			}
		}
		if v, ok := os.LookupEnv("SWEEP_LOG_LEVEL"); ok {
			if err := WithLogLevel(v)(c); err != nil {
				return err
			}
		}
		return nil
	}
}

// fileConfig mirrors the YAML settings file shape.
type fileConfig struct {
	Trigger    string         `yaml:"trigger"`
	Mode       string         `yaml:"mode"`
	Queue      string         `yaml:"queue"`
	JobOptions map[string]any `yaml:"job_options"`
	BatchSize  int            `yaml:"batch_size"`
	LogLevel   string         `yaml:"log_level"`
}

// LoadFile overrides settings from a YAML file. Absent fields leave the
// current value untouched.
//
// Example file:
//
//	trigger: deferred
//	mode: async
//	queue: invalidation
//	batch_size: 250
//	log_level: warn
//	job_options:
//	  priority: 2
func LoadFile(path string) Option {
	return func(c *Snapshot) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrLoadFile, err)
		}

		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return fmt.Errorf("%w: %w", ErrLoadFile, err)
		}

		fileOpts := make([]Option, 0, 6)
		if fc.Trigger != "" {
			fileOpts = append(fileOpts, WithTrigger(Trigger(fc.Trigger)))
		}
		if fc.Mode != "" {
			fileOpts = append(fileOpts, WithMode(Mode(fc.Mode)))
		}
		if fc.Queue != "" {
			fileOpts = append(fileOpts, WithQueue(fc.Queue))
		}
		if fc.JobOptions != nil {
			fileOpts = append(fileOpts, WithJobOptions(fc.JobOptions))
		}
		if fc.BatchSize != 0 {
			fileOpts = append(fileOpts, WithBatchSize(fc.BatchSize))
		}
		if fc.LogLevel != "" {
			fileOpts = append(fileOpts, WithLogLevel(fc.LogLevel))
		}

		for _, opt := range fileOpts {
			if err := opt(c); err != nil {
				return err
			}
		}
		return nil
	}
}
