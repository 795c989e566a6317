package config

import (
	"errors"
	"fmt"

	"github.com/gobwas/glob"
)

var (
	// ErrInvalidMode indicates an unsupported content mode.
	ErrInvalidMode = errors.New("invalid mode")

	// ErrEmptyOutput indicates a missing output path.
	ErrEmptyOutput = errors.New("empty output path")

	// ErrNoIncludes indicates an empty include pattern list.
	ErrNoIncludes = errors.New("no include patterns")

	// ErrInvalidPattern indicates a glob pattern that does not compile.
	ErrInvalidPattern = errors.New("invalid glob pattern")

	// ErrInvalidConcurrency indicates a negative worker count.
	ErrInvalidConcurrency = errors.New("invalid concurrency")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	switch cfg.Mode {
	case ModeFull, ModeAPI:
	default:
		errs = append(errs, fmt.Errorf("%w: %q (want %q or %q)", ErrInvalidMode, cfg.Mode, ModeFull, ModeAPI))
	}

	if cfg.Output == "" {
		errs = append(errs, ErrEmptyOutput)
	}
	if len(cfg.Paths.Include) == 0 {
		errs = append(errs, ErrNoIncludes)
	}
	if cfg.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidConcurrency, cfg.Concurrency))
	}

	for _, pattern := range append(append([]string{}, cfg.Paths.Include...), cfg.Paths.Exclude...) {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err))
		}
	}

	return errors.Join(errs...)
}
