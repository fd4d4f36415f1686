// File: conftree/builder.go
package conftree

import (
	"errors"
	"fmt"
	"os"
)

// ValidatorFunc is a check run against the fully assembled store at the end
// of a build. Returning an error fails the build.
type ValidatorFunc func(c *Config) error

// Builder provides a fluent interface for assembling a store from layered
// sources. Layers apply in a fixed precedence order, lowest first: the base
// file, overlay files in the order given, environment variables, and
// finally command-line overrides.
type Builder struct {
	file       string
	overlays   []string
	args       []string
	envPrefix  string
	useEnv     bool
	validators []ValidatorFunc
}

// NewBuilder creates a new configuration builder. Arguments default to
// os.Args[1:] and are replaced wholesale by WithArgs.
func NewBuilder() *Builder {
	return &Builder{
		args:       os.Args[1:],
		validators: make([]ValidatorFunc, 0),
	}
}

// WithFile sets the base configuration file.
func (b *Builder) WithFile(path string) *Builder {
	b.file = path
	return b
}

// WithOverlay appends overlay files, merged over the base in the order
// given. A missing overlay is tolerated the same way a missing base is.
func (b *Builder) WithOverlay(paths ...string) *Builder {
	b.overlays = append(b.overlays, paths...)
	return b
}

// WithArgs sets the command-line arguments to scan for "-tagPath value"
// overrides.
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	return b
}

// WithEnvPrefix enables environment variable overrides with the given
// prefix. The empty prefix is valid and matches bare variable names.
func (b *Builder) WithEnvPrefix(prefix string) *Builder {
	b.envPrefix = prefix
	b.useEnv = true
	return b
}

// WithValidator adds a validation function run at the end of the build.
// Multiple validators execute in the order they were added.
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build assembles the store and returns it together with the residual
// command-line arguments, the ones not consumed as overrides.
//
// Missing files are not fatal: the store is still returned, usable, with an
// error matching ErrConfigNotFound so the caller can decide. Parse failures,
// command-line merge failures and validator failures are fatal and return a
// nil store.
func (b *Builder) Build() (*Config, []string, error) {
	var warn error

	c := New()
	if b.file != "" {
		var err error
		c, err = Open(b.file)
		if err != nil {
			if !errors.Is(err, ErrConfigNotFound) {
				return nil, nil, err
			}
			warn = err
		}
	}

	for _, path := range b.overlays {
		if err := c.Merge(path); err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				warn = errors.Join(warn, err)
				continue
			}
			return nil, nil, err
		}
	}

	if b.useEnv {
		if err := c.MergeEnv(b.envPrefix); err != nil {
			return nil, nil, err
		}
	}

	residual := b.args
	if len(b.args) > 0 {
		var err error
		residual, err = c.MergeArgs(b.args)
		if err != nil {
			return nil, residual, err
		}
	}

	for _, validator := range b.validators {
		if err := validator(c); err != nil {
			return nil, nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	return c, residual, warn
}

// MustBuild is like Build but panics on error. A missing file is not fatal;
// the application can proceed with overrides alone.
func (b *Builder) MustBuild() *Config {
	c, _, err := b.Build()
	if err != nil && !errors.Is(err, ErrConfigNotFound) {
		panic(fmt.Sprintf("config build failed: %v", err))
	}
	return c
}

// BuildAndScan builds the store and decodes the section at basePath into the
// provided target struct pointer, returning the residual arguments. An empty
// basePath scans the whole tree.
func (b *Builder) BuildAndScan(basePath string, target any) ([]string, error) {
	c, residual, err := b.Build()
	if err != nil && !errors.Is(err, ErrConfigNotFound) {
		return residual, err
	}

	if scanErr := c.Scan(basePath, target); scanErr != nil {
		return residual, fmt.Errorf("failed to scan final config into target: %w", scanErr)
	}

	// ErrConfigNotFound or nil
	return residual, err
}
