// File: conftree/convenience.go
package conftree

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Quick opens a configuration file and applies command-line overrides in a
// single call, returning the store and the residual arguments. A missing
// file is reported through ErrConfigNotFound alongside a usable store.
// This is the recommended way to initialize configuration for most programs.
func Quick(path string, args []string) (*Config, []string, error) {
	return NewBuilder().WithFile(path).WithArgs(args).Build()
}

// MustQuick is like Quick but panics on error and drops the residual
// arguments. A missing file is not fatal.
func MustQuick(path string, args []string) *Config {
	c, _, err := Quick(path, args)
	if err != nil && !errors.Is(err, ErrConfigNotFound) {
		panic(fmt.Sprintf("config initialization failed: %v", err))
	}
	return c
}

// Validate checks that all required tag paths are set, resolving against
// the current section. Defaults do not count: a tag is set only when it
// exists in the tree.
func (c *Config) Validate(required ...string) error {
	var missing []string
	for _, tagPath := range required {
		if !c.HasTag(tagPath) {
			missing = append(missing, tagPath)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// List writes the section's immediate contents to w: subsection names
// first, marked with a trailing '/', then tag names, one per line.
func (s *Section) List(w io.Writer) error {
	for _, sub := range s.subsections {
		if _, err := fmt.Fprintln(w, sub.name+"/"); err != nil {
			return err
		}
	}
	for _, tv := range s.values {
		if _, err := fmt.Fprintln(w, tv.tag); err != nil {
			return err
		}
	}
	return nil
}

// Debug returns a formatted dump of the whole tree with dirty markers, for
// troubleshooting which sections a save would write.
func (c *Config) Debug() string {
	var b strings.Builder
	b.WriteString("Configuration Debug Info:\n")
	file := c.fileName
	if file == "" {
		file = "(unbound)"
	}
	fmt.Fprintf(&b, "File: %s\n", file)
	fmt.Fprintf(&b, "Current: %s\n", c.current.Path())
	fmt.Fprintf(&b, "Needs save: %t\n", c.IsDirty())
	debugSection(&b, c.root)
	return b.String()
}

// debugSection appends one section and its subtree, dirty sections marked
// with '*'.
func debugSection(b *strings.Builder, s *Section) {
	marker := ""
	if s.dirty {
		marker = " *"
	}
	fmt.Fprintf(b, "%s%s\n", s.Path(), marker)
	for _, tv := range s.values {
		fmt.Fprintf(b, "  %s = %q\n", tv.tag, tv.value)
	}
	for _, sub := range s.subsections {
		debugSection(b, sub)
	}
}

// Dump writes the current configuration to stdout in TOML format
func (c *Config) Dump() error {
	return c.ExportTOML(os.Stdout)
}

// Clone creates a deep copy of the store: tree, dirty flags, bound file
// name and, as closely as duplicate section names allow, the current
// section position.
func (c *Config) Clone() *Config {
	root := c.root.clone(nil)
	clone := &Config{fileName: c.fileName, root: root, current: root}
	if c.current != c.root {
		if sec, err := root.Section(c.current.Path()); err == nil {
			clone.current = sec
		}
	}
	return clone
}
