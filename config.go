// FILE: conftree/config.go
package conftree

import (
	"errors"
	"fmt"
)

// Config owns a section tree together with the file it came from. The file
// name doubles as the default save target and as context in error messages.
// A Config also carries the current section, the base against which relative
// paths resolve; it starts at the root and is retargeted with SetCurrent.
type Config struct {
	fileName string
	root     *Section
	current  *Section
}

// New creates an empty store not bound to any file. Use SaveAs to bind it.
func New() *Config {
	root := newSection(nil, "")
	return &Config{root: root, current: root}
}

// Open loads the configuration file at path. A missing file is tolerated:
// Open returns a usable empty store already bound to the path together with
// an error matching ErrConfigNotFound, so the caller decides whether missing
// is fatal. Any other failure returns a nil store.
func Open(path string) (*Config, error) {
	root, err := parseFile(path)
	if err != nil {
		if errors.Is(err, ErrConfigNotFound) {
			c := New()
			c.fileName = path
			return c, err
		}
		return nil, err
	}
	return &Config{fileName: path, root: root, current: root}, nil
}

// FileName returns the file the store is bound to, or "" for an unbound one.
func (c *Config) FileName() string {
	return c.fileName
}

// Root returns the root section.
func (c *Config) Root() *Section {
	return c.root
}

// Current returns the section relative paths currently resolve against.
func (c *Config) Current() *Section {
	return c.current
}

// SetCurrent retargets the current section. The path resolves against the
// previous current section, or against the root when it starts with '/'.
// Missing sections are an error and leave the cursor where it was.
func (c *Config) SetCurrent(path string) error {
	sec, err := c.current.Section(path)
	if err != nil {
		return err
	}
	c.current = sec
	return nil
}

// Section resolves a path against the current section without creating
// anything. See Section.Section for the resolution rules.
func (c *Config) Section(path string) (*Section, error) {
	return c.current.Section(path)
}

// CreateSection resolves a path against the current section, creating any
// missing sections along the way.
func (c *Config) CreateSection(path string) *Section {
	return c.current.CreateSection(path)
}

// HasTag reports whether the tag path resolves relative to the current
// section.
func (c *Config) HasTag(tagPath string) bool {
	return c.current.HasTag(tagPath)
}

// RemoveTag deletes the tag named by the tag path relative to the current
// section, if it exists.
func (c *Config) RemoveTag(tagPath string) {
	c.current.RemoveTag(tagPath)
}

// IsDirty reports whether any section changed since the last save.
func (c *Config) IsDirty() bool {
	return c.root.IsDirty()
}

// Load re-reads the bound file, replacing the tree wholesale and discarding
// unsaved edits. The current section resets to the root; section handles
// obtained before the reload keep pointing into the old tree. A failed load
// leaves the store untouched.
func (c *Config) Load() error {
	if c.fileName == "" {
		return fmt.Errorf("config store is not bound to a file")
	}
	root, err := parseFile(c.fileName)
	if err != nil {
		return err
	}
	c.root = root
	c.current = root
	return nil
}
