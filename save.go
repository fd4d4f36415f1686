// FILE: conftree/save.go
package conftree

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Save writes the dirty parts of the tree to the bound file and clears the
// dirty flags. A subsection is written only when it or a descendant is
// dirty; everything else is skipped, preserving sibling order among what
// remains. The saved file is therefore an overlay layer: merging it over
// the fuller base configuration reproduces the effective tree. When nothing
// is dirty, Save returns without touching the file.
func (c *Config) Save() error {
	if c.fileName == "" {
		return fmt.Errorf("config store is not bound to a file")
	}
	if !c.root.IsDirty() {
		return nil
	}

	var b strings.Builder
	renderSection(&b, c.root, 0, true)
	if err := atomicWriteFile(c.fileName, []byte(b.String())); err != nil {
		return err
	}
	c.root.clearDirty()
	return nil
}

// SaveAs writes the complete tree to path regardless of dirty state, binds
// the store to the new path and clears the dirty flags.
func (c *Config) SaveAs(path string) error {
	var b strings.Builder
	renderSection(&b, c.root, 0, false)
	if err := atomicWriteFile(path, []byte(b.String())); err != nil {
		return err
	}
	c.fileName = path
	c.root.clearDirty()
	return nil
}

// WriteTo dumps the complete tree in the text format. Unlike Save it writes
// everything and leaves the dirty flags alone.
func (c *Config) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	renderSection(&b, c.root, 0, false)
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// renderSection appends the text form of a section body: its tag lines
// followed by its subsection blocks, indented one tab per nesting level.
// With onlyDirty set, subsections whose subtree is clean are skipped.
func renderSection(b *strings.Builder, s *Section, depth int, onlyDirty bool) {
	indent := strings.Repeat("\t", depth)
	for _, tv := range s.values {
		b.WriteString(indent)
		b.WriteString(tv.tag)
		if tv.value != "" {
			b.WriteByte(' ')
			b.WriteString(tv.value)
		}
		b.WriteByte('\n')
	}
	for _, sub := range s.subsections {
		if onlyDirty && !sub.IsDirty() {
			continue
		}
		b.WriteString(indent)
		b.WriteString(sub.name)
		b.WriteString(" {\n")
		renderSection(b, sub, depth+1, onlyDirty)
		b.WriteString(indent)
		b.WriteString("}\n")
	}
}

// atomicWriteFile writes data to path through a temp file in the same
// directory, synced and renamed into place, so a crash never leaves a
// half-written configuration behind. Missing parent directories are created.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tempPath := tempFile.Name()
	defer os.Remove(tempPath) // Clean up on any error

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}
