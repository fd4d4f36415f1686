// FILE: conftree/parse.go
package conftree

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// parseFile reads and parses a configuration file into a fresh clean tree.
// A missing file is reported through the ErrConfigNotFound sentinel so
// callers can treat it as tolerable.
func parseFile(path string) (*Section, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file '%s': %w", path, ErrConfigNotFound)
		}
		return nil, fmt.Errorf("failed to open config file '%s': %w", path, err)
	}
	defer f.Close()
	return parseReader(f, path)
}

// parseReader parses the line-oriented text grammar into a fresh tree:
//
//	# comment
//	name {        opens a subsection
//	}             closes it
//	tag value     stores a tag; the value is the rest of the line
//
// Indentation is cosmetic and ignored. Structural problems abort the parse
// with a MalformedFileError carrying the file name and line number; nothing
// partially built is ever returned. The returned tree is clean.
func parseReader(r io.Reader, fileName string) (*Section, error) {
	root := newSection(nil, "")
	current := root

	// Opening line numbers of the sections still open, for the
	// unterminated-section error.
	var openLines []int

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxValueSize+4096)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())

		switch {
		case text == "" || strings.HasPrefix(text, "#"):
			// Blank line or comment.

		case text == "}":
			if current == root {
				return nil, &MalformedFileError{File: fileName, Line: line, Message: "unmatched '}'"}
			}
			current = current.parent
			openLines = openLines[:len(openLines)-1]

		case strings.HasPrefix(text, "}"):
			return nil, &MalformedFileError{File: fileName, Line: line, Message: "unexpected text after '}'"}

		case strings.HasSuffix(text, "{"):
			name := strings.TrimSpace(strings.TrimSuffix(text, "{"))
			if name == "" {
				return nil, &MalformedFileError{File: fileName, Line: line, Message: "missing section name before '{'"}
			}
			if strings.ContainsAny(name, " \t") {
				return nil, &MalformedFileError{File: fileName, Line: line,
					Message: fmt.Sprintf("section name %q contains whitespace", name)}
			}
			current = current.AddSubsection(name)
			openLines = append(openLines, line)

		default:
			tag, value := splitTagLine(text)
			current.storeTagValue(tag, value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", fileName, err)
	}

	if current != root {
		return nil, &MalformedFileError{File: fileName, Line: openLines[len(openLines)-1],
			Message: fmt.Sprintf("section '%s' is never closed", current.name)}
	}

	// The tree was built through the ordinary store operations, which mark
	// sections dirty. A freshly loaded tree is clean.
	root.clearDirty()
	return root, nil
}

// splitTagLine splits a directive line into the tag (first whitespace
// delimited token) and the raw value (the trimmed remainder). A tag alone on
// a line stores the empty string.
func splitTagLine(text string) (tag, value string) {
	idx := strings.IndexAny(text, " \t")
	if idx < 0 {
		return text, ""
	}
	return text[:idx], strings.TrimSpace(text[idx+1:])
}
