// FILE: conftree/errors.go
package conftree

import (
	"errors"
	"fmt"
)

// MaxValueSize limits the size of a single tag value taken from the
// environment, guarding against runaway variables.
const MaxValueSize = 1024 * 1024 // 1MB

// Sentinel errors returned by store operations. Structured error types
// below match these through errors.Is.
var (
	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrMalformed indicates a configuration file that does not follow the
	// text grammar.
	ErrMalformed = errors.New("malformed config file")

	// ErrSectionNotFound indicates a strict path lookup failed.
	ErrSectionNotFound = errors.New("section not found")

	// ErrTagNotFound indicates a strict tag retrieval failed.
	ErrTagNotFound = errors.New("tag not found")

	// ErrDecode indicates a stored value does not match the shape its
	// codec expects.
	ErrDecode = errors.New("value decode failed")

	// ErrCLIParse indicates a malformed command-line override pair.
	ErrCLIParse = errors.New("command-line merge failed")

	// ErrValueSize indicates a value exceeding MaxValueSize.
	ErrValueSize = errors.New("value exceeds maximum size")

	// ErrWireFormat indicates a corrupt or foreign wire stream.
	ErrWireFormat = errors.New("invalid wire format")

	// ErrWireVersion indicates a wire stream from an incompatible version.
	ErrWireVersion = errors.New("wire version mismatch")
)

// MalformedFileError reports an unparseable configuration file. It carries
// the file name and the one-based line number of the offending line.
type MalformedFileError struct {
	File    string
	Line    int
	Message string
}

// Error implements the error interface.
func (e *MalformedFileError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("malformed config at line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("malformed config file '%s' at line %d: %s", e.File, e.Line, e.Message)
}

// Is matches ErrMalformed.
func (e *MalformedFileError) Is(target error) bool {
	return target == ErrMalformed
}

// SectionNotFoundError reports a failed strict section lookup. Path is the
// absolute path that was attempted, not the segment that broke resolution.
type SectionNotFoundError struct {
	Path string
}

// Error implements the error interface.
func (e *SectionNotFoundError) Error() string {
	return fmt.Sprintf("section not found: %s", e.Path)
}

// Is matches ErrSectionNotFound.
func (e *SectionNotFoundError) Is(target error) bool {
	return target == ErrSectionNotFound
}

// TagNotFoundError reports a failed strict tag retrieval. SectionPath is the
// absolute path of the section that was searched.
type TagNotFoundError struct {
	Tag         string
	SectionPath string
}

// Error implements the error interface.
func (e *TagNotFoundError) Error() string {
	return fmt.Sprintf("tag %q not found in section %s", e.Tag, e.SectionPath)
}

// Is matches ErrTagNotFound.
func (e *TagNotFoundError) Is(target error) bool {
	return target == ErrTagNotFound
}

// DecodeError reports a tag value that could not be decoded. Input is the
// offending substring, Type names the target type.
type DecodeError struct {
	Input string
	Type  string
	Err   error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot decode %q as %s: %v", e.Input, e.Type, e.Err)
	}
	return fmt.Sprintf("cannot decode %q as %s", e.Input, e.Type)
}

// Is matches ErrDecode.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// decodeErr builds a DecodeError for the given input and target type.
func decodeErr(input, typeName string, err error) error {
	return &DecodeError{Input: input, Type: typeName, Err: err}
}
