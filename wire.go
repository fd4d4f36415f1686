// FILE: conftree/wire.go
package conftree

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// Wire format version
const wireVersion = 1

// Magic bytes identifying a wire stream
var wireMagic = []byte("CFTW") // ConfTree Wire

// maxWireString caps a single string in a wire stream, so a corrupt length
// prefix cannot trigger a huge allocation.
const maxWireString = 16 * 1024 * 1024

// maxWireDepth bounds section nesting in a wire stream.
const maxWireDepth = 1024

// WriteWire serializes the whole tree to w, independent of the text grammar.
// Format:
//
//	[4 bytes] Magic "CFTW"
//	[4 bytes] Version (little endian)
//	[section record...]
//	  [4 bytes] Name length, [n bytes] Name
//	  [4 bytes] Tag pair count
//	    per pair: length-prefixed tag, length-prefixed value
//	  [4 bytes] Subsection count
//	    per subsection: its full recursive record
//
// The round-trip through ReadWire is lossless: section order, tag order,
// values, empty sections and zero-tag sections all survive.
func (c *Config) WriteWire(w io.Writer) error {
	return c.root.WriteWire(w)
}

// ReadWire reconstructs a tree serialized by WriteWire and returns it as a
// fresh store, not bound to any file and entirely clean. This is how one
// process hands a fully resolved configuration to another without sharing a
// filesystem path.
func ReadWire(r io.Reader) (*Config, error) {
	br := bufio.NewReader(r)
	if err := readWireHeader(br); err != nil {
		return nil, err
	}
	root, err := readWireSection(br, nil, 0)
	if err != nil {
		return nil, err
	}
	if root.name != "" {
		return nil, fmt.Errorf("%w: stream carries a subtree, not a whole tree", ErrWireFormat)
	}
	return &Config{root: root, current: root}, nil
}

// WriteWire serializes the subtree rooted at s, including its own name.
func (s *Section) WriteWire(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(wireMagic); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(wireVersion)); err != nil {
		return err
	}
	if err := writeWireSection(bw, s); err != nil {
		return err
	}
	return bw.Flush()
}

// ReadWireSubsection reads one serialized subtree from r and attaches it to
// s as a new subsection, marked dirty throughout so a following save
// persists the graft. A stream carrying a whole tree (unnamed root) cannot
// attach as a subsection; read it with ReadWire and fold it in with
// MergeConfig instead.
func (s *Section) ReadWireSubsection(r io.Reader) (*Section, error) {
	br := bufio.NewReader(r)
	if err := readWireHeader(br); err != nil {
		return nil, err
	}
	sub, err := readWireSection(br, s, 0)
	if err != nil {
		return nil, err
	}
	if sub.name == "" {
		return nil, fmt.Errorf("%w: unnamed section cannot attach as a subsection", ErrWireFormat)
	}
	sub.markDirty()
	s.subsections = append(s.subsections, sub)
	return sub, nil
}

func readWireHeader(r *bufio.Reader) error {
	magic := make([]byte, len(wireMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return err
	}
	if string(magic) != string(wireMagic) {
		return ErrWireFormat
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return err
	}
	if version != wireVersion {
		return ErrWireVersion
	}
	return nil
}

func writeWireSection(w *bufio.Writer, s *Section) error {
	if err := writeWireString(w, s.name); err != nil {
		return err
	}

	if err := binary.Write(w, binary.LittleEndian, uint32(len(s.values))); err != nil {
		return err
	}
	for _, tv := range s.values {
		if err := writeWireString(w, tv.tag); err != nil {
			return err
		}
		if err := writeWireString(w, tv.value); err != nil {
			return err
		}
	}

	if err := binary.Write(w, binary.LittleEndian, uint32(len(s.subsections))); err != nil {
		return err
	}
	for _, sub := range s.subsections {
		if err := writeWireSection(w, sub); err != nil {
			return err
		}
	}
	return nil
}

// readWireSection rebuilds one section record. Nodes are constructed clean;
// callers decide whether the result counts as loaded or as an edit.
func readWireSection(r *bufio.Reader, parent *Section, depth int) (*Section, error) {
	if depth > maxWireDepth {
		return nil, fmt.Errorf("%w: section nesting exceeds %d", ErrWireFormat, maxWireDepth)
	}

	name, err := readWireString(r)
	if err != nil {
		return nil, err
	}
	sec := newSection(parent, name)

	var tagCount uint32
	if err := binary.Read(r, binary.LittleEndian, &tagCount); err != nil {
		return nil, err
	}
	for i := uint32(0); i < tagCount; i++ {
		tag, err := readWireString(r)
		if err != nil {
			return nil, err
		}
		value, err := readWireString(r)
		if err != nil {
			return nil, err
		}
		sec.values = append(sec.values, tagValue{tag: tag, value: value})
	}

	var subCount uint32
	if err := binary.Read(r, binary.LittleEndian, &subCount); err != nil {
		return nil, err
	}
	for i := uint32(0); i < subCount; i++ {
		sub, err := readWireSection(r, sec, depth+1)
		if err != nil {
			return nil, err
		}
		sec.subsections = append(sec.subsections, sub)
	}

	return sec, nil
}

func writeWireString(w *bufio.Writer, s string) error {
	if len(s) > maxWireString {
		return ErrWireFormat
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(s))); err != nil {
		return err
	}
	_, err := w.WriteString(s)
	return err
}

func readWireString(r *bufio.Reader) (string, error) {
	var length uint32
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return "", err
	}

	// Validate length before allocating
	if length > maxWireString {
		return "", ErrWireFormat
	}

	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
