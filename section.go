package conftree

import (
	"strings"
)

// tagValue is one tag/value pair. Values are held in their encoded string
// form; codecs interpret them on access.
type tagValue struct {
	tag   string
	value string
}

// Section is a node in the configuration tree: a name, an ordered list of
// tag/value pairs and an ordered list of subsections. A *Section doubles as
// the section handle handed to consumers; it stays valid until the owning
// Config is reloaded or dropped.
type Section struct {
	parent      *Section
	name        string
	values      []tagValue
	subsections []*Section
	dirty       bool
}

// newSection creates an empty section under the given parent. The parent is
// not linked here; callers append the result to the parent's subsection list.
func newSection(parent *Section, name string) *Section {
	return &Section{parent: parent, name: name}
}

// Name returns the section's name. The root section has an empty name.
func (s *Section) Name() string {
	return s.name
}

// Parent returns the parent section, or nil for the root.
func (s *Section) Parent() *Section {
	return s.parent
}

// Path returns the absolute path of the section, "/" for the root.
func (s *Section) Path() string {
	if s.parent == nil {
		return "/"
	}
	// Walk up to the root collecting names.
	var names []string
	for sec := s; sec.parent != nil; sec = sec.parent {
		names = append(names, sec.name)
	}
	var b strings.Builder
	for i := len(names) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(names[i])
	}
	return b.String()
}

// Subsections returns the subsections in creation order.
func (s *Section) Subsections() []*Section {
	result := make([]*Section, len(s.subsections))
	copy(result, s.subsections)
	return result
}

// Tags returns the section's tag names in insertion order.
func (s *Section) Tags() []string {
	result := make([]string, len(s.values))
	for i, tv := range s.values {
		result[i] = tv.tag
	}
	return result
}

// AddSubsection appends a new empty subsection with the given name and
// returns it. Duplicate names are not rejected; lookups return the first
// match. The new section counts as dirty until the next save.
func (s *Section) AddSubsection(name string) *Section {
	sub := newSection(s, name)
	sub.dirty = true
	s.subsections = append(s.subsections, sub)
	return sub
}

// RemoveSubsection unlinks the first subsection with the given name together
// with its entire subtree. It reports whether a subsection was removed.
func (s *Section) RemoveSubsection(name string) bool {
	for i, sub := range s.subsections {
		if sub.name == name {
			sub.parent = nil
			s.subsections = append(s.subsections[:i], s.subsections[i+1:]...)
			s.dirty = true
			return true
		}
	}
	return false
}

// findSubsection returns the first subsection with the given name, or nil.
func (s *Section) findSubsection(name string) *Section {
	for _, sub := range s.subsections {
		if sub.name == name {
			return sub
		}
	}
	return nil
}

// Section resolves a slash-separated path and returns the section it names.
// A leading '/' restarts resolution at the root; otherwise the path is
// relative to s. Missing sections are not created; the returned error is a
// SectionNotFoundError naming the absolute path that was attempted.
func (s *Section) Section(path string) (*Section, error) {
	sec := s.resolve(path, false)
	if sec == nil {
		return nil, &SectionNotFoundError{Path: joinPath(s.Path(), path)}
	}
	return sec, nil
}

// CreateSection resolves a slash-separated path, creating any sections that
// do not exist along the way, and returns the final section.
func (s *Section) CreateSection(path string) *Section {
	return s.resolve(path, true)
}

// resolve walks a slash-separated path one segment at a time. Empty segments
// are skipped, so "a//b" and "a/b/" resolve like "a/b". Returns nil when a
// segment is missing and create is false.
func (s *Section) resolve(path string, create bool) *Section {
	sec := s
	if strings.HasPrefix(path, "/") {
		sec = s.root()
	}
	for _, segment := range strings.Split(path, "/") {
		if segment == "" {
			continue
		}
		next := sec.findSubsection(segment)
		if next == nil {
			if !create {
				return nil
			}
			next = sec.AddSubsection(segment)
		}
		sec = next
	}
	return sec
}

// root walks the parent links up to the root section.
func (s *Section) root() *Section {
	sec := s
	for sec.parent != nil {
		sec = sec.parent
	}
	return sec
}

// IsDirty reports whether this section or any of its descendants changed
// since the last save. The check short-circuits on the first dirty node.
func (s *Section) IsDirty() bool {
	if s.dirty {
		return true
	}
	for _, sub := range s.subsections {
		if sub.IsDirty() {
			return true
		}
	}
	return false
}

// clearDirty resets the dirty flag on the section and all descendants.
func (s *Section) clearDirty() {
	s.dirty = false
	for _, sub := range s.subsections {
		sub.clearDirty()
	}
}

// markDirty flags the section and all descendants as needing save.
func (s *Section) markDirty() {
	s.dirty = true
	for _, sub := range s.subsections {
		sub.markDirty()
	}
}

// clone deep-copies the subtree under a new parent, dirty flags included.
func (s *Section) clone(parent *Section) *Section {
	dup := newSection(parent, s.name)
	dup.dirty = s.dirty
	dup.values = make([]tagValue, len(s.values))
	copy(dup.values, s.values)
	dup.subsections = make([]*Section, len(s.subsections))
	for i, sub := range s.subsections {
		dup.subsections[i] = sub.clone(dup)
	}
	return dup
}

// lookupTag returns the raw value stored under tag in this section.
func (s *Section) lookupTag(tag string) (string, bool) {
	for _, tv := range s.values {
		if tv.tag == tag {
			return tv.value, true
		}
	}
	return "", false
}

// storeTagValue overwrites the first entry with the given tag, preserving
// its position, or appends a new entry. Tags stay unique within a section
// because every write funnels through here. The section is marked dirty.
func (s *Section) storeTagValue(tag, value string) {
	for i := range s.values {
		if s.values[i].tag == tag {
			s.values[i].value = value
			s.dirty = true
			return
		}
	}
	s.values = append(s.values, tagValue{tag: tag, value: value})
	s.dirty = true
}

// removeTagValue deletes the entry with the given tag and reports whether
// one existed.
func (s *Section) removeTagValue(tag string) bool {
	for i := range s.values {
		if s.values[i].tag == tag {
			s.values = append(s.values[:i], s.values[i+1:]...)
			s.dirty = true
			return true
		}
	}
	return false
}

// splitTagPath splits a tag path at the last '/' into the section path and
// the tag name. "s/t" gives ("s", "t"), "/t" gives ("/", "t"), "t" gives
// ("", "t").
func splitTagPath(tagPath string) (sectionPath, tag string) {
	idx := strings.LastIndexByte(tagPath, '/')
	if idx < 0 {
		return "", tagPath
	}
	if idx == 0 {
		return "/", tagPath[1:]
	}
	return tagPath[:idx], tagPath[idx+1:]
}

// joinPath builds the absolute form of a path relative to base. Used for
// error reporting only; resolution itself walks the tree.
func joinPath(basePath, path string) string {
	if strings.HasPrefix(path, "/") {
		return "/" + joinSegments(path)
	}
	joined := joinSegments(path)
	if basePath == "/" {
		return "/" + joined
	}
	if joined == "" {
		return basePath
	}
	return basePath + "/" + joined
}

// joinSegments normalizes a path fragment by dropping empty segments.
func joinSegments(path string) string {
	var segments []string
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return strings.Join(segments, "/")
}

// HasTag reports whether the tag path resolves to an existing tag. The
// section part is resolved strictly; a missing section means a missing tag.
func (s *Section) HasTag(tagPath string) bool {
	sectionPath, tag := splitTagPath(tagPath)
	sec := s.resolve(sectionPath, false)
	if sec == nil || tag == "" {
		return false
	}
	_, ok := sec.lookupTag(tag)
	return ok
}

// RemoveTag deletes the tag named by the tag path. It does nothing if the
// section or the tag does not exist.
func (s *Section) RemoveTag(tagPath string) {
	sectionPath, tag := splitTagPath(tagPath)
	sec := s.resolve(sectionPath, false)
	if sec == nil || tag == "" {
		return
	}
	sec.removeTagValue(tag)
}

// retrieveTag returns the raw string stored under the tag path. Strict: a
// missing section or tag yields a TagNotFoundError naming the section's
// absolute path.
func (s *Section) retrieveTag(tagPath string) (string, error) {
	sectionPath, tag := splitTagPath(tagPath)
	sec := s.resolve(sectionPath, false)
	if sec == nil {
		return "", &TagNotFoundError{Tag: tag, SectionPath: joinPath(s.Path(), sectionPath)}
	}
	value, ok := sec.lookupTag(tag)
	if !ok {
		return "", &TagNotFoundError{Tag: tag, SectionPath: sec.Path()}
	}
	return value, nil
}

// lookupTagPath is the non-strict counterpart of retrieveTag: it reports
// whether the tag path resolved at all. The tree is not modified.
func (s *Section) lookupTagPath(tagPath string) (string, bool) {
	sectionPath, tag := splitTagPath(tagPath)
	sec := s.resolve(sectionPath, false)
	if sec == nil {
		return "", false
	}
	return sec.lookupTag(tag)
}

// storeTag stores value under the tag path, creating missing sections on the
// way. The owning section is marked dirty; ancestors are left alone, the
// dirty check recurses instead.
func (s *Section) storeTag(tagPath, value string) {
	sectionPath, tag := splitTagPath(tagPath)
	sec := s.resolve(sectionPath, true)
	sec.storeTagValue(tag, value)
}
