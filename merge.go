// FILE: conftree/merge.go
package conftree

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Merge loads the file at path and folds it into the tree: each incoming
// section is found-or-created by name in the destination, each incoming tag
// overwrites or creates the destination tag. Sections and tags present only
// in the destination are untouched, which makes merge order-sensitive:
// later merges take precedence. Merged content counts as dirty. A failed
// parse leaves the tree alone.
func (c *Config) Merge(path string) error {
	root, err := parseFile(path)
	if err != nil {
		return err
	}
	mergeSections(c.root, root)
	return nil
}

// MergeConfig folds another store's tree into this one under the same rules
// as Merge. The other store is not modified.
func (c *Config) MergeConfig(other *Config) {
	mergeSections(c.root, other.root)
}

// mergeSections folds src into dst depth-first. Tag stores go through the
// ordinary write path, so they overwrite in place and mark sections dirty.
func mergeSections(dst, src *Section) {
	for _, tv := range src.values {
		dst.storeTagValue(tv.tag, tv.value)
	}
	for _, sub := range src.subsections {
		target := dst.findSubsection(sub.name)
		if target == nil {
			target = dst.AddSubsection(sub.name)
		}
		mergeSections(target, sub)
	}
}

// MergeArgs applies command-line overrides of the form "-tagPath value" and
// returns the arguments that were not consumed, in their original order.
// Tag paths resolve against the root. The argument after a flag is always
// taken as its value, so a value may itself start with '-'. A trailing flag
// with no value to pair with stays in the residual and is reported through
// an error matching ErrCLIParse; overrides seen before it are already
// applied. A bare "-" is not a flag, and double-dash arguments such as
// "--verbose" are program options, not overrides: they pass through to the
// residual untouched.
func (c *Config) MergeArgs(args []string) ([]string, error) {
	residual := make([]string, 0, len(args))
	var errs error
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if len(arg) < 2 || arg[0] != '-' || strings.HasPrefix(arg, "--") {
			residual = append(residual, arg)
			continue
		}
		if i+1 >= len(args) {
			residual = append(residual, arg)
			errs = errors.Join(errs, fmt.Errorf("%w: trailing flag '%s' has no value", ErrCLIParse, arg))
			continue
		}
		value := args[i+1]
		i++
		if len(value) > MaxValueSize {
			errs = errors.Join(errs, fmt.Errorf("%w: value for flag '%s'", ErrValueSize, arg))
			continue
		}
		c.root.storeTag(arg[1:], value)
	}
	return residual, errs
}

// MergeEnv overrides existing tags from environment variables. Every tag
// path present in the tree maps to a variable name by uppercasing its
// segments, joining them with underscores and prepending the prefix; a set
// variable overwrites the stored value. Only tags already in the tree are
// considered, so the environment cannot invent new ones.
//
//	prefix "APP_", tag /server/net/port  ->  APP_SERVER_NET_PORT
func (c *Config) MergeEnv(prefix string) error {
	var errs error
	var walk func(s *Section, segments []string)
	walk = func(s *Section, segments []string) {
		for i := range s.values {
			tag := s.values[i].tag
			name := envName(prefix, append(segments, tag))
			value, ok := os.LookupEnv(name)
			if !ok {
				continue
			}
			if len(value) > MaxValueSize {
				errs = errors.Join(errs, fmt.Errorf("%w: environment variable '%s'", ErrValueSize, name))
				continue
			}
			s.storeTagValue(tag, value)
		}
		for _, sub := range s.subsections {
			walk(sub, append(segments, sub.name))
		}
	}
	walk(c.root, nil)
	return errs
}

// envName maps path segments to an environment variable name. Characters
// outside [A-Za-z0-9] become underscores.
func envName(prefix string, segments []string) string {
	mapped := make([]string, len(segments))
	for i, seg := range segments {
		mapped[i] = strings.Map(func(r rune) rune {
			switch {
			case r >= 'a' && r <= 'z':
				return r - ('a' - 'A')
			case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
				return r
			default:
				return '_'
			}
		}, seg)
	}
	return prefix + strings.Join(mapped, "_")
}
