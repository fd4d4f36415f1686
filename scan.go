// FILE: conftree/scan.go
package conftree

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Scan decodes the subtree rooted at s into the target struct or map. Tags
// become fields, subsections become nested structs or maps. The target must
// be a non-nil pointer; fields are matched through the "conf" struct tag,
// falling back to the field name.
//
// Values are stored as strings, so decoding is weakly typed: "8080" fills an
// int field, "true" a bool, "90s" a time.Duration. Bracketed lists like
// "(a, b, c)" and plain comma-separated strings both fill slice fields.
func (s *Section) Scan(target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("target of Scan must be a non-nil pointer, got %T", target)
	}

	decoderConfig := &mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "conf",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			bracketedListHook(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	}

	decoder, err := mapstructure.NewDecoder(decoderConfig)
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(s.toMap()); err != nil {
		return fmt.Errorf("failed to scan section %s into %T: %w", s.Path(), target, err)
	}
	return nil
}

// Scan decodes the section at basePath, resolved against the current
// section, into the target. An empty basePath scans the current section.
func (c *Config) Scan(basePath string, target any) error {
	sec := c.current
	if basePath != "" {
		var err error
		sec, err = c.current.Section(basePath)
		if err != nil {
			return err
		}
	}
	return sec.Scan(target)
}

// toMap converts the subtree to nested maps for decoding: tag values as raw
// strings, subsections as nested maps. When a tag and a subsection share a
// name, the tag wins; among duplicate subsection names, the first wins,
// matching lookup order.
func (s *Section) toMap() map[string]any {
	m := make(map[string]any, len(s.values)+len(s.subsections))
	for _, tv := range s.values {
		m[tv.tag] = tv.value
	}
	for _, sub := range s.subsections {
		if _, exists := m[sub.name]; exists {
			continue
		}
		m[sub.name] = sub.toMap()
	}
	return m
}

// bracketedListHook converts a "(a, b, c)" string into a string slice when
// the target is a slice, before the comma-split hook sees it. Element
// conversion to the slice's element type is left to the decoder.
func bracketedListHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to.Kind() != reflect.Slice {
			return data, nil
		}
		str := strings.TrimSpace(data.(string))
		if !strings.HasPrefix(str, "(") || !strings.HasSuffix(str, ")") {
			return data, nil
		}
		return ListOf(StringCodec).Decode(str)
	}
}
