// FILE: conftree/convert.go
package conftree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Import reads a TOML, JSON or YAML document and converts it into a fresh
// store: tables and objects become sections, scalars become tag values in
// their canonical string form, arrays become bracketed lists. An array whose
// elements are all tables becomes a run of same-named subsections, the way
// repeated blocks look in the native format.
//
// The format is chosen by file extension, falling back to content detection.
// The returned store is not bound to the source file; bind it to a native
// file with SaveAs. Keys are imported in sorted order, since the foreign
// parsers do not preserve document order.
func Import(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file '%s': %w", path, ErrConfigNotFound)
		}
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	format := detectFileFormat(path)
	if format == "" {
		format = detectFormatFromContent(data)
	}
	if format == "" {
		return nil, fmt.Errorf("unable to determine config format for file '%s'", path)
	}

	c, err := importData(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to import config file '%s': %w", path, err)
	}
	return c, nil
}

// ImportReader converts a document read from r. The format must be "toml",
// "json", "yaml" or "auto"; auto detection parses the content to find out.
func ImportReader(r io.Reader, format string) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config data: %w", err)
	}

	if format == "" || format == "auto" {
		format = detectFormatFromContent(data)
		if format == "" {
			return nil, fmt.Errorf("unable to determine config format from content")
		}
	}
	return importData(data, format)
}

// importData parses the document into nested maps and builds the tree.
func importData(data []byte, format string) (*Config, error) {
	doc := make(map[string]any)
	switch format {
	case "toml":
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config: %w", err)
		}
	case "json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // Preserve number precision
		if err := decoder.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format '%s'", format)
	}

	c := New()
	buildImportSection(c.root, doc)
	return c, nil
}

// buildImportSection converts one level of the document into sec, keys in
// sorted order.
func buildImportSection(sec *Section, doc map[string]any) {
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := doc[k].(type) {
		case map[string]any:
			buildImportSection(sec.AddSubsection(k), v)
		case []map[string]any:
			// TOML arrays of tables arrive pre-typed
			for _, table := range v {
				buildImportSection(sec.AddSubsection(k), table)
			}
		case []any:
			if tables, ok := tableSlice(v); ok {
				for _, table := range tables {
					buildImportSection(sec.AddSubsection(k), table)
				}
				continue
			}
			sec.storeTagValue(k, encodeImportList(v))
		default:
			sec.storeTagValue(k, encodeImportScalar(v))
		}
	}
}

// tableSlice reports whether every element of the array is a table, and
// returns them typed.
func tableSlice(items []any) ([]map[string]any, bool) {
	if len(items) == 0 {
		return nil, false
	}
	tables := make([]map[string]any, len(items))
	for i, item := range items {
		table, ok := item.(map[string]any)
		if !ok {
			return nil, false
		}
		tables[i] = table
	}
	return tables, true
}

// encodeImportList renders an array as a bracketed list, nesting through
// inner arrays.
func encodeImportList(items []any) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, item := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		if inner, ok := item.([]any); ok {
			b.WriteString(encodeImportList(inner))
			continue
		}
		b.WriteString(encodeImportScalar(item))
	}
	b.WriteByte(')')
	return b.String()
}

// encodeImportScalar renders a foreign scalar in the canonical string form
// the built-in codecs read back.
func encodeImportScalar(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case json.Number:
		return x.String()
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// ExportTOML writes the tree as a TOML document: sections become tables,
// every tag value a string. Where a tag and a subsection share a name the
// tag wins, and only the first of duplicate same-named subsections is
// exported, matching lookup order.
func (c *Config) ExportTOML(w io.Writer) error {
	encoder := toml.NewEncoder(w)
	if err := encoder.Encode(c.root.toMap()); err != nil {
		return fmt.Errorf("failed to marshal config data to TOML: %w", err)
	}
	return nil
}

// detectFileFormat determines format from file extension
func detectFileFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml", ".tml":
		return "toml"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

// detectFormatFromContent attempts to detect format by parsing
func detectFormatFromContent(data []byte) string {
	// Try JSON first (strict format)
	var jsonTest any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return "json"
	}

	// Try YAML (superset of JSON, so check after JSON)
	var yamlTest any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return "yaml"
	}

	// Try TOML last
	var tomlTest any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return "toml"
	}

	return ""
}
