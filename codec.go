// FILE: conftree/codec.go
package conftree

import (
	"strconv"
	"strings"
	"time"
)

// Codec converts values of type T to and from the canonical string form
// stored in the tree. Any type that supplies the three methods can be stored;
// the built-in codecs below cover the common scalars and delimited lists.
//
// Decode is strict: input left over after a successfully parsed value is an
// error. DecodePartial parses a value off the front of the input and returns
// the remainder, which is how the list codec consumes its elements.
type Codec[T any] interface {
	Encode(value T) string
	Decode(s string) (T, error)
	DecodePartial(s string) (T, string, error)
}

// Built-in codecs for the primitive scalar types.
var (
	StringCodec   Codec[string]        = stringCodec{}
	BoolCodec     Codec[bool]          = boolCodec{}
	IntCodec      Codec[int]           = intCodec{}
	Int64Codec    Codec[int64]         = int64Codec{}
	Float64Codec  Codec[float64]       = float64Codec{}
	DurationCodec Codec[time.Duration] = durationCodec{}
)

// ListOf returns a codec for ordered sequences of T, encoded as a bracketed
// comma-separated list: "(a, b, c)". Lists nest through the element codec,
// so ListOf(ListOf(IntCodec)) handles "((1, 2), (3))".
func ListOf[T any](elem Codec[T]) Codec[[]T] {
	return listCodec[T]{elem: elem}
}

// skipSpace trims leading whitespace.
func skipSpace(s string) string {
	return strings.TrimLeft(s, " \t")
}

// scanAtom splits off a single unquoted list atom: the run of characters up
// to the next whitespace, comma or closing bracket.
func scanAtom(s string) (atom, rest string) {
	s = skipSpace(s)
	end := strings.IndexAny(s, " \t,)")
	if end < 0 {
		end = len(s)
	}
	return s[:end], s[end:]
}

// requireEmpty turns leftover input after a strict decode into an error.
func requireEmpty(rest, typeName string) error {
	rest = skipSpace(rest)
	if rest != "" {
		return decodeErr(rest, typeName, nil)
	}
	return nil
}

type stringCodec struct{}

func (stringCodec) Encode(value string) string { return value }

// Decode returns the input unchanged: a tag value is already the string.
func (stringCodec) Decode(s string) (string, error) { return s, nil }

// DecodePartial consumes a single list atom rather than the whole input, so
// that strings can live inside delimited lists.
func (stringCodec) DecodePartial(s string) (string, string, error) {
	atom, rest := scanAtom(s)
	return atom, rest, nil
}

type boolCodec struct{}

func (boolCodec) Encode(value bool) string { return strconv.FormatBool(value) }

func (boolCodec) Decode(s string) (bool, error) {
	v, rest, err := boolCodec{}.DecodePartial(s)
	if err != nil {
		return false, err
	}
	if err := requireEmpty(rest, "bool"); err != nil {
		return false, err
	}
	return v, nil
}

func (boolCodec) DecodePartial(s string) (bool, string, error) {
	atom, rest := scanAtom(s)
	v, err := strconv.ParseBool(atom)
	if err != nil {
		return false, s, decodeErr(atom, "bool", err)
	}
	return v, rest, nil
}

type intCodec struct{}

func (intCodec) Encode(value int) string { return strconv.Itoa(value) }

func (intCodec) Decode(s string) (int, error) {
	v, rest, err := intCodec{}.DecodePartial(s)
	if err != nil {
		return 0, err
	}
	if err := requireEmpty(rest, "int"); err != nil {
		return 0, err
	}
	return v, nil
}

func (intCodec) DecodePartial(s string) (int, string, error) {
	atom, rest := scanAtom(s)
	// Base 0 auto-detects hex and octal forms like "0xff".
	v, err := strconv.ParseInt(atom, 0, strconv.IntSize)
	if err != nil {
		return 0, s, decodeErr(atom, "int", err)
	}
	return int(v), rest, nil
}

type int64Codec struct{}

func (int64Codec) Encode(value int64) string { return strconv.FormatInt(value, 10) }

func (int64Codec) Decode(s string) (int64, error) {
	v, rest, err := int64Codec{}.DecodePartial(s)
	if err != nil {
		return 0, err
	}
	if err := requireEmpty(rest, "int64"); err != nil {
		return 0, err
	}
	return v, nil
}

func (int64Codec) DecodePartial(s string) (int64, string, error) {
	atom, rest := scanAtom(s)
	v, err := strconv.ParseInt(atom, 0, 64)
	if err != nil {
		return 0, s, decodeErr(atom, "int64", err)
	}
	return v, rest, nil
}

type float64Codec struct{}

func (float64Codec) Encode(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}

func (float64Codec) Decode(s string) (float64, error) {
	v, rest, err := float64Codec{}.DecodePartial(s)
	if err != nil {
		return 0, err
	}
	if err := requireEmpty(rest, "float64"); err != nil {
		return 0, err
	}
	return v, nil
}

func (float64Codec) DecodePartial(s string) (float64, string, error) {
	atom, rest := scanAtom(s)
	v, err := strconv.ParseFloat(atom, 64)
	if err != nil {
		return 0, s, decodeErr(atom, "float64", err)
	}
	return v, rest, nil
}

type durationCodec struct{}

func (durationCodec) Encode(value time.Duration) string { return value.String() }

func (durationCodec) Decode(s string) (time.Duration, error) {
	v, rest, err := durationCodec{}.DecodePartial(s)
	if err != nil {
		return 0, err
	}
	if err := requireEmpty(rest, "duration"); err != nil {
		return 0, err
	}
	return v, nil
}

func (durationCodec) DecodePartial(s string) (time.Duration, string, error) {
	atom, rest := scanAtom(s)
	v, err := time.ParseDuration(atom)
	if err != nil {
		return 0, s, decodeErr(atom, "duration", err)
	}
	return v, rest, nil
}

type listCodec[T any] struct {
	elem Codec[T]
}

func (c listCodec[T]) Encode(value []T) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, v := range value {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.elem.Encode(v))
	}
	b.WriteByte(')')
	return b.String()
}

func (c listCodec[T]) Decode(s string) ([]T, error) {
	v, rest, err := c.DecodePartial(s)
	if err != nil {
		return nil, err
	}
	if err := requireEmpty(rest, "list"); err != nil {
		return nil, err
	}
	return v, nil
}

func (c listCodec[T]) DecodePartial(s string) ([]T, string, error) {
	rest := skipSpace(s)
	if !strings.HasPrefix(rest, "(") {
		return nil, s, decodeErr(rest, "list", nil)
	}
	rest = rest[1:]

	result := []T{}
	for {
		rest = skipSpace(rest)
		if strings.HasPrefix(rest, ")") {
			return result, rest[1:], nil
		}
		if rest == "" {
			return nil, s, decodeErr(s, "list", nil)
		}

		elem, after, err := c.elem.DecodePartial(rest)
		if err != nil {
			return nil, s, err
		}
		result = append(result, elem)
		rest = skipSpace(after)

		switch {
		case strings.HasPrefix(rest, ","):
			rest = rest[1:]
		case strings.HasPrefix(rest, ")"):
			// Closing bracket handled at the top of the loop.
		default:
			return nil, s, decodeErr(rest, "list", nil)
		}
	}
}
