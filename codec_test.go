// FILE: conftree/codec_test.go
package conftree

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScalarCodecs tests encode/decode round-trips for the built-in codecs
func TestScalarCodecs(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "hello world", StringCodec.Encode("hello world"))
		v, err := StringCodec.Decode("hello world")
		require.NoError(t, err)
		assert.Equal(t, "hello world", v)
	})

	t.Run("Bool", func(t *testing.T) {
		tests := []struct {
			input    string
			expected bool
		}{
			{"true", true},
			{"false", false},
			{"1", true},
			{"0", false},
			{"  true", true},
		}
		for _, tt := range tests {
			v, err := BoolCodec.Decode(tt.input)
			require.NoError(t, err, "input %q", tt.input)
			assert.Equal(t, tt.expected, v, "input %q", tt.input)
		}
		assert.Equal(t, "true", BoolCodec.Encode(true))
	})

	t.Run("Int", func(t *testing.T) {
		tests := []struct {
			input    string
			expected int
		}{
			{"42", 42},
			{"-7", -7},
			{"0xff", 255},
			{" 10 ", 10},
		}
		for _, tt := range tests {
			v, err := IntCodec.Decode(tt.input)
			require.NoError(t, err, "input %q", tt.input)
			assert.Equal(t, tt.expected, v, "input %q", tt.input)
		}
		assert.Equal(t, "42", IntCodec.Encode(42))
	})

	t.Run("Int64", func(t *testing.T) {
		v, err := Int64Codec.Decode("9000000000")
		require.NoError(t, err)
		assert.Equal(t, int64(9000000000), v)
		assert.Equal(t, "9000000000", Int64Codec.Encode(9000000000))
	})

	t.Run("Float64", func(t *testing.T) {
		v, err := Float64Codec.Decode("3.25")
		require.NoError(t, err)
		assert.Equal(t, 3.25, v)
		assert.Equal(t, "3.25", Float64Codec.Encode(3.25))

		v, err = Float64Codec.Decode("1e6")
		require.NoError(t, err)
		assert.Equal(t, 1e6, v)
	})

	t.Run("Duration", func(t *testing.T) {
		v, err := DurationCodec.Decode("1h30m")
		require.NoError(t, err)
		assert.Equal(t, 90*time.Minute, v)
		assert.Equal(t, "1h30m0s", DurationCodec.Encode(90*time.Minute))
	})
}

// TestDecodeStrictness tests that strict decodes reject malformed input and
// trailing garbage
func TestDecodeStrictness(t *testing.T) {
	t.Run("MalformedInput", func(t *testing.T) {
		_, err := IntCodec.Decode("not-a-number")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDecode)

		var decodeError *DecodeError
		require.ErrorAs(t, err, &decodeError)
		assert.Equal(t, "not-a-number", decodeError.Input)
		assert.Equal(t, "int", decodeError.Type)
	})

	t.Run("TrailingGarbage", func(t *testing.T) {
		_, err := IntCodec.Decode("42 extra")
		assert.ErrorIs(t, err, ErrDecode)

		_, err = BoolCodec.Decode("true false")
		assert.ErrorIs(t, err, ErrDecode)

		_, err = Float64Codec.Decode("1.5x")
		assert.ErrorIs(t, err, ErrDecode)
	})

	t.Run("EmptyInput", func(t *testing.T) {
		_, err := IntCodec.Decode("")
		assert.ErrorIs(t, err, ErrDecode)

		// The string codec accepts anything, the empty string included
		v, err := StringCodec.Decode("")
		require.NoError(t, err)
		assert.Equal(t, "", v)
	})
}

// TestDecodePartial tests prefix decoding with remainder
func TestDecodePartial(t *testing.T) {
	v, rest, err := IntCodec.DecodePartial("42, 43)")
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, ", 43)", rest)

	s, rest, err := StringCodec.DecodePartial("alpha beta")
	require.NoError(t, err)
	assert.Equal(t, "alpha", s)
	assert.Equal(t, " beta", rest)

	d, rest, err := DurationCodec.DecodePartial("5s, 10s")
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, d)
	assert.Equal(t, ", 10s", rest)
}

// TestListCodec tests the bracketed list codec
func TestListCodec(t *testing.T) {
	t.Run("Encode", func(t *testing.T) {
		ints := ListOf(IntCodec)
		assert.Equal(t, "(1, 2, 3)", ints.Encode([]int{1, 2, 3}))
		assert.Equal(t, "()", ints.Encode(nil))
	})

	t.Run("Decode", func(t *testing.T) {
		ints := ListOf(IntCodec)
		v, err := ints.Decode("(1, 2, 3)")
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, v)

		// Whitespace between elements is free-form
		v, err = ints.Decode("( 1,2 ,  3 )")
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, v)
	})

	t.Run("EmptyList", func(t *testing.T) {
		v, err := ListOf(IntCodec).Decode("()")
		require.NoError(t, err)
		assert.Empty(t, v)
	})

	t.Run("StringElements", func(t *testing.T) {
		v, err := ListOf(StringCodec).Decode("(red, green, blue)")
		require.NoError(t, err)
		assert.Equal(t, []string{"red", "green", "blue"}, v)
	})

	t.Run("NestedLists", func(t *testing.T) {
		matrix := ListOf(ListOf(Float64Codec))
		encoded := matrix.Encode([][]float64{{1, 0}, {0, 1}})
		assert.Equal(t, "((1, 0), (0, 1))", encoded)

		v, err := matrix.Decode("((1, 0), (0, 1))")
		require.NoError(t, err)
		assert.Equal(t, [][]float64{{1, 0}, {0, 1}}, v)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		durations := ListOf(DurationCodec)
		original := []time.Duration{time.Second, 90 * time.Minute}
		v, err := durations.Decode(durations.Encode(original))
		require.NoError(t, err)
		assert.Equal(t, original, v)
	})

	t.Run("Malformed", func(t *testing.T) {
		ints := ListOf(IntCodec)
		tests := []string{
			"1, 2, 3",     // no brackets
			"(1, 2",       // unterminated
			"(1 2)",       // missing separator
			"(1, x)",      // bad element
			"(1, 2) tail", // trailing garbage
		}
		for _, input := range tests {
			_, err := ints.Decode(input)
			assert.ErrorIs(t, err, ErrDecode, "input %q", input)
		}
	})
}
