// FILE: conftree/value.go
package conftree

import "time"

// Get retrieves the tag at tagPath relative to s and decodes it through the
// codec. It fails with TagNotFoundError when the tag or any section on the
// way is missing, and with DecodeError when the stored string does not parse.
func Get[T any](s *Section, tagPath string, codec Codec[T]) (T, error) {
	var zero T
	raw, err := s.retrieveTag(tagPath)
	if err != nil {
		return zero, err
	}
	return codec.Decode(raw)
}

// GetDefault retrieves the tag at tagPath, returning def when the tag is
// missing. The store is never modified. A stored value that fails to decode
// returns def together with the decode error.
func GetDefault[T any](s *Section, tagPath string, codec Codec[T], def T) (T, error) {
	raw, ok := s.lookupTagPath(tagPath)
	if !ok {
		return def, nil
	}
	v, err := codec.Decode(raw)
	if err != nil {
		return def, err
	}
	return v, nil
}

// Ensure retrieves the tag at tagPath, writing the encoded default into the
// store when the tag is missing. Materializing the default creates any
// missing sections and marks the owning section dirty, so a following save
// persists it. An existing value that fails to decode is left untouched and
// def is returned together with the decode error.
func Ensure[T any](s *Section, tagPath string, codec Codec[T], def T) (T, error) {
	raw, ok := s.lookupTagPath(tagPath)
	if !ok {
		s.storeTag(tagPath, codec.Encode(def))
		return def, nil
	}
	v, err := codec.Decode(raw)
	if err != nil {
		return def, err
	}
	return v, nil
}

// Store encodes the value through the codec and writes it at tagPath
// relative to s, creating missing sections and overwriting an existing tag
// in place.
func Store[T any](s *Section, tagPath string, codec Codec[T], value T) {
	s.storeTag(tagPath, codec.Encode(value))
}

// String retrieves the string value stored at the tag path.
func (s *Section) String(tagPath string) (string, error) {
	return Get(s, tagPath, StringCodec)
}

// StringDefault retrieves a string value, falling back to def when the tag
// is missing.
func (s *Section) StringDefault(tagPath, def string) string {
	v, _ := GetDefault(s, tagPath, StringCodec, def)
	return v
}

// EnsureString retrieves a string value, storing def when the tag is missing.
func (s *Section) EnsureString(tagPath, def string) string {
	v, _ := Ensure(s, tagPath, StringCodec, def)
	return v
}

// StoreString writes a string value at the tag path.
func (s *Section) StoreString(tagPath, value string) {
	Store(s, tagPath, StringCodec, value)
}

// Bool retrieves a boolean value stored at the tag path.
// Accepts the strconv.ParseBool forms: 1/0, t/f, true/false.
func (s *Section) Bool(tagPath string) (bool, error) {
	return Get(s, tagPath, BoolCodec)
}

// BoolDefault retrieves a boolean value, falling back to def when the tag is
// missing or does not parse.
func (s *Section) BoolDefault(tagPath string, def bool) bool {
	v, _ := GetDefault(s, tagPath, BoolCodec, def)
	return v
}

// EnsureBool retrieves a boolean value, storing def when the tag is missing.
func (s *Section) EnsureBool(tagPath string, def bool) bool {
	v, _ := Ensure(s, tagPath, BoolCodec, def)
	return v
}

// StoreBool writes a boolean value at the tag path.
func (s *Section) StoreBool(tagPath string, value bool) {
	Store(s, tagPath, BoolCodec, value)
}

// Int retrieves an integer value stored at the tag path.
// Base 0 parsing auto-detects hex and octal forms like "0xff".
func (s *Section) Int(tagPath string) (int, error) {
	return Get(s, tagPath, IntCodec)
}

// IntDefault retrieves an integer value, falling back to def when the tag is
// missing or does not parse.
func (s *Section) IntDefault(tagPath string, def int) int {
	v, _ := GetDefault(s, tagPath, IntCodec, def)
	return v
}

// EnsureInt retrieves an integer value, storing def when the tag is missing.
func (s *Section) EnsureInt(tagPath string, def int) int {
	v, _ := Ensure(s, tagPath, IntCodec, def)
	return v
}

// StoreInt writes an integer value at the tag path.
func (s *Section) StoreInt(tagPath string, value int) {
	Store(s, tagPath, IntCodec, value)
}

// Int64 retrieves an int64 value stored at the tag path.
func (s *Section) Int64(tagPath string) (int64, error) {
	return Get(s, tagPath, Int64Codec)
}

// Int64Default retrieves an int64 value, falling back to def when the tag is
// missing or does not parse.
func (s *Section) Int64Default(tagPath string, def int64) int64 {
	v, _ := GetDefault(s, tagPath, Int64Codec, def)
	return v
}

// EnsureInt64 retrieves an int64 value, storing def when the tag is missing.
func (s *Section) EnsureInt64(tagPath string, def int64) int64 {
	v, _ := Ensure(s, tagPath, Int64Codec, def)
	return v
}

// StoreInt64 writes an int64 value at the tag path.
func (s *Section) StoreInt64(tagPath string, value int64) {
	Store(s, tagPath, Int64Codec, value)
}

// Float64 retrieves a float64 value stored at the tag path.
func (s *Section) Float64(tagPath string) (float64, error) {
	return Get(s, tagPath, Float64Codec)
}

// Float64Default retrieves a float64 value, falling back to def when the tag
// is missing or does not parse.
func (s *Section) Float64Default(tagPath string, def float64) float64 {
	v, _ := GetDefault(s, tagPath, Float64Codec, def)
	return v
}

// EnsureFloat64 retrieves a float64 value, storing def when the tag is missing.
func (s *Section) EnsureFloat64(tagPath string, def float64) float64 {
	v, _ := Ensure(s, tagPath, Float64Codec, def)
	return v
}

// StoreFloat64 writes a float64 value at the tag path.
func (s *Section) StoreFloat64(tagPath string, value float64) {
	Store(s, tagPath, Float64Codec, value)
}

// Duration retrieves a time.Duration value stored at the tag path, in the
// time.ParseDuration format ("500ms", "1h30m").
func (s *Section) Duration(tagPath string) (time.Duration, error) {
	return Get(s, tagPath, DurationCodec)
}

// DurationDefault retrieves a duration value, falling back to def when the
// tag is missing or does not parse.
func (s *Section) DurationDefault(tagPath string, def time.Duration) time.Duration {
	v, _ := GetDefault(s, tagPath, DurationCodec, def)
	return v
}

// EnsureDuration retrieves a duration value, storing def when the tag is missing.
func (s *Section) EnsureDuration(tagPath string, def time.Duration) time.Duration {
	v, _ := Ensure(s, tagPath, DurationCodec, def)
	return v
}

// StoreDuration writes a duration value at the tag path.
func (s *Section) StoreDuration(tagPath string, value time.Duration) {
	Store(s, tagPath, DurationCodec, value)
}

// The same typed accessors on *Config resolve tag paths against the current
// section, so a program that has descended into its own section reads
// relative paths while absolute paths still reach the whole tree.

// String retrieves a string value relative to the current section.
func (c *Config) String(tagPath string) (string, error) {
	return c.current.String(tagPath)
}

// StringDefault retrieves a string value, falling back to def when missing.
func (c *Config) StringDefault(tagPath, def string) string {
	return c.current.StringDefault(tagPath, def)
}

// EnsureString retrieves a string value, storing def when missing.
func (c *Config) EnsureString(tagPath, def string) string {
	return c.current.EnsureString(tagPath, def)
}

// StoreString writes a string value relative to the current section.
func (c *Config) StoreString(tagPath, value string) {
	c.current.StoreString(tagPath, value)
}

// Bool retrieves a boolean value relative to the current section.
func (c *Config) Bool(tagPath string) (bool, error) {
	return c.current.Bool(tagPath)
}

// BoolDefault retrieves a boolean value, falling back to def when missing.
func (c *Config) BoolDefault(tagPath string, def bool) bool {
	return c.current.BoolDefault(tagPath, def)
}

// EnsureBool retrieves a boolean value, storing def when missing.
func (c *Config) EnsureBool(tagPath string, def bool) bool {
	return c.current.EnsureBool(tagPath, def)
}

// StoreBool writes a boolean value relative to the current section.
func (c *Config) StoreBool(tagPath string, value bool) {
	c.current.StoreBool(tagPath, value)
}

// Int retrieves an integer value relative to the current section.
func (c *Config) Int(tagPath string) (int, error) {
	return c.current.Int(tagPath)
}

// IntDefault retrieves an integer value, falling back to def when missing.
func (c *Config) IntDefault(tagPath string, def int) int {
	return c.current.IntDefault(tagPath, def)
}

// EnsureInt retrieves an integer value, storing def when missing.
func (c *Config) EnsureInt(tagPath string, def int) int {
	return c.current.EnsureInt(tagPath, def)
}

// StoreInt writes an integer value relative to the current section.
func (c *Config) StoreInt(tagPath string, value int) {
	c.current.StoreInt(tagPath, value)
}

// Int64 retrieves an int64 value relative to the current section.
func (c *Config) Int64(tagPath string) (int64, error) {
	return c.current.Int64(tagPath)
}

// Int64Default retrieves an int64 value, falling back to def when missing.
func (c *Config) Int64Default(tagPath string, def int64) int64 {
	return c.current.Int64Default(tagPath, def)
}

// EnsureInt64 retrieves an int64 value, storing def when missing.
func (c *Config) EnsureInt64(tagPath string, def int64) int64 {
	return c.current.EnsureInt64(tagPath, def)
}

// StoreInt64 writes an int64 value relative to the current section.
func (c *Config) StoreInt64(tagPath string, value int64) {
	c.current.StoreInt64(tagPath, value)
}

// Float64 retrieves a float64 value relative to the current section.
func (c *Config) Float64(tagPath string) (float64, error) {
	return c.current.Float64(tagPath)
}

// Float64Default retrieves a float64 value, falling back to def when missing.
func (c *Config) Float64Default(tagPath string, def float64) float64 {
	return c.current.Float64Default(tagPath, def)
}

// EnsureFloat64 retrieves a float64 value, storing def when missing.
func (c *Config) EnsureFloat64(tagPath string, def float64) float64 {
	return c.current.EnsureFloat64(tagPath, def)
}

// StoreFloat64 writes a float64 value relative to the current section.
func (c *Config) StoreFloat64(tagPath string, value float64) {
	c.current.StoreFloat64(tagPath, value)
}

// Duration retrieves a duration value relative to the current section.
func (c *Config) Duration(tagPath string) (time.Duration, error) {
	return c.current.Duration(tagPath)
}

// DurationDefault retrieves a duration value, falling back to def when missing.
func (c *Config) DurationDefault(tagPath string, def time.Duration) time.Duration {
	return c.current.DurationDefault(tagPath, def)
}

// EnsureDuration retrieves a duration value, storing def when missing.
func (c *Config) EnsureDuration(tagPath string, def time.Duration) time.Duration {
	return c.current.EnsureDuration(tagPath, def)
}

// StoreDuration writes a duration value relative to the current section.
func (c *Config) StoreDuration(tagPath string, value time.Duration) {
	c.current.StoreDuration(tagPath, value)
}
