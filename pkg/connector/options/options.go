// Package options provides typed configuration option declarations and the
// immutable raw option map that table factories read them from.
//
// An option is declared once with its key, value type, optional default and
// description:
//
//	var FetchSize = options.NewInt("scan.fetch-size").
//	    WithDefault(0).
//	    WithDescription("Rows fetched per round trip")
//
// and read from RawOptions with Lookup (explicit value only), Get (explicit
// value or default) or Value (Get for input that already passed Check).
package options

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Type names the value type an option decodes to.
type Type string

const (
	TypeString Type = "string"
	TypeInt    Type = "int"
	TypeInt64  Type = "int64"
	TypeBool   Type = "bool"
)

// Key is the type-erased view of an option used by registries, validators and
// documentation.
type Key interface {
	// Key returns the option key, e.g. "scan.fetch-size".
	Key() string
	// Type returns the value type the option decodes to.
	Type() Type
	// HasDefault reports whether a default value is declared.
	HasDefault() bool
	// DefaultValue returns the declared default, or nil when there is none.
	DefaultValue() any
	// Description returns the human-readable description.
	Description() string
	// Check decodes the option from raw, if present, and reports a decode failure.
	Check(raw RawOptions) error
}

// Option is a typed option declaration. Options are built with the New*
// constructors and the With* methods during package initialization and must
// not be modified afterwards.
type Option[T any] struct {
	key         string
	typ         Type
	def         T
	hasDefault  bool
	description string
	decode      func(any) (T, error)
}

// NewString declares a string option.
func NewString(key string) *Option[string] {
	return &Option[string]{key: key, typ: TypeString, decode: cast.ToStringE}
}

// NewInt declares an int option.
func NewInt(key string) *Option[int] {
	return &Option[int]{key: key, typ: TypeInt, decode: decodeInt}
}

// NewInt64 declares an int64 option.
func NewInt64(key string) *Option[int64] {
	return &Option[int64]{key: key, typ: TypeInt64, decode: decodeInt64}
}

// NewBool declares a bool option.
func NewBool(key string) *Option[bool] {
	return &Option[bool]{key: key, typ: TypeBool, decode: decodeBool}
}

// WithDefault sets the default value returned when the option is absent.
func (o *Option[T]) WithDefault(v T) *Option[T] {
	o.def = v
	o.hasDefault = true
	return o
}

// WithDescription sets the description shown in option listings.
func (o *Option[T]) WithDescription(d string) *Option[T] {
	o.description = d
	return o
}

// Key returns the option key.
func (o *Option[T]) Key() string { return o.key }

// Type returns the option value type.
func (o *Option[T]) Type() Type { return o.typ }

// HasDefault reports whether a default value is declared.
func (o *Option[T]) HasDefault() bool { return o.hasDefault }

// DefaultValue returns the declared default, or nil when there is none.
func (o *Option[T]) DefaultValue() any {
	if !o.hasDefault {
		return nil
	}
	return o.def
}

// Default returns the typed default and whether one is declared.
func (o *Option[T]) Default() (T, bool) {
	return o.def, o.hasDefault
}

// Description returns the option description.
func (o *Option[T]) Description() string { return o.description }

// Lookup returns the explicitly supplied value. ok is false when the key is
// absent; defaults are never reported by Lookup.
func (o *Option[T]) Lookup(raw RawOptions) (value T, ok bool, err error) {
	v, present := raw.Get(o.key)
	if !present {
		return value, false, nil
	}
	value, err = o.decode(v)
	if err != nil {
		return value, true, fmt.Errorf("option '%s': %w", o.key, err)
	}
	return value, true, nil
}

// Get returns the explicitly supplied value, or the default when the key is
// absent. Without a declared default an absent option yields the zero value.
func (o *Option[T]) Get(raw RawOptions) (T, error) {
	v, ok, err := o.Lookup(raw)
	if err != nil {
		return v, err
	}
	if !ok {
		return o.def, nil
	}
	return v, nil
}

// Value is Get for options that already passed Check. A value that cannot
// be decoded yields the default.
func (o *Option[T]) Value(raw RawOptions) T {
	v, err := o.Get(raw)
	if err != nil {
		return o.def
	}
	return v
}

// Ptr returns a pointer to the explicitly supplied value, or nil when the key
// is absent. It is meant for nullable fields of assembled configs.
func (o *Option[T]) Ptr(raw RawOptions) *T {
	v, ok, err := o.Lookup(raw)
	if !ok || err != nil {
		return nil
	}
	return &v
}

// Check decodes the option if present.
func (o *Option[T]) Check(raw RawOptions) error {
	_, _, err := o.Lookup(raw)
	return err
}

// Keys returns the key names of opts in the given order.
func Keys(opts []Key) []string {
	names := make([]string, 0, len(opts))
	for _, o := range opts {
		names = append(names, o.Key())
	}
	return names
}

// CountPresent returns how many of opts are explicitly supplied in raw.
func CountPresent(raw RawOptions, opts ...Key) int {
	n := 0
	for _, o := range opts {
		if raw.Contains(o.Key()) {
			n++
		}
	}
	return n
}

// MissingKeys returns the keys of opts that are absent from raw, sorted.
func MissingKeys(raw RawOptions, opts []Key) []string {
	var missing []string
	for _, o := range opts {
		if !raw.Contains(o.Key()) {
			missing = append(missing, o.Key())
		}
	}
	sort.Strings(missing)
	return missing
}

// UnknownKeys returns the keys present in raw that none of opts declares, sorted.
func UnknownKeys(raw RawOptions, opts []Key) []string {
	known := make(map[string]struct{}, len(opts))
	for _, o := range opts {
		known[o.Key()] = struct{}{}
	}
	var unknown []string
	for _, k := range raw.Keys() {
		if _, ok := known[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	return unknown
}

// decodeInt rejects fractional and boolean input that cast would silently
// truncate. Strings are decimal only: cast would read "010" as octal.
func decodeInt(v any) (int, error) {
	if s, ok := v.(string); ok {
		n, err := parseDecimal(s, strconv.IntSize)
		return int(n), err
	}
	if err := rejectLossy(v); err != nil {
		return 0, err
	}
	return cast.ToIntE(v)
}

func decodeInt64(v any) (int64, error) {
	if s, ok := v.(string); ok {
		return parseDecimal(s, 64)
	}
	if err := rejectLossy(v); err != nil {
		return 0, err
	}
	return cast.ToInt64E(v)
}

func parseDecimal(s string, bits int) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, bits)
	if err != nil {
		return 0, fmt.Errorf("unable to parse %q as a decimal integer", s)
	}
	return n, nil
}

func decodeBool(v any) (bool, error) {
	if v == nil {
		return false, fmt.Errorf("option value is empty")
	}
	return cast.ToBoolE(trim(v))
}

func trim(v any) any {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return v
}

func rejectLossy(v any) error {
	switch n := v.(type) {
	case bool:
		return fmt.Errorf("unable to cast %#v of type %T to an integer", v, v)
	case float64:
		if n != float64(int64(n)) {
			return fmt.Errorf("unable to cast %#v of type %T to an integer", v, v)
		}
	case float32:
		if n != float32(int64(n)) {
			return fmt.Errorf("unable to cast %#v of type %T to an integer", v, v)
		}
	case nil:
		return fmt.Errorf("option value is empty")
	}
	return nil
}
