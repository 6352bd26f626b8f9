package options

import (
	"sort"
)

// RawOptions is the immutable key/value map supplied for one table
// instantiation. A key is present only when the user set it explicitly.
type RawOptions struct {
	values map[string]any
}

// NewRawOptions copies m into a new RawOptions. Later changes to m are not
// observed.
func NewRawOptions(m map[string]any) RawOptions {
	values := make(map[string]any, len(m))
	for k, v := range m {
		values[k] = v
	}
	return RawOptions{values: values}
}

// FromStrings builds RawOptions from string values, the form table DDL
// WITH clauses and YAML catalogs produce.
func FromStrings(m map[string]string) RawOptions {
	values := make(map[string]any, len(m))
	for k, v := range m {
		values[k] = v
	}
	return RawOptions{values: values}
}

// Get returns the raw value for key.
func (r RawOptions) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Contains reports whether key was explicitly supplied.
func (r RawOptions) Contains(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Len returns the number of supplied keys.
func (r RawOptions) Len() int { return len(r.values) }

// Keys returns the supplied keys, sorted.
func (r RawOptions) Keys() []string {
	keys := make([]string, 0, len(r.values))
	for k := range r.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Raw returns a copy of the underlying map.
func (r RawOptions) Raw() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// With returns a copy of r with key set to value.
func (r RawOptions) With(key string, value any) RawOptions {
	out := r.Raw()
	out[key] = value
	return RawOptions{values: out}
}
