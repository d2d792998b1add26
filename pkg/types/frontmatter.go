// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// FrontMatter is the metadata header of one output document. Values are
// either a string or an ordered []string; keys keep insertion order so the
// serialized header is reproducible. Empty values are never stored.
type FrontMatter struct {
	keys   []string
	values map[string]any
}

// NewFrontMatter returns an empty FrontMatter.
func NewFrontMatter() *FrontMatter {
	return &FrontMatter{values: make(map[string]any)}
}

// SetString stores a scalar field. An empty value removes the field.
func (f *FrontMatter) SetString(key, value string) {
	if value == "" {
		f.Delete(key)
		return
	}
	f.set(key, value)
}

// SetList stores a multi-valued field. An empty list removes the field.
func (f *FrontMatter) SetList(key string, values []string) {
	if len(values) == 0 {
		f.Delete(key)
		return
	}
	f.set(key, append([]string(nil), values...))
}

func (f *FrontMatter) set(key string, value any) {
	if f.values == nil {
		f.values = make(map[string]any)
	}
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

// Delete removes key if present.
func (f *FrontMatter) Delete(key string) {
	if f == nil {
		return
	}
	if _, ok := f.values[key]; !ok {
		return
	}
	delete(f.values, key)
	for i, k := range f.keys {
		if k == key {
			f.keys = append(f.keys[:i], f.keys[i+1:]...)
			break
		}
	}
}

// Get returns the value stored under key: a string or a []string.
func (f *FrontMatter) Get(key string) (any, bool) {
	if f == nil {
		return nil, false
	}
	v, ok := f.values[key]
	return v, ok
}

// String returns the scalar stored under key.
func (f *FrontMatter) String(key string) (string, bool) {
	v, ok := f.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// List returns the sequence stored under key.
func (f *FrontMatter) List(key string) ([]string, bool) {
	v, ok := f.Get(key)
	if !ok {
		return nil, false
	}
	l, ok := v.([]string)
	return l, ok
}

// Keys returns the field names in insertion order.
func (f *FrontMatter) Keys() []string {
	if f == nil {
		return nil
	}
	return append([]string(nil), f.keys...)
}

// Len returns the number of stored fields.
func (f *FrontMatter) Len() int {
	if f == nil {
		return 0
	}
	return len(f.keys)
}

// Map returns a copy of the fields as a plain map, for comparisons.
func (f *FrontMatter) Map() map[string]any {
	out := make(map[string]any, f.Len())
	for _, k := range f.Keys() {
		switch v := f.values[k].(type) {
		case []string:
			out[k] = append([]string(nil), v...)
		default:
			out[k] = v
		}
	}
	return out
}
