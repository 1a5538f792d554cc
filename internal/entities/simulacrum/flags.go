package simulacrum

import (
	"encoding/json"
	"math"
	"strconv"
)

// Flags is optional, loosely typed data attached to a document, grouped by
// namespace. Values are whatever the writer stored; after a JSON round trip
// numbers come back as float64 and lists as []any, so readers go through the
// typed accessors below.
type Flags map[string]map[string]any

// Get returns the value stored under scope and key
func (f Flags) Get(scope, key string) (any, bool) {
	if f == nil {
		return nil, false
	}
	values, ok := f[scope]
	if !ok {
		return nil, false
	}
	v, ok := values[key]
	return v, ok
}

// Set stores value under scope and key, allocating as needed
func (f *Flags) Set(scope, key string, value any) {
	if *f == nil {
		*f = make(Flags)
	}
	if (*f)[scope] == nil {
		(*f)[scope] = make(map[string]any)
	}
	(*f)[scope][key] = value
}

// Unset removes the value under scope and key. Empty scopes are dropped.
func (f Flags) Unset(scope, key string) {
	values, ok := f[scope]
	if !ok {
		return
	}
	delete(values, key)
	if len(values) == 0 {
		delete(f, scope)
	}
}

// Clone returns a copy that shares no maps or slices with f
func (f Flags) Clone() Flags {
	if f == nil {
		return nil
	}
	out := make(Flags, len(f))
	for scope, values := range f {
		copied := make(map[string]any, len(values))
		for k, v := range values {
			copied[k] = cloneFlagValue(v)
		}
		out[scope] = copied
	}
	return out
}

func cloneFlagValue(v any) any {
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...)
	case []any:
		return append([]any(nil), t...)
	default:
		return v
	}
}

// flagInt reads an integer out of a flag value. Non-numeric values read as
// absent.
func flagInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int32:
		return int(t), true
	case int64:
		return int(t), true
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, false
		}
		return int(t), true
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	case string:
		n, err := strconv.Atoi(t)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// flagStrings reads a list of ids out of a flag value, dropping anything that
// is not a string
func flagStrings(v any) []string {
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...)
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
