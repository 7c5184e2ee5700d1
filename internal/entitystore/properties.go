package entitystore

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Properties is a flat property bag. Values are restricted to string, int64
// and bool; there is no nested-object support, so composite fields must be
// flattened before they reach the store.
type Properties map[string]any

// SetString, SetInt64 and SetBool are the only write paths, keeping the value
// domain closed.
func (p Properties) SetString(name, v string)      { p[name] = v }
func (p Properties) SetInt64(name string, v int64) { p[name] = v }
func (p Properties) SetBool(name string, v bool)   { p[name] = v }

// String returns the named property if present and string-typed.
func (p Properties) String(name string) (string, bool) {
	v, ok := p[name].(string)
	return v, ok
}

// Int64 returns the named property if present and integer-typed.
func (p Properties) Int64(name string) (int64, bool) {
	v, ok := p[name].(int64)
	return v, ok
}

// Bool returns the named property if present and bool-typed.
func (p Properties) Bool(name string) (bool, bool) {
	v, ok := p[name].(bool)
	return v, ok
}

// Has reports whether the property exists at all, regardless of type.
func (p Properties) Has(name string) bool {
	_, ok := p[name]
	return ok
}

// Clone returns a shallow copy so drivers can hand out bags without aliasing
// their internal state.
func (p Properties) Clone() Properties {
	out := make(Properties, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// MarshalProps serializes a bag for drivers that persist rows as JSON.
func MarshalProps(p Properties) ([]byte, error) {
	return json.Marshal(p)
}

// UnmarshalProps is the inverse of MarshalProps. JSON numbers are decoded
// back to int64 so the typed accessors keep working after a round trip.
func UnmarshalProps(data []byte) (Properties, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	out := make(Properties, len(raw))
	for k, v := range raw {
		switch t := v.(type) {
		case json.Number:
			n, err := t.Int64()
			if err != nil {
				return nil, fmt.Errorf("property %q: non-integer number %q", k, t.String())
			}
			out[k] = n
		case string, bool:
			out[k] = t
		default:
			return nil, fmt.Errorf("property %q: unsupported value type %T", k, v)
		}
	}
	return out, nil
}
