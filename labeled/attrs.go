package labeled

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
)

// Attrs is the metadata record carried by arrays and datasets.
//
// Keys that the pipeline itself reads or writes are typed fields. Anything
// else copied from a drive's run metadata lands in Extra.
type Attrs struct {
	Driver              string
	N                   int
	MaxFrequency        string
	FrequencyResolution string
	Extra               map[string]string
}

// Clone returns a deep copy of a.
func (a Attrs) Clone() Attrs {
	out := a
	if a.Extra != nil {
		out.Extra = maps.Clone(a.Extra)
	}
	return out
}

// Get returns the value stored under key, resolving well-known keys to
// their typed fields. Unset typed fields report ok=false.
func (a Attrs) Get(key string) (value string, ok bool) {
	switch key {
	case KeyDriver:
		return a.Driver, a.Driver != ""
	case KeyN:
		if a.N == 0 {
			return "", false
		}
		return strconv.Itoa(a.N), true
	case KeyMaxFrequency:
		return a.MaxFrequency, a.MaxFrequency != ""
	case KeyFrequencyResolution:
		return a.FrequencyResolution, a.FrequencyResolution != ""
	}
	value, ok = a.Extra[key]
	return value, ok
}

// Set stores value under key. The n key must hold a non-negative integer.
func (a *Attrs) Set(key, value string) error {
	switch key {
	case KeyDriver:
		a.Driver = value
	case KeyN:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("labeled: attribute %q must be a non-negative integer: %q", key, value)
		}
		a.N = n
	case KeyMaxFrequency:
		a.MaxFrequency = value
	case KeyFrequencyResolution:
		a.FrequencyResolution = value
	default:
		if a.Extra == nil {
			a.Extra = make(map[string]string)
		}
		a.Extra[key] = value
	}
	return nil
}

// Keys returns the set keys in sorted order.
func (a Attrs) Keys() []string {
	keys := make([]string, 0, len(a.Extra)+4)
	for _, k := range []string{KeyDriver, KeyN, KeyMaxFrequency, KeyFrequencyResolution} {
		if _, ok := a.Get(k); ok {
			keys = append(keys, k)
		}
	}
	for k := range a.Extra {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Map flattens a into a plain key/value map.
func (a Attrs) Map() map[string]string {
	out := make(map[string]string)
	for _, k := range a.Keys() {
		out[k], _ = a.Get(k)
	}
	return out
}
