package wet

// Map is a string-keyed mapping that remembers insertion order.
// Keys are unique; setting an existing key replaces its value in place.
// The zero Map is empty and ready to use.
type Map struct {
	keys   []string
	values map[string]Value
}

// NewMap returns an empty mapping
func NewMap() *Map {
	return &Map{values: make(map[string]Value)}
}

// Set stores value under key
func (m *Map) Set(key string, value Value) {
	if m.values == nil {
		m.values = make(map[string]Value)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key
func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Len returns the number of entries
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Entries returns the entries in insertion order
func (m *Map) Entries() []Entry {
	if m == nil {
		return nil
	}
	out := make([]Entry, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, Entry{Key: k, Value: m.values[k]})
	}
	return out
}

// Equal reports whether both mappings hold the same keys with equal values,
// regardless of order
func (m *Map) Equal(other *Map) bool {
	if m.Len() != other.Len() {
		return false
	}
	for _, k := range m.Keys() {
		ov, ok := other.Get(k)
		if !ok {
			return false
		}
		if !m.values[k].Equal(ov) {
			return false
		}
	}
	return true
}
