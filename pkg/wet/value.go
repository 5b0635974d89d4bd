// Package wet provides the decoded, in-memory document tree shared by all
// file format adaptors. A wet value is one of null, boolean, number, string,
// sequence or ordered string-keyed mapping.
package wet

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Kind identifies the variant held by a Value
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindSequence
	KindMapping
)

// String returns the lowercase name of the kind
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// IsScalar reports whether the kind holds no child values
func (k Kind) IsScalar() bool {
	return k != KindSequence && k != KindMapping
}

// ErrInvalidNumber is returned when a number literal is not valid JSON number syntax
var ErrInvalidNumber = errors.New("invalid number literal")

// Value is a node of the wet tree. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	s    string // string content, or number literal
	seq  []Value
	m    *Map
}

// Null returns the null value
func Null() Value {
	return Value{}
}

// Bool returns a boolean value
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// String returns a string value
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// Int returns a number value for a signed integer
func Int(n int64) Value {
	return Value{kind: KindNumber, s: strconv.FormatInt(n, 10)}
}

// Uint returns a number value for an unsigned integer
func Uint(n uint64) Value {
	return Value{kind: KindNumber, s: strconv.FormatUint(n, 10)}
}

// Float returns a number value for a float. NaN and infinities have no
// number representation and produce null.
func Float(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null()
	}
	return Value{kind: KindNumber, s: strconv.FormatFloat(f, 'g', -1, 64)}
}

// ParseNumber returns a number value holding the given JSON number literal
func ParseNumber(literal string) (Value, error) {
	if !isNumberLiteral(literal) {
		return Value{}, fmt.Errorf("%w: %q", ErrInvalidNumber, literal)
	}
	return Value{kind: KindNumber, s: literal}, nil
}

// Sequence returns a sequence holding the given values in order
func Sequence(items ...Value) Value {
	seq := make([]Value, len(items))
	copy(seq, items)
	return Value{kind: KindSequence, seq: seq}
}

// Mapping returns a mapping value backed by m. A nil map yields an empty mapping.
func Mapping(m *Map) Value {
	if m == nil {
		m = NewMap()
	}
	return Value{kind: KindMapping, m: m}
}

// Entry is a single key/value pair used by Object
type Entry struct {
	Key   string
	Value Value
}

// Object builds a mapping from entries, keeping their order
func Object(entries ...Entry) Value {
	m := NewMap()
	for _, e := range entries {
		m.Set(e.Key, e.Value)
	}
	return Mapping(m)
}

// Kind returns the variant of v
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is null
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// AsBool returns the boolean held by v
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsString returns the string held by v
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// AsNumber returns the number literal held by v
func (v Value) AsNumber() (json.Number, bool) {
	if v.kind != KindNumber {
		return "", false
	}
	return json.Number(v.s), true
}

// AsSequence returns a copy of the items held by v
func (v Value) AsSequence() ([]Value, bool) {
	if v.kind != KindSequence {
		return nil, false
	}
	out := make([]Value, len(v.seq))
	copy(out, v.seq)
	return out, true
}

// AsMap returns the mapping held by v
func (v Value) AsMap() (*Map, bool) {
	if v.kind != KindMapping {
		return nil, false
	}
	return v.m, true
}

// Len returns the number of children for sequences and mappings, zero otherwise
func (v Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.seq)
	case KindMapping:
		return v.m.Len()
	default:
		return 0
	}
}

// Text returns the textual form of a scalar: "null", "true"/"false", the
// number literal, or the string itself. It reports false for containers.
func (v Value) Text() (string, bool) {
	switch v.kind {
	case KindNull:
		return "null", true
	case KindBool:
		return strconv.FormatBool(v.b), true
	case KindNumber, KindString:
		return v.s, true
	default:
		return "", false
	}
}

// Equal reports structural equality. Mapping entry order is not significant.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber, KindString:
		return v.s == other.s
	case KindSequence:
		if len(v.seq) != len(other.seq) {
			return false
		}
		for i := range v.seq {
			if !v.seq[i].Equal(other.seq[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		return v.m.Equal(other.m)
	}
	return false
}

// GoString renders v as compact JSON for debugging output
func (v Value) GoString() string {
	b, err := v.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("wet.Value(%s)", v.kind)
	}
	return string(b)
}

// isNumberLiteral checks the JSON number grammar:
// -? (0 | [1-9][0-9]*) (\.[0-9]+)? ([eE][+-]?[0-9]+)?
func isNumberLiteral(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	if i >= len(s) {
		return false
	}
	switch {
	case s[i] == '0':
		i++
	case s[i] >= '1' && s[i] <= '9':
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	default:
		return false
	}
	if i < len(s) && s[i] == '.' {
		i++
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == start {
			return false
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == start {
			return false
		}
	}
	return i == len(s)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
