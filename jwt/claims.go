package jwt

import "math"

// A ValueKind tags which alternative a [ClaimValue] holds.
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindBool
	KindInt
	KindFloat
	KindString
)

// A ClaimValue is a JSON-scalar claim or header value: null, bool, signed
// 64-bit integer, 64-bit float, or string. The engine never walks into
// arrays or objects; providers may extend beyond these alternatives.
type ClaimValue struct {
	kind ValueKind
	b    bool
	i    int64
	f    float64
	s    string
}

func NullValue() ClaimValue           { return ClaimValue{kind: KindNull} }
func BoolValue(v bool) ClaimValue     { return ClaimValue{kind: KindBool, b: v} }
func IntValue(v int64) ClaimValue     { return ClaimValue{kind: KindInt, i: v} }
func FloatValue(v float64) ClaimValue { return ClaimValue{kind: KindFloat, f: v} }
func StringValue(v string) ClaimValue { return ClaimValue{kind: KindString, s: v} }

// Kind returns which alternative the ClaimValue holds.
func (v ClaimValue) Kind() ValueKind { return v.kind }

// IsNull reports whether the ClaimValue holds null.
func (v ClaimValue) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean alternative.
func (v ClaimValue) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}

	return v.b, true
}

// Int64 returns the integer alternative. A float whose fractional part is
// zero is accepted as an integer.
func (v ClaimValue) Int64() (int64, bool) {
	switch v.kind {
	case KindInt:
		return v.i, true
	case KindFloat:
		if rounded := math.Floor(v.f); rounded == v.f {
			return int64(rounded), true
		}
	}

	return 0, false
}

// Float64 returns the float alternative; integers widen to float64.
func (v ClaimValue) Float64() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	}

	return 0, false
}

// String returns the string alternative.
func (v ClaimValue) String() (string, bool) {
	if v.kind != KindString {
		return "", false
	}

	return v.s, true
}

// A ClaimMap maps claim names to their values.
type ClaimMap map[string]ClaimValue

// A HeaderMap maps header parameter names to their values.
type HeaderMap = ClaimMap

// Has reports whether the named claim is present.
func (m ClaimMap) Has(name string) bool {
	_, ok := m[name]
	return ok
}

// String returns the named claim when it holds a string.
func (m ClaimMap) String(name string) (string, bool) {
	v, ok := m[name]
	if !ok {
		return "", false
	}

	return v.String()
}

// Int64 returns the named claim when it holds an integer,
// applying the float coercion rule of [ClaimValue.Int64].
func (m ClaimMap) Int64(name string) (int64, bool) {
	v, ok := m[name]
	if !ok {
		return 0, false
	}

	return v.Int64()
}

// Float64 returns the named claim when it holds a number.
func (m ClaimMap) Float64(name string) (float64, bool) {
	v, ok := m[name]
	if !ok {
		return 0, false
	}

	return v.Float64()
}

// Bool returns the named claim when it holds a boolean.
func (m ClaimMap) Bool(name string) (bool, bool) {
	v, ok := m[name]
	if !ok {
		return false, false
	}

	return v.Bool()
}
