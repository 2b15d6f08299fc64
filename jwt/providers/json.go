package providers

import (
	"math"

	jsoniter "github.com/json-iterator/go"

	"github.com/xy-planning-network/waypoint/jwt"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSON is a [jwt.JSONProvider] on json-iterator.
//
// Parsing keeps only JSON scalars: nested arrays and objects in a header
// or payload are dropped rather than flattened. Numbers land as integers
// when they carry no fractional part and fit int64, as floats otherwise.
type JSON struct{}

// NewJSON returns a ready-to-use [*JSON] provider.
func NewJSON() *JSON { return &JSON{} }

// ParseHeader parses text into a [jwt.HeaderMap].
func (p *JSON) ParseHeader(text string) (jwt.HeaderMap, jwt.Error) {
	m, err := p.parseObject(text)
	return jwt.HeaderMap(m), err
}

// ParseClaims parses text into a [jwt.ClaimMap].
func (p *JSON) ParseClaims(text string) (jwt.ClaimMap, jwt.Error) {
	return p.parseObject(text)
}

func (p *JSON) parseObject(text string) (jwt.ClaimMap, jwt.Error) {
	var raw map[string]any
	if err := json.UnmarshalFromString(text, &raw); err != nil {
		return nil, jwt.NewError(jwt.InvalidJson, err.Error())
	}

	if raw == nil {
		return nil, jwt.NewError(jwt.InvalidJson, "expected JSON object")
	}

	out := make(jwt.ClaimMap, len(raw))
	for name, value := range raw {
		switch v := value.(type) {
		case nil:
			out[name] = jwt.NullValue()
		case bool:
			out[name] = jwt.BoolValue(v)
		case float64:
			if v == math.Trunc(v) && v >= math.MinInt64 && v < math.MaxInt64 {
				out[name] = jwt.IntValue(int64(v))
			} else {
				out[name] = jwt.FloatValue(v)
			}
		case string:
			out[name] = jwt.StringValue(v)
		}
	}

	return out, jwt.Error{}
}

// ToJSON serializes values into a JSON object.
func (p *JSON) ToJSON(values jwt.ClaimMap) (string, jwt.Error) {
	raw := make(map[string]any, len(values))
	for name, value := range values {
		switch value.Kind() {
		case jwt.KindNull:
			raw[name] = nil
		case jwt.KindBool:
			b, _ := value.Bool()
			raw[name] = b
		case jwt.KindInt:
			i, _ := value.Int64()
			raw[name] = i
		case jwt.KindFloat:
			f, _ := value.Float64()
			raw[name] = f
		case jwt.KindString:
			s, _ := value.String()
			raw[name] = s
		}
	}

	text, err := json.MarshalToString(raw)
	if err != nil {
		return "", jwt.NewError(jwt.JsonError, err.Error())
	}

	return text, jwt.Error{}
}
