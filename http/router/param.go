package router

import "strings"

// A ParamType restricts what a parameter segment accepts.
//
// The numeric value doubles as the matching priority: lower values are
// tried first when several parameters hang off the same node.
type ParamType uint8

const (
	ParamInt      ParamType = 0
	ParamBase64ID ParamType = 1
	ParamString   ParamType = 2
	ParamUUID     ParamType = 3
	ParamFloat    ParamType = 4
	ParamGeneric  ParamType = 255
)

func (pt ParamType) String() string {
	switch pt {
	case ParamInt:
		return "int"
	case ParamBase64ID:
		return "base64id"
	case ParamString:
		return "string"
	case ParamUUID:
		return "uuid"
	case ParamFloat:
		return "float"
	default:
		return "generic"
	}
}

// validate reports whether value is acceptable for the ParamType.
func (pt ParamType) validate(value string) bool {
	switch pt {
	case ParamInt:
		return validInt(value)
	case ParamBase64ID:
		return validBase64ID(value)
	case ParamString:
		return value != ""
	case ParamUUID:
		return validUUID(value)
	case ParamFloat:
		return validFloat(value)
	default:
		return true
	}
}

func validInt(value string) bool {
	if value == "" {
		return false
	}

	start := 0
	if value[0] == '-' || value[0] == '+' {
		start = 1
	}

	if start >= len(value) {
		return false
	}

	for i := start; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return false
		}
	}

	return true
}

func validFloat(value string) bool {
	if value == "" {
		return false
	}

	i := 0
	if value[i] == '-' || value[i] == '+' {
		i++
	}

	if i >= len(value) {
		return false
	}

	var hasDigit, hasDot bool
	for ; i < len(value); i++ {
		c := value[i]
		switch {
		case c >= '0' && c <= '9':
			hasDigit = true
		case c == '.' && !hasDot:
			hasDot = true
		default:
			return false
		}
	}

	return hasDigit
}

// validUUID checks the canonical 8-4-4-4-12 hex form, case-insensitively.
func validUUID(value string) bool {
	if len(value) != 36 {
		return false
	}

	for i := 0; i < len(value); i++ {
		c := value[i]
		if i == 8 || i == 13 || i == 18 || i == 23 {
			if c != '-' {
				return false
			}
			continue
		}

		if !isHex(c) {
			return false
		}
	}

	return true
}

// validBase64ID checks a Base64URL-encoded UUID:
// 22 chars unpadded, or 24 chars ending with "==".
func validBase64ID(value string) bool {
	if len(value) != 22 && len(value) != 24 {
		return false
	}

	payload := value
	if len(value) == 24 {
		if value[22] != '=' || value[23] != '=' {
			return false
		}
		payload = value[:22]
	}

	for i := 0; i < len(payload); i++ {
		c := payload[i]
		if !isAlnum(c) && c != '-' && c != '_' {
			return false
		}
	}

	return true
}

func isAlnum(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// parsedSegment is the registration-time view of one pattern segment.
type parsedSegment struct {
	isParam bool
	name    string
	ptype   ParamType
}

// parseSegment classifies a pattern segment as a literal or a parameter.
// A parameter has the shape <name> or <name:type>; unknown type strings
// collapse to [ParamGeneric].
func parseSegment(segment string) parsedSegment {
	if len(segment) < 2 || segment[0] != '<' || segment[len(segment)-1] != '>' {
		return parsedSegment{name: segment}
	}

	inner := segment[1 : len(segment)-1]
	name, typeStr, found := strings.Cut(inner, ":")
	if !found {
		return parsedSegment{isParam: true, name: inner, ptype: ParamGeneric}
	}

	ptype := ParamGeneric
	switch typeStr {
	case "int":
		ptype = ParamInt
	case "base64id":
		ptype = ParamBase64ID
	case "string":
		ptype = ParamString
	case "uuid":
		ptype = ParamUUID
	case "float":
		ptype = ParamFloat
	}

	return parsedSegment{isParam: true, name: name, ptype: ptype}
}

// splitPath normalizes a pattern or request path into its segments.
// One trailing and one leading slash are stripped; the root path yields
// no segments.
func splitPath(path string) []string {
	if strings.HasSuffix(path, "/") && len(path) > 1 {
		path = path[:len(path)-1]
	}
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		return nil
	}

	return strings.Split(path, "/")
}
