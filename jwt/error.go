package jwt

// A Code classifies why a jwt operation failed.
//
// The numeric values are stable across versions.
type Code uint16

const (
	Ok Code = iota
	InvalidFormat
	InvalidBase64Url
	InvalidJson
	UnsupportedAlg
	KeyNotFound
	SignatureMismatch
	Expired
	NotYetValid
	InvalidIssuer
	InvalidAudience
	PolicyViolation
	CryptoError
	JsonError
	IOError
	CertificateNotFound
)

func (c Code) String() string {
	switch c {
	case Ok:
		return "Ok"
	case InvalidFormat:
		return "InvalidFormat"
	case InvalidBase64Url:
		return "InvalidBase64Url"
	case InvalidJson:
		return "InvalidJson"
	case UnsupportedAlg:
		return "UnsupportedAlg"
	case KeyNotFound:
		return "KeyNotFound"
	case SignatureMismatch:
		return "SignatureMismatch"
	case Expired:
		return "Expired"
	case NotYetValid:
		return "NotYetValid"
	case InvalidIssuer:
		return "InvalidIssuer"
	case InvalidAudience:
		return "InvalidAudience"
	case PolicyViolation:
		return "PolicyViolation"
	case CryptoError:
		return "CryptoError"
	case JsonError:
		return "JsonError"
	case IOError:
		return "IOError"
	case CertificateNotFound:
		return "CertificateNotFound"
	default:
		return "Unknown"
	}
}

// An Error pairs a [Code] with an optional diagnostic message.
// The zero value means success; check with [Error.Ok].
type Error struct {
	Code    Code
	Message string
}

// NewError constructs an Error for the code and message.
func NewError(code Code, message string) Error {
	return Error{Code: code, Message: message}
}

// Ok reports whether the Error represents success.
func (e Error) Ok() bool { return e.Code == Ok }

// Error satisfies the error interface.
func (e Error) Error() string {
	if e.Message == "" {
		return e.Code.String()
	}

	return e.Code.String() + ": " + e.Message
}
