package jwt

// A CryptoProvider owns all key material and signature math for an
// [*Engine]. The engine never caches keys itself; the provider is the
// single source of truth, keyed by kid.
//
// All operations are synchronous. Sign and Verify must be side-effect-free
// with respect to the key store. Implementations shared by a concurrently
// used engine must be internally thread-safe.
type CryptoProvider interface {
	LoadPrivateKeyFromPemFile(kid, pemPath string) Error
	LoadPublicKeyFromPemFile(kid, pemPath string, use Use) Error
	LoadCertificateFromPemFile(kid, pemPath string) Error
	SavePrivateKeyToPemFile(kid, pemPath string) Error
	SavePublicKeyToPemFile(kid, pemPath string, use Use) Error
	GenerateKeyPair(kid string, alg Alg, params string) Error
	RemoveKey(kid string) Error

	Sign(alg Alg, kid string, data []byte) ([]byte, Error)
	Verify(alg Alg, kid string, data, signature []byte) Error

	Base64URLEncode(data []byte) (string, Error)
	Base64URLDecode(text string) ([]byte, Error)
}

// A JSONProvider parses and serializes token headers and claims.
// The engine never inspects JSON bytes itself.
type JSONProvider interface {
	ParseHeader(text string) (HeaderMap, Error)
	ParseClaims(text string) (ClaimMap, Error)
	ToJSON(values ClaimMap) (string, Error)
}
