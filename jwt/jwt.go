package jwt

import (
	"strings"
	"sync"
)

// An Engine composes a [CryptoProvider] and a [JSONProvider] into a
// signing and verification pipeline governed by [EngineOptions].
//
// The providers are shared by reference and must outlive the engine.
// Option replacement through [Engine.SetOptions] and option reads are
// always guarded by a lock, whatever the options' ThreadSafe value;
// everything else on the engine is read-only after construction.
type Engine struct {
	crypto CryptoProvider
	json   JSONProvider

	mu   sync.RWMutex
	opts EngineOptions
}

// New constructs an [*Engine] around the providers,
// starting from [DefaultEngineOptions].
func New(crypto CryptoProvider, json JSONProvider, opts ...EngineOption) *Engine {
	options := DefaultEngineOptions()
	for _, opt := range opts {
		opt(&options)
	}

	return &Engine{crypto: crypto, json: json, opts: options}
}

// Crypto returns the engine's crypto provider.
func (e *Engine) Crypto() CryptoProvider { return e.crypto }

// JSON returns the engine's JSON provider.
func (e *Engine) JSON() JSONProvider { return e.json }

// Options returns a snapshot of the engine's current options.
func (e *Engine) Options() EngineOptions {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.opts
}

// SetOptions replaces the engine's options wholesale.
func (e *Engine) SetOptions(opts EngineOptions) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts = opts
}

// Token starts a [*TokenBuilder] for one signing.
func (e *Engine) Token() *TokenBuilder {
	return newTokenBuilder(e)
}

// Verify checks the compact-JWS token against the engine's policy,
// leaving the full outcome on outVerifier. The returned Error mirrors
// outVerifier.Err().
//
// Verification aborts on the first failure: format, base64url decoding,
// JSON parsing, algorithm resolution and policy whitelist, key lookup,
// signature, then claim policy. State produced before the failure stays on
// the verifier for diagnostics.
func (e *Engine) Verify(token string, outVerifier *Verifier) Error {
	outVerifier.reset(token)

	parts := strings.Split(token, ".")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return outVerifier.fail(NewError(InvalidFormat, "token must contain exactly 3 parts"))
	}

	headerBytes, err := e.crypto.Base64URLDecode(parts[0])
	if !err.Ok() {
		return outVerifier.fail(err)
	}

	payloadBytes, err := e.crypto.Base64URLDecode(parts[1])
	if !err.Ok() {
		return outVerifier.fail(err)
	}

	signature, err := e.crypto.Base64URLDecode(parts[2])
	if !err.Ok() {
		return outVerifier.fail(err)
	}

	outVerifier.rawHeaderJSON = string(headerBytes)
	outVerifier.rawPayloadJSON = string(payloadBytes)

	header, err := e.json.ParseHeader(outVerifier.rawHeaderJSON)
	if !err.Ok() {
		return outVerifier.fail(err)
	}
	outVerifier.header = header

	claims, err := e.json.ParseClaims(outVerifier.rawPayloadJSON)
	if !err.Ok() {
		return outVerifier.fail(err)
	}
	outVerifier.claims = claims

	algText, ok := header.String("alg")
	if !ok {
		return outVerifier.fail(NewError(UnsupportedAlg, "missing alg header"))
	}

	alg, ok := AlgString(algText)
	if !ok {
		return outVerifier.fail(NewError(UnsupportedAlg, "unknown algorithm"))
	}

	policy := e.Options().Policy
	if !policy.allows(alg) {
		return outVerifier.fail(NewError(UnsupportedAlg, "algorithm not allowed by policy"))
	}

	kid, ok := header.String("kid")
	if !ok {
		return outVerifier.fail(NewError(KeyNotFound, "missing kid header"))
	}

	signingInput := parts[0] + "." + parts[1]
	if err := e.crypto.Verify(alg, kid, []byte(signingInput), signature); !err.Ok() {
		return outVerifier.fail(err)
	}

	if err := policy.validate(claims); !err.Ok() {
		return outVerifier.fail(err)
	}

	outVerifier.ok = true
	outVerifier.err = Error{}
	return Error{}
}
