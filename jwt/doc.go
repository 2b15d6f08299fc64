/*
Package jwt signs and verifies JSON Web Tokens through pluggable providers.

An [*Engine] composes two collaborators the caller supplies: a
[CryptoProvider] owning all key material and signature math, and a
[JSONProvider] owning serialization. The engine itself only sequences the
compact-JWS pipeline and enforces the verification [Policy] (algorithm
whitelist, issuer/audience expectations, expiry and not-before with leeway).

Tokens are built fluently:

	token, err := engine.Token().
		Alg(jwt.HS256).
		Kid("k1").
		Issuer("auth0").
		Subject("user-1").
		ExpiresAt(time.Now().Unix() + 3600).
		Sign()

and verified into a [*Verifier] that retains whatever state was produced
before the first failure, for diagnostics:

	var v jwt.Verifier
	if err := engine.Verify(token, &v); !err.Ok() {
		// v.RawHeaderJSON() etc. may still be populated
	}

Failures are values, not panics: every fallible operation returns an
[Error] carrying a stable [Code] and a diagnostic message.

The providers sub-package carries ready-made implementations; the denylist
sub-package revokes tokens by jti.
*/
package jwt
