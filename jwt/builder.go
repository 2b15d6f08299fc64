package jwt

import "github.com/google/uuid"

// A TokenBuilder accumulates the header and claims for one signing.
//
// The zero header is {alg: HS256, typ: JWT}. A builder references the
// engine it came from and is meant for a single [TokenBuilder.Sign];
// signing never mutates the builder's observable state.
type TokenBuilder struct {
	engine *Engine
	header HeaderMap
	claims ClaimMap
}

func newTokenBuilder(engine *Engine) *TokenBuilder {
	return &TokenBuilder{
		engine: engine,
		header: HeaderMap{
			"alg": StringValue(HS256.String()),
			"typ": StringValue("JWT"),
		},
		claims: make(ClaimMap),
	}
}

// Alg sets the alg header parameter.
func (b *TokenBuilder) Alg(alg Alg) *TokenBuilder {
	b.header["alg"] = StringValue(alg.String())
	return b
}

// Kid sets the kid header parameter naming the signing key.
func (b *TokenBuilder) Kid(kid string) *TokenBuilder {
	b.header["kid"] = StringValue(kid)
	return b
}

// Typ sets the typ header parameter.
func (b *TokenBuilder) Typ(typ string) *TokenBuilder {
	b.header["typ"] = StringValue(typ)
	return b
}

// Claim sets an arbitrary claim.
func (b *TokenBuilder) Claim(name string, value ClaimValue) *TokenBuilder {
	b.claims[name] = value
	return b
}

// Issuer sets the iss claim.
func (b *TokenBuilder) Issuer(value string) *TokenBuilder {
	return b.Claim("iss", StringValue(value))
}

// Subject sets the sub claim.
func (b *TokenBuilder) Subject(value string) *TokenBuilder {
	return b.Claim("sub", StringValue(value))
}

// Audience sets the aud claim.
func (b *TokenBuilder) Audience(value string) *TokenBuilder {
	return b.Claim("aud", StringValue(value))
}

// JWTID sets the jti claim.
func (b *TokenBuilder) JWTID(value string) *TokenBuilder {
	return b.Claim("jti", StringValue(value))
}

// RandomJWTID sets the jti claim to a fresh UUID.
func (b *TokenBuilder) RandomJWTID() *TokenBuilder {
	return b.JWTID(uuid.NewString())
}

// ExpiresAt sets the exp claim in epoch seconds.
func (b *TokenBuilder) ExpiresAt(epochSeconds int64) *TokenBuilder {
	return b.Claim("exp", IntValue(epochSeconds))
}

// NotBefore sets the nbf claim in epoch seconds.
func (b *TokenBuilder) NotBefore(epochSeconds int64) *TokenBuilder {
	return b.Claim("nbf", IntValue(epochSeconds))
}

// IssuedAt sets the iat claim in epoch seconds.
func (b *TokenBuilder) IssuedAt(epochSeconds int64) *TokenBuilder {
	return b.Claim("iat", IntValue(epochSeconds))
}

// Header returns the header map accumulated so far.
func (b *TokenBuilder) Header() HeaderMap { return b.header }

// Claims returns the claim map accumulated so far.
func (b *TokenBuilder) Claims() ClaimMap { return b.claims }

// ClearClaims drops all claims, keeping the header.
func (b *TokenBuilder) ClearClaims() {
	for name := range b.claims {
		delete(b.claims, name)
	}
}

// Sign serializes the header and claims, signs the composed input under
// the header's (alg, kid), and returns the compact-JWS token. The first
// failure aborts and is returned verbatim; provider errors propagate
// unchanged.
func (b *TokenBuilder) Sign() (string, Error) {
	algText, ok := b.header.String("alg")
	if !ok {
		return "", NewError(UnsupportedAlg, "missing algorithm in token header")
	}

	alg, ok := AlgString(algText)
	if !ok {
		return "", NewError(UnsupportedAlg, "unsupported algorithm in token header")
	}

	kid, ok := b.header.String("kid")
	if !ok {
		return "", NewError(KeyNotFound, "missing kid in token header")
	}

	headerJSON, err := b.engine.JSON().ToJSON(b.header)
	if !err.Ok() {
		return "", err
	}

	payloadJSON, err := b.engine.JSON().ToJSON(b.claims)
	if !err.Ok() {
		return "", err
	}

	headerB64, err := b.engine.Crypto().Base64URLEncode([]byte(headerJSON))
	if !err.Ok() {
		return "", err
	}

	payloadB64, err := b.engine.Crypto().Base64URLEncode([]byte(payloadJSON))
	if !err.Ok() {
		return "", err
	}

	signingInput := headerB64 + "." + payloadB64

	signature, err := b.engine.Crypto().Sign(alg, kid, []byte(signingInput))
	if !err.Ok() {
		return "", err
	}

	signatureB64, err := b.engine.Crypto().Base64URLEncode(signature)
	if !err.Ok() {
		return "", err
	}

	return signingInput + "." + signatureB64, Error{}
}
