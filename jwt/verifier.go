package jwt

// A Verifier is the result of one verification.
//
// When Ok reports false, whatever state was produced before the first
// failure (raw token, decoded JSON text, parsed maps) is retained for
// diagnostics. Copies of a Verifier share the underlying header and claim
// maps.
type Verifier struct {
	ok             bool
	err            Error
	rawToken       string
	rawHeaderJSON  string
	rawPayloadJSON string
	header         HeaderMap
	claims         ClaimMap
}

// reset returns the Verifier to its empty state before a verification.
func (v *Verifier) reset(token string) {
	*v = Verifier{rawToken: token}
}

// fail records the first failure observed.
func (v *Verifier) fail(err Error) Error {
	v.ok = false
	v.err = err
	return err
}

// Ok reports whether the token passed signature and policy checks.
func (v *Verifier) Ok() bool { return v.ok }

// Err returns the first failure observed, or the zero [Error] on success.
func (v *Verifier) Err() Error { return v.err }

// RawToken returns the token as handed to [Engine.Verify].
func (v *Verifier) RawToken() string { return v.rawToken }

// RawHeaderJSON returns the decoded header JSON text.
func (v *Verifier) RawHeaderJSON() string { return v.rawHeaderJSON }

// RawPayloadJSON returns the decoded payload JSON text.
func (v *Verifier) RawPayloadJSON() string { return v.rawPayloadJSON }

// Header returns the parsed token header.
func (v *Verifier) Header() HeaderMap { return v.header }

// Claims returns the parsed token claims.
func (v *Verifier) Claims() ClaimMap { return v.claims }

// HasClaim reports whether the named claim was present in the payload.
func (v *Verifier) HasClaim(name string) bool { return v.claims.Has(name) }

// ClaimString returns the named claim when it holds a string.
func (v *Verifier) ClaimString(name string) (string, bool) {
	return v.claims.String(name)
}

// ClaimInt returns the named claim when it holds an integer,
// accepting floats with a zero fractional part.
func (v *Verifier) ClaimInt(name string) (int64, bool) {
	return v.claims.Int64(name)
}

// ClaimFloat returns the named claim when it holds a number.
func (v *Verifier) ClaimFloat(name string) (float64, bool) {
	return v.claims.Float64(name)
}

// ClaimBool returns the named claim when it holds a boolean.
func (v *Verifier) ClaimBool(name string) (bool, bool) {
	return v.claims.Bool(name)
}
