package jwt

import "time"

// A Policy holds the rules applied to the claims of every verified token.
//
// An empty AllowedAlgs list permits any supported algorithm. ExpectedIss
// and ExpectedAud are checked only when non-empty. LeewaySeconds loosens
// the exp and nbf comparisons in both directions and must be non-negative.
type Policy struct {
	AllowedAlgs   []Alg
	ExpectedIss   string
	ExpectedAud   string
	LeewaySeconds int64
	RequireExp    bool
	RequireNbf    bool
}

// DefaultPolicy returns the policy a new engine starts with:
// exp required, nothing else constrained.
func DefaultPolicy() Policy {
	return Policy{RequireExp: true}
}

// allows reports whether the policy permits the algorithm.
func (p Policy) allows(alg Alg) bool {
	if len(p.AllowedAlgs) == 0 {
		return true
	}

	for _, allowed := range p.AllowedAlgs {
		if allowed == alg {
			return true
		}
	}

	return false
}

// validate applies the policy to the claims using the current wall clock.
// Checks run in a fixed order: issuer, audience, expiry, not-before.
func (p Policy) validate(claims ClaimMap) Error {
	if p.ExpectedIss != "" {
		if iss, ok := claims.String("iss"); !ok || iss != p.ExpectedIss {
			return NewError(InvalidIssuer, "issuer claim does not match policy")
		}
	}

	if p.ExpectedAud != "" {
		if aud, ok := claims.String("aud"); !ok || aud != p.ExpectedAud {
			return NewError(InvalidAudience, "audience claim does not match policy")
		}
	}

	now := time.Now().Unix()

	if p.RequireExp {
		exp, ok := claims.Int64("exp")
		if !ok {
			return NewError(PolicyViolation, "exp claim is required by policy")
		}
		if now > exp+p.LeewaySeconds {
			return NewError(Expired, "token has expired")
		}
	}

	if p.RequireNbf {
		nbf, ok := claims.Int64("nbf")
		if !ok {
			return NewError(PolicyViolation, "nbf claim is required by policy")
		}
		if now+p.LeewaySeconds < nbf {
			return NewError(NotYetValid, "token not valid yet")
		}
	}

	return Error{}
}

// EngineOptions is the engine-wide configuration.
//
// ThreadSafe advertises that the engine will be shared across goroutines.
// It is advisory: the engine guards option replacement against concurrent
// reads whether or not it is set.
type EngineOptions struct {
	Policy     Policy
	ThreadSafe bool
}

// DefaultEngineOptions returns the options a new engine starts with.
func DefaultEngineOptions() EngineOptions {
	return EngineOptions{Policy: DefaultPolicy(), ThreadSafe: true}
}

// An EngineOption configures the [EngineOptions] an engine is constructed with.
type EngineOption func(*EngineOptions)

// WithPolicy replaces the verification policy.
func WithPolicy(policy Policy) EngineOption {
	return func(opts *EngineOptions) { opts.Policy = policy }
}

// WithThreadSafe sets the advisory ThreadSafe flag; the engine's locking
// does not depend on it.
func WithThreadSafe(threadSafe bool) EngineOption {
	return func(opts *EngineOptions) { opts.ThreadSafe = threadSafe }
}
