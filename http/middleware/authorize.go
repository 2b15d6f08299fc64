package middleware

import (
	"net/http"
	"strings"

	"github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/http/router"
	"github.com/xy-planning-network/waypoint/jwt"
	"github.com/xy-planning-network/waypoint/jwt/denylist"
)

// An AuthorizeOpt configures the Authorize middleware.
type AuthorizeOpt func(*authorizeCfg)

type authorizeCfg struct {
	dl denylist.Denylist
}

// WithDenylist has Authorize reject tokens whose "jti" claim the denylist
// reports revoked.
func WithDenylist(dl denylist.Denylist) AuthorizeOpt {
	return func(cfg *authorizeCfg) { cfg.dl = dl }
}

// Authorize gates the chain behind a bearer token verified by the engine.
//
// The token is read from the "Authorization" request header. When it
// verifies against the engine's policy, and its "jti" claim is not revoked
// on a configured denylist, Authorize stashes the verified claims under
// waypoint.CurrentClaimsKey and advances the chain. Otherwise Authorize
// writes 401 and does not pass the request to the next stage.
//
// If engine is nil, Noop returns and this middleware does nothing.
func Authorize(engine *jwt.Engine, opts ...AuthorizeOpt) router.Middleware {
	if engine == nil {
		return Noop()
	}

	var cfg authorizeCfg
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(ctx router.Ctx, next router.Next) {
		hc, ok := ctx.(HTTPCtx)
		if !ok || hc.Request() == nil {
			next()
			return
		}

		r := hc.Request()
		token := bearerToken(r.Header)
		if token == "" {
			unauthorized(hc.Writer())
			return
		}

		var v jwt.Verifier
		if err := engine.Verify(token, &v); !err.Ok() {
			unauthorized(hc.Writer())
			return
		}

		if cfg.dl != nil {
			if jti, ok := v.ClaimString("jti"); ok && cfg.dl.Revoked(r.Context(), jti) {
				unauthorized(hc.Writer())
				return
			}
		}

		hc.SetValue(waypoint.CurrentClaimsKey, v.Claims())
		next()
	}
}

// bearerToken pulls the token out of an "Authorization: Bearer ..." header.
func bearerToken(hm http.Header) string {
	v := hm.Get("Authorization")
	if !strings.HasPrefix(v, "Bearer ") {
		return ""
	}

	return strings.TrimSpace(strings.TrimPrefix(v, "Bearer "))
}

func unauthorized(w http.ResponseWriter) {
	if w == nil {
		return
	}

	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
}
