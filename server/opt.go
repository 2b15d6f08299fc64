package server

import (
	"net/http"
	"os"

	"github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/http/ctx"
	"github.com/xy-planning-network/waypoint/http/router"
	"github.com/xy-planning-network/waypoint/jwt"
	"github.com/xy-planning-network/waypoint/jwt/denylist"
	"github.com/xy-planning-network/waypoint/logger"
)

// A ServerOption configures a *Server either (1) directly, immediately upon
// being called or (2) in the OptFollowup it returns.
// Some ServerOptions require data in others and thus an OptFollowup can be
// returned in order to be called at a later time when that data is available.
//
// WithLogger is an example of the first.
// An unexported field on the passed in *Server is updated with the enclosed value.
//
// WithKeyPair is an example of the second.
// It needs the engine WithJWT exposes and so only acts
// when the closure it returns is called.
type ServerOption func(s *Server) (OptFollowup, error)
type OptFollowup func() error

func defaultOpts() []ServerOption {
	return []ServerOption{
		WithAddr(":8080"),
		WithEnv(""),
		WithLogger(logger.New()),
		WithRouter(router.New()),
		WithNotFound(nil),
	}
}

// WithAddr sets the address the web server listens on.
func WithAddr(addr string) ServerOption {
	return func(s *Server) (OptFollowup, error) {
		s.addr = addr
		return nil, nil
	}
}

// WithEnv casts the provided string into a valid waypoint.Environment,
// or, reads from the ENVIRONMENT environment variable a valid Environment.
//
// If both fail, the default Environment is set to Development.
func WithEnv(envVar string) ServerOption {
	e := waypoint.Environment(envVar)
	if err := e.Valid(); err == nil {
		return func(s *Server) (OptFollowup, error) {
			s.env = e
			return nil, nil
		}
	}

	return func(s *Server) (OptFollowup, error) {
		s.env = envVarOrEnv("ENVIRONMENT", waypoint.Development)
		return nil, nil
	}
}

// WithDenylist exposes the provided denylist.Denylist to the waypoint app,
// for passing along to middleware.Authorize.
func WithDenylist(dl denylist.Denylist) ServerOption {
	return func(s *Server) (OptFollowup, error) {
		s.dl = dl
		return nil, nil
	}
}

// WithJWT exposes the provided *jwt.Engine to the waypoint app.
func WithJWT(engine *jwt.Engine) ServerOption {
	return func(s *Server) (OptFollowup, error) {
		s.engine = engine
		return nil, nil
	}
}

// WithKeyPair constructs a followup option that, when called, makes sure
// the engine configured by WithJWT holds a signing keypair under kid,
// persisted next to the running binary under the default PEM file names.
func WithKeyPair(kid string, alg jwt.Alg) ServerOption {
	return func(s *Server) (OptFollowup, error) {
		return func() error {
			if s.engine == nil {
				return waypoint.ErrMissingData
			}

			err := s.engine.EnsureKeyPairInBinaryDir(
				kid,
				alg,
				jwt.DefaultPrivateKeyFile,
				jwt.DefaultPublicKeyFile,
				jwt.UseSig,
				"",
			)
			if !err.Ok() {
				return err
			}

			return nil
		}, nil
	}
}

// WithLogger exposes the provided logger.Logger to the waypoint app.
func WithLogger(l logger.Logger) ServerOption {
	return func(s *Server) (OptFollowup, error) {
		s.l = l
		return nil, nil
	}
}

// WithNotFound sets the handler answering requests no route matches.
//
// If handler is nil, a plain 404 is written instead.
func WithNotFound(handler router.Handler) ServerOption {
	if handler == nil {
		handler = func(c router.Ctx) {
			if rc, ok := c.(*ctx.RequestCtx); ok && rc.Writer() != nil {
				http.NotFound(rc.Writer(), rc.Request())
			}
		}
	}

	return func(s *Server) (OptFollowup, error) {
		s.notFound = handler
		return nil, nil
	}
}

// WithRouter exposes the provided *router.Router to the waypoint app.
func WithRouter(r *router.Router) ServerOption {
	return func(s *Server) (OptFollowup, error) {
		s.r = r
		return nil, nil
	}
}

// envVarOrEnv reads the environment variable under key,
// falling back to def when it does not name a valid Environment.
func envVarOrEnv(key string, def waypoint.Environment) waypoint.Environment {
	e := waypoint.Environment(os.Getenv(key))
	if err := e.Valid(); err != nil {
		return def
	}

	return e
}
