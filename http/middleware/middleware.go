package middleware

import (
	"net/http"

	"github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/http/router"
)

// A ValueCtx can stash request-scoped values alongside path parameters.
// The ctx package's RequestCtx satisfies it.
type ValueCtx interface {
	router.Ctx
	SetValue(key waypoint.Key, value any)
	Value(key waypoint.Key) any
}

// An HTTPCtx additionally exposes the HTTP exchange driving the chain.
// Writer and Request may return nil when the chain runs outside a server.
type HTTPCtx interface {
	ValueCtx
	Writer() http.ResponseWriter
	Request() *http.Request
}

// Noop passes the request straight through.
//
// Constructors return it when handed a nil or zero dependency so callers
// can register their chain unconditionally.
func Noop() router.Middleware {
	return func(ctx router.Ctx, next router.Next) { next() }
}
