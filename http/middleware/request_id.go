package middleware

import (
	"github.com/google/uuid"

	"github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/http/router"
)

// RequestID stamps a fresh uuid on the context under waypoint.RequestIDKey.
//
// Contexts that cannot carry values are passed through untouched.
func RequestID() router.Middleware {
	return func(ctx router.Ctx, next router.Next) {
		if vc, ok := ctx.(ValueCtx); ok {
			vc.SetValue(waypoint.RequestIDKey, uuid.NewString())
		}

		next()
	}
}
