package middleware

import (
	"strings"

	"github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/http/router"
	"github.com/xy-planning-network/waypoint/logger"
)

// LogRequest logs the request's method, requested URL, and originating IP
// address using the enclosed implementation of logger.Logger.
//
// LogRequest scrubs the values for the following keys:
// - password
//
// If logger.Logger is nil, Noop returns and this middleware does nothing.
func LogRequest(ls logger.Logger) router.Middleware {
	if ls == nil {
		return Noop()
	}

	return func(ctx router.Ctx, next router.Next) {
		hc, ok := ctx.(HTTPCtx)
		if !ok || hc.Request() == nil {
			next()
			return
		}

		r := hc.Request()
		uri := r.URL.Path
		q := r.URL.Query()
		if val := q.Get("password"); val != "" {
			q.Set("password", "xxxxxxx")
		}

		if query := q.Encode(); query != "" {
			uri += "?" + query
		}

		strs := []string{r.Method, uri}
		if val, ok := hc.Value(waypoint.IpAddrKey).(string); ok {
			strs = append([]string{val}, strs...)
		}

		ls.Info(strings.Join(strs, " "), nil)
		next()
	}
}
