package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/xy-planning-network/waypoint/http/router"
)

// A Visitor tracks a rate limiter and last seen time.
type Visitor struct {
	LastSeen time.Time
	Limiter  *rate.Limiter
}

// A Visitors maps a Visitor to an IP address.
type Visitors struct {
	val map[string]Visitor
	sync.Mutex
}

func NewVisitors() *Visitors { return &Visitors{val: make(map[string]Visitor)} }

// Fetch retrieves the Visitor for the given ip creating a new Visitor if not seen.
//
// Newly created visitors are limited to 5 requests every second with bursts of up to 20.
func (vs *Visitors) Fetch(ip string) Visitor {
	vs.Lock()
	defer vs.Unlock()

	v, ok := vs.val[ip]
	if !ok {
		v = Visitor{Limiter: rate.NewLimiter(5, 20)}
	}

	v.LastSeen = time.Now().UTC()
	vs.val[ip] = v
	return v
}

// cleanup deletes a Visitor from Visitors if they have not been seen in over an hour.
func (vs *Visitors) cleanup() {
	vs.Lock()
	defer vs.Unlock()
	for ip, v := range vs.val {
		if time.Since(v.LastSeen) > 60*time.Minute {
			delete(vs.val, ip)
		}
	}
}

// RateLimit throttles requests per originating IP address using the
// enclosed Visitors map, answering 429 without advancing the chain once a
// visitor exceeds its limiter.
//
// If visitors is nil, Noop returns and this middleware does nothing.
func RateLimit(visitors *Visitors) router.Middleware {
	if visitors == nil {
		return Noop()
	}

	return func(ctx router.Ctx, next router.Next) {
		hc, ok := ctx.(HTTPCtx)
		if !ok || hc.Request() == nil {
			next()
			return
		}

		if !visitors.Fetch(ClientIP(hc.Request().Header)).Limiter.Allow() {
			if w := hc.Writer(); w != nil {
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			}
			return
		}

		visitors.cleanup()
		next()
	}
}
