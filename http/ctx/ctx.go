package ctx

import (
	"net/http"

	"github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/http/router"
)

var _ router.Ctx = (*RequestCtx)(nil)

// A RequestCtx carries the state of one request through a middleware chain.
//
// A RequestCtx is not safe for concurrent use; the chain runs on a single
// goroutine.
type RequestCtx struct {
	w      http.ResponseWriter
	r      *http.Request
	params map[string]string
	values map[waypoint.Key]any
}

// New constructs a bare [*RequestCtx], e.g. for driving the router outside
// an HTTP server.
func New() *RequestCtx {
	return &RequestCtx{
		params: make(map[string]string),
		values: make(map[waypoint.Key]any),
	}
}

// NewRequest constructs a [*RequestCtx] wrapping the request and response
// of an HTTP exchange.
func NewRequest(w http.ResponseWriter, r *http.Request) *RequestCtx {
	c := New()
	c.w = w
	c.r = r

	return c
}

// SetParam records a path parameter captured by the router.
func (c *RequestCtx) SetParam(name, value string) {
	c.params[name] = value
}

// Param returns the captured path parameter by name.
func (c *RequestCtx) Param(name string) (string, bool) {
	v, ok := c.params[name]
	return v, ok
}

// Params returns all captured path parameters.
func (c *RequestCtx) Params() map[string]string {
	return c.params
}

// ResetParams drops all captured path parameters,
// e.g. after a failed match left partial captures behind.
func (c *RequestCtx) ResetParams() {
	for k := range c.params {
		delete(c.params, k)
	}
}

// SetValue stashes a request-scoped value under the key.
func (c *RequestCtx) SetValue(key waypoint.Key, value any) {
	c.values[key] = value
}

// Value returns the request-scoped value stashed under the key or nil.
func (c *RequestCtx) Value(key waypoint.Key) any {
	return c.values[key]
}

// Writer returns the underlying http.ResponseWriter or nil when the
// RequestCtx is not driven by an HTTP server.
func (c *RequestCtx) Writer() http.ResponseWriter { return c.w }

// Request returns the underlying *http.Request or nil when the RequestCtx
// is not driven by an HTTP server.
func (c *RequestCtx) Request() *http.Request { return c.r }
