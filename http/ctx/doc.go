/*
Package ctx carries per-request state between the router, middlewares and
handlers.

A [*RequestCtx] satisfies the router's Ctx interface, collecting the path
parameters captured during matching. Middlewares stash request-scoped
values under a [waypoint.Key] for later stages to read, e.g. the verified
JWT claims or a request ID.
*/
package ctx
