package router

// A Ctx receives the parameters captured while matching a request path.
// The concrete context lives in the ctx package; Match only needs this
// narrow surface.
type Ctx interface {
	SetParam(name, value string)
}

// A Handler terminates a middleware chain for a matched route.
type Handler func(ctx Ctx)

// A Next advances a middleware chain by one stage.
// A [Middleware] that never calls it short-circuits the chain.
type Next func()

// A Middleware observes the request context and decides whether the chain
// continues.
type Middleware func(ctx Ctx, next Next)

// A RouteInfo is a registered endpoint: the verbatim pattern it was
// registered under, its method, its handler, and any middlewares scoped
// to just this route.
type RouteInfo struct {
	Pattern     string
	Method      Method
	Handler     Handler
	Middlewares []Middleware
}

// Use appends middlewares to the RouteInfo, running after the globals
// in the order added.
func (ri *RouteInfo) Use(middlewares ...Middleware) {
	ri.Middlewares = append(ri.Middlewares, middlewares...)
}

// Router owns a trie of path segments and an ordered stack of global
// middlewares. The zero value is not usable; construct with [New].
type Router struct {
	root          *trieNode
	everyReqStack []Middleware
}

// New constructs an empty [*Router].
func New() *Router {
	return &Router{root: newTrieNode()}
}

// Handle registers the handler for the method and pattern, replacing any
// prior registration for the same (pattern, method) pair.
//
// The returned [*RouteInfo] stays owned by the Router; callers may attach
// per-route middlewares to it with [RouteInfo.Use].
func (r *Router) Handle(method Method, pattern string, handler Handler) *RouteInfo {
	current := r.root
	for _, segment := range splitPath(pattern) {
		current = current.child(segment)
	}

	route := &RouteInfo{Pattern: pattern, Method: method, Handler: handler}
	current.handlers[method] = route

	return route
}

// Use appends middlewares to the stack the Router applies to every route.
func (r *Router) Use(middlewares ...Middleware) {
	r.everyReqStack = append(r.everyReqStack, middlewares...)
}

// Match walks the trie with the normalized path segments and returns the
// registered route, or nil when no route matches.
//
// At each node an exact literal child is taken unconditionally. Otherwise
// parameters are tried in ascending type order and the first validator
// accepting the segment wins, recording name → segment on ctx. Captures
// recorded before an ultimately failing traversal are left on ctx.
func (r *Router) Match(method Method, path string, ctx Ctx) *RouteInfo {
	current := r.root

	for _, segment := range splitPath(path) {
		if next, ok := current.literals[segment]; ok {
			current = next
			continue
		}

		matched := false
		for _, tp := range current.params {
			if tp.ptype.validate(segment) {
				ctx.SetParam(tp.name, segment)
				current = tp.next
				matched = true
				break
			}
		}

		if !matched {
			return nil
		}
	}

	return current.handler(method)
}

// Execute runs the route's middleware chain: every global middleware in
// registration order, then the route's own middlewares in registration
// order, then the handler. Each stage runs the rest of the chain only by
// calling its [Next].
func (r *Router) Execute(route *RouteInfo, ctx Ctx) {
	chain := make([]Middleware, 0, len(r.everyReqStack)+len(route.Middlewares))
	chain = append(chain, r.everyReqStack...)
	chain = append(chain, route.Middlewares...)

	var advance func(i int)
	advance = func(i int) {
		if i == len(chain) {
			route.Handler(ctx)
			return
		}

		chain[i](ctx, func() { advance(i + 1) })
	}

	advance(0)
}
