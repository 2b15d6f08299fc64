/*
The middleware package carries a set of basic middlewares for the waypoint router.

The available middlewares are:
- Authorize
- InjectIPAddress
- LogRequest
- RateLimit
- RequestID

Due to the amount of configuration required, middleware does not provide a default
middleware chain. Instead, the following can be copy-pasted:

	vs := middleware.NewVisitors()
	r := router.New()
	r.Use(
		middleware.RateLimit(vs),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(log),
		middleware.Authorize(engine, middleware.WithDenylist(dl)),
	)
*/
package middleware
