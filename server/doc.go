/*
Package server boots a waypoint app: it binds the trie router to net/http,
wires the middleware chain around matched routes, and owns process-level
concerns such as environment configuration and graceful shutdown.

A minimal app:

	srv, err := server.New(
		server.WithRouter(r),
		server.WithJWT(engine),
		server.WithKeyPair("app", jwt.ES256),
		server.WithDenylist(denylist.NewRedis(&redis.Options{Addr: "localhost:6379"})),
	)
	if err != nil {
		log.Fatal(err)
	}

	log.Fatal(srv.Serve())
*/
package server
