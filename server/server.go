package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	_ "github.com/joho/godotenv/autoload"

	"github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/http/ctx"
	"github.com/xy-planning-network/waypoint/http/router"
	"github.com/xy-planning-network/waypoint/jwt"
	"github.com/xy-planning-network/waypoint/jwt/denylist"
	"github.com/xy-planning-network/waypoint/logger"
)

// A Server manages and exposes all components of a waypoint app to one another.
type Server struct {
	addr     string
	cancel   context.CancelFunc
	dl       denylist.Denylist
	engine   *jwt.Engine
	env      waypoint.Environment
	l        logger.Logger
	notFound router.Handler
	r        *router.Router
	srv      *http.Server
}

// New constructs a Server from the provided options.
// Default options are applied first followed by the options passed into New.
// Options supplied to New overwrite default configurations.
func New(opts ...ServerOption) (*Server, error) {
	s := new(Server)
	followups := make([]OptFollowup, 0)

	// NOTE: some options require data from other options and return an
	// OptFollowup to be called after the initial set of options are run.
	for _, opt := range append(defaultOpts(), opts...) {
		fn, err := opt(s)
		if err != nil {
			return s, fmt.Errorf("%w: %s", waypoint.ErrBadConfig, err)
		}

		if fn != nil {
			followups = append(followups, fn)
		}
	}

	for _, fn := range followups {
		if err := fn(); err != nil {
			return nil, fmt.Errorf("%w: %s", waypoint.ErrBadConfig, err)
		}
	}

	return s, nil
}

func (s *Server) Denylist() denylist.Denylist { return s.dl }
func (s *Server) Env() waypoint.Environment   { return s.env }
func (s *Server) JWT() *jwt.Engine            { return s.engine }
func (s *Server) Logger() logger.Logger       { return s.l }
func (s *Server) Router() *router.Router      { return s.r }

// ServeHTTP matches the request against the router and runs the matched
// route's middleware chain, answering with the not-found handler when no
// route matches.
//
// ServeHTTP implements [http.Handler].
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	method := router.MethodString(r.Method)
	c := ctx.NewRequest(w, r)

	route := s.r.Match(method, r.URL.Path, c)
	if route == nil {
		c.ResetParams()
		s.notFound(c)
		return
	}

	s.r.Execute(route, c)
}

// Handler wraps the Server in the outermost stack every request passes
// through before the router: proxy header promotion and response
// compression.
func (s *Server) Handler() http.Handler {
	return handlers.CompressHandler(handlers.ProxyHeaders(s))
}

// Serve begins the web server.
//
// These, and [*Server.Shutdown], stop Serve:
//
// - os.Interrupt
// - os.Kill
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
func (s *Server) Serve() error {
	var serveCtx context.Context
	serveCtx, s.cancel = context.WithCancel(context.Background())

	ch := make(chan os.Signal, 1)
	signal.Notify(
		ch,
		os.Interrupt,
		os.Kill,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)

	go func() {
		sig := <-ch
		s.l.Info(fmt.Sprint("received shutdown signal: ", sig), nil)
		s.cancel()
	}()

	s.srv = &http.Server{Addr: s.addr, Handler: s.Handler()}

	go func() {
		s.l.Info(fmt.Sprintf("running web server at %s", s.srv.Addr), nil)
		if err := s.srv.ListenAndServe(); err != http.ErrServerClosed {
			err = fmt.Errorf("could not listen: %w", err)
			s.l.Error(err.Error(), nil)
		}
	}()

	<-serveCtx.Done()
	return s.shutdown()
}

// Shutdown stops a Server begun with [*Server.Serve].
func (s *Server) Shutdown() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *Server) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.l.Info("shutting down web server", nil)
	err := s.srv.Shutdown(shutdownCtx)
	if err == http.ErrServerClosed {
		s.l.Info("web server shutdown successfully", nil)
		return nil
	}

	if err != nil {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	s.l.Info("web server shutdown successfully", nil)
	return nil
}
