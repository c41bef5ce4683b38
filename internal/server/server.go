// Package server is the single-page web front end. Each browser session,
// identified by a cookie, owns its own inventory; nothing outlives the
// process.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Makepad-fr/stock/internal/inventory"
	"github.com/Makepad-fr/stock/internal/log"
	"github.com/Makepad-fr/stock/internal/session"
	"github.com/gorilla/mux"
)

const cookieName = "stock_session"

// Options configure a Server.
type Options struct {
	Addr   string
	Token  string // empty disables the access check
	Debug  bool
	Logger log.Logger
}

type Server struct {
	mgr    *session.Manager
	opt    Options
	logger log.Logger
	router *mux.Router
}

func New(mgr *session.Manager, opt Options) *Server {
	if opt.Logger == nil {
		opt.Logger = log.Discard
	}
	s := &Server{mgr: mgr, opt: opt, logger: opt.Logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)
	if s.opt.Token != "" {
		r.Use(requireToken(s.opt.Token))
	}

	r.HandleFunc("/", s.handlePage).Methods(http.MethodGet)
	r.HandleFunc("/add", s.handleFormAdd).Methods(http.MethodPost)
	r.HandleFunc("/remove", s.handleFormRemove).Methods(http.MethodPost)
	r.HandleFunc("/remove-at", s.handleFormRemoveAt).Methods(http.MethodPost)
	r.HandleFunc("/end", s.handleFormEnd).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/items", s.handleListItems).Methods(http.MethodGet)
	api.HandleFunc("/items", s.handleAddItem).Methods(http.MethodPost)
	api.HandleFunc("/items", s.handleRemoveByName).Methods(http.MethodDelete)
	api.HandleFunc("/items/{index}", s.handleRemoveAt).Methods(http.MethodDelete)
	api.HandleFunc("/summary", s.handleSummary).Methods(http.MethodGet)
	api.HandleFunc("/session", s.handleEndSession).Methods(http.MethodDelete)
	return r
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Serve listens on the configured address until ctx is cancelled, sweeping
// idle sessions in the background.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opt.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return s.serve(ctx, ln)
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	hs := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go s.sweep(ctx)

	errc := make(chan error, 1)
	go func() { errc <- hs.Serve(ln) }()
	s.logger.Log("listening", ln.Addr().String())

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Log("stopped")
	return nil
}

func (s *Server) sweep(ctx context.Context) {
	every := s.mgr.TTL() / 2
	if every < time.Second {
		every = time.Second
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.mgr.Sweep(); n > 0 {
				s.logger.Log("swept", n, "idle sessions")
			}
		}
	}
}

// sessionFor returns the caller's session, starting one if the cookie is
// missing, unknown or expired.
func (s *Server) sessionFor(w http.ResponseWriter, r *http.Request) *session.Session {
	if c, err := r.Cookie(cookieName); err == nil {
		if sess, err := s.mgr.Get(c.Value); err == nil {
			return sess
		}
	}
	sess := s.mgr.Start()
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

func (s *Server) endSession(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(cookieName); err == nil {
		_ = s.mgr.End(c.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// apply runs one mutation against the caller's session.
func (s *Server) apply(sess *session.Session, fn func(inv *inventory.Inventory) error) error {
	return sess.Do(func(inv *inventory.Inventory) error {
		if err := fn(inv); err != nil {
			return err
		}
		if s.opt.Debug {
			log.Dump(s.logger, "session "+sess.ID, inv.Summarize())
		}
		return nil
	})
}

// statusFor maps an operation error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, inventory.ErrEmptyName):
		return http.StatusBadRequest
	case errors.Is(err, inventory.ErrNotFound), errors.Is(err, inventory.ErrIndexOutOfRange):
		return http.StatusNotFound
	case errors.Is(err, session.ErrUnknown):
		return http.StatusGone
	}
	return http.StatusInternalServerError
}

// message is the user-visible text for an operation error.
func message(err error) string {
	switch {
	case errors.Is(err, inventory.ErrEmptyName):
		return "Item name cannot be empty."
	case errors.Is(err, session.ErrUnknown):
		return "Your session has ended."
	}
	return err.Error()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Log(r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Microsecond))
	})
}
