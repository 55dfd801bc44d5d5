// Package server exposes the chart over HTTP.
//
// Each browser session gets its own chart instance so searches never leak
// between viewers. Session identity lives in a cookie backed by a
// [session.Store]; the chart objects themselves stay in process memory and
// are rebuilt from the stored query when a replica sees a session for the
// first time.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/greenzone-vis/greenzone/pkg/chart"
	"github.com/greenzone-vis/greenzone/pkg/session"
	"github.com/greenzone-vis/greenzone/pkg/snapshot"
	"github.com/greenzone-vis/greenzone/pkg/table"
)

const sessionCookie = "greenzone_session"

// sweepInterval is how often expired sessions and their charts are evicted.
const sweepInterval = 10 * time.Minute

// Options configures a Server.
type Options struct {
	Table       *table.Table
	Config      chart.Config
	LastUpdated string

	// Sessions defaults to an in-memory store.
	Sessions session.Store

	// Snapshots is optional; without it the snapshot endpoints 404.
	Snapshots snapshot.Store

	// SessionTTL defaults to session.DefaultTTL.
	SessionTTL time.Duration

	Logger *log.Logger
}

// Server serves the chart UI and its JSON/SVG endpoints.
type Server struct {
	opts   Options
	router chi.Router
	logger *log.Logger

	mu     sync.Mutex
	charts map[string]*sessionChart
}

// sessionChart pairs a session's chart with the lock serializing access to
// it. Chart is not safe for concurrent use, and one session's SVG reload can
// overlap its own search request (or another tab's).
type sessionChart struct {
	mu sync.Mutex
	ch *chart.Chart
}

// New validates the chart configuration once up front and builds the router.
func New(opts Options) (*Server, error) {
	if opts.Sessions == nil {
		opts.Sessions = session.NewMemoryStore()
	}
	if opts.SessionTTL == 0 {
		opts.SessionTTL = session.DefaultTTL
	}
	if opts.Logger == nil {
		opts.Logger = log.New(nil)
	}

	// Fail fast on bad config or data; every session chart builds from the
	// same inputs.
	if _, err := chart.New(opts.Table, opts.Config); err != nil {
		return nil, err
	}

	s := &Server{
		opts:   opts,
		logger: opts.Logger,
		charts: make(map[string]*sessionChart),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleIndex)
	r.Get("/chart.svg", s.handleChartSVG)
	r.Post("/search", s.handleSearch)
	r.Post("/reset", s.handleReset)
	r.Get("/completions.json", s.handleCompletions)
	r.Get("/snapshots.json", s.handleSnapshots)
	r.Get("/healthz", s.handleHealth)

	s.router = r
	return s, nil
}

// Handler returns the HTTP handler for mounting or serving.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	go s.sweep(ctx)

	s.logger.Info("server listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// sweep periodically evicts expired sessions and their charts until ctx is
// cancelled.
func (s *Server) sweep(ctx context.Context) {
	t := time.NewTicker(sweepInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.evictExpired(ctx)
		}
	}
}

// evictExpired drops registry charts whose session is gone or expired. The
// session store enforces the TTL; without this the registry grows by one
// chart for every cookie-less visitor and never shrinks.
func (s *Server) evictExpired(ctx context.Context) {
	if err := s.opts.Sessions.Cleanup(ctx); err != nil {
		s.logger.Warn("session cleanup", "err", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.charts {
		sess, err := s.opts.Sessions.Get(ctx, id)
		if sess == nil && (err == nil || err == session.ErrExpired) {
			delete(s.charts, id)
		}
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

// chartFor resolves the request's session and its chart, creating both as
// needed. A chart missing from this replica's registry is rebuilt from the
// session's stored query. Callers must hold the returned sessionChart's
// mutex for the whole time they touch the chart.
func (s *Server) chartFor(w http.ResponseWriter, r *http.Request) (*session.Session, *sessionChart, error) {
	ctx := r.Context()

	var sess *session.Session
	if c, err := r.Cookie(sessionCookie); err == nil {
		sess, err = s.opts.Sessions.Get(ctx, c.Value)
		if err != nil && err != session.ErrExpired {
			return nil, nil, err
		}
	}
	if sess == nil {
		sess = session.New(s.opts.SessionTTL)
	} else {
		sess.Touch(s.opts.SessionTTL)
	}
	if err := s.opts.Sessions.Set(ctx, sess); err != nil {
		return nil, nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.ID,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.charts[sess.ID]
	if !ok {
		ch, err := chart.New(s.opts.Table, s.opts.Config)
		if err != nil {
			return nil, nil, err
		}
		if sess.Query != "" {
			ch.Search(sess.Query)
		}
		sc = &sessionChart{ch: ch}
		s.charts[sess.ID] = sc
	}
	return sess, sc, nil
}
