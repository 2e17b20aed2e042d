package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"cloudeng.io/logging/ctxlog"

	"github.com/klabast/wb-services/feiertage/pkg/feiertage"
)

// ShutdownGrace is how long in-flight requests may run after shutdown starts.
const ShutdownGrace = 10 * time.Second

// Server answers holiday queries over HTTP from a shared query cache.
type Server struct {
	cfg    Config
	region feiertage.Region
	cache  *feiertage.Cache
	auth   *Auth
	now    func() time.Time
}

// NewServer validates cfg and returns a server using cache. auth may be nil,
// which disables the admin endpoints.
func NewServer(cfg Config, cache *feiertage.Cache, auth *Auth) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	region, err := cfg.DefaultRegionValue()
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg:    cfg,
		region: region,
		cache:  cache,
		auth:   auth,
		now:    time.Now,
	}, nil
}

// Cache returns the server's query cache.
func (s *Server) Cache() *feiertage.Cache { return s.cache }

func (s *Server) today() time.Time {
	return s.now().In(s.cache.Location())
}

// Routes returns the HTTP handler with all endpoints registered.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/config", s.GetConfig)
	mux.HandleFunc("/api/holidays", s.HandleHolidays)
	mux.HandleFunc("/api/check", s.HandleCheck)
	mux.HandleFunc("/api/download", s.HandleDownload)
	mux.HandleFunc("/api/subscribe/{region}", s.HandleSubscribe)

	// Admin routes (protected with Basic Auth)
	mux.HandleFunc("/api/cache", s.auth.RequireAuth(s.HandleCacheStatus))
	mux.HandleFunc("/api/cache/purge", s.auth.RequireAuth(s.HandleCachePurge))
	return mux
}

// WithRequestLogger places a request scoped logger on each request context.
func WithRequestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rl := logger.With("method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctxlog.WithLogger(r.Context(), rl)))
		rl.Debug("request", "remote", r.RemoteAddr, "duration", time.Since(start))
	})
}

// ListenAndServe serves until ctx is canceled and then shuts down within
// ShutdownGrace.
func (s *Server) ListenAndServe(ctx context.Context) error {
	logger := ctxlog.Logger(ctx)
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           WithRequestLogger(logger, s.Routes()),
		ReadHeaderTimeout: time.Minute,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	serveErr := make(chan error, 1)
	go func() {
		err := srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		serveErr <- err
	}()
	logger.Info("starting feiertage service", "addr", ln.Addr().String(), "region", s.region.Code(), "timezone", s.cache.Location().String(), "admin", s.auth.Enabled())

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server %v: %w", s.cfg.Addr, err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("server being shut down", "addr", s.cfg.Addr, "grace", ShutdownGrace)
	}

	// The serving context is already canceled.
	sctx, cancel := context.WithTimeout(context.Background(), ShutdownGrace)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("server %v: shutdown failed: %w", s.cfg.Addr, err)
	}
	return <-serveErr
}
