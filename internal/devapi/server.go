// Package devapi is an in-memory stand-in for the inventory REST service.
// It serves the six endpoints the client uses, with seeded demo accounts and
// sample components, for local runs and round-trip tests.
package devapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/circuitstock/internal/logging"
	"github.com/gorilla/mux"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// Server serves the stand-in API.
type Server struct {
	address      string
	store        *Store
	logger       logging.Logger
	jwtSecret    []byte
	tokenTTL     time.Duration
	requireToken bool
}

// NewServer builds a server over store. When requireToken is set the
// inventory endpoints reject requests without a valid bearer token.
func NewServer(address string, l logging.Logger, store *Store, secretKey []byte, tokenTTL time.Duration, requireToken bool) *Server {
	return &Server{
		address:      address,
		store:        store,
		logger:       l.With("module", "devapi"),
		jwtSecret:    secretKey,
		tokenTTL:     tokenTTL,
		requireToken: requireToken,
	}
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)

	items := r.PathPrefix("/electronics").Subrouter()
	items.Use(s.accessToken)
	items.HandleFunc("/all-items", s.handleList).Methods(http.MethodGet)
	items.HandleFunc("/add-electronics", s.handleCreate).Methods(http.MethodPost)
	items.HandleFunc("/{id:[^/]+}-update", s.handleUpdate).Methods(http.MethodPut)
	items.HandleFunc("/{id:[^/]+}-delete", s.handleDelete).Methods(http.MethodDelete)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "endpoint not found"})
	})
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping dev API...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting dev API", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug(r.Context(), "request",
			"method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
