// Package web serves the inventory dashboard to browsers as server-rendered
// pages.
//
// The session lives in a signed, encrypted cookie. Each browser gets one
// mounted dashboard, kept in a Registry and unmounted after it sits idle.
package web

import (
	"context"
	"crypto/sha256"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/circuitstock/internal/client/client"
	"github.com/dmitrijs2005/circuitstock/internal/client/config"
	"github.com/dmitrijs2005/circuitstock/internal/client/dashboard"
	"github.com/dmitrijs2005/circuitstock/internal/client/models"
	"github.com/dmitrijs2005/circuitstock/internal/client/services"
	"github.com/dmitrijs2005/circuitstock/internal/common"
	"github.com/dmitrijs2005/circuitstock/internal/logging"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
)

//go:embed templates/*
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Server is the browser front end.
type Server struct {
	address       string
	log           logging.Logger
	client        client.Client
	auth          services.AuthService
	cookies       *sessions.CookieStore
	views         *Registry
	renderer      *renderer
	toastTTL      time.Duration
	dashboardTTL  time.Duration
	sweepInterval time.Duration
	now           func() time.Time
}

// NewServer builds the web front end over c. An empty session secret gets
// a random per-process key, which logs every browser out on restart.
func NewServer(cfg *config.Config, c client.Client, log logging.Logger) (*Server, error) {
	hashKey, blockKey, err := cookieKeys(cfg.SessionSecret)
	if err != nil {
		return nil, err
	}
	if cfg.SessionSecret == "" {
		log.Warn(context.Background(), "no session secret configured, sessions will not survive a restart")
	}

	cookies := sessions.NewCookieStore(hashKey, blockKey)
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   30 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	baseTmpl := template.Must(template.New("").
		Funcs(templateFuncs()).
		ParseFS(templatesFS, "templates/base.html"))

	s := &Server{
		address:       cfg.ListenAddr,
		log:           log.With("module", "web"),
		client:        c,
		auth:          services.NewAuthService(c, log),
		cookies:       cookies,
		renderer:      newRenderer(baseTmpl, templatesFS),
		toastTTL:      cfg.ToastTimeout,
		dashboardTTL:  cfg.DashboardTTL,
		sweepInterval: cfg.SweepInterval,
		now:           time.Now,
	}
	s.views = NewRegistry(s.newDashboard, s.log, s.now)
	return s, nil
}

// cookieKeys derives the cookie signing and encryption keys from secret,
// or generates random ones when secret is empty.
func cookieKeys(secret string) (hashKey, blockKey []byte, err error) {
	if secret == "" {
		if hashKey, err = common.GenerateRandByteArray(32); err != nil {
			return nil, nil, fmt.Errorf("generate cookie key: %w", err)
		}
		if blockKey, err = common.GenerateRandByteArray(32); err != nil {
			return nil, nil, fmt.Errorf("generate cookie key: %w", err)
		}
		return hashKey, blockKey, nil
	}
	sum := sha256.Sum256([]byte("block:" + secret))
	return []byte(secret), sum[:], nil
}

func (s *Server) newDashboard() *dashboard.Dashboard {
	return dashboard.New(s.client, s.log, dashboard.WithClock(s.now), dashboard.WithToastTTL(s.toastTTL))
}

// Handler returns the routed front end.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.recoverPanics, s.logRequests)

	staticSub, _ := fs.Sub(staticFS, "static")
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))

	r.HandleFunc(models.PathRoot, s.handleRoot).Methods(http.MethodGet)
	r.HandleFunc(models.PathLogin, s.handleLoginPage).Methods(http.MethodGet)
	r.HandleFunc(models.PathLogin, s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/logout", s.handleLogout).Methods(http.MethodPost)

	screen := r.PathPrefix("/{screen:admin|technician|dashboard|inventory}").Subrouter()
	screen.Use(s.guardScreen)
	screen.HandleFunc("", s.handleDashboard).Methods(http.MethodGet)
	screen.HandleFunc("/refresh", s.handleRefresh).Methods(http.MethodPost)
	screen.HandleFunc("/retry", s.handleRetry).Methods(http.MethodPost)
	screen.HandleFunc("/banner/dismiss", s.handleDismissBanner).Methods(http.MethodPost)
	screen.HandleFunc("/items/new", s.handleNewItem).Methods(http.MethodGet)
	screen.HandleFunc("/items", s.handleCreateItem).Methods(http.MethodPost)
	screen.HandleFunc("/items/{id}/edit", s.handleEditItem).Methods(http.MethodGet)
	screen.HandleFunc("/items/{id}", s.handleUpdateItem).Methods(http.MethodPost)
	screen.HandleFunc("/items/{id}/delete", s.handleConfirmDelete).Methods(http.MethodGet)
	screen.HandleFunc("/items/{id}/delete", s.handleDelete).Methods(http.MethodPost)

	// Unknown screens fall through to login.
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, models.PathLogin, http.StatusSeeOther)
	})
	return r
}

// Run serves and sweeps idle dashboards until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}

	go s.views.Run(ctx, s.sweepInterval, s.dashboardTTL)

	go func() {
		<-ctx.Done()
		s.log.Info(ctx, "Stopping web dashboard...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.Info(ctx, "Starting web dashboard", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
