package web

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/circuitstock/internal/client/client"
	"github.com/dmitrijs2005/circuitstock/internal/client/dashboard"
	"github.com/dmitrijs2005/circuitstock/internal/client/guard"
	"github.com/dmitrijs2005/circuitstock/internal/client/models"
	"github.com/gorilla/mux"
)

type ctxKey string

const screenKey ctxKey = "screen"

// screen is what guardScreen hands to the screen handlers.
type screen struct {
	path    string
	session models.Session
	store   *cookieStore
	viewID  string
	dash    *dashboard.Dashboard
}

func screenFrom(r *http.Request) *screen {
	sc, _ := r.Context().Value(screenKey).(*screen)
	return sc
}

func (s *Server) store(w http.ResponseWriter, r *http.Request) *cookieStore {
	return newCookieStore(s.cookies, w, r)
}

// guardScreen evaluates the route guard for the requested screen and, when
// admitted, mounts the browser's dashboard. A freshly mounted dashboard
// loads before the handler runs.
func (s *Server) guardScreen(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		store := s.store(w, r)
		sess, _ := store.Get(r.Context())
		path := "/" + mux.Vars(r)["screen"]

		if d := guard.Navigate(sess, path); !d.Allowed {
			http.Redirect(w, r, d.Redirect, http.StatusSeeOther)
			return
		}

		viewID, err := store.viewID()
		if err != nil {
			s.log.Error(r.Context(), "save view id", "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		ctx := client.WithToken(r.Context(), sess.Token)
		dash, created := s.views.Dashboard(viewID)
		if created {
			// Failure leaves the dashboard in its error state with a retry.
			_ = dash.Load(ctx)
		}

		ctx = context.WithValue(ctx, screenKey, &screen{
			path:    path,
			session: sess,
			store:   store,
			viewID:  viewID,
			dash:    dash,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				s.log.Error(r.Context(), "panic recovered", "error", err, "path", r.URL.Path)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Debug(r.Context(), "request",
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
