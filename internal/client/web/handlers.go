package web

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/circuitstock/internal/client/client"
	"github.com/dmitrijs2005/circuitstock/internal/client/dashboard"
	"github.com/dmitrijs2005/circuitstock/internal/client/editor"
	"github.com/dmitrijs2005/circuitstock/internal/client/guard"
	"github.com/dmitrijs2005/circuitstock/internal/client/models"
	"github.com/dmitrijs2005/circuitstock/internal/client/nav"
	"github.com/dmitrijs2005/circuitstock/internal/client/services"
	"github.com/gorilla/mux"
)

// Toast lifetimes on the auth screen.
const (
	authSuccessToast = 2 * time.Second
	authErrorToast   = 4 * time.Second
)

// Auth form modes.
const (
	modeLogin    = "login"
	modeRegister = "register"
)

type loginData struct {
	Mode string
	Name string
}

type dashboardData struct {
	dashboard.Snapshot
	Base      string
	Heading   string
	PhaseName string
}

type editorData struct {
	Base   string
	Action string
	Title  string
	Submit string
	Draft  editor.Draft
	Errors editor.FieldErrors
}

type confirmData struct {
	Base   string
	Prompt string
	Item   models.Item
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.store(w, r).Get(r.Context())
	http.Redirect(w, r, guard.Dispatch(sess), http.StatusSeeOther)
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	mode := modeLogin
	if r.URL.Query().Get("mode") == modeRegister {
		mode = modeRegister
	}
	data := loginData{Mode: mode}
	if mode == modeLogin {
		data.Name = services.DemoUserName
	}
	s.renderAuth(w, r, http.StatusOK, data, nil)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	name, password := r.PostFormValue("name"), r.PostFormValue("password")
	store := s.store(w, r)

	out, err := s.auth.Login(r.Context(), store, name, password)
	if err != nil {
		toast := ToastView{Kind: models.ToastError, Message: services.AuthMessage(client.OpLogin, err), Millis: authErrorToast.Milliseconds()}
		s.renderAuth(w, r, authStatus(err), loginData{Mode: modeLogin, Name: name}, &toast)
		return
	}
	s.flash(store, r, models.ToastSuccess, out.Message)
	http.Redirect(w, r, out.Redirect, http.StatusSeeOther)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	name := r.PostFormValue("name")
	store := s.store(w, r)

	out, err := s.auth.Register(r.Context(), store, name, r.PostFormValue("password"), r.PostFormValue("confirm"))
	if err != nil {
		toast := ToastView{Kind: models.ToastError, Message: services.AuthMessage(client.OpRegister, err), Millis: authErrorToast.Milliseconds()}
		s.renderAuth(w, r, authStatus(err), loginData{Mode: modeRegister, Name: name}, &toast)
		return
	}
	s.flash(store, r, models.ToastSuccess, out.Message)
	http.Redirect(w, r, out.Redirect, http.StatusSeeOther)
}

func authStatus(err error) int {
	switch {
	case errors.Is(err, client.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, client.ErrAuth):
		return http.StatusUnauthorized
	default:
		return http.StatusBadGateway
	}
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	store := s.store(w, r)
	if id, err := store.viewID(); err == nil {
		s.views.Drop(id)
	}
	http.Redirect(w, r, nav.Logout(r.Context(), store, s.log), http.StatusSeeOther)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sc := screenFrom(r)
	snap := sc.dash.Snapshot(r.URL.Query().Get("q"))

	var toasts []ToastView
	if snap.Toast != nil {
		toasts = append(toasts, s.toastView(*snap.Toast))
	}
	s.renderScreen(w, r, sc, http.StatusOK, "dashboard.html", "Electronics Inventory", dashboardData{
		Snapshot:  snap,
		Base:      sc.path,
		Heading:   heading(sc.session.Role),
		PhaseName: snap.Phase.String(),
	}, toasts)
}

func heading(role models.Role) string {
	switch role {
	case models.RoleAdmin:
		return "Admin Dashboard"
	case models.RoleTechnician:
		return "Technician Dashboard"
	default:
		return "Electronics Inventory"
	}
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	sc := screenFrom(r)
	if err := sc.dash.Refresh(r.Context()); errors.Is(err, dashboard.ErrRefreshInFlight) {
		s.log.Debug(r.Context(), "refresh already in flight", "view", sc.viewID)
	}
	s.back(w, r, sc)
}

func (s *Server) handleRetry(w http.ResponseWriter, r *http.Request) {
	sc := screenFrom(r)
	_ = sc.dash.Load(r.Context())
	s.back(w, r, sc)
}

func (s *Server) handleDismissBanner(w http.ResponseWriter, r *http.Request) {
	sc := screenFrom(r)
	sc.dash.DismissBanner()
	s.back(w, r, sc)
}

func (s *Server) handleNewItem(w http.ResponseWriter, r *http.Request) {
	sc := screenFrom(r)
	e := editor.NewCreate(s.client, sc.dash, s.log, editor.WithClock(s.now), editor.WithToastTTL(s.toastTTL))
	s.views.OpenEditor(sc.viewID, e)
	s.renderEditor(w, r, sc, http.StatusOK, e)
}

func (s *Server) handleEditItem(w http.ResponseWriter, r *http.Request) {
	sc := screenFrom(r)
	it, ok := sc.dash.Item(mux.Vars(r)["id"])
	if !ok {
		sc.dash.Notify(models.ToastError, "Component not found.")
		s.back(w, r, sc)
		return
	}
	e := editor.NewEdit(s.client, sc.dash, it, s.log, editor.WithClock(s.now), editor.WithToastTTL(s.toastTTL))
	s.views.OpenEditor(sc.viewID, e)
	s.renderEditor(w, r, sc, http.StatusOK, e)
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	sc := screenFrom(r)
	e := s.views.Editor(sc.viewID)
	if e == nil || e.Editing() {
		e = editor.NewCreate(s.client, sc.dash, s.log, editor.WithClock(s.now), editor.WithToastTTL(s.toastTTL))
		s.views.OpenEditor(sc.viewID, e)
	}
	s.submit(w, r, sc, e)
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	sc := screenFrom(r)
	id := mux.Vars(r)["id"]
	e := s.views.Editor(sc.viewID)
	if e == nil || e.ID() != id {
		it, ok := sc.dash.Item(id)
		if !ok {
			sc.dash.Notify(models.ToastError, "Component not found.")
			s.back(w, r, sc)
			return
		}
		e = editor.NewEdit(s.client, sc.dash, it, s.log, editor.WithClock(s.now), editor.WithToastTTL(s.toastTTL))
		s.views.OpenEditor(sc.viewID, e)
	}
	s.submit(w, r, sc, e)
}

// submit applies the posted form to e and sends it. Success closes the
// editor and returns to the dashboard, which carries the success toast.
func (s *Server) submit(w http.ResponseWriter, r *http.Request, sc *screen, e *editor.Editor) {
	e.SetDraft(editor.Draft{
		Name:           r.PostFormValue(editor.FieldName),
		Category:       r.PostFormValue(editor.FieldCategory),
		Stock:          r.PostFormValue(editor.FieldStock),
		MinStock:       r.PostFormValue(editor.FieldMinStock),
		Specifications: r.PostFormValue(editor.FieldSpecifications),
		Supplier:       r.PostFormValue(editor.FieldSupplier),
	})

	_, err := e.Submit(r.Context())
	switch {
	case err == nil:
		s.views.CloseEditor(sc.viewID, e)
		http.Redirect(w, r, sc.path, http.StatusSeeOther)
	case errors.Is(err, editor.ErrInvalid):
		s.renderEditor(w, r, sc, http.StatusUnprocessableEntity, e)
	case errors.Is(err, editor.ErrBusy):
		s.renderEditor(w, r, sc, http.StatusConflict, e)
	default:
		s.renderEditor(w, r, sc, http.StatusOK, e)
	}
}

func (s *Server) handleConfirmDelete(w http.ResponseWriter, r *http.Request) {
	sc := screenFrom(r)
	it, ok := sc.dash.Item(mux.Vars(r)["id"])
	if !ok {
		sc.dash.Notify(models.ToastError, "Component not found.")
		s.back(w, r, sc)
		return
	}
	s.renderScreen(w, r, sc, http.StatusOK, "confirm.html", "Delete Component", confirmData{
		Base:   sc.path,
		Prompt: dashboard.ConfirmDeletePrompt,
		Item:   it,
	}, nil)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	sc := screenFrom(r)
	confirmed := r.PostFormValue("confirm") == "yes"
	// Failures surface on the dashboard as a banner.
	_ = sc.dash.Delete(r.Context(), mux.Vars(r)["id"], confirmed)
	s.back(w, r, sc)
}

// back returns to the dashboard, keeping the search query if one was
// posted along.
func (s *Server) back(w http.ResponseWriter, r *http.Request, sc *screen) {
	target := sc.path
	if q := r.FormValue("q"); q != "" {
		target += "?" + url.Values{"q": {q}}.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) flash(store *cookieStore, r *http.Request, kind models.ToastKind, msg string) {
	if err := store.addFlash(kind, msg); err != nil {
		s.log.Warn(r.Context(), "save flash", "error", err)
	}
}

func (s *Server) toastView(t models.Toast) ToastView {
	ms := t.ExpiresAt.Sub(s.now()).Milliseconds()
	if ms <= 0 {
		ms = s.toastTTL.Milliseconds()
	}
	return ToastView{Kind: t.Kind, Message: t.Message, Millis: ms}
}

// pending drains queued flashes. Auth outcomes are the only flashes.
func (s *Server) pending(store *cookieStore, r *http.Request) []ToastView {
	flashes, err := store.flashes()
	if err != nil {
		s.log.Warn(r.Context(), "read flashes", "error", err)
	}
	out := make([]ToastView, 0, len(flashes))
	for _, f := range flashes {
		ttl := authSuccessToast
		if f.Kind == models.ToastError {
			ttl = authErrorToast
		}
		out = append(out, ToastView{Kind: f.Kind, Message: f.Message, Millis: ttl.Milliseconds()})
	}
	return out
}

func (s *Server) renderAuth(w http.ResponseWriter, r *http.Request, status int, data loginData, toast *ToastView) {
	store := s.store(w, r)
	page := PageData{
		Title:       "Sign In",
		CurrentPath: r.URL.Path,
		Toasts:      s.pending(store, r),
		Data:        data,
	}
	if data.Mode == modeRegister {
		page.Title = "Register"
	}
	if toast != nil {
		page.Toasts = append(page.Toasts, *toast)
	}
	if err := s.renderer.render(w, status, "login.html", page); err != nil {
		s.renderFailed(w, r, err)
	}
}

func (s *Server) renderEditor(w http.ResponseWriter, r *http.Request, sc *screen, status int, e *editor.Editor) {
	data := editorData{
		Base:   sc.path,
		Action: sc.path + "/items",
		Title:  e.Title(),
		Submit: "Add Component",
		Draft:  e.Draft(),
		Errors: e.Errors(),
	}
	if e.Editing() {
		data.Action = sc.path + "/items/" + url.PathEscape(e.ID())
		data.Submit = "Update Component"
	}
	var toasts []ToastView
	if t, ok := e.Toast(); ok {
		toasts = append(toasts, s.toastView(t))
	}
	s.renderScreen(w, r, sc, status, "editor.html", data.Title, data, toasts)
}

func (s *Server) renderScreen(w http.ResponseWriter, r *http.Request, sc *screen, status int, name, title string, data any, toasts []ToastView) {
	page := PageData{
		Title:       title,
		CurrentPath: sc.path,
		Screen:      sc.path,
		UserName:    nav.Greeting(sc.session),
		Role:        sc.session.Role.String(),
		Links:       nav.Links(sc.session.Role, sc.path),
		Toasts:      append(s.pending(sc.store, r), toasts...),
		Data:        data,
	}
	if err := s.renderer.render(w, status, name, page); err != nil {
		s.renderFailed(w, r, err)
	}
}

func (s *Server) renderFailed(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error(r.Context(), "render page", "path", r.URL.Path, "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
