package web

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/circuitstock/internal/client/models"
	"github.com/dmitrijs2005/circuitstock/internal/client/session"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	cookieName = "circuitstock"
	// keyViewID ties a browser to its dashboard in the Registry. It is not
	// part of the session and survives logout.
	keyViewID = "viewId"
)

// cookieStore is a session.Store backed by the signed and encrypted browser
// cookie of one request.
type cookieStore struct {
	store *sessions.CookieStore
	w     http.ResponseWriter
	r     *http.Request
}

var _ session.Store = (*cookieStore)(nil)

func newCookieStore(store *sessions.CookieStore, w http.ResponseWriter, r *http.Request) *cookieStore {
	return &cookieStore{store: store, w: w, r: r}
}

// raw returns the request's cookie session. A cookie that fails to decode
// (rotated key, tampering) yields a fresh, empty session.
func (c *cookieStore) raw() *sessions.Session {
	s, _ := c.store.Get(c.r, cookieName)
	return s
}

func (c *cookieStore) Get(context.Context) (models.Session, error) {
	s := c.raw()
	return session.Decode(func(key string) string {
		v, _ := s.Values[key].(string)
		return v
	}), nil
}

func (c *cookieStore) Set(_ context.Context, sess models.Session) error {
	s := c.raw()
	kv := session.Encode(sess)
	for _, key := range models.SessionKeys {
		if v, ok := kv[key]; ok {
			s.Values[key] = v
		} else {
			delete(s.Values, key)
		}
	}
	return s.Save(c.r, c.w)
}

func (c *cookieStore) Clear(context.Context) error {
	s := c.raw()
	for _, key := range models.SessionKeys {
		delete(s.Values, key)
	}
	return s.Save(c.r, c.w)
}

// viewID returns the browser's view identifier, minting and saving one on
// first use.
func (c *cookieStore) viewID() (string, error) {
	s := c.raw()
	if id, ok := s.Values[keyViewID].(string); ok && id != "" {
		return id, nil
	}
	id := uuid.NewString()
	s.Values[keyViewID] = id
	return id, s.Save(c.r, c.w)
}

// addFlash queues a toast for the next rendered page.
func (c *cookieStore) addFlash(kind models.ToastKind, msg string) error {
	s := c.raw()
	s.AddFlash(string(kind) + "|" + msg)
	return s.Save(c.r, c.w)
}

// flashes drains queued toasts.
func (c *cookieStore) flashes() ([]models.Toast, error) {
	s := c.raw()
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]models.Toast, 0, len(raw))
	for _, f := range raw {
		str, ok := f.(string)
		if !ok {
			continue
		}
		kind, msg, _ := strings.Cut(str, "|")
		out = append(out, models.Toast{Kind: models.ToastKind(kind), Message: msg})
	}
	return out, s.Save(c.r, c.w)
}
