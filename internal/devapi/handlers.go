package devapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/circuitstock/internal/client/models"
	"github.com/dmitrijs2005/circuitstock/internal/common"
	"github.com/gorilla/mux"
)

const maxBody = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(v)
}

func claimsFrom(ctx context.Context) *Claims {
	c, _ := ctx.Value(claimsKey).(*Claims)
	return c
}

func actor(ctx context.Context) string {
	if c := claimsFrom(ctx); c != nil {
		return c.Name
	}
	return "anonymous"
}

type credentials struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	UserType string `json:"userType"`
}

type userView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	UserType string `json:"userType"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if err := decode(w, r, &c); err != nil || strings.TrimSpace(c.Name) == "" || c.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Name and password are required"})
		return
	}

	u, err := s.store.Authenticate(c.Name, c.Password)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid credentials"})
		return
	}

	token, err := GenerateToken(u, s.jwtSecret, s.tokenTTL)
	if err != nil {
		s.logger.Error(r.Context(), "sign token", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   token,
		"user":    userView{ID: u.ID, Name: u.Name, UserType: u.UserType},
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if err := decode(w, r, &c); err != nil || strings.TrimSpace(c.Name) == "" || c.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Name and password are required"})
		return
	}
	if c.UserType == "" {
		c.UserType = models.RoleUser.String()
	}
	if role, err := models.ParseRole(c.UserType); err != nil || role == models.RoleNone {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Unknown user type"})
		return
	}

	u, err := s.store.AddUser(c.Name, c.Password, c.UserType)
	if errors.Is(err, common.ErrorAlreadyExists) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "User already exists"})
		return
	}
	if err != nil {
		s.logger.Error(r.Context(), "register", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}

	token, err := GenerateToken(u, s.jwtSecret, s.tokenTTL)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "User registered successfully", "token": token})
}

// accessToken checks the bearer token on inventory endpoints.
func (s *Server) accessToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.requireToken {
			next.ServeHTTP(w, r)
			return
		}
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing token"})
			return
		}
		claims, err := ParseToken(raw, s.jwtSecret)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	items := s.store.Items()
	writeJSON(w, http.StatusOK, map[string]any{"count": len(items), "electronics": items})
}

type itemBody struct {
	Name           string `json:"name"`
	Category       string `json:"category"`
	Stock          *int   `json:"stock"`
	MinStock       *int   `json:"min_stock"`
	Specifications string `json:"specifications"`
	Supplier       string `json:"supplier"`
}

// record validates b; a non-empty problem is the message sent back.
func (b itemBody) record() (rec Record, problem string) {
	switch {
	case strings.TrimSpace(b.Name) == "":
		return Record{}, "Component name is required"
	case !models.Category(b.Category).Valid():
		return Record{}, "Invalid category"
	case b.Stock == nil || *b.Stock < 0:
		return Record{}, "Stock must be a non-negative integer"
	case b.MinStock == nil || *b.MinStock < 0:
		return Record{}, "Minimum stock must be a non-negative integer"
	case !models.Supplier(b.Supplier).Valid():
		return Record{}, "Invalid supplier"
	}
	return Record{
		Name:           strings.TrimSpace(b.Name),
		Category:       b.Category,
		Stock:          *b.Stock,
		MinStock:       *b.MinStock,
		Specifications: b.Specifications,
		Supplier:       b.Supplier,
	}, ""
}

func (s *Server) readItem(w http.ResponseWriter, r *http.Request) (Record, bool) {
	var b itemBody
	if err := decode(w, r, &b); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON body"})
		return Record{}, false
	}
	rec, problem := b.record()
	if problem != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": problem})
		return Record{}, false
	}
	return rec, true
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.readItem(w, r)
	if !ok {
		return
	}
	rec = s.store.AddItem(rec)
	s.logger.Info(r.Context(), "component added", "id", rec.ID, "by", actor(r.Context()))
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Electronics added successfully", "electronics": rec})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	rec, ok := s.readItem(w, r)
	if !ok {
		return
	}
	rec, err := s.store.UpdateItem(id, rec)
	if errors.Is(err, common.ErrorNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Electronics not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Electronics updated successfully", "electronics": rec})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.store.DeleteItem(id); errors.Is(err, common.ErrorNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Electronics not found"})
		return
	}
	s.logger.Info(r.Context(), "component deleted", "id", id, "by", actor(r.Context()))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Electronics deleted successfully"})
}
