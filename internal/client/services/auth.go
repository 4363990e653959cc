// Package services contains application services for the inventory client.
// This file defines the authentication service: login and registration,
// and the session bookkeeping each of them implies. Logout belongs to the
// navigation shell (see package nav).
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/circuitstock/internal/client/client"
	"github.com/dmitrijs2005/circuitstock/internal/client/models"
	"github.com/dmitrijs2005/circuitstock/internal/client/session"
	"github.com/dmitrijs2005/circuitstock/internal/logging"
)

// Local validation failures. Both match client.ErrValidation.
var (
	ErrPasswordMismatch   = fmt.Errorf("passwords do not match: %w", client.ErrValidation)
	ErrMissingCredentials = fmt.Errorf("name and password are required: %w", client.ErrValidation)
)

// Toast texts for successful outcomes.
const (
	MsgLoginOK    = "Login successful! Welcome back."
	MsgRegisterOK = "Registration successful! Welcome to Electronics Inventory."
)

// DemoUserName pre-fills the login form.
const DemoUserName = "John Smith"

// Outcome is what a successful auth action hands back to the screen:
// where to go next and what to tell the user.
type Outcome struct {
	Redirect string
	Message  string
	Session  models.Session
}

// AuthService defines authentication operations shared by the web and
// terminal front ends.
//
// Contract:
//   - Login: authenticate against the service and populate the store.
//   - Register: create an account (role user) and populate the store.
//
// The store is passed per call so one service can serve many sessions.
type AuthService interface {
	Login(ctx context.Context, store session.Store, name, password string) (Outcome, error)
	Register(ctx context.Context, store session.Store, name, password, confirm string) (Outcome, error)
}

type authService struct {
	client client.Client
	log    logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client.
func NewAuthService(c client.Client, log logging.Logger) AuthService {
	return &authService{client: c, log: log}
}

// Login authenticates and stores token, role (defaulting to user), the
// display name (falling back to the submitted one) and the userData marker.
// The redirect is the role's home screen.
func (a *authService) Login(ctx context.Context, store session.Store, name, password string) (Outcome, error) {
	name = strings.TrimSpace(name)
	if name == "" || password == "" {
		return Outcome{}, ErrMissingCredentials
	}

	res, err := a.client.Login(ctx, name, password)
	if err != nil {
		a.log.Warn(ctx, "login failed", "user", name, "error", err)
		return Outcome{}, fmt.Errorf("login: %w", err)
	}

	s := models.Session{Token: res.Token, Role: res.Role, UserName: res.Name, UserData: true}
	if err := store.Set(ctx, s); err != nil {
		return Outcome{}, fmt.Errorf("save session: %w", err)
	}

	a.log.Info(ctx, "logged in", "user", s.UserName, "role", s.Role.String())
	return Outcome{Redirect: s.Role.Home(), Message: MsgLoginOK, Session: s}, nil
}

// Register checks the confirmation locally, then creates the account.
// The stored session carries the submitted name and role user.
func (a *authService) Register(ctx context.Context, store session.Store, name, password, confirm string) (Outcome, error) {
	if password != confirm {
		return Outcome{}, ErrPasswordMismatch
	}
	name = strings.TrimSpace(name)
	if name == "" || password == "" {
		return Outcome{}, ErrMissingCredentials
	}

	res, err := a.client.Register(ctx, name, password)
	if err != nil {
		a.log.Warn(ctx, "registration failed", "user", name, "error", err)
		return Outcome{}, fmt.Errorf("register: %w", err)
	}

	s := models.Session{Token: res.Token, Role: models.RoleUser, UserName: name}
	if err := store.Set(ctx, s); err != nil {
		return Outcome{}, fmt.Errorf("save session: %w", err)
	}

	a.log.Info(ctx, "registered", "user", name)
	return Outcome{Redirect: s.Role.Home(), Message: MsgRegisterOK, Session: s}, nil
}

// AuthMessage turns a failed auth action into the toast text.
func AuthMessage(op string, err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrPasswordMismatch):
		return "Passwords do not match!"
	case errors.Is(err, ErrMissingCredentials):
		return "Name and password are required."
	}
	return client.Message(op, err)
}
