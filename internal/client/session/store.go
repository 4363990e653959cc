// Package session holds the client-side authentication state (token, role,
// user name) that gates which screens may render.
//
// A Store is created once per process (terminal client) or once per request
// (web dashboard) and handed to the components that need it; nothing looks
// the session up from a global.
package session

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/circuitstock/internal/client/models"
)

// Store is the session lifecycle contract: Get reads the current session
// (a zero Session when nothing is stored), Set replaces it, Clear removes it.
// The token is opaque and never inspected.
type Store interface {
	Get(ctx context.Context) (models.Session, error)
	Set(ctx context.Context, s models.Session) error
	Clear(ctx context.Context) error
}

// Encode flattens s into the persisted key/value form. Empty fields are
// omitted so that absent values stay absent.
func Encode(s models.Session) map[string]string {
	kv := make(map[string]string, len(models.SessionKeys))
	if s.Token != "" {
		kv[models.KeyAuthToken] = s.Token
	}
	if role := s.Role.String(); role != "" {
		kv[models.KeyUserType] = role
	}
	if s.UserName != "" {
		kv[models.KeyUserName] = s.UserName
	}
	if s.UserData {
		kv[models.KeyUserData] = strconv.FormatBool(true)
	}
	return kv
}

// Decode rebuilds a Session from persisted values. A userType outside the
// known roles decodes as RoleNone; stored values are client-controlled and
// are not trusted to be well formed.
func Decode(get func(key string) string) models.Session {
	role, err := models.ParseRole(get(models.KeyUserType))
	if err != nil {
		role = models.RoleNone
	}
	userData, _ := strconv.ParseBool(get(models.KeyUserData))

	return models.Session{
		Token:    get(models.KeyAuthToken),
		Role:     role,
		UserName: get(models.KeyUserName),
		UserData: userData,
	}
}
