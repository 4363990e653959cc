// Package guard decides whether a screen may render for the current session.
//
// It only keeps a well-behaved client from showing screens it should not:
// the token and role are client-held and unverified here, so the inventory
// service must enforce the same rules.
package guard

import (
	"github.com/dmitrijs2005/circuitstock/internal/client/models"
)

// Decision is the outcome of a navigation attempt: either Allowed, or a
// Redirect target to navigate to instead.
type Decision struct {
	Allowed  bool
	Redirect string
}

func allow() Decision { return Decision{Allowed: true} }

func redirect(to string) Decision { return Decision{Redirect: to} }

// Admit applies the guard rules for a protected screen. required is the role
// the screen demands; RoleNone means any authenticated session will do.
//
//  1. no token: redirect to the login screen
//  2. role mismatch: redirect to the session role's home screen
//  3. otherwise allow
func Admit(s models.Session, required models.Role) Decision {
	if !s.Authenticated() {
		return redirect(models.PathLogin)
	}
	if required != models.RoleNone && s.Role != required {
		return redirect(s.Role.Home())
	}
	return allow()
}

// Dispatch resolves the root screen: authenticated sessions go to their
// role's home, everyone else to login.
func Dispatch(s models.Session) string {
	if !s.Authenticated() || s.Role == models.RoleNone {
		return models.PathLogin
	}
	return s.Role.Home()
}

// Rule describes how a screen is guarded.
type Rule struct {
	Public   bool
	Required models.Role
}

// Routes is the screen table. Paths not listed fall through to login.
var Routes = map[string]Rule{
	models.PathLogin:      {Public: true},
	models.PathAdmin:      {Required: models.RoleAdmin},
	models.PathTechnician: {Required: models.RoleTechnician},
	models.PathDashboard:  {},
	models.PathInventory:  {},
}

// Navigate evaluates a navigation to path against the screen table.
func Navigate(s models.Session, path string) Decision {
	if path == models.PathRoot {
		return redirect(Dispatch(s))
	}
	rule, ok := Routes[path]
	if !ok {
		return redirect(models.PathLogin)
	}
	if rule.Public {
		return allow()
	}
	return Admit(s, rule.Required)
}
