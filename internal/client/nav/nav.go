// Package nav builds the navigation shell shown around every authenticated
// screen and implements logout.
package nav

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/circuitstock/internal/client/models"
	"github.com/dmitrijs2005/circuitstock/internal/client/session"
	"github.com/dmitrijs2005/circuitstock/internal/logging"
)

// Link is one entry of the navigation bar.
type Link struct {
	ID     string
	Label  string
	Href   string
	Active bool
}

type entry struct {
	id, label, href string
	adminOnly       bool
}

var entries = []entry{
	{id: "dashboard", label: "Dashboard"},
	{id: "inventory", label: "Electronics Inventory", href: models.PathInventory},
	{id: "reports", label: "Reports", href: models.PathReports},
	{id: "analytics", label: "Analytics", href: models.PathAnalytics},
	{id: "users", label: "Users", href: models.PathUsers, adminOnly: true},
	{id: "settings", label: "Settings", href: models.PathSettings, adminOnly: true},
}

// Links returns the entries visible to role, marking the one matching
// current. The Dashboard entry points to the role's home screen.
func Links(role models.Role, current string) []Link {
	out := make([]Link, 0, len(entries))
	for _, e := range entries {
		if e.adminOnly && role != models.RoleAdmin {
			continue
		}
		href := e.href
		if href == "" {
			href = role.Home()
		}
		out = append(out, Link{ID: e.id, Label: e.label, Href: href, Active: active(href, current)})
	}
	return out
}

func active(href, current string) bool {
	return current == href || strings.HasPrefix(current, href+"/")
}

// Greeting is the user label shown in the shell.
func Greeting(s models.Session) string {
	if s.UserName == "" {
		return "Guest"
	}
	return s.UserName
}

// Logout clears the session and returns the login path. It never calls the
// service and always navigates, even if clearing the store failed.
func Logout(ctx context.Context, store session.Store, log logging.Logger) string {
	if err := store.Clear(ctx); err != nil {
		log.Error(ctx, "clear session on logout", "error", err)
	}
	return models.PathLogin
}
