package nav

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/circuitstock/internal/client/models"
	"github.com/dmitrijs2005/circuitstock/internal/client/session"
	"github.com/dmitrijs2005/circuitstock/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hrefs(links []Link) []string {
	out := make([]string, 0, len(links))
	for _, l := range links {
		out = append(out, l.Href)
	}
	return out
}

func TestLinks_ByRole(t *testing.T) {
	assert.Equal(t,
		[]string{"/admin", "/inventory", "/reports", "/analytics", "/users", "/settings"},
		hrefs(Links(models.RoleAdmin, "/admin")))
	assert.Equal(t,
		[]string{"/technician", "/inventory", "/reports", "/analytics"},
		hrefs(Links(models.RoleTechnician, "/technician")))
	assert.Equal(t,
		[]string{"/dashboard", "/inventory", "/reports", "/analytics"},
		hrefs(Links(models.RoleUser, "/dashboard")))
}

func TestLinks_Active(t *testing.T) {
	links := Links(models.RoleUser, "/inventory/new")
	var active []string
	for _, l := range links {
		if l.Active {
			active = append(active, l.ID)
		}
	}
	assert.Equal(t, []string{"inventory"}, active)
}

func TestGreeting(t *testing.T) {
	assert.Equal(t, "Guest", Greeting(models.Session{}))
	assert.Equal(t, "Ada", Greeting(models.Session{UserName: "Ada"}))
}

type brokenStore struct{ session.MemoryStore }

func (*brokenStore) Clear(context.Context) error { return errors.New("locked") }

func TestLogout(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	require.NoError(t, store.Set(ctx, models.Session{Token: "t", Role: models.RoleAdmin, UserName: "a", UserData: true}))

	assert.Equal(t, "/login", Logout(ctx, store, logging.NewNop()))
	s, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Session{}, s)

	assert.Equal(t, "/login", Logout(ctx, &brokenStore{}, logging.NewNop()))
}
