package cli

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/circuitstock/internal/client/client"
	"github.com/dmitrijs2005/circuitstock/internal/client/config"
	"github.com/dmitrijs2005/circuitstock/internal/client/models"
	"github.com/dmitrijs2005/circuitstock/internal/client/repositories"
	"github.com/dmitrijs2005/circuitstock/internal/devapi"
	"github.com/dmitrijs2005/circuitstock/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type harness struct {
	api   *devapi.Store
	db    *sql.DB
	cfg   *config.Config
	hc    client.Client
	out   *bytes.Buffer
	ctx   context.Context
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := devapi.NewStore(bcrypt.MinCost)
	require.NoError(t, devapi.Seed(store))
	ts := httptest.NewServer(devapi.NewServer("", logging.NewNop(), store, []byte("secret"), time.Hour, true).Handler())
	t.Cleanup(ts.Close)

	ctx := context.Background()
	db, err := repositories.InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	hc, err := client.NewHTTPClient(ts.URL, 5*time.Second)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.LoadDefaults()
	return &harness{api: store, db: db, cfg: cfg, hc: hc, out: &bytes.Buffer{}, ctx: ctx}
}

// app returns an App reading the given input lines.
func (h *harness) app(lines ...string) *App {
	input := strings.Join(lines, "\n") + "\n"
	return newApp(h.cfg, h.db, h.hc, logging.NewNop(), rdr(input), h.out)
}

func stubPasswords(t *testing.T, pws ...string) {
	t.Helper()
	old := getPassword
	getPassword = func(string, io.Writer) ([]byte, error) {
		if len(pws) == 0 {
			return nil, io.EOF
		}
		p := []byte(pws[0])
		pws = pws[1:]
		return p, nil
	}
	t.Cleanup(func() { getPassword = old })
}

func TestLogin_OpensRoleHome(t *testing.T) {
	h := newHarness(t)
	stubPasswords(t, "tech123")
	a := h.app("technician")

	require.NoError(t, a.Login(h.ctx))
	out := h.out.String()
	assert.Contains(t, out, "✔ Login successful! Welcome back.")
	assert.Contains(t, out, "== /technician ==")
	assert.Contains(t, out, "Total Components: 5 | Total Stock: 155 | Low Stock Items: 2 | Microcontrollers: 2")
	assert.Contains(t, out, "Arduino Uno R3")
	assert.Equal(t, "(technician technician /technician)", a.status(h.ctx))

	s := a.session(h.ctx)
	assert.Equal(t, models.RoleTechnician, s.Role)
	assert.True(t, s.UserData)
	assert.NotEmpty(t, s.Token)
}

func TestLogin_DemoUserIsDefault(t *testing.T) {
	h := newHarness(t)
	stubPasswords(t, devapi.DemoPassword)
	a := h.app("")

	require.NoError(t, a.Login(h.ctx))
	assert.Equal(t, models.PathDashboard, a.screen)
	assert.Equal(t, "John Smith", a.session(h.ctx).UserName)
}

func TestLogin_Failure(t *testing.T) {
	h := newHarness(t)
	stubPasswords(t, "nope")
	a := h.app("technician")

	require.Error(t, a.Login(h.ctx))
	assert.Contains(t, h.out.String(), "✖ Invalid credentials")
	assert.False(t, a.isLoggedIn(h.ctx))
}

func TestRegister(t *testing.T) {
	h := newHarness(t)
	stubPasswords(t, "pw", "other", "pw", "pw")
	a := h.app("Ada", "Ada")

	require.Error(t, a.Register(h.ctx))
	assert.Contains(t, h.out.String(), "✖ Passwords do not match!")

	require.NoError(t, a.Register(h.ctx))
	assert.Contains(t, h.out.String(), "Registration successful! Welcome to Electronics Inventory.")
	assert.Equal(t, models.PathDashboard, a.screen)
	assert.Equal(t, models.RoleUser, a.session(h.ctx).Role)
}

func TestGuard_Open(t *testing.T) {
	h := newHarness(t)
	a := h.app()

	require.ErrorIs(t, a.Open(h.ctx, models.PathDashboard), errLoginRequired)
	assert.Contains(t, h.out.String(), "Please log in first")
	assert.Equal(t, models.PathLogin, a.screen)

	stubPasswords(t, "tech123")
	a = h.app("technician")
	require.NoError(t, a.Login(h.ctx))

	require.NoError(t, a.Open(h.ctx, models.PathAdmin))
	assert.Equal(t, models.PathTechnician, a.screen)
	require.NoError(t, a.Open(h.ctx, models.PathInventory))
	assert.Equal(t, models.PathInventory, a.screen)
	require.ErrorIs(t, a.Open(h.ctx, "/reports"), errLoginRequired)
}

func TestSessionSurvivesRestart(t *testing.T) {
	h := newHarness(t)
	stubPasswords(t, "admin123")
	require.NoError(t, h.app("admin").Login(h.ctx))

	h.out.Reset()
	a := h.app()
	require.True(t, a.isLoggedIn(h.ctx))
	require.NoError(t, a.Open(h.ctx, models.PathRoot))
	assert.Equal(t, models.PathAdmin, a.screen)
	assert.Contains(t, h.out.String(), "HC-05 Bluetooth Module")

	require.NoError(t, a.Nav(h.ctx))
	assert.Contains(t, h.out.String(), "Users")
	assert.Contains(t, h.out.String(), "* Dashboard")
}

func loggedIn(t *testing.T, h *harness, lines ...string) *App {
	t.Helper()
	stubPasswords(t, "tech123")
	a := h.app(append([]string{"technician"}, lines...)...)
	require.NoError(t, a.Login(h.ctx))
	h.out.Reset()
	return a
}

func TestListAndStats(t *testing.T) {
	h := newHarness(t)
	a := loggedIn(t, h)

	require.NoError(t, a.List(h.ctx, "micro"))
	out := h.out.String()
	assert.Contains(t, out, "ESP32 DevKit")
	assert.NotContains(t, out, "HC-05")
	assert.Contains(t, out, "Low Stock")

	h.out.Reset()
	require.NoError(t, a.List(h.ctx, "nothing-like-this"))
	assert.Contains(t, h.out.String(), `No components found matching "nothing-like-this"`)

	h.out.Reset()
	require.NoError(t, a.Stats(h.ctx))
	assert.Equal(t, "Total Components: 5 | Total Stock: 155 | Low Stock Items: 2 | Microcontrollers: 2\n", h.out.String())
}

func TestAdd(t *testing.T) {
	h := newHarness(t)
	a := loggedIn(t, h,
		// first attempt: invalid
		"", "", "-1", "", "", "",
		"y",
		// second attempt keeps nothing that was invalid
		"Servo SG90", "3", "4", "5", "**180°** rotation", "", "7",
	)

	require.NoError(t, a.Add(h.ctx))
	out := h.out.String()
	assert.Contains(t, out, "== Add New Component ==")
	assert.Contains(t, out, "name: Component name is required")
	assert.Contains(t, out, "stock: Stock quantity must be positive")
	assert.Contains(t, out, "✔ Component added successfully!")
	assert.Len(t, h.api.Items(), 6)

	h.out.Reset()
	require.NoError(t, a.Stats(h.ctx))
	assert.Contains(t, h.out.String(), "Total Components: 6 | Total Stock: 159 | Low Stock Items: 3")
}

func TestAdd_Cancel(t *testing.T) {
	h := newHarness(t)
	a := loggedIn(t, h, "", "", "", "", "", "", "n")

	require.ErrorIs(t, a.Add(h.ctx), errCancelled)
	assert.Contains(t, h.out.String(), "Cancelled.")
	assert.Len(t, h.api.Items(), 5)
}

func itemID(t *testing.T, h *harness, name string) string {
	t.Helper()
	for _, r := range h.api.Items() {
		if r.Name == name {
			return r.ID
		}
	}
	t.Fatalf("no item %q", name)
	return ""
}

func TestEdit(t *testing.T) {
	h := newHarness(t)
	id := itemID(t, h, "ESP32 DevKit")
	// keep everything but the stock; "-" clears the specifications
	a := loggedIn(t, h, "", "", "30", "", "-", "", "")

	require.NoError(t, a.Edit(h.ctx, id))
	assert.Contains(t, h.out.String(), "== Edit Component ==")
	assert.Contains(t, h.out.String(), "✔ Component updated successfully!")

	it, ok := a.dash.Item(id)
	require.True(t, ok)
	assert.Equal(t, 30, it.Stock)
	assert.Equal(t, models.SupplierEspressif, it.Supplier)
	assert.Empty(t, it.Specifications)

	require.ErrorIs(t, a.Edit(h.ctx, "missing"), client.ErrNotFound)
}

func TestDelete(t *testing.T) {
	h := newHarness(t)
	id := itemID(t, h, "HC-05 Bluetooth Module")
	a := loggedIn(t, h, "n", "y")

	require.Error(t, a.Delete(h.ctx, id))
	assert.Contains(t, h.out.String(), "Cancelled.")
	assert.Len(t, h.api.Items(), 5)

	require.NoError(t, a.Delete(h.ctx, id))
	assert.Contains(t, h.out.String(), "✔ Component deleted successfully.")
	assert.Len(t, h.api.Items(), 4)
	_, ok := a.dash.Item(id)
	assert.False(t, ok)
}

func TestDelete_NotFoundShowsError(t *testing.T) {
	h := newHarness(t)
	id := itemID(t, h, "HC-05 Bluetooth Module")
	a := loggedIn(t, h, "y")
	require.NoError(t, h.api.DeleteItem(id))

	require.ErrorIs(t, a.Delete(h.ctx, id), client.ErrNotFound)
	assert.Contains(t, h.out.String(), "✖ Component not found.")

	h.out.Reset()
	require.NoError(t, a.Refresh(h.ctx))
	assert.NotContains(t, h.out.String(), "HC-05")
}

func TestLogout(t *testing.T) {
	h := newHarness(t)
	a := loggedIn(t, h)

	require.NoError(t, a.Logout(h.ctx))
	assert.Nil(t, a.dash)
	assert.Equal(t, models.PathLogin, a.screen)
	assert.False(t, h.app().isLoggedIn(h.ctx))
	require.ErrorIs(t, a.List(h.ctx, ""), errLoginRequired)
}
