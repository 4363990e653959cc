package devapi_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/circuitstock/internal/client/client"
	"github.com/dmitrijs2005/circuitstock/internal/client/dashboard"
	"github.com/dmitrijs2005/circuitstock/internal/client/editor"
	"github.com/dmitrijs2005/circuitstock/internal/client/models"
	"github.com/dmitrijs2005/circuitstock/internal/client/services"
	"github.com/dmitrijs2005/circuitstock/internal/client/session"
	"github.com/dmitrijs2005/circuitstock/internal/devapi"
	"github.com/dmitrijs2005/circuitstock/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRoundTrip(t *testing.T) {
	store := devapi.NewStore(bcrypt.MinCost)
	require.NoError(t, devapi.Seed(store))
	srv := devapi.NewServer("", logging.NewNop(), store, []byte("k"), time.Hour, true)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	c, err := client.NewHTTPClient(ts.URL, 5*time.Second)
	require.NoError(t, err)
	log := logging.NewNop()
	ctx := context.Background()

	sess := session.NewMemoryStore()
	out, err := services.NewAuthService(c, log).Login(ctx, sess, "technician", "tech123")
	require.NoError(t, err)
	assert.Equal(t, models.PathTechnician, out.Redirect)

	s, err := sess.Get(ctx)
	require.NoError(t, err)
	ctx = client.WithToken(ctx, s.Token)

	d := dashboard.New(c, log)
	require.NoError(t, d.Load(ctx))
	assert.Equal(t, dashboard.Stats{Total: 5, TotalStock: 155, LowStock: 2, Microcontrollers: 2}, d.Stats())

	ed := editor.NewCreate(c, d, log)
	ed.SetDraft(editor.Draft{Name: "Servo SG90", Category: "Motor", Stock: "4", MinStock: "5", Supplier: "Pololu"})
	_, err = ed.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, d.Stats().Total)
	assert.Equal(t, 3, d.Stats().LowStock)

	servo := d.Snapshot("servo").Items
	require.Len(t, servo, 1)

	ed = editor.NewEdit(c, d, servo[0], log)
	ed.SetField(editor.FieldStock, "50")
	_, err = ed.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Stats().LowStock)

	require.NoError(t, d.Delete(ctx, servo[0].ID, true))
	assert.Equal(t, 5, d.Stats().Total)

	err = d.Delete(ctx, servo[0].ID, true)
	require.ErrorIs(t, err, client.ErrNotFound)
	assert.Equal(t, 5, d.Stats().Total)

	// a token-less context is rejected by the service
	_, err = c.ListItems(context.Background())
	require.ErrorIs(t, err, client.ErrAuth)
}
