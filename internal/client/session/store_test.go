package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/circuitstock/internal/client/models"
	"github.com/dmitrijs2005/circuitstock/internal/client/repositories"
	"github.com/dmitrijs2005/circuitstock/internal/client/repositories/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	s := models.Session{Token: "abc", Role: models.RoleTechnician, UserName: "Jane", UserData: true}

	kv := Encode(s)
	assert.Equal(t, map[string]string{
		"authToken": "abc",
		"userType":  "technician",
		"userName":  "Jane",
		"userData":  "true",
	}, kv)

	got := Decode(func(k string) string { return kv[k] })
	assert.Equal(t, s, got)
}

func TestEncode_OmitsAbsentFields(t *testing.T) {
	kv := Encode(models.Session{Token: "abc"})
	assert.Equal(t, map[string]string{"authToken": "abc"}, kv)
}

func TestDecode_UnknownRoleIsNone(t *testing.T) {
	kv := map[string]string{"authToken": "abc", "userType": "vet"}
	got := Decode(func(k string) string { return kv[k] })
	assert.Equal(t, models.RoleNone, got.Role)
	assert.True(t, got.Authenticated())
}

func storesUnderTest(t *testing.T) map[string]Store {
	t.Helper()
	db, err := repositories.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "s.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": NewSQLiteStore(db),
	}
}

func TestStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	for name, st := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			got, err := st.Get(ctx)
			require.NoError(t, err)
			assert.False(t, got.Authenticated())

			want := models.Session{Token: "abc", Role: models.RoleAdmin, UserName: "John Smith", UserData: true}
			require.NoError(t, st.Set(ctx, want))

			got, err = st.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, want, got)

			// a shorter session must not inherit stale keys
			require.NoError(t, st.Set(ctx, models.Session{Token: "def", Role: models.RoleUser, UserName: "new"}))
			got, err = st.Get(ctx)
			require.NoError(t, err)
			assert.False(t, got.UserData)
			assert.Equal(t, "def", got.Token)

			require.NoError(t, st.Clear(ctx))
			got, err = st.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, models.Session{}, got)
		})
	}
}

func TestSQLiteStore_ClearKeepsOtherKeys(t *testing.T) {
	ctx := context.Background()
	db, err := repositories.InitDatabase(ctx, filepath.Join(t.TempDir(), "s.db"))
	require.NoError(t, err)
	defer db.Close()

	repo := metadata.NewSQLiteRepository(db)
	require.NoError(t, repo.Set(ctx, "theme", "dark"))

	st := NewSQLiteStore(db)
	require.NoError(t, st.Set(ctx, models.Session{Token: "abc"}))
	require.NoError(t, st.Clear(ctx))

	v, ok, err := repo.Get(ctx, "theme")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "dark", v)
}
