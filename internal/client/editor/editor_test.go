package editor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/circuitstock/internal/client/client"
	"github.com/dmitrijs2005/circuitstock/internal/client/models"
	"github.com/dmitrijs2005/circuitstock/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type fakeClient struct {
	createRet models.Item
	createErr error
	updateRet models.Item
	updateErr error

	created   []models.ItemInput
	updated   []string
	started   chan struct{}
	gate      chan struct{}
	callCount int
}

func (f *fakeClient) CreateItem(_ context.Context, in models.ItemInput) (models.Item, error) {
	f.callCount++
	f.created = append(f.created, in)
	if f.started != nil {
		f.started <- struct{}{}
		<-f.gate
	}
	return f.createRet, f.createErr
}

func (f *fakeClient) UpdateItem(_ context.Context, id string, _ models.ItemInput) (models.Item, error) {
	f.callCount++
	f.updated = append(f.updated, id)
	return f.updateRet, f.updateErr
}

func (f *fakeClient) Login(context.Context, string, string) (client.LoginResult, error) {
	return client.LoginResult{}, nil
}

func (f *fakeClient) Register(context.Context, string, string) (client.RegisterResult, error) {
	return client.RegisterResult{}, nil
}

func (f *fakeClient) ListItems(context.Context) ([]models.Item, error) { return nil, nil }

func (f *fakeClient) DeleteItem(context.Context, string) error { return nil }

type fakeTarget struct {
	updates  []models.Item
	creates  int
	notified []string
}

func (t *fakeTarget) ApplyUpdate(it models.Item) { t.updates = append(t.updates, it) }

func (t *fakeTarget) AfterCreate(context.Context) error {
	t.creates++
	return nil
}

func (t *fakeTarget) Notify(_ models.ToastKind, msg string) { t.notified = append(t.notified, msg) }

func validDraft() Draft {
	return Draft{
		Name:     " Servo SG90 ",
		Category: "Motor",
		Stock:    "12",
		MinStock: "0",
		Supplier: "Pololu",
	}
}

// ---- tests ----

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(*Draft)
		field string
		msg   string
	}{
		{"blank name", func(d *Draft) { d.Name = "   " }, FieldName, "Component name is required"},
		{"no category", func(d *Draft) { d.Category = "" }, FieldCategory, "Category is required"},
		{"bad category", func(d *Draft) { d.Category = "Toaster" }, FieldCategory, "Unknown category"},
		{"no stock", func(d *Draft) { d.Stock = "" }, FieldStock, "Stock quantity is required"},
		{"negative stock", func(d *Draft) { d.Stock = "-1" }, FieldStock, "Stock quantity must be positive"},
		{"text stock", func(d *Draft) { d.Stock = "ten" }, FieldStock, "Stock quantity must be a whole number"},
		{"no min", func(d *Draft) { d.MinStock = "" }, FieldMinStock, "Minimum stock is required"},
		{"negative min", func(d *Draft) { d.MinStock = "-3" }, FieldMinStock, "Minimum stock must be positive"},
		{"no supplier", func(d *Draft) { d.Supplier = "" }, FieldSupplier, "Supplier is required"},
		{"bad supplier", func(d *Draft) { d.Supplier = "Acme" }, FieldSupplier, "Unknown supplier"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mut(&d)
			_, errs := d.Validate()
			require.Len(t, errs, 1)
			assert.Equal(t, tt.msg, errs[tt.field])
		})
	}

	in, errs := validDraft().Validate()
	require.Nil(t, errs)
	assert.Equal(t, models.ItemInput{Name: "Servo SG90", Category: models.CategoryMotor, Stock: 12, MinStock: 0, Supplier: models.SupplierPololu}, in)
}

func TestSubmit_InvalidMakesNoCall(t *testing.T) {
	fc := &fakeClient{}
	e := NewCreate(fc, &fakeTarget{}, logging.NewNop())
	d := validDraft()
	d.Stock = "-1"
	e.SetDraft(d)

	_, err := e.Submit(context.Background())
	require.ErrorIs(t, err, ErrInvalid)
	assert.Equal(t, 0, fc.callCount)
	assert.Equal(t, "Stock quantity must be positive", e.Errors()[FieldStock])

	e.SetField(FieldStock, "4")
	assert.Empty(t, e.Errors()[FieldStock], "editing a field clears its error")
}

func TestSubmit_Create(t *testing.T) {
	fc := &fakeClient{createRet: models.Item{ID: "n1", Name: "Servo SG90"}}
	tg := &fakeTarget{}
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	e := NewCreate(fc, tg, logging.NewNop(), WithClock(func() time.Time { return now }))
	e.SetDraft(validDraft())

	res, err := e.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Component added successfully!", res.Message)
	assert.Equal(t, now.Add(CloseDelay), res.CloseAt)
	assert.Equal(t, 1, tg.creates)
	assert.Empty(t, tg.updates)
	assert.Equal(t, []string{"Component added successfully!"}, tg.notified)
	require.Len(t, fc.created, 1)
	assert.Equal(t, 12, fc.created[0].Stock)
	assert.Equal(t, "Add New Component", e.Title())
}

func TestSubmit_Update(t *testing.T) {
	orig := models.Item{ID: "x9", Name: "ESP32", Category: models.CategoryMicrocontroller, Stock: 8, MinStock: 10, Supplier: models.SupplierEspressif}
	fc := &fakeClient{}
	tg := &fakeTarget{}
	e := NewEdit(fc, tg, orig, logging.NewNop())
	assert.Equal(t, "8", e.Draft().Stock)
	assert.Equal(t, "Edit Component", e.Title())

	e.SetField(FieldStock, "20")
	res, err := e.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Component updated successfully!", res.Message)
	assert.Equal(t, []string{"x9"}, fc.updated)
	require.Len(t, tg.updates, 1)
	assert.Equal(t, "x9", tg.updates[0].ID)
	assert.Equal(t, 20, tg.updates[0].Stock)
}

func TestSubmit_FailureKeepsEditorOpen(t *testing.T) {
	fc := &fakeClient{createErr: &client.APIError{Op: client.OpCreate, Status: 400, Message: "Duplicate component", Kind: client.ErrValidation}}
	tg := &fakeTarget{}
	e := NewCreate(fc, tg, logging.NewNop())
	e.SetDraft(validDraft())

	_, err := e.Submit(context.Background())
	require.ErrorIs(t, err, client.ErrValidation)
	assert.Equal(t, "Duplicate component", e.Errors()[FieldSubmit])
	toast, ok := e.Toast()
	require.True(t, ok)
	assert.Equal(t, models.ToastError, toast.Kind)
	assert.Zero(t, tg.creates)
	assert.Equal(t, validDraft(), e.Draft())

	// resubmission is allowed
	fc.createErr = nil
	_, err = e.Submit(context.Background())
	require.NoError(t, err)
	assert.Empty(t, e.Errors()[FieldSubmit])
}

func TestSubmit_UpdateNotFound(t *testing.T) {
	fc := &fakeClient{updateErr: &client.APIError{Op: client.OpUpdate, Status: 404, Kind: client.ErrNotFound}}
	e := NewEdit(fc, &fakeTarget{}, models.Item{ID: "gone", Name: "a", Category: models.CategoryOther, Supplier: models.SupplierOther}, logging.NewNop())

	_, err := e.Submit(context.Background())
	require.True(t, errors.Is(err, client.ErrNotFound))
	assert.Equal(t, "Component not found", e.Errors()[FieldSubmit])
}

func TestSubmit_RejectsWhileBusy(t *testing.T) {
	fc := &fakeClient{started: make(chan struct{}), gate: make(chan struct{})}
	e := NewCreate(fc, &fakeTarget{}, logging.NewNop())
	e.SetDraft(validDraft())

	errc := make(chan error, 1)
	go func() {
		_, err := e.Submit(context.Background())
		errc <- err
	}()
	<-fc.started

	assert.True(t, e.Busy())
	_, err := e.Submit(context.Background())
	require.ErrorIs(t, err, ErrBusy)

	close(fc.gate)
	require.NoError(t, <-errc)
	assert.False(t, e.Busy())
	assert.Equal(t, 1, fc.callCount)
}
