// Package editor implements the add/edit component modal: a form draft,
// local validation, and a single outstanding submission at a time.
package editor

import (
	"context"
	"errors"
	"maps"
	"sync"
	"time"

	"github.com/dmitrijs2005/circuitstock/internal/client/client"
	"github.com/dmitrijs2005/circuitstock/internal/client/models"
	"github.com/dmitrijs2005/circuitstock/internal/logging"
)

var (
	// ErrInvalid means the draft failed validation; no call was made.
	ErrInvalid = errors.New("invalid component")
	// ErrBusy rejects a submission while another is outstanding.
	ErrBusy = errors.New("submission in progress")
)

// CloseDelay is how long the editor lingers on its success message.
const CloseDelay = 1500 * time.Millisecond

const defaultToastTTL = 3 * time.Second

// Target is the dashboard the editor reports to.
type Target interface {
	ApplyUpdate(it models.Item)
	AfterCreate(ctx context.Context) error
	Notify(kind models.ToastKind, message string)
}

// Result is a successful submission.
type Result struct {
	Item    models.Item
	Message string
	CloseAt time.Time
}

// Option configures an Editor.
type Option func(*Editor)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Editor) { e.now = now }
}

// WithToastTTL sets how long the editor's own toasts stay visible.
func WithToastTTL(ttl time.Duration) Option {
	return func(e *Editor) { e.toastTTL = ttl }
}

// Editor is one open editor modal, either creating a component or editing
// an existing one.
type Editor struct {
	client   client.Client
	target   Target
	log      logging.Logger
	now      func() time.Time
	toastTTL time.Duration

	// id is empty in create mode.
	id string

	mu    sync.Mutex
	draft Draft
	errs  FieldErrors
	busy  bool
	toast models.Toast
}

// NewCreate opens an empty editor.
func NewCreate(c client.Client, target Target, log logging.Logger, opts ...Option) *Editor {
	return newEditor(c, target, log, "", Draft{}, opts)
}

// NewEdit opens an editor pre-filled with it.
func NewEdit(c client.Client, target Target, it models.Item, log logging.Logger, opts ...Option) *Editor {
	return newEditor(c, target, log, it.ID, DraftFrom(it), opts)
}

func newEditor(c client.Client, target Target, log logging.Logger, id string, d Draft, opts []Option) *Editor {
	e := &Editor{
		client:   c,
		target:   target,
		log:      log,
		now:      time.Now,
		toastTTL: defaultToastTTL,
		id:       id,
		draft:    d,
		errs:     FieldErrors{},
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Editing reports whether the editor updates an existing component.
func (e *Editor) Editing() bool { return e.id != "" }

// ID returns the identifier of the component being edited.
func (e *Editor) ID() string { return e.id }

// Title is the modal heading.
func (e *Editor) Title() string {
	if e.Editing() {
		return "Edit Component"
	}
	return "Add New Component"
}

// SetField updates one field and clears its error.
func (e *Editor) SetField(field, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft.Set(field, value)
	delete(e.errs, field)
}

// SetDraft replaces the whole draft, clearing errors of changed fields.
func (e *Editor) SetDraft(d Draft) {
	e.mu.Lock()
	defer e.mu.Unlock()
	old := e.draft
	e.draft = d
	for _, f := range []struct {
		name     string
		old, new string
	}{
		{FieldName, old.Name, d.Name},
		{FieldCategory, old.Category, d.Category},
		{FieldStock, old.Stock, d.Stock},
		{FieldMinStock, old.MinStock, d.MinStock},
		{FieldSupplier, old.Supplier, d.Supplier},
	} {
		if f.old != f.new {
			delete(e.errs, f.name)
		}
	}
}

// Draft returns the current form content.
func (e *Editor) Draft() Draft {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft
}

// Errors returns a copy of the current field errors.
func (e *Editor) Errors() FieldErrors {
	e.mu.Lock()
	defer e.mu.Unlock()
	return maps.Clone(e.errs)
}

// Busy reports whether a submission is outstanding.
func (e *Editor) Busy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.busy
}

// Toast returns the editor's toast if it is still visible.
func (e *Editor) Toast() (models.Toast, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.toast, e.toast.Visible(e.now())
}

// Submit validates the draft and sends it. Validation failures return
// ErrInvalid without touching the network. On success the target dashboard
// is updated (edit) or reloaded (create). On failure the editor keeps its
// draft and records the reason under FieldSubmit.
func (e *Editor) Submit(ctx context.Context) (Result, error) {
	e.mu.Lock()
	if e.busy {
		e.mu.Unlock()
		return Result{}, ErrBusy
	}
	in, errs := e.draft.Validate()
	if errs != nil {
		e.errs = errs
		e.mu.Unlock()
		return Result{}, ErrInvalid
	}
	e.busy = true
	delete(e.errs, FieldSubmit)
	e.mu.Unlock()

	var (
		it  models.Item
		err error
		op  = client.OpCreate
	)
	if e.Editing() {
		op = client.OpUpdate
		it, err = e.client.UpdateItem(ctx, e.id, in)
	} else {
		it, err = e.client.CreateItem(ctx, in)
	}

	e.mu.Lock()
	e.busy = false
	if err != nil {
		msg := client.Message(op, err)
		e.errs[FieldSubmit] = msg
		e.toast = models.NewToast(models.ToastError, msg, e.now(), e.toastTTL)
		e.mu.Unlock()
		e.log.Warn(ctx, "submit component", "op", op, "id", e.id, "error", err)
		return Result{}, err
	}
	msg := "Component added successfully!"
	if e.Editing() {
		msg = "Component updated successfully!"
	}
	e.toast = models.NewToast(models.ToastSuccess, msg, e.now(), e.toastTTL)
	res := Result{Item: it, Message: msg, CloseAt: e.now().Add(CloseDelay)}
	e.mu.Unlock()

	if e.target != nil {
		if e.Editing() {
			if it.ID == "" {
				it = models.Item{ID: e.id}.WithInput(in)
				res.Item = it
			}
			e.target.ApplyUpdate(it)
		} else if rerr := e.target.AfterCreate(ctx); rerr != nil {
			// the component exists; the dashboard shows its own banner
			e.log.Warn(ctx, "reload after create", "error", rerr)
		}
		e.target.Notify(models.ToastSuccess, msg)
	}
	e.log.Info(ctx, "component saved", "op", op, "id", it.ID)
	return res, nil
}
