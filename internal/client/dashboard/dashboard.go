// Package dashboard holds the state of the inventory dashboard screen:
// the component list, its load lifecycle, derived statistics, search, and
// the delete workflow. It is front-end neutral; the web and terminal
// clients render Snapshot.
package dashboard

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/circuitstock/internal/client/client"
	"github.com/dmitrijs2005/circuitstock/internal/client/models"
	"github.com/dmitrijs2005/circuitstock/internal/logging"
)

// Phase is the load state of the screen.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseError
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseReady:
		return "ready"
	default:
		return "unknown"
	}
}

var (
	// ErrNotConfirmed is returned by Delete when the user has not confirmed.
	ErrNotConfirmed = errors.New("delete not confirmed")
	// ErrRefreshInFlight rejects a refresh while another one is running.
	ErrRefreshInFlight = errors.New("refresh already in progress")
	// ErrClosed is returned by operations on a closed dashboard.
	ErrClosed = errors.New("dashboard closed")
)

// ConfirmDeletePrompt is the question put to the user before a delete.
const ConfirmDeletePrompt = "Are you sure you want to delete this component?"

const defaultToastTTL = 3 * time.Second

// Option configures a Dashboard.
type Option func(*Dashboard)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(d *Dashboard) { d.now = now }
}

// WithToastTTL sets how long toasts stay visible.
func WithToastTTL(ttl time.Duration) Option {
	return func(d *Dashboard) { d.toastTTL = ttl }
}

// Dashboard is one mounted dashboard screen. All state changes happen under
// mu, which is never held across a call to the service.
type Dashboard struct {
	client   client.Client
	log      logging.Logger
	now      func() time.Time
	toastTTL time.Duration

	mu         sync.Mutex
	phase      Phase
	items      []models.Item
	loadErr    string
	banner     string
	toast      models.Toast
	refreshing bool
	// gen changes on every local mutation; a fetch started under an older
	// gen is stale and its result is dropped.
	gen      uint64
	closed   bool
	lastUsed time.Time
}

// New returns a dashboard in the loading phase. Call Load to populate it.
func New(c client.Client, log logging.Logger, opts ...Option) *Dashboard {
	d := &Dashboard{
		client:   c,
		log:      log,
		now:      time.Now,
		toastTTL: defaultToastTTL,
		phase:    PhaseLoading,
	}
	for _, o := range opts {
		o(d)
	}
	d.lastUsed = d.now()
	return d
}

// Load performs the initial fetch, or a retry from the error phase. On a
// ready dashboard it behaves like Refresh.
func (d *Dashboard) Load(ctx context.Context) error {
	d.mu.Lock()
	if d.phase == PhaseReady {
		d.mu.Unlock()
		return d.Refresh(ctx)
	}
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	if d.refreshing {
		d.mu.Unlock()
		return ErrRefreshInFlight
	}
	d.phase = PhaseLoading
	d.loadErr = ""
	d.refreshing = true
	gen := d.gen
	d.mu.Unlock()

	items, err := d.client.ListItems(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.refreshing = false
	if d.closed {
		return ErrClosed
	}
	if err != nil {
		if d.phase == PhaseReady {
			// a reload after a local mutation already settled the screen
			d.log.Warn(ctx, "discarding stale inventory load failure", "error", err)
			return nil
		}
		d.phase = PhaseError
		d.loadErr = client.Message(client.OpList, err)
		d.log.Error(ctx, "load inventory", "error", err)
		return err
	}
	if gen != d.gen && d.phase == PhaseReady {
		d.log.Warn(ctx, "discarding stale inventory load", "started_gen", gen, "current_gen", d.gen)
		return nil
	}
	d.items = items
	d.loadErr = ""
	d.phase = PhaseReady
	d.log.Debug(ctx, "inventory loaded", "items", len(items))
	return nil
}

// Refresh refetches the list without clearing it. A failure keeps the last
// known list and raises a dismissible banner. A refresh started before a
// local mutation is discarded when it completes.
func (d *Dashboard) Refresh(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	if d.phase != PhaseReady {
		d.mu.Unlock()
		return d.Load(ctx)
	}
	if d.refreshing {
		d.mu.Unlock()
		return ErrRefreshInFlight
	}
	d.refreshing = true
	d.banner = ""
	gen := d.gen
	d.mu.Unlock()

	items, err := d.client.ListItems(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.refreshing = false
	if d.closed {
		return ErrClosed
	}
	if err != nil {
		d.banner = client.Message(client.OpList, err)
		d.log.Warn(ctx, "refresh inventory", "error", err)
		return err
	}
	if gen != d.gen {
		d.log.Warn(ctx, "discarding stale inventory refresh", "started_gen", gen, "current_gen", d.gen)
		return nil
	}
	d.items = items
	return nil
}

// Delete removes the component with id after the user has confirmed.
// On failure the list is unchanged and a banner shows the reason.
func (d *Dashboard) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	d.mu.Unlock()

	err := d.client.DeleteItem(ctx, id)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	if err != nil {
		d.banner = client.Message(client.OpDelete, err)
		d.log.Warn(ctx, "delete component", "id", id, "error", err)
		return err
	}
	d.items = slices.DeleteFunc(slices.Clone(d.items), func(it models.Item) bool { return it.ID == id })
	d.gen++
	d.toast = models.NewToast(models.ToastSuccess, "Component deleted successfully.", d.now(), d.toastTTL)
	d.log.Info(ctx, "component deleted", "id", id)
	return nil
}

// ApplyUpdate replaces the component with the same id in place. Unknown ids
// are ignored.
func (d *Dashboard) ApplyUpdate(it models.Item) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	i := slices.IndexFunc(d.items, func(x models.Item) bool { return x.ID == it.ID })
	if i < 0 {
		return
	}
	items := slices.Clone(d.items)
	items[i] = it
	d.items = items
	d.gen++
}

// AfterCreate reloads the list so the new component shows with the
// identifier the service assigned. It bypasses the in-flight guard; any
// refresh already running is made stale and its result dropped.
func (d *Dashboard) AfterCreate(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	d.gen++
	gen := d.gen
	d.mu.Unlock()

	items, err := d.client.ListItems(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	if err != nil {
		d.banner = client.Message(client.OpList, err)
		d.log.Warn(ctx, "reload after create", "error", err)
		return err
	}
	if gen != d.gen {
		d.log.Warn(ctx, "discarding stale inventory reload")
		return nil
	}
	d.items = items
	d.phase = PhaseReady
	return nil
}

// Item returns the component with id from the current list.
func (d *Dashboard) Item(id string) (models.Item, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := slices.IndexFunc(d.items, func(x models.Item) bool { return x.ID == id })
	if i < 0 {
		return models.Item{}, false
	}
	return d.items[i], true
}

// Notify raises a toast, e.g. for an editor outcome.
func (d *Dashboard) Notify(kind models.ToastKind, message string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.toast = models.NewToast(kind, message, d.now(), d.toastTTL)
}

// DismissBanner hides the refresh/delete error banner.
func (d *Dashboard) DismissBanner() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.banner = ""
}

// Close unmounts the dashboard. Results of calls still in flight are
// dropped.
func (d *Dashboard) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
}

// Touch records activity at the current time.
func (d *Dashboard) Touch() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastUsed = d.now()
}

// IdleSince reports when the dashboard was last touched.
func (d *Dashboard) IdleSince() time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastUsed
}
