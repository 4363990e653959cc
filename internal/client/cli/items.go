package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/circuitstock/internal/client/client"
	"github.com/dmitrijs2005/circuitstock/internal/client/dashboard"
	"github.com/dmitrijs2005/circuitstock/internal/client/editor"
	"github.com/dmitrijs2005/circuitstock/internal/client/models"
)

var (
	errLoginRequired = errors.New("login required")
	errCancelled     = errors.New("cancelled")
)

// clearSpecs entered at the specifications prompt empties them.
const clearSpecs = "-"

// Open navigates to path through the route guard and shows the screen.
func (a *App) Open(ctx context.Context, path string) error {
	a.screen = path
	if _, ok := a.enter(ctx); !ok {
		return errLoginRequired
	}
	a.printf("== %s ==\n", a.screen)
	a.render(a.dash.Snapshot(""))
	return nil
}

// List shows the dashboard filtered by query.
func (a *App) List(ctx context.Context, query string) error {
	if _, ok := a.enter(ctx); !ok {
		return errLoginRequired
	}
	a.render(a.dash.Snapshot(query))
	return nil
}

// Stats shows only the summary.
func (a *App) Stats(ctx context.Context) error {
	if _, ok := a.enter(ctx); !ok {
		return errLoginRequired
	}
	snap := a.dash.Snapshot("")
	if snap.Phase != dashboard.PhaseReady {
		a.render(snap)
		return nil
	}
	a.printStats(snap.Stats)
	return nil
}

// Refresh reloads the list. A failure keeps the list and shows a banner.
func (a *App) Refresh(ctx context.Context) error {
	ctx, ok := a.enter(ctx)
	if !ok {
		return errLoginRequired
	}
	err := a.dash.Refresh(ctx)
	if errors.Is(err, dashboard.ErrRefreshInFlight) {
		a.println("Refresh already in progress.")
		return err
	}
	a.render(a.dash.Snapshot(""))
	return err
}

// Retry repeats a failed first load.
func (a *App) Retry(ctx context.Context) error {
	ctx, ok := a.enter(ctx)
	if !ok {
		return errLoginRequired
	}
	err := a.dash.Load(ctx)
	a.render(a.dash.Snapshot(""))
	return err
}

// Add opens the editor for a new component.
func (a *App) Add(ctx context.Context) error {
	ctx, ok := a.enter(ctx)
	if !ok {
		return errLoginRequired
	}
	e := editor.NewCreate(a.client, a.dash, a.log, editor.WithToastTTL(a.config.ToastTimeout))
	return a.runEditor(ctx, e)
}

// Edit opens the editor for the component id.
func (a *App) Edit(ctx context.Context, id string) error {
	ctx, ok := a.enter(ctx)
	if !ok {
		return errLoginRequired
	}
	it, ok := a.dash.Item(id)
	if !ok {
		a.toast(models.ToastError, "Component not found.")
		return client.ErrNotFound
	}
	e := editor.NewEdit(a.client, a.dash, it, a.log, editor.WithToastTTL(a.config.ToastTimeout))
	return a.runEditor(ctx, e)
}

// Delete asks for confirmation and deletes the component id.
func (a *App) Delete(ctx context.Context, id string) error {
	ctx, ok := a.enter(ctx)
	if !ok {
		return errLoginRequired
	}
	it, ok := a.dash.Item(id)
	if !ok {
		a.toast(models.ToastError, "Component not found.")
		return client.ErrNotFound
	}

	confirmed, err := Confirm(a.reader, dashboard.ConfirmDeletePrompt+" ("+it.Name+")", a.out)
	if err != nil {
		return err
	}

	err = a.dash.Delete(ctx, id, confirmed)
	snap := a.dash.Snapshot("")
	switch {
	case errors.Is(err, dashboard.ErrNotConfirmed):
		a.println("Cancelled.")
	case err != nil:
		a.toast(models.ToastError, snap.Banner)
	case snap.Toast != nil:
		a.toast(snap.Toast.Kind, snap.Toast.Message)
	}
	return err
}

// runEditor prompts for the draft and submits it until it succeeds or the
// user gives up. Field values are kept between attempts.
func (a *App) runEditor(ctx context.Context, e *editor.Editor) error {
	a.printf("== %s ==\n", e.Title())
	for {
		d, err := a.promptDraft(e.Draft())
		if err != nil {
			return err
		}
		e.SetDraft(d)

		res, err := e.Submit(ctx)
		if err == nil {
			a.toast(models.ToastSuccess, res.Message)
			return nil
		}

		errs := e.Errors()
		if errors.Is(err, editor.ErrInvalid) {
			for _, f := range []string{editor.FieldName, editor.FieldCategory, editor.FieldStock, editor.FieldMinStock, editor.FieldSupplier} {
				if msg, ok := errs[f]; ok {
					a.printf("  %s: %s\n", f, msg)
				}
			}
		} else {
			a.toast(models.ToastError, errs[editor.FieldSubmit])
		}

		again, cerr := Confirm(a.reader, "Edit and submit again?", a.out)
		if cerr != nil || !again {
			a.println("Cancelled.")
			return errCancelled
		}
	}
}

func (a *App) promptDraft(d editor.Draft) (editor.Draft, error) {
	var err error
	if d.Name, err = GetWithDefault(a.reader, "Component name", d.Name, a.out); err != nil {
		return d, err
	}
	if d.Category, err = GetChoice(a.reader, "Category", categoryNames(), d.Category, a.out); err != nil {
		return d, err
	}
	if d.Stock, err = GetWithDefault(a.reader, "Stock quantity", d.Stock, a.out); err != nil {
		return d, err
	}
	if d.MinStock, err = GetWithDefault(a.reader, "Minimum stock", d.MinStock, a.out); err != nil {
		return d, err
	}

	prompt := "Specifications (optional, markdown)"
	if d.Specifications != "" {
		prompt += ", empty keeps the current text, " + clearSpecs + " clears it"
	}
	specs, err := GetMultiline(a.reader, prompt, a.out)
	if err != nil {
		return d, err
	}
	switch specs {
	case "":
	case clearSpecs:
		d.Specifications = ""
	default:
		d.Specifications = specs
	}

	if d.Supplier, err = GetChoice(a.reader, "Supplier", supplierNames(), d.Supplier, a.out); err != nil {
		return d, err
	}
	return d, nil
}

func categoryNames() []string {
	out := make([]string, len(models.Categories))
	for i, c := range models.Categories {
		out[i] = string(c)
	}
	return out
}

func supplierNames() []string {
	out := make([]string, len(models.Suppliers))
	for i, s := range models.Suppliers {
		out[i] = string(s)
	}
	return out
}

// render prints a dashboard snapshot.
func (a *App) render(snap dashboard.Snapshot) {
	switch snap.Phase {
	case dashboard.PhaseLoading:
		a.println("Loading electronics...")
		return
	case dashboard.PhaseError:
		a.toast(models.ToastError, snap.Error)
		a.println("Type 'retry' to try again.")
		return
	}

	if snap.Banner != "" {
		a.println("! " + snap.Banner)
	}
	a.printStats(snap.Stats)
	if snap.Empty != "" {
		a.println(snap.Empty)
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	_, _ = tw.Write([]byte("ID\tNAME\tCATEGORY\tSTOCK\tMIN\tSTATUS\tSUPPLIER\tSPECIFICATIONS\n"))
	for _, it := range snap.Items {
		specs := strings.ReplaceAll(it.Specifications, "\n", " ")
		if strings.TrimSpace(specs) == "" {
			specs = "N/A"
		}
		_, _ = tw.Write([]byte(strings.Join([]string{
			it.ID, it.Name, string(it.Category), strconv.Itoa(it.Stock), strconv.Itoa(it.MinStock),
			it.StockStatus(), string(it.Supplier), specs,
		}, "\t") + "\n"))
	}
	_ = tw.Flush()
}

func (a *App) printStats(st dashboard.Stats) {
	a.printf("Total Components: %d | Total Stock: %d | Low Stock Items: %d | Microcontrollers: %d\n",
		st.Total, st.TotalStock, st.LowStock, st.Microcontrollers)
}

func (a *App) toast(kind models.ToastKind, msg string) {
	if msg == "" {
		return
	}
	mark := "✔"
	if kind == models.ToastError {
		mark = "✖"
	}
	a.println(mark + " " + msg)
}
