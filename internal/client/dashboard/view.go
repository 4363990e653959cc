package dashboard

import (
	"fmt"
	"slices"

	"github.com/dmitrijs2005/circuitstock/internal/client/models"
)

// Stats are the summary cards above the table.
type Stats struct {
	Total            int
	TotalStock       int
	LowStock         int
	Microcontrollers int
}

// ComputeStats derives the summary of items.
func ComputeStats(items []models.Item) Stats {
	st := Stats{Total: len(items)}
	for _, it := range items {
		st.TotalStock += it.Stock
		if it.LowStock() {
			st.LowStock++
		}
		if it.Category == models.CategoryMicrocontroller {
			st.Microcontrollers++
		}
	}
	return st
}

// Filter returns the items matching query, in list order. items is not
// modified.
func Filter(items []models.Item, query string) []models.Item {
	out := make([]models.Item, 0, len(items))
	for _, it := range items {
		if it.Matches(query) {
			out = append(out, it)
		}
	}
	return out
}

// EmptyInventory is shown when there is nothing to list and no search.
const EmptyInventory = "No components in inventory"

// EmptySearch is shown when a search matches nothing.
func EmptySearch(query string) string {
	return fmt.Sprintf("No components found matching %q", query)
}

// Snapshot is a consistent, read-only view of the screen.
type Snapshot struct {
	Phase      Phase
	Error      string
	Banner     string
	Toast      *models.Toast
	Refreshing bool
	Query      string
	Stats      Stats
	Items      []models.Item
	// Empty is the empty-state text when Items is empty, "" otherwise.
	Empty string
}

// Items returns a copy of the full list.
func (d *Dashboard) Items() []models.Item {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.items)
}

// Stats computes the summary over the full list.
func (d *Dashboard) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return ComputeStats(d.items)
}

// Phase returns the current load state.
func (d *Dashboard) Phase() Phase {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.phase
}

// Snapshot returns the screen filtered by query. Stats always cover the
// full list.
func (d *Dashboard) Snapshot(query string) Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	snap := Snapshot{
		Phase:      d.phase,
		Error:      d.loadErr,
		Banner:     d.banner,
		Refreshing: d.refreshing,
		Query:      query,
		Stats:      ComputeStats(d.items),
		Items:      Filter(d.items, query),
	}
	if d.toast.Visible(d.now()) {
		t := d.toast
		snap.Toast = &t
	}
	if len(snap.Items) == 0 {
		if query == "" {
			snap.Empty = EmptyInventory
		} else {
			snap.Empty = EmptySearch(query)
		}
	}
	return snap
}
