// Package order accumulates the menu items a customer has picked.
package order

import (
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/temporalio/temporal-restaurant/api"
)

var ErrIndexOutOfRange = errors.New("index out of range")

// Order is the in-progress selection. The same item may appear more than once;
// each occurrence is one unit. Safe for concurrent use.
type Order struct {
	mu    sync.RWMutex
	items []api.MenuItem
}

func New() *Order {
	return &Order{}
}

func (o *Order) Add(item api.MenuItem) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.items = append(o.items, item)
}

// Items returns a copy of the current selection.
func (o *Order) Items() []api.MenuItem {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return append([]api.MenuItem{}, o.items...)
}

func (o *Order) Remove(at int) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if at < 0 || at >= len(o.items) {
		return fmt.Errorf("remove item %d of %d: %w", at, len(o.items), ErrIndexOutOfRange)
	}
	o.items = append(o.items[:at], o.items[at+1:]...)

	return nil
}

func (o *Order) Clear() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.items = nil
}

// Drop removes the first n items, or all of them if fewer remain. Items added
// after the first n are kept.
func (o *Order) Drop(n int) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if n >= len(o.items) {
		o.items = nil
		return
	}
	if n > 0 {
		o.items = append([]api.MenuItem{}, o.items[n:]...)
	}
}

func (o *Order) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return len(o.items)
}

// IDs returns the identifiers of the selected items, in order, as sent to
// the server.
func (o *Order) IDs() []int {
	o.mu.RLock()
	defer o.mu.RUnlock()

	ids := make([]int, 0, len(o.items))
	for _, item := range o.items {
		ids = append(ids, item.ID)
	}
	return ids
}

// Total sums prices in decimal so that repeated additions do not drift.
func (o *Order) Total() decimal.Decimal {
	o.mu.RLock()
	defer o.mu.RUnlock()

	total := decimal.Zero
	for _, item := range o.items {
		total = total.Add(decimal.NewFromFloat(item.Price))
	}
	return total
}

// FormatPrice renders a price the way the menu shows it, e.g. "$9.00".
func FormatPrice(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
