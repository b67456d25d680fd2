// Package cart implements the in-memory cart ledger: an ordered list of
// distinguishable line items with derived totals. A line is identified by
// its product plus the exact set of selected option values, so the same
// product configured differently occupies separate lines.
package cart

import (
	"maps"

	"github.com/online-catalog/backend/internal/catalog"
	"github.com/online-catalog/backend/internal/models"
	"github.com/shopspring/decimal"
)

// Line is one cart entry. Product is a snapshot copied at add time; later
// catalog edits do not change what is already in the cart.
type Line struct {
	Key             string            `json:"key"`
	Product         models.Product    `json:"product"`
	Quantity        int               `json:"quantity"`
	SelectedOptions map[string]string `json:"selectedOptions,omitempty"`
}

// Ledger accumulates cart lines in insertion order. It is not safe for
// concurrent use on its own; Store serializes access per session.
type Ledger struct {
	lines []Line
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Add puts quantity units of the product with the given option selection
// into the ledger. Quantities below 1 clamp to 1. When a line with the same
// product and the same selection already exists the quantities are summed,
// otherwise a new line is appended. The resulting line is returned.
func (l *Ledger) Add(p models.Product, quantity int, selected map[string]string) Line {
	if quantity < 1 {
		quantity = 1
	}

	for i := range l.lines {
		if l.lines[i].Product.ID == p.ID && OptionsEqual(l.lines[i].SelectedOptions, selected) {
			l.lines[i].Quantity += quantity
			return l.lines[i]
		}
	}

	line := Line{
		Key:             LineKey(p.ID, selected),
		Product:         p,
		Quantity:        quantity,
		SelectedOptions: maps.Clone(selected),
	}
	l.lines = append(l.lines, line)
	return line
}

// Remove deletes the line with the given key outright, regardless of its
// quantity. Unknown keys are ignored.
func (l *Ledger) Remove(key string) {
	for i := range l.lines {
		if l.lines[i].Key == key {
			l.lines = append(l.lines[:i], l.lines[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets a line's quantity exactly. Values below 1 leave the
// line unchanged; removal is an explicit operation, never a decrement side
// effect. Unknown keys are ignored.
func (l *Ledger) UpdateQuantity(key string, quantity int) {
	if quantity < 1 {
		return
	}
	for i := range l.lines {
		if l.lines[i].Key == key {
			l.lines[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the ledger unconditionally.
func (l *Ledger) Clear() {
	l.lines = nil
}

// Lines returns a copy of the lines in insertion order of first occurrence.
func (l *Ledger) Lines() []Line {
	out := make([]Line, len(l.lines))
	copy(out, l.lines)
	return out
}

// TotalItems is the sum of all line quantities.
func (l *Ledger) TotalItems() int {
	total := 0
	for _, line := range l.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice is the sum over lines of quantity times parsed unit price.
// An empty ledger totals zero.
func (l *Ledger) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, line := range l.lines {
		unit := catalog.ParsePrice(line.Product.Price)
		total = total.Add(unit.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}
