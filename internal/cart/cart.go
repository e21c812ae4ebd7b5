// Package cart holds one visitor's shopping cart.
package cart

import (
	"context"
	"strings"

	"github.com/angelmondragon/barakat-storefront/pkg/kv"
	"github.com/angelmondragon/barakat-storefront/pkg/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is the state holder for a visitor's cart lines. It is not safe for
// concurrent use; callers serialise access per visitor.
type Cart struct {
	store     kv.Store
	lines     []Line
	itemCount int
	total     decimal.Decimal
	newID     func() string
}

// Load restores the cart persisted in store. A missing key yields an empty cart.
func Load(ctx context.Context, store kv.Store) (*Cart, error) {
	lines, _, err := kv.GetJSON[[]Line](ctx, store, kv.KeyCart)
	if err != nil {
		return nil, err
	}
	c := &Cart{store: store, newID: uuid.NewString}
	c.apply(lines)
	return c, nil
}

// AddItem merges the candidate into the line with the same product and
// variant, or appends a new line. It returns the resulting line.
func (c *Cart) AddItem(ctx context.Context, input LineInput) (Line, error) {
	input.Variant = strings.TrimSpace(input.Variant)
	if err := validation.Struct(input, "invalid cart item"); err != nil {
		return Line{}, err
	}

	next := c.Items()
	for i := range next {
		if next[i].matches(input.ProductID, input.Variant) {
			next[i].Quantity += input.Quantity
			if err := c.commit(ctx, next); err != nil {
				return Line{}, err
			}
			return next[i], nil
		}
	}

	line := Line{
		ID:        c.newID(),
		ProductID: input.ProductID,
		Name:      input.Name,
		Price:     input.Price,
		Image:     input.Image,
		Quantity:  input.Quantity,
		Variant:   input.Variant,
	}
	next = append(next, line)
	if err := c.commit(ctx, next); err != nil {
		return Line{}, err
	}
	return line, nil
}

// UpdateItemQuantity sets the quantity of a line. A quantity of zero or less
// removes the line; an unknown id is ignored.
func (c *Cart) UpdateItemQuantity(ctx context.Context, lineID string, quantity int) error {
	if quantity <= 0 {
		return c.RemoveItem(ctx, lineID)
	}
	idx := c.indexOf(lineID)
	if idx < 0 {
		return nil
	}
	next := c.Items()
	next[idx].Quantity = quantity
	return c.commit(ctx, next)
}

// RemoveItem deletes a line if present.
func (c *Cart) RemoveItem(ctx context.Context, lineID string) error {
	idx := c.indexOf(lineID)
	if idx < 0 {
		return nil
	}
	next := make([]Line, 0, len(c.lines)-1)
	next = append(next, c.lines[:idx]...)
	next = append(next, c.lines[idx+1:]...)
	return c.commit(ctx, next)
}

func (c *Cart) Clear(ctx context.Context) error {
	return c.commit(ctx, []Line{})
}

// Items returns a copy of the current lines.
func (c *Cart) Items() []Line {
	return append(make([]Line, 0, len(c.lines)), c.lines...)
}

// Snapshot returns a value copy of the lines that later mutations cannot reach.
func (c *Cart) Snapshot() []Line {
	return c.Items()
}

func (c *Cart) ItemCount() int {
	return c.itemCount
}

func (c *Cart) TotalPrice() decimal.Decimal {
	return c.total
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Summary() Summary {
	return Summary{
		Items:      c.Items(),
		ItemCount:  c.itemCount,
		TotalPrice: c.total,
	}
}

func (c *Cart) indexOf(lineID string) int {
	for i, l := range c.lines {
		if l.ID == lineID {
			return i
		}
	}
	return -1
}

// commit persists next and only then makes it the current state.
func (c *Cart) commit(ctx context.Context, next []Line) error {
	if err := kv.SetJSON(ctx, c.store, kv.KeyCart, next); err != nil {
		return err
	}
	c.apply(next)
	return nil
}

func (c *Cart) apply(lines []Line) {
	if lines == nil {
		lines = []Line{}
	}
	count := 0
	total := decimal.Zero
	for _, l := range lines {
		count += l.Quantity
		total = total.Add(l.Subtotal())
	}
	c.lines = lines
	c.itemCount = count
	c.total = total
}
