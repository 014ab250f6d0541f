// Package cart holds the shopper's cart and wishlist. Both are plain values
// owned by a session; nothing here touches the network or disk.
package cart

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/elegance/jewelry-catalog/internal/core/domain"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrNotInCart       = errors.New("product is not in the cart")
)

// Snapshot is the product data copied into the cart or wishlist at the time
// it was added.
type Snapshot struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Category string  `json:"category"`
	InStock  bool    `json:"inStock"`
}

// SnapshotOf copies the cart-relevant fields of p.
func SnapshotOf(p domain.Product) Snapshot {
	return Snapshot{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Image:    p.Image,
		Category: p.Category,
		InStock:  p.InStock,
	}
}

// Line is one cart entry. Quantity is always at least 1.
type Line struct {
	Snapshot
	Quantity int `json:"quantity"`
}

// Total is price times quantity.
func (l Line) Total() decimal.Decimal {
	return decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart keeps lines in the order they were first added.
type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{lines: []Line{}}
}

// FromLines rebuilds a cart from persisted lines, merging repeated ids and
// dropping lines without a positive quantity.
func FromLines(lines []Line) *Cart {
	c := New()
	for _, l := range lines {
		if l.ID == "" || l.Quantity < 1 {
			continue
		}
		_ = c.Add(l.Snapshot, l.Quantity)
	}
	return c
}

// Add merges qty units of s into the cart. An existing line keeps its
// snapshot and has its quantity increased.
func (c *Cart) Add(s Snapshot, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	if i := c.index(s.ID); i >= 0 {
		c.lines[i].Quantity += qty
		return nil
	}
	c.lines = append(c.lines, Line{Snapshot: s, Quantity: qty})
	return nil
}

// SetQuantity replaces the quantity of a line; q <= 0 removes it.
func (c *Cart) SetQuantity(id string, q int) error {
	i := c.index(id)
	if i < 0 {
		return ErrNotInCart
	}
	if q <= 0 {
		c.removeAt(i)
		return nil
	}
	c.lines[i].Quantity = q
	return nil
}

// Decrement removes one unit, dropping the line when it reaches zero.
func (c *Cart) Decrement(id string) error {
	i := c.index(id)
	if i < 0 {
		return ErrNotInCart
	}
	return c.SetQuantity(id, c.lines[i].Quantity-1)
}

func (c *Cart) Remove(id string) error {
	i := c.index(id)
	if i < 0 {
		return ErrNotInCart
	}
	c.removeAt(i)
	return nil
}

func (c *Cart) Clear() {
	c.lines = []Line{}
}

// Lines returns a copy of the cart lines.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Quantity returns the units of id in the cart, 0 when absent.
func (c *Cart) Quantity(id string) int {
	if i := c.index(id); i >= 0 {
		return c.lines[i].Quantity
	}
	return 0
}

// Total is the sum of the line totals.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Total())
	}
	return total
}

// Count is the number of units across all lines.
func (c *Cart) Count() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) index(id string) int {
	for i, l := range c.lines {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(i int) {
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
}
