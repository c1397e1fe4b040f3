// Package cart holds the shopping cart aggregate and the session store that
// owns one cart per browser session.
package cart

import (
	"encoding/json"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/lumiere-api/utils"
)

// MaxQuantity caps a single line. Larger requests are clamped.
const MaxQuantity = 99

// TaxRate is applied to the subtotal.
var TaxRate = decimal.RequireFromString("0.05")

// Item is what gets added: a catalog entry as seen at add time.
type Item struct {
	ID    uint
	Name  string
	Price float64
	Image string
}

type Line struct {
	ItemID   uint    `json:"itemId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image,omitempty"`
	Quantity int     `json:"quantity"`
}

// Cart is not safe for concurrent use; Store serialises access.
type Cart struct {
	lines map[uint]*Line
}

func New() *Cart {
	return &Cart{lines: make(map[uint]*Line)}
}

// Add bumps the quantity of an existing line, up to MaxQuantity, or
// inserts a new one at 1.
func (c *Cart) Add(item Item) {
	if l, ok := c.lines[item.ID]; ok {
		if l.Quantity < MaxQuantity {
			l.Quantity++
		}
		return
	}
	c.lines[item.ID] = &Line{
		ItemID:   item.ID,
		Name:     item.Name,
		Price:    item.Price,
		Image:    item.Image,
		Quantity: 1,
	}
}

// Remove drops the line whatever its quantity. It reports whether the line
// was present.
func (c *Cart) Remove(itemID uint) bool {
	if _, ok := c.lines[itemID]; !ok {
		return false
	}
	delete(c.lines, itemID)
	return true
}

// SetQuantity clamps q into [1, MaxQuantity]. A line is never removed here.
func (c *Cart) SetQuantity(itemID uint, q int) bool {
	l, ok := c.lines[itemID]
	if !ok {
		return false
	}
	switch {
	case q < 1:
		q = 1
	case q > MaxQuantity:
		q = MaxQuantity
	}
	l.Quantity = q
	return true
}

func (c *Cart) Clear() {
	c.lines = make(map[uint]*Line)
}

func (c *Cart) Len() int { return len(c.lines) }

func (c *Cart) Line(itemID uint) (Line, bool) {
	l, ok := c.lines[itemID]
	if !ok {
		return Line{}, false
	}
	return *l, true
}

// Lines returns copies ordered by item id.
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.lines))
	for _, l := range c.lines {
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out
}

func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.lines {
		sum = sum.Add(utils.Price(l.Price).Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum
}

func (c *Cart) Tax() decimal.Decimal {
	return c.Subtotal().Mul(TaxRate)
}

func (c *Cart) Total() decimal.Decimal {
	sub := c.Subtotal()
	return sub.Add(sub.Mul(TaxRate))
}

func (c *Cart) Snapshot() Snapshot {
	sub := c.Subtotal()
	tax := sub.Mul(TaxRate)
	return Snapshot{
		Lines:     c.Lines(),
		ItemCount: c.ItemCount(),
		Subtotal:  sub,
		Tax:       tax,
		Total:     sub.Add(tax),
	}
}

// Snapshot is a read-only copy of a cart with its totals.
type Snapshot struct {
	Lines     []Line
	ItemCount int
	Subtotal  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
}

func (s Snapshot) IsEmpty() bool { return len(s.Lines) == 0 }

func (s Snapshot) MarshalJSON() ([]byte, error) {
	lines := s.Lines
	if lines == nil {
		lines = []Line{}
	}
	return json.Marshal(struct {
		Items     []Line  `json:"items"`
		ItemCount int     `json:"itemCount"`
		Subtotal  float64 `json:"subtotal"`
		Tax       float64 `json:"tax"`
		Total     float64 `json:"total"`
	}{
		Items:     lines,
		ItemCount: s.ItemCount,
		Subtotal:  utils.Money(s.Subtotal),
		Tax:       utils.Money(s.Tax),
		Total:     utils.Money(s.Total),
	})
}
