package cart

import "github.com/shopspring/decimal"

// Item is a line of a cart. Name, Price and Image are copied from the
// request when the line is first added and are not refreshed afterwards.
type Item struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Variant   string          `json:"variant"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
	Image     string          `json:"image"`
}

func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}

type Cart struct {
	CartID      string          `json:"cartId"`
	Items       []Item          `json:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// New returns an empty cart for cartID. It is not persisted.
func New(cartID string) *Cart {
	return &Cart{
		CartID:      cartID,
		Items:       []Item{},
		TotalAmount: decimal.Zero,
	}
}

// Find returns the index of the line matching productID and variant, or -1.
func (c *Cart) Find(productID, variant string) int {
	for i, item := range c.Items {
		if item.ProductID == productID && item.Variant == variant {
			return i
		}
	}
	return -1
}

// RemoveAt drops the line at idx keeping the order of the remaining lines.
func (c *Cart) RemoveAt(idx int) {
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
}

// Remove drops every line matching productID and variant and reports
// whether anything was removed.
func (c *Cart) Remove(productID, variant string) bool {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ProductID == productID && item.Variant == variant {
			continue
		}
		kept = append(kept, item)
	}
	removed := len(kept) != len(c.Items)
	c.Items = kept
	return removed
}

// Recalculate sets TotalAmount to the sum of every line's subtotal.
func (c *Cart) Recalculate() {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	c.TotalAmount = total
}

func (c *Cart) Clone() *Cart {
	cloned := &Cart{
		CartID:      c.CartID,
		Items:       make([]Item, len(c.Items)),
		TotalAmount: c.TotalAmount,
	}
	copy(cloned.Items, c.Items)
	return cloned
}
