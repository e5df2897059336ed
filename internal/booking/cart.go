package booking

import (
	"sort"

	"github.com/iliyamo/cinema-storefront/internal/model"
)

// Cart maps product ids to quantities.  A product with quantity zero is
// never stored; every key maps to a value >= 1.
type Cart struct {
	Items map[string]int `json:"items"`
}

// NewCart returns an empty cart.
func NewCart() Cart { return Cart{Items: map[string]int{}} }

// Increment raises the quantity of productID by one, inserting it at 1.
func (c *Cart) Increment(productID string) {
	if c.Items == nil {
		c.Items = map[string]int{}
	}
	c.Items[productID]++
}

// Decrement lowers the quantity of productID by one and drops the key when
// it reaches zero.  Decrementing an absent product is a no-op.
func (c *Cart) Decrement(productID string) {
	q, ok := c.Items[productID]
	if !ok {
		return
	}
	if q <= 1 {
		delete(c.Items, productID)
		return
	}
	c.Items[productID] = q - 1
}

// Quantity returns the quantity of productID, zero when absent.
func (c Cart) Quantity(productID string) int { return c.Items[productID] }

// Len returns the number of distinct products in the cart.
func (c Cart) Len() int { return len(c.Items) }

// Lines returns the cart as product lines sorted by product id.
func (c Cart) Lines() []model.ProductLine {
	ids := make([]string, 0, len(c.Items))
	for id := range c.Items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]model.ProductLine, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.ProductLine{ProductID: id, Quantity: c.Items[id]})
	}
	return out
}

// Total sums price*quantity over the cart.  Products missing from the
// catalog contribute nothing, since the catalog and the cart are fetched
// independently.
func (c Cart) Total(products []model.Product) int64 {
	return linesTotal(c.Lines(), products)
}

func priceIndex(products []model.Product) map[string]int64 {
	m := make(map[string]int64, len(products))
	for _, p := range products {
		m[p.ID] = p.Price
	}
	return m
}

func linesTotal(lines []model.ProductLine, products []model.Product) int64 {
	prices := priceIndex(products)
	var total int64
	for _, l := range lines {
		if p, ok := prices[l.ProductID]; ok {
			total += p * int64(l.Quantity)
		}
	}
	return total
}
