package domain

const (
	ProductTypeService   = "service"
	ProductTypeEcommerce = "ecommerce"
)

type Item struct {
	CartItemID  int
	ProductID   int
	Name        string
	Image       string
	UnitPrice   float64
	Quantity    int
	ProductType string
	ItemTotal   float64
}

// WithQuantity returns the item at a new quantity with ItemTotal
// recomputed; line totals are never patched by hand.
func (i Item) WithQuantity(q int) Item {
	i.Quantity = q
	i.ItemTotal = i.UnitPrice * float64(q)
	return i
}

// Total is always derived from the lines so it cannot drift from them.
func Total(items []Item) float64 {
	var sum float64
	for _, it := range items {
		sum += it.UnitPrice * float64(it.Quantity)
	}
	return sum
}
