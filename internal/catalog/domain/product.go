package domain

const (
	CategoryService   = "service"
	CategoryEcommerce = "ecommerce"
)

type Category struct {
	ID   int
	Name string
	Type string
}

// Product is a service or part as priced for one specific car; FinalPrice
// already reflects any vehicle-specific pricing the backend applied.
type Product struct {
	ID          int
	Name        string
	Description string
	Image       string
	Price       float64
	FinalPrice  float64
	Type        string
}
