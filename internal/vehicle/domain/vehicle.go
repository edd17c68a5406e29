package domain

// Vehicle is a user's registered car. AdminCarID is the catalog-side car
// identity every product and service query is scoped by.
type Vehicle struct {
	ID           int
	AdminCarID   int
	Brand        string
	Model        string
	PlateNumber  string
	FuelType     string
	Transmission string
}

type Brand struct {
	ID   int
	Name string
}

type Model struct {
	ID   int
	Name string
}
