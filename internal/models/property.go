package models

// PropertyStatus is the listing availability state.
type PropertyStatus string

const (
	StatusForSale PropertyStatus = "for_sale"
	StatusSold    PropertyStatus = "sold"
)

// Property is an immutable snapshot of one catalog listing. Prices are
// whole dollars, size is square feet.
type Property struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Price       int            `json:"price"`
	City        string         `json:"city"`
	Area        string         `json:"area"`
	Rooms       int            `json:"rooms"`
	Baths       int            `json:"baths"`
	Size        int            `json:"size"`
	Description string         `json:"description"`
	Status      PropertyStatus `json:"status"`
	Images      []string       `json:"images"`
	Featured    bool           `json:"featured"`
}
