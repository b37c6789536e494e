package catalog

// Product is the typed slice of a catalog product record the gateway
// actually reads (export, detail pages). Unknown fields pass through the
// list views as raw JSON untouched. Timestamps stay strings: the backend
// serializes them without a zone offset.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	ImageURL    string    `json:"imageUrl"`
	Category    *Category `json:"category"`
	CreatedAt   string    `json:"createdAt"`
	UpdatedAt   string    `json:"updatedAt"`
}

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
