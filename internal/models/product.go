package models

// Product is a catalog entry. The catalog is static and products are never
// mutated after startup.
type Product struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Price           float64  `json:"price"`
	OriginalPrice   float64  `json:"originalPrice,omitempty"` // reference price shown struck-through
	Description     string   `json:"description"`
	LongDescription string   `json:"longDescription"`
	Category        string   `json:"category"`
	Images          []string `json:"images"`
	IsCustomizable  bool     `json:"isCustomizable"`
	Features        []string `json:"features"`
}
