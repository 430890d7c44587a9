package domain

// Product is a customer-facing product record as returned by the catalog API.
// Only the fields used for search are decoded.
type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Subcategory string `json:"subcategory,omitempty"`
	Type        string `json:"type,omitempty"` // Dog, Cat, Pharmacy, Outlet
}
