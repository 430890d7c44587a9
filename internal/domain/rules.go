package domain

// SubcategoryRule is a keyword-triggered grouping inside a category.
type SubcategoryRule struct {
	Key      string   `json:"key"`      // e.g. "dry-food"
	Keywords []string `json:"keywords"` // lowercase
}

// CategoryRule maps a set of keywords to a base route and its subcategories.
// Subcategories are kept in table order; lookups are first-match-wins.
type CategoryRule struct {
	Key           string            `json:"key"`
	Keywords      []string          `json:"keywords"`
	Route         string            `json:"route"`
	Subcategories []SubcategoryRule `json:"subcategories"`
}

// SubcategoryRoute returns the route of a subcategory under this category.
func (c CategoryRule) SubcategoryRoute(subKey string) string {
	return c.Route + "/" + subKey
}

type BrandRule struct {
	Name  string `json:"name"` // lowercase
	Route string `json:"route"`
}
