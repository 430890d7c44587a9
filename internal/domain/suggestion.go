package domain

type Kind string

func (k Kind) String() string {
	return string(k)
}

const (
	KindBrand       Kind = "brand"
	KindSubcategory Kind = "subcategory"
	KindCategory    Kind = "category"
	KindProduct     Kind = "product"
	KindPetType     Kind = "pet-type"
	KindGeneral     Kind = "general"
)

// UsesRouteVerbatim reports whether URLs for this kind carry no search parameter.
func (k Kind) UsesRouteVerbatim() bool {
	switch k {
	case KindBrand, KindSubcategory, KindCategory:
		return true
	default:
		return false
	}
}

// NavigationSuggestion is the classifier's verdict for one query.
type NavigationSuggestion struct {
	Kind          Kind     `json:"type"`
	Route         string   `json:"route"`
	MatchedQuery  string   `json:"query"`          // lowercased, trimmed
	Query         string   `json:"rawQuery"`       // trimmed, original case
	Category      string   `json:"category,omitempty"`
	Subcategory   string   `json:"subcategory,omitempty"`
	Brand         string   `json:"brand,omitempty"`
	PetType       string   `json:"petType,omitempty"`
	Product       *Product `json:"product,omitempty"`
	FallbackRoute string   `json:"fallbackRoute,omitempty"`
}

// Suggestion is a single autocomplete entry.
type Suggestion struct {
	Text        string   `json:"text"`
	Kind        Kind     `json:"type"`
	Category    string   `json:"category,omitempty"`
	Subcategory string   `json:"subcategory,omitempty"`
	Route       string   `json:"route"`
	Product     *Product `json:"product,omitempty"`
}
