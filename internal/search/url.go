package search

import (
	"net/url"
	"strings"

	"storefront/search/internal/domain"
)

// BuildURL assembles the final relative URL for a suggestion. Brand, category
// and subcategory pages are addressed by route alone; everything else carries
// the trimmed query as a search parameter.
func BuildURL(s domain.NavigationSuggestion) string {
	if s.Kind.UsesRouteVerbatim() {
		return s.Route
	}

	q := strings.TrimSpace(s.Query)
	if q == "" {
		return s.Route
	}

	params := url.Values{}
	params.Set("search", q)
	return s.Route + "?" + params.Encode()
}
