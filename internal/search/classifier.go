// Package search turns free-text storefront queries into navigation targets.
//
// Classification is a pure function over the query, an optional product list
// and the static rule tables in rules.go. It never performs I/O; fetching
// products is the caller's business (see ShouldFetchProducts).
package search

import (
	"strconv"
	"strings"

	"storefront/search/internal/domain"
)

// Normalize lowercases and trims a raw query.
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Classify resolves query to the most specific navigation target. Rules are
// tried in a fixed priority order and the first match wins: brand, exact
// subcategory, category keywords, product name, pet type, general search.
//
// products may be nil; the product-name pass is skipped in that case.
func Classify(query string, products []domain.Product) domain.NavigationSuggestion {
	raw := strings.TrimSpace(query)
	normalized := Normalize(query)

	if normalized == "" {
		return domain.NavigationSuggestion{
			Kind:  domain.KindGeneral,
			Route: DefaultRoute,
		}
	}

	if s, ok := matchBrand(normalized); ok {
		return s.withQuery(normalized, raw)
	}
	if s, ok := matchExactSubcategory(normalized); ok {
		return s.withQuery(normalized, raw)
	}
	if s, ok := matchCategoryKeywords(normalized); ok {
		return s.withQuery(normalized, raw)
	}
	if s, ok := matchProduct(normalized, products); ok {
		return s.withQuery(normalized, raw)
	}
	if s, ok := matchPetType(normalized); ok {
		return s.withQuery(normalized, raw)
	}

	return suggestion{
		Kind:  domain.KindGeneral,
		Route: DefaultRoute,
	}.withQuery(normalized, raw)
}

type suggestion domain.NavigationSuggestion

func (s suggestion) withQuery(normalized, raw string) domain.NavigationSuggestion {
	s.MatchedQuery = normalized
	s.Query = raw
	return domain.NavigationSuggestion(s)
}

func matchBrand(q string) (suggestion, bool) {
	for _, b := range Brands {
		if strings.Contains(q, b.Name) {
			return suggestion{Kind: domain.KindBrand, Route: b.Route, Brand: b.Name}, true
		}
	}
	return suggestion{}, false
}

// matchExactSubcategory runs before the keyword pass so that precise
// subcategory names ("dry food") outrank broad category keywords.
func matchExactSubcategory(q string) (suggestion, bool) {
	for _, c := range Categories {
		for _, sub := range c.Subcategories {
			phrase := subcategoryPhrase(sub.Key)
			if q == phrase || strings.Contains(q, phrase) || equalsAny(q, sub.Keywords) {
				return subcategorySuggestion(c, sub), true
			}
		}
	}
	return suggestion{}, false
}

// matchCategoryKeywords only considers the first category whose keywords hit.
func matchCategoryKeywords(q string) (suggestion, bool) {
	for _, c := range Categories {
		if !containsAny(q, c.Keywords) {
			continue
		}
		for _, sub := range c.Subcategories {
			if containsAny(q, sub.Keywords) {
				return subcategorySuggestion(c, sub), true
			}
		}
		return suggestion{Kind: domain.KindCategory, Route: c.Route, Category: c.Key}, true
	}
	return suggestion{}, false
}

func matchProduct(q string, products []domain.Product) (suggestion, bool) {
	for i := range products {
		p := products[i]
		if p.Name == "" || !strings.Contains(strings.ToLower(p.Name), q) {
			continue
		}
		return suggestion{
			Kind:          domain.KindProduct,
			Route:         ProductRoute(p),
			FallbackRoute: ProductCategoryRoute(p),
			Product:       &p,
		}, true
	}
	return suggestion{}, false
}

func matchPetType(q string) (suggestion, bool) {
	switch {
	case strings.Contains(q, "dog") || strings.Contains(q, "puppy"):
		return suggestion{Kind: domain.KindPetType, Route: dogsRoute, PetType: "dog"}, true
	case strings.Contains(q, "cat") || strings.Contains(q, "kitten"):
		return suggestion{Kind: domain.KindPetType, Route: catsRoute, PetType: "cat"}, true
	}
	return suggestion{}, false
}

func subcategorySuggestion(c domain.CategoryRule, sub domain.SubcategoryRule) suggestion {
	return suggestion{
		Kind:        domain.KindSubcategory,
		Route:       c.SubcategoryRoute(sub.Key),
		Category:    c.Key,
		Subcategory: sub.Key,
	}
}

// ProductRoute is the detail page of a product.
func ProductRoute(p domain.Product) string {
	return productDetailsRoute + strconv.FormatInt(p.ID, 10)
}

// subcategoryPhrase turns "dry-food" into "dry food".
func subcategoryPhrase(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "-", " ")
}

func containsAny(q string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(q, k) {
			return true
		}
	}
	return false
}

func equalsAny(q string, keywords []string) bool {
	for _, k := range keywords {
		if q == strings.ToLower(k) {
			return true
		}
	}
	return false
}
