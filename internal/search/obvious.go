package search

import "strings"

// minFetchQueryLen is the shortest trimmed query worth a catalog fetch.
const minFetchQueryLen = 3

// IsObviousCategorySearch reports whether query contains one of the generic
// pet/category words. Such queries resolve through the rule tables, so the
// product-name pass of Classify is never needed for them.
func IsObviousCategorySearch(query string) bool {
	q := strings.ToLower(query)
	for _, w := range obviousCategoryWords {
		if strings.Contains(q, w) {
			return true
		}
	}
	return false
}

// ShouldFetchProducts reports whether a caller should fetch the product
// catalog before calling Classify. When it returns false the product pass is
// unreachable for query.
func ShouldFetchProducts(query string) bool {
	trimmed := strings.TrimSpace(query)
	return len(trimmed) >= minFetchQueryLen && !IsObviousCategorySearch(trimmed)
}
