package search

import (
	"strings"

	"storefront/search/internal/domain"

	"github.com/gosimple/slug"
)

// ProductCategoryRoute derives the listing page a product belongs to. It is
// used as the fallback when a product detail page cannot be shown.
//
// With both category and subcategory present the product is placed under
// the matching category rule; otherwise the section of its pet type is used.
func ProductCategoryRoute(p domain.Product) string {
	base, ok := typeRoutes[strings.ToLower(strings.TrimSpace(p.Type))]
	if !ok {
		base = DefaultRoute
	}

	category := slug.Make(p.Category)
	sub := slug.Make(p.Subcategory)
	if category == "" || sub == "" {
		return base
	}

	if rule, ok := ruleForCategorySlug(category, base); ok {
		return rule.SubcategoryRoute(sub)
	}
	return base
}

// ruleForCategorySlug looks at the rules under section first, then at all
// rules. Within each pass it prefers a rule whose route already names the
// category ("cat-food" -> /shop-for-cats/cat-food), then one whose key tail
// appears in it ("dog-food" matches "food").
func ruleForCategorySlug(category, section string) (domain.CategoryRule, bool) {
	var inSection []domain.CategoryRule
	for _, c := range Categories {
		if strings.HasPrefix(c.Route, section+"/") {
			inSection = append(inSection, c)
		}
	}

	for _, rules := range [][]domain.CategoryRule{inSection, Categories} {
		for _, c := range rules {
			if strings.Contains(c.Route, category) {
				return c, true
			}
		}
		for _, c := range rules {
			if strings.Contains(category, keyTail(c.Key)) {
				return c, true
			}
		}
	}
	return domain.CategoryRule{}, false
}

// keyTail returns the part after the first hyphen, or the key itself.
func keyTail(key string) string {
	parts := strings.Split(key, "-")
	if len(parts) > 1 && parts[1] != "" {
		return parts[1]
	}
	return key
}
