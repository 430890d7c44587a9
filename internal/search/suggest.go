package search

import (
	"math"
	"sort"
	"strings"

	"storefront/search/internal/domain"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// MaxSuggestions caps the autocomplete list.
	MaxSuggestions = 8
	// MinSuggestQueryLen is the shortest query that produces suggestions.
	MinSuggestQueryLen = 2

	maxProductSuggestions = 3
)

// Suggest builds the autocomplete list for a partial query. Entries are
// gathered as subcategories, up to three products, category keywords and
// brands, then ranked: exact text matches first, then by how early the query
// occurs in the text. Texts that do not contain the query at all (a
// subcategory found through one of its keywords) rank after those that do.
func Suggest(partial string, products []domain.Product) []domain.Suggestion {
	q := Normalize(partial)
	if len([]rune(q)) < MinSuggestQueryLen {
		return []domain.Suggestion{}
	}

	var out []domain.Suggestion
	seen := make(map[string]struct{})
	add := func(s domain.Suggestion, dedupe bool) {
		if dedupe {
			if _, ok := seen[s.Text]; ok {
				return
			}
		}
		seen[s.Text] = struct{}{}
		out = append(out, s)
	}

	title := cases.Title(language.English)
	for _, c := range Categories {
		for _, sub := range c.Subcategories {
			if !strings.Contains(subcategoryPhrase(sub.Key), q) && !anyContains(sub.Keywords, q) {
				continue
			}
			add(domain.Suggestion{
				Text:        title.String(subcategoryPhrase(sub.Key)),
				Kind:        domain.KindSubcategory,
				Category:    c.Key,
				Subcategory: sub.Key,
				Route:       c.SubcategoryRoute(sub.Key),
			}, true)
		}
	}

	matched := 0
	for i := range products {
		if matched == maxProductSuggestions {
			break
		}
		p := products[i]
		if p.Name == "" || !strings.Contains(strings.ToLower(p.Name), q) {
			continue
		}
		matched++
		add(domain.Suggestion{
			Text:    p.Name,
			Kind:    domain.KindProduct,
			Route:   ProductRoute(p),
			Product: &p,
		}, false)
	}

	for _, c := range Categories {
		for _, k := range c.Keywords {
			if !strings.Contains(k, q) {
				continue
			}
			add(domain.Suggestion{
				Text:     k,
				Kind:     domain.KindCategory,
				Category: c.Key,
				Route:    c.Route,
			}, true)
		}
	}

	for _, b := range Brands {
		if strings.Contains(b.Name, q) {
			add(domain.Suggestion{Text: b.Name, Kind: domain.KindBrand, Route: b.Route}, false)
		}
	}

	rankSuggestions(out, q)
	if len(out) > MaxSuggestions {
		out = out[:MaxSuggestions]
	}
	if out == nil {
		out = []domain.Suggestion{}
	}
	return out
}

func rankSuggestions(list []domain.Suggestion, q string) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := strings.ToLower(list[i].Text), strings.ToLower(list[j].Text)
		aExact, bExact := a == q, b == q
		if aExact != bExact {
			return aExact
		}
		return matchPosition(a, q) < matchPosition(b, q)
	})
}

func matchPosition(text, q string) int {
	if i := strings.Index(text, q); i >= 0 {
		return i
	}
	return math.MaxInt
}

func anyContains(keywords []string, q string) bool {
	for _, k := range keywords {
		if strings.Contains(strings.ToLower(k), q) {
			return true
		}
	}
	return false
}
