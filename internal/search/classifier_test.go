package search

import (
	"testing"

	"storefront/search/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		kind        domain.Kind
		route       string
		category    string
		subcategory string
	}{
		{
			name:        "subcategory name beats category keyword",
			query:       "dry food",
			kind:        domain.KindSubcategory,
			route:       "/shop-for-dogs/dogfood/dry-food",
			category:    "dog-food",
			subcategory: "dry-food",
		},
		{
			name:  "brand",
			query: "royal canin",
			kind:  domain.KindBrand,
			route: "/brand/royal-canin",
		},
		{
			name:  "brand wins over subcategory",
			query: "pedigree dry food",
			kind:  domain.KindBrand,
			route: "/brand/pedigree",
		},
		{
			name:        "walk essentials leash",
			query:       "leash",
			kind:        domain.KindSubcategory,
			route:       "/shop-for-dogs/walk-essentials/leash",
			category:    "walk-essentials",
			subcategory: "leash",
		},
		{
			name:        "kitten food",
			query:       "kitten food",
			kind:        domain.KindSubcategory,
			route:       "/shop-for-cats/cat-food/kitten-food",
			category:    "cat-food",
			subcategory: "kitten-food",
		},
		{
			name:        "subcategory keyword equality",
			query:       "dry dog food",
			kind:        domain.KindSubcategory,
			route:       "/shop-for-dogs/dogfood/dry-food",
			category:    "dog-food",
			subcategory: "dry-food",
		},
		{
			name:     "category keyword without subcategory",
			query:    "  Dog Food ",
			kind:     domain.KindCategory,
			route:    "/shop-for-dogs/dogfood",
			category: "dog-food",
		},
		{
			name:        "category keyword with subcategory keyword",
			query:       "dog toy ball",
			kind:        domain.KindSubcategory,
			route:       "/shop-for-dogs/dog-toys/balls",
			category:    "dog-toys",
			subcategory: "balls",
		},
		{
			name:  "dog pet type",
			query: "puppy pads",
			kind:  domain.KindPetType,
			route: "/shop-for-dogs",
		},
		{
			name:  "cat pet type",
			query: "kitten toys",
			kind:  domain.KindPetType,
			route: "/shop-for-cats",
		},
		{
			name:  "general fallback",
			query: "xyz-nonexistent-term",
			kind:  domain.KindGeneral,
			route: DefaultRoute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.query, nil)

			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.route, got.Route)
			assert.Equal(t, tt.category, got.Category)
			assert.Equal(t, tt.subcategory, got.Subcategory)
			assert.Equal(t, Normalize(tt.query), got.MatchedQuery)
		})
	}
}

func TestClassify_EmptyInput(t *testing.T) {
	for _, q := range []string{"", "   ", "\t\n"} {
		got := Classify(q, nil)

		assert.Equal(t, domain.KindGeneral, got.Kind)
		assert.Equal(t, DefaultRoute, got.Route)
		assert.Empty(t, got.Query)
		assert.Equal(t, DefaultRoute, BuildURL(got))
	}
}

func TestClassify_GeneralKeepsRawQuery(t *testing.T) {
	got := Classify("  XYZ-Nonexistent-Term ", nil)

	assert.Equal(t, domain.KindGeneral, got.Kind)
	assert.Equal(t, "xyz-nonexistent-term", got.MatchedQuery)
	assert.Equal(t, "XYZ-Nonexistent-Term", got.Query)
}

func TestClassify_ProductMatch(t *testing.T) {
	products := []domain.Product{
		{ID: 3},
		{ID: 5, Name: "Chicken Jerky"},
		{ID: 7, Name: "Premium Salmon Dry Dog Food", Type: "Dog", Category: "Dog Food", Subcategory: "Dry Food"},
		{ID: 9, Name: "Salmon Oil"},
	}

	got := Classify("salmon dry dog", products)

	assert.Equal(t, domain.KindProduct, got.Kind)
	assert.Equal(t, "/product-details/7", got.Route)
	assert.Equal(t, "/shop-for-dogs/dogfood/dry-food", got.FallbackRoute)
	require.NotNil(t, got.Product)
	assert.Equal(t, int64(7), got.Product.ID)

	t.Run("first match in list order", func(t *testing.T) {
		got := Classify("SALMON", products)
		require.NotNil(t, got.Product)
		assert.Equal(t, int64(7), got.Product.ID)
	})

	t.Run("without products falls through to pet type", func(t *testing.T) {
		got := Classify("salmon dry dog", nil)
		assert.Equal(t, domain.KindPetType, got.Kind)
		assert.Equal(t, "/shop-for-dogs", got.Route)
	})
}

func TestClassify_RulesBeatProducts(t *testing.T) {
	products := []domain.Product{
		{ID: 7, Name: "Premium Salmon Dry Dog Food"},
	}

	got := Classify("dry dog food", products)

	assert.Equal(t, domain.KindSubcategory, got.Kind)
	assert.Equal(t, "/shop-for-dogs/dogfood/dry-food", got.Route)
	assert.Nil(t, got.Product)
}

func TestClassify_Idempotent(t *testing.T) {
	products := []domain.Product{{ID: 1, Name: "Salmon Bites"}}
	for _, q := range []string{"dry food", "salmon", "kitten", "", "royal canin"} {
		first := Classify(q, products)
		second := Classify(q, products)
		assert.Equal(t, first, second, q)
	}
}

func TestClassify_AlwaysHasRoute(t *testing.T) {
	for _, q := range []string{"", "?", "🐶", "a", "ÄÖÜ", "cat", "%%%", "walk"} {
		got := Classify(q, nil)
		assert.NotEmpty(t, got.Route, q)
		assert.Equal(t, byte('/'), got.Route[0], q)
	}
}
