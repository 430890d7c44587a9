package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuleTables(t *testing.T) {
	categories := map[string]bool{}
	for _, c := range Categories {
		assert.False(t, categories[c.Key], "duplicate category %s", c.Key)
		categories[c.Key] = true
		assert.True(t, strings.HasPrefix(c.Route, "/"), c.Key)
		assert.NotEmpty(t, c.Keywords, c.Key)

		subs := map[string]bool{}
		for _, sub := range c.Subcategories {
			assert.False(t, subs[sub.Key], "duplicate subcategory %s/%s", c.Key, sub.Key)
			subs[sub.Key] = true
			for _, k := range sub.Keywords {
				assert.Equal(t, strings.ToLower(k), k)
			}
		}
	}

	brands := map[string]bool{}
	for _, b := range Brands {
		assert.False(t, brands[b.Name], "duplicate brand %s", b.Name)
		brands[b.Name] = true
		assert.Equal(t, strings.ToLower(b.Name), b.Name)
	}
}
