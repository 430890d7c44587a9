package search

import "storefront/search/internal/domain"

const (
	dogsRoute     = "/shop-for-dogs"
	catsRoute     = "/shop-for-cats"
	pharmacyRoute = "/pharmacy"
	outletRoute   = "/shop-for-outlet"

	productDetailsRoute = "/product-details/"

	// DefaultRoute is the landing page for unmatched and empty queries.
	DefaultRoute = dogsRoute
)

// Categories is the static category table. Order matters: every pass over it
// is first-match-wins.
var Categories = []domain.CategoryRule{
	{
		Key:      "dog-food",
		Keywords: []string{"dog food", "dogfood", "puppy food", "canine food", "dog meal"},
		Route:    "/shop-for-dogs/dogfood",
		Subcategories: []domain.SubcategoryRule{
			{Key: "daily-meals", Keywords: []string{"daily meal", "regular meal", "everyday food"}},
			{Key: "dry-food", Keywords: []string{"dry food", "kibble", "dry dog food", "dry meal"}},
			{Key: "wet-food", Keywords: []string{"wet food", "canned food", "wet dog food", "moist food"}},
			{Key: "grain-free", Keywords: []string{"grain free", "grainfree", "no grain"}},
			{Key: "puppy-food", Keywords: []string{"puppy food", "puppy meal", "young dog food"}},
			{Key: "hypoallergenic", Keywords: []string{"hypoallergenic", "hypo allergenic", "allergy free"}},
			{Key: "veterinary-food", Keywords: []string{"veterinary food", "vet food", "prescription food"}},
			{Key: "food-toppers-and-gravy", Keywords: []string{"food topper", "gravy", "meal topper"}},
		},
	},
	{
		Key:      "dog-treats",
		Keywords: []string{"dog treat", "dogtreats", "dog snack", "puppy treat"},
		Route:    "/shop-for-dogs/dogtreats",
		Subcategories: []domain.SubcategoryRule{
			{Key: "biscuits-snacks", Keywords: []string{"biscuit", "snack", "cookie"}},
			{Key: "soft-chewy", Keywords: []string{"soft treat", "chewy treat", "soft snack"}},
			{Key: "natural-treats", Keywords: []string{"natural treat", "organic treat"}},
			{Key: "puppy-treats", Keywords: []string{"puppy treat", "puppy snack"}},
			{Key: "vegetarian-treats", Keywords: []string{"vegetarian treat", "veg treat"}},
			{Key: "dental-chew", Keywords: []string{"dental chew", "dental treat", "teeth clean"}},
			{Key: "grain-free-treat", Keywords: []string{"grain free treat", "grainfree treat"}},
		},
	},
	{
		Key:      "dog-grooming",
		Keywords: []string{"dog grooming", "dog groom", "dog shampoo", "dog brush"},
		Route:    "/shop-for-dogs/dog-grooming",
		Subcategories: []domain.SubcategoryRule{
			{Key: "brushes-combs", Keywords: []string{"brush", "comb", "grooming brush"}},
			{Key: "dry-bath-wipes-perfume", Keywords: []string{"dry bath", "wipe", "perfume", "dry shampoo"}},
			{Key: "ear-eye-pawcare", Keywords: []string{"ear care", "eye care", "paw care"}},
			{Key: "oral-care", Keywords: []string{"oral care", "dental care", "toothbrush", "toothpaste"}},
			{Key: "shampoo-conditioner", Keywords: []string{"shampoo", "conditioner", "bath"}},
			{Key: "tick-flea-control", Keywords: []string{"tick control", "flea control", "pest control"}},
		},
	},
	{
		Key:      "dog-toys",
		Keywords: []string{"dog toy", "dogtoys", "puppy toy", "play toy"},
		Route:    "/shop-for-dogs/dog-toys",
		Subcategories: []domain.SubcategoryRule{
			{Key: "balls", Keywords: []string{"ball", "tennis ball", "rubber ball"}},
			{Key: "chew-toys", Keywords: []string{"chew toy", "chew", "chewing toy"}},
			{Key: "crinkle-toys", Keywords: []string{"crinkle toy", "crinkle"}},
			{Key: "fetch-toys", Keywords: []string{"fetch toy", "frisbee", "throwing toy"}},
			{Key: "interactive-toys", Keywords: []string{"interactive toy", "puzzle toy", "smart toy"}},
			{Key: "plush-toys", Keywords: []string{"plush toy", "soft toy", "stuffed toy"}},
			{Key: "rope-toys", Keywords: []string{"rope toy", "rope"}},
			{Key: "squeaker-toys", Keywords: []string{"squeaker toy", "squeaky toy", "squeak toy"}},
		},
	},
	{
		Key:      "walk-essentials",
		Keywords: []string{"leash", "collar", "harness", "walk", "walking"},
		Route:    "/shop-for-dogs/walk-essentials",
		Subcategories: []domain.SubcategoryRule{
			{Key: "collar", Keywords: []string{"collar", "neck collar"}},
			{Key: "leash", Keywords: []string{"leash", "lead", "walking leash"}},
			{Key: "harness", Keywords: []string{"harness", "body harness"}},
			{Key: "name-tags", Keywords: []string{"name tag", "id tag", "dog tag"}},
			{Key: "personalised", Keywords: []string{"personalised", "personalized", "custom"}},
		},
	},
	{
		Key:      "cat-food",
		Keywords: []string{"cat food", "catfood", "kitten food", "feline food"},
		Route:    "/shop-for-cats/cat-food",
		Subcategories: []domain.SubcategoryRule{
			{Key: "dry-food", Keywords: []string{"dry cat food", "cat kibble"}},
			{Key: "wet-food", Keywords: []string{"wet cat food", "canned cat food"}},
			{Key: "grain-free", Keywords: []string{"grain free cat food"}},
			{Key: "kitten-food", Keywords: []string{"kitten food", "kitten meal"}},
			{Key: "hypoallergenic", Keywords: []string{"hypoallergenic cat food"}},
			{Key: "veterinary-food", Keywords: []string{"cat veterinary food", "cat vet food"}},
		},
	},
	{
		Key:      "cat-treats",
		Keywords: []string{"cat treat", "cattreats", "kitten treat"},
		Route:    "/shop-for-cats/cat-treats",
		Subcategories: []domain.SubcategoryRule{
			{Key: "crunchy-treats", Keywords: []string{"crunchy cat treat", "crispy treat"}},
			{Key: "soft-treats", Keywords: []string{"soft cat treat", "chewy cat treat"}},
			{Key: "natural-treats", Keywords: []string{"natural cat treat"}},
			{Key: "kitten-treats", Keywords: []string{"kitten treat"}},
			{Key: "dental-treats", Keywords: []string{"cat dental treat"}},
		},
	},
}

// Brands is matched by substring in table order.
var Brands = []domain.BrandRule{
	{Name: "royal canin", Route: "/brand/royal-canin"},
	{Name: "pedigree", Route: "/brand/pedigree"},
	{Name: "whiskas", Route: "/brand/whiskas"},
	{Name: "drools", Route: "/brand/drools"},
	{Name: "purepet", Route: "/brand/purepet"},
}

// typeRoutes maps a product's pet type to its section.
var typeRoutes = map[string]string{
	"dog":      dogsRoute,
	"cat":      catsRoute,
	"pharmacy": pharmacyRoute,
	"outlet":   outletRoute,
}

// obviousCategoryWords are generic terms that already resolve through the
// category tables, so a catalog fetch for product names is not worth it.
var obviousCategoryWords = []string{"dog", "cat", "food", "treat", "toy", "grooming", "leash", "collar"}
