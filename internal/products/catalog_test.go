package product

import (
	"os"
	"path/filepath"
	"testing"

	pkgerrors "github.com/angelmondragon/barakat-storefront/pkg/errors"
	"github.com/shopspring/decimal"
)

func price(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func pricePtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// tenProductCatalog holds three books, one of them discounted.
func tenProductCatalog(t *testing.T) *Catalog {
	t.Helper()
	products := []Product{
		{ID: "p1", Name: "Abaya", Category: "clothing", Subcategory: "women", Price: price(3200), OldPrice: pricePtr(3800), InStock: true, IsPopular: true, Rating: 4.8},
		{ID: "p2", Name: "Tubeteika", Category: "clothing", Subcategory: "men", Price: price(1200), InStock: true, IsNew: true, Rating: 4.6},
		{ID: "p3", Name: "Quran", Category: "books", Subcategory: "quran", Price: price(2800), InStock: true, IsPopular: true, Rating: 5.0},
		{ID: "p4", Name: "Prayer rug", Category: "prayer", Price: price(1800), InStock: true, Rating: 4.7},
		{ID: "p5", Name: "Hijab", Category: "clothing", Subcategory: "women", Price: price(1400), OldPrice: pricePtr(1800), InStock: true, IsPopular: true, Rating: 4.9},
		{ID: "p6", Name: "Oud oil", Category: "fragrances", Subcategory: "oil", Price: price(2500), InStock: false, IsNew: true, Rating: 4.5},
		{ID: "p7", Name: "Hadith collection", Category: "books", Subcategory: "hadith", Price: price(2200), OldPrice: pricePtr(2600), InStock: true, Rating: 4.4},
		{ID: "p8", Name: "Thobe", Category: "clothing", Subcategory: "men", Price: price(4200), InStock: true, Rating: 4.3},
		{ID: "p9", Name: "Stories of prophets", Category: "books", Subcategory: "children", Price: price(900), InStock: false, IsNew: true, Rating: 4.2},
		{ID: "p10", Name: "Tasbih", Category: "gifts", Price: price(1600), InStock: true, Rating: 4.1},
	}
	categories := []Category{
		{ID: "clothing", Name: "Clothing", Subcategories: []Subcategory{{ID: "women", Name: "Women"}, {ID: "men", Name: "Men"}}},
		{ID: "books", Name: "Books", Subcategories: []Subcategory{{ID: "quran", Name: "Quran"}}},
	}
	catalog, err := NewCatalog(products, categories)
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	return catalog
}

func TestLoadCatalogEmbeddedSeed(t *testing.T) {
	catalog, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("load seed: %v", err)
	}
	if got := len(catalog.Products()); got != 19 {
		t.Fatalf("expected 19 seed products, got %d", got)
	}
	if got := len(catalog.Categories()); got != 5 {
		t.Fatalf("expected 5 categories, got %d", got)
	}
	lo, hi := catalog.PriceBounds()
	if !lo.Equal(price(900)) || !hi.Equal(price(7500)) {
		t.Fatalf("unexpected bounds %s..%s", lo, hi)
	}
	first, ok := catalog.FindByID("1")
	if !ok || !first.HasDiscount() || len(first.Variants) != 2 {
		t.Fatalf("expected discounted product 1 with two variants, got %+v", first)
	}
}

func TestLoadCatalogFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	doc := `{"categories":[{"id":"books","name":"Books","subcategories":[]}],
	"products":[{"id":"a","name":"A","category":"books","price":100,"images":["a.jpg"]}]}`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	p, ok := catalog.FindByID("a")
	if !ok || p.PrimaryImage() != "a.jpg" || !p.Price.Equal(price(100)) {
		t.Fatalf("unexpected product %+v", p)
	}

	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestNewCatalogRejectsBadProducts(t *testing.T) {
	cases := map[string][]Product{
		"missing id":   {{Name: "x", Price: price(1)}},
		"duplicate id": {{ID: "a", Price: price(1)}, {ID: "a", Price: price(2)}},
		"non-positive": {{ID: "a", Price: decimal.Zero}},
	}
	for name, products := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := NewCatalog(products, nil); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestTitle(t *testing.T) {
	catalog := tenProductCatalog(t)
	cases := []struct {
		category, subcategory, want string
	}{
		{"", "", DefaultTitle},
		{"unknown", "women", DefaultTitle},
		{"clothing", "", "Clothing"},
		{"clothing", "women", "Women"},
		{"clothing", "children", "Clothing"},
	}
	for _, tc := range cases {
		if got := catalog.Title(tc.category, tc.subcategory); got != tc.want {
			t.Fatalf("Title(%q,%q) = %q, want %q", tc.category, tc.subcategory, got, tc.want)
		}
	}
}

func TestCatalogAccessorsReturnCopies(t *testing.T) {
	catalog := tenProductCatalog(t)
	list := catalog.Products()
	list[0].Name = "mutated"
	if p, _ := catalog.FindByID("p1"); p.Name != "Abaya" {
		t.Fatalf("catalog mutated through accessor: %q", p.Name)
	}
}

func TestFilterValidate(t *testing.T) {
	ok := Filter{MinPrice: pricePtr(100), MaxPrice: pricePtr(100)}
	if err := ok.Validate(); err != nil {
		t.Fatalf("expected equal bounds to be valid: %v", err)
	}
	bad := Filter{MinPrice: pricePtr(200), MaxPrice: pricePtr(100)}
	if !pkgerrors.IsCode(bad.Validate(), pkgerrors.CodeValidation) {
		t.Fatal("expected validation error for inverted range")
	}
}
