package product

import (
	"testing"
)

func ids(products []Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func equalIDs(t *testing.T, got []Product, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("expected %v, got %v", want, gotIDs)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, gotIDs)
		}
	}
}

func TestViewFiltersConjunctively(t *testing.T) {
	catalog := tenProductCatalog(t)

	books := catalog.View(Filter{Category: "books"}, SortPopular)
	if len(books) != 3 {
		t.Fatalf("expected 3 books, got %d", len(books))
	}

	got := catalog.View(Filter{Category: "books", IsDiscount: true}, SortPopular)
	equalIDs(t, got, "p7")
}

func TestViewFilterPredicates(t *testing.T) {
	catalog := tenProductCatalog(t)
	cases := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"subcategory", Filter{Category: "clothing", Subcategory: "men"}, []string{"p2", "p8"}},
		{"inclusive price range", Filter{MinPrice: pricePtr(1800), MaxPrice: pricePtr(2500)}, []string{"p4", "p6", "p7"}},
		{"open upper bound", Filter{MinPrice: pricePtr(3200)}, []string{"p1", "p8"}},
		{"in stock and new", Filter{InStock: true, IsNew: true}, []string{"p2"}},
		{"no match", Filter{Category: "gifts", IsDiscount: true}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			equalIDs(t, View(catalog.Products(), tc.filter, SortPriceAsc), sortedByPrice(catalog, tc.want)...)
		})
	}
}

// sortedByPrice orders expected ids the same way the view does.
func sortedByPrice(catalog *Catalog, want []string) []string {
	products := make([]Product, 0, len(want))
	for _, id := range want {
		p, _ := catalog.FindByID(id)
		products = append(products, p)
	}
	return ids(View(products, Filter{}, SortPriceAsc))
}

func TestViewPriceAscIsStable(t *testing.T) {
	products := []Product{
		{ID: "a", Price: price(3200)},
		{ID: "b", Price: price(1200)},
		{ID: "c", Price: price(2800)},
		{ID: "d", Price: price(1800)},
		{ID: "e", Price: price(1200)},
	}
	got := View(products, Filter{}, SortPriceAsc)
	equalIDs(t, got, "b", "e", "d", "c", "a")

	if products[0].ID != "a" {
		t.Fatal("input slice must not be reordered")
	}
}

func TestViewSortOptions(t *testing.T) {
	products := []Product{
		{ID: "a", Price: price(3200), Rating: 4.1, IsPopular: true},
		{ID: "b", Price: price(1200), Rating: 4.9, IsNew: true},
		{ID: "c", Price: price(2800), Rating: 4.5, IsPopular: true, IsNew: true},
		{ID: "d", Price: price(1800), Rating: 4.5},
	}
	equalIDs(t, View(products, Filter{}, SortPriceDesc), "a", "c", "d", "b")
	equalIDs(t, View(products, Filter{}, SortNewest), "b", "c", "a", "d")
	equalIDs(t, View(products, Filter{}, SortRating), "b", "c", "d", "a")
	equalIDs(t, View(products, Filter{}, SortPopular), "a", "c", "b", "d")
}

func TestParseSortOption(t *testing.T) {
	cases := map[string]SortOption{
		"":            SortPopular,
		"price-asc":   SortPriceAsc,
		" Price-Desc": SortPriceDesc,
		"newest":      SortNewest,
		"rating":      SortRating,
		"cheapest":    SortPopular,
	}
	for raw, want := range cases {
		if got := ParseSortOption(raw); got != want {
			t.Fatalf("ParseSortOption(%q) = %q, want %q", raw, got, want)
		}
	}
}
