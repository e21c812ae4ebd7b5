package product

import (
	"testing"

	pkgerrors "github.com/angelmondragon/barakat-storefront/pkg/errors"
)

func TestSearch(t *testing.T) {
	catalog := tenProductCatalog(t)

	equalIDs(t, catalog.Search("  QURAN "), "p3")
	equalIDs(t, catalog.Search("men"), "p1", "p2", "p5", "p8")
	if got := catalog.Search("   "); len(got) != 0 {
		t.Fatalf("expected blank query to match nothing, got %v", ids(got))
	}
	if got := catalog.Search("zzz"); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil result, got %v", got)
	}
}

func TestRelated(t *testing.T) {
	products := []Product{
		{ID: "a", Category: "books", Price: price(1), RelatedProducts: []string{"e", "c", "missing"}},
		{ID: "b", Category: "books", Price: price(1)},
		{ID: "c", Category: "clothing", Price: price(1)},
		{ID: "d", Category: "books", Price: price(1)},
		{ID: "e", Category: "books", Price: price(1)},
		{ID: "f", Category: "books", Price: price(1)},
		{ID: "g", Category: "books", Price: price(1)},
	}
	catalog, err := NewCatalog(products, nil)
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}

	got, ok := catalog.Related("a")
	if !ok {
		t.Fatal("expected product a to exist")
	}
	equalIDs(t, got, "c", "e")

	got, _ = catalog.Related("b")
	equalIDs(t, got, "a", "d", "e", "f")

	if _, ok := catalog.Related("nope"); ok {
		t.Fatal("expected unknown product to report false")
	}
}

func TestFeatured(t *testing.T) {
	catalog := tenProductCatalog(t)

	equalIDs(t, catalog.Featured(FeaturedNew, 0), "p2", "p6", "p9")
	equalIDs(t, catalog.Featured(FeaturedPopular, 2), "p1", "p3")
	equalIDs(t, catalog.Featured(FeaturedDiscount, 8), "p1", "p5", "p7")

	if !FeaturedNew.IsValid() || FeaturedKind("sale").IsValid() {
		t.Fatal("unexpected kind validity")
	}
}

func TestVariantLabel(t *testing.T) {
	p := Product{
		ID: "abaya",
		Variants: []Variant{
			{Name: "Size", Options: []string{"S", "M"}},
			{Name: "Color", Options: []string{"Black", "Navy"}},
		},
	}

	label, err := p.VariantLabel(map[string]string{"Color": "Navy", "Size": "M"})
	if err != nil {
		t.Fatalf("variant label: %v", err)
	}
	if label != "Size: M, Color: Navy" {
		t.Fatalf("unexpected label %q", label)
	}

	bad := []map[string]string{
		{"Size": "M"},
		{"Size": "XL", "Color": "Navy"},
		{"Size": "M", "Color": "Navy", "Fabric": "Silk"},
	}
	for _, selections := range bad {
		if _, err := p.VariantLabel(selections); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
			t.Fatalf("expected validation error for %v, got %v", selections, err)
		}
	}

	plain := Product{ID: "plain"}
	if label, err := plain.VariantLabel(nil); err != nil || label != "" {
		t.Fatalf("expected empty label, got %q %v", label, err)
	}
}
