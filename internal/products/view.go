package product

import (
	"slices"
	"strings"

	pkgerrors "github.com/angelmondragon/barakat-storefront/pkg/errors"
	"github.com/shopspring/decimal"
)

// SortOption names a catalog ordering.
type SortOption string

const (
	SortPopular   SortOption = "popular"
	SortPriceAsc  SortOption = "price-asc"
	SortPriceDesc SortOption = "price-desc"
	SortNewest    SortOption = "newest"
	SortRating    SortOption = "rating"
)

// ParseSortOption maps a raw value to a SortOption; unknown values sort by popularity.
func ParseSortOption(raw string) SortOption {
	switch opt := SortOption(strings.ToLower(strings.TrimSpace(raw))); opt {
	case SortPriceAsc, SortPriceDesc, SortNewest, SortRating, SortPopular:
		return opt
	default:
		return SortPopular
	}
}

// Filter narrows a catalog view. Zero values disable the corresponding check
// and a nil price bound is open.
type Filter struct {
	Category    string
	Subcategory string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	InStock     bool
	IsNew       bool
	IsDiscount  bool
}

// Validate rejects an inverted price range.
func (f Filter) Validate() error {
	if f.MinPrice != nil && f.MaxPrice != nil && f.MinPrice.GreaterThan(*f.MaxPrice) {
		return pkgerrors.New(pkgerrors.CodeValidation, "min_price must not exceed max_price")
	}
	return nil
}

// Matches applies every enabled predicate conjunctively.
func (f Filter) Matches(p Product) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Subcategory != "" && p.Subcategory != f.Subcategory {
		return false
	}
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	if f.InStock && !p.InStock {
		return false
	}
	if f.IsNew && !p.IsNew {
		return false
	}
	if f.IsDiscount && !p.HasDiscount() {
		return false
	}
	return true
}

// View returns the products matching filter in the requested order. Ties keep
// their input order. The input slice is not modified.
func View(products []Product, filter Filter, sortOption SortOption) []Product {
	result := make([]Product, 0, len(products))
	for _, p := range products {
		if filter.Matches(p) {
			result = append(result, p)
		}
	}
	slices.SortStableFunc(result, comparator(sortOption))
	return result
}

func comparator(opt SortOption) func(a, b Product) int {
	switch opt {
	case SortPriceAsc:
		return func(a, b Product) int { return a.Price.Cmp(b.Price) }
	case SortPriceDesc:
		return func(a, b Product) int { return b.Price.Cmp(a.Price) }
	case SortNewest:
		return func(a, b Product) int { return flagFirst(a.IsNew, b.IsNew) }
	case SortRating:
		return func(a, b Product) int {
			switch {
			case a.Rating > b.Rating:
				return -1
			case a.Rating < b.Rating:
				return 1
			}
			return 0
		}
	default:
		return func(a, b Product) int { return flagFirst(a.IsPopular, b.IsPopular) }
	}
}

func flagFirst(a, b bool) int {
	switch {
	case a && !b:
		return -1
	case !a && b:
		return 1
	}
	return 0
}
