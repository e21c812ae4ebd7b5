package product

import "strings"

const (
	relatedFallbackLimit = 4
	DefaultFeaturedLimit = 8
)

// FeaturedKind selects a home page showcase.
type FeaturedKind string

const (
	FeaturedNew      FeaturedKind = "new"
	FeaturedPopular  FeaturedKind = "popular"
	FeaturedDiscount FeaturedKind = "discount"
)

func (k FeaturedKind) IsValid() bool {
	switch k {
	case FeaturedNew, FeaturedPopular, FeaturedDiscount:
		return true
	}
	return false
}

// Search matches the query case-insensitively against name, description,
// category and subcategory. A blank query matches nothing.
func (c *Catalog) Search(query string) []Product {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return []Product{}
	}
	result := make([]Product, 0)
	for _, p := range c.products {
		if containsFold(p.Name, needle) ||
			containsFold(p.Description, needle) ||
			containsFold(p.Category, needle) ||
			containsFold(p.Subcategory, needle) {
			result = append(result, p)
		}
	}
	return result
}

func containsFold(haystack, lowerNeedle string) bool {
	return haystack != "" && strings.Contains(strings.ToLower(haystack), lowerNeedle)
}

// Related returns the explicitly linked products in catalog order, or up to
// four products from the same category when none are linked.
func (c *Catalog) Related(id string) ([]Product, bool) {
	base, ok := c.FindByID(id)
	if !ok {
		return nil, false
	}

	result := make([]Product, 0)
	if len(base.RelatedProducts) > 0 {
		linked := make(map[string]struct{}, len(base.RelatedProducts))
		for _, rid := range base.RelatedProducts {
			linked[rid] = struct{}{}
		}
		for _, p := range c.products {
			if _, ok := linked[p.ID]; ok {
				result = append(result, p)
			}
		}
		return result, true
	}

	for _, p := range c.products {
		if len(result) == relatedFallbackLimit {
			break
		}
		if p.Category == base.Category && p.ID != base.ID {
			result = append(result, p)
		}
	}
	return result, true
}

// Featured returns up to limit products of the given kind in catalog order.
func (c *Catalog) Featured(kind FeaturedKind, limit int) []Product {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	result := make([]Product, 0, limit)
	for _, p := range c.products {
		if len(result) == limit {
			break
		}
		var match bool
		switch kind {
		case FeaturedNew:
			match = p.IsNew
		case FeaturedPopular:
			match = p.IsPopular
		case FeaturedDiscount:
			match = p.HasDiscount()
		}
		if match {
			result = append(result, p)
		}
	}
	return result
}
