package product

import "github.com/shopspring/decimal"

// Product is a read-only catalog record.
type Product struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Slug            string           `json:"slug"`
	Category        string           `json:"category"`
	Subcategory     string           `json:"subcategory,omitempty"`
	Price           decimal.Decimal  `json:"price"`
	OldPrice        *decimal.Decimal `json:"old_price,omitempty"`
	Images          []string         `json:"images"`
	Description     string           `json:"description"`
	Features        []string         `json:"features,omitempty"`
	InStock         bool             `json:"in_stock"`
	IsNew           bool             `json:"is_new"`
	IsPopular       bool             `json:"is_popular"`
	Rating          float64          `json:"rating"`
	ReviewCount     int              `json:"review_count"`
	Variants        []Variant        `json:"variants,omitempty"`
	RelatedProducts []string         `json:"related_products,omitempty"`
}

// Variant is a selectable product dimension such as size or color.
type Variant struct {
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

type Subcategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Category struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Image         string        `json:"image,omitempty"`
	Subcategories []Subcategory `json:"subcategories"`
}

// HasDiscount reports whether the product carries a previous price.
func (p Product) HasDiscount() bool {
	return p.OldPrice != nil
}

// PrimaryImage returns the first image or an empty string.
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// ProductSummary is the projection stored in carts and wishlists.
type ProductSummary struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

func (p Product) Summary() ProductSummary {
	return ProductSummary{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price,
		Image: p.PrimaryImage(),
	}
}
