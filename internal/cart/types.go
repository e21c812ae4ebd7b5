package cart

import "github.com/shopspring/decimal"

// Line is one cart row. A cart holds at most one line per (ProductID, Variant).
type Line struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
	Variant   string          `json:"variant,omitempty"`
}

// Subtotal returns price multiplied by quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (l Line) matches(productID, variant string) bool {
	return l.ProductID == productID && l.Variant == variant
}

// LineInput is the candidate passed to AddItem.
type LineInput struct {
	ProductID string          `json:"product_id" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	Price     decimal.Decimal `json:"price" validate:"gt=0"`
	Image     string          `json:"image" validate:"required"`
	Quantity  int             `json:"quantity" validate:"min=1"`
	Variant   string          `json:"variant,omitempty"`
}

// Summary is the cart together with its derived values.
type Summary struct {
	Items      []Line          `json:"items"`
	ItemCount  int             `json:"item_count"`
	TotalPrice decimal.Decimal `json:"total_price"`
}
