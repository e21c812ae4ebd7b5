package checkout

import (
	"github.com/angelmondragon/barakat-storefront/pkg/config"
	"github.com/shopspring/decimal"
)

// Pricing charges a flat delivery fee below the free-delivery threshold.
type Pricing struct {
	DeliveryFee           decimal.Decimal
	FreeDeliveryThreshold decimal.Decimal
}

func NewPricing(cfg config.CheckoutConfig) Pricing {
	return Pricing{
		DeliveryFee:           cfg.DeliveryFee,
		FreeDeliveryThreshold: cfg.FreeDeliveryThreshold,
	}
}

// Quote is the price breakdown shown before submission.
type Quote struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	DeliveryCost decimal.Decimal `json:"delivery_cost"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
	FreeDelivery bool            `json:"free_delivery"`
}

// Quote prices delivery for subtotal. An empty cart costs nothing.
func (p Pricing) Quote(subtotal decimal.Decimal) Quote {
	delivery := p.DeliveryFee
	if subtotal.IsZero() || subtotal.GreaterThanOrEqual(p.FreeDeliveryThreshold) {
		delivery = decimal.Zero
	}
	return Quote{
		Subtotal:     subtotal,
		DeliveryCost: delivery,
		GrandTotal:   subtotal.Add(delivery),
		FreeDelivery: delivery.IsZero(),
	}
}
