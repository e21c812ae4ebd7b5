package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

// StatusPending is the only status the storefront assigns.
const StatusPending Status = "pending"

type ShippingMethod string

const (
	ShippingCourier ShippingMethod = "courier"
	ShippingPickup  ShippingMethod = "pickup"
	ShippingPost    ShippingMethod = "post"
)

type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentCard  PaymentMethod = "card"
	PaymentMBank PaymentMethod = "mbank"
)

type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// Address is the delivery destination, either a saved address or a
// free-form city and street.
type Address struct {
	Title     string `json:"title,omitempty"`
	FullName  string `json:"full_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	City      string `json:"city"`
	Street    string `json:"street"`
	Building  string `json:"building,omitempty"`
	Apartment string `json:"apartment,omitempty"`
}

type Shipping struct {
	Address Address        `json:"address"`
	Method  ShippingMethod `json:"method"`
}

type Payment struct {
	Method PaymentMethod `json:"method"`
}

// Item is a value snapshot of a cart line; ID is the product id.
type Item struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Variant  string          `json:"variant,omitempty"`
}

// Order is immutable once appended to history.
type Order struct {
	ID           string          `json:"id"`
	Customer     Customer        `json:"customer"`
	Shipping     Shipping        `json:"shipping"`
	Payment      Payment         `json:"payment"`
	Comment      string          `json:"comment,omitempty"`
	Items        []Item          `json:"items"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	DeliveryCost decimal.Decimal `json:"delivery_cost"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
	Date         time.Time       `json:"date"`
	Status       Status          `json:"status"`
}
