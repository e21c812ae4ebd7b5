// Package checkout turns a visitor's cart into an order.
package checkout

import (
	"context"
	"strings"
	"time"

	"github.com/angelmondragon/barakat-storefront/internal/cart"
	"github.com/angelmondragon/barakat-storefront/internal/orders"
	"github.com/angelmondragon/barakat-storefront/internal/users"
	pkgerrors "github.com/angelmondragon/barakat-storefront/pkg/errors"
	"github.com/angelmondragon/barakat-storefront/pkg/validation"
	"github.com/shopspring/decimal"
)

type cartState interface {
	Snapshot() []cart.Line
	TotalPrice() decimal.Decimal
	Clear(ctx context.Context) error
}

type addressBook interface {
	CurrentUser() (users.User, bool)
}

type orderHistory interface {
	Append(ctx context.Context, order orders.Order) error
}

// SubmitInput carries the checkout form.
type SubmitInput struct {
	Customer CustomerInput `json:"customer"`
	Shipping ShippingInput `json:"shipping"`
	Payment  PaymentInput  `json:"payment"`
	Comment  string        `json:"comment" validate:"max=1000"`
}

type CustomerInput struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

// ShippingInput references a saved address by id or gives a free-form city and street.
type ShippingInput struct {
	Method    orders.ShippingMethod `json:"method" validate:"required,oneof=courier pickup post"`
	AddressID string                `json:"address_id"`
	City      string                `json:"city"`
	Street    string                `json:"street"`
}

type PaymentInput struct {
	Method orders.PaymentMethod `json:"method" validate:"required,oneof=cash card mbank"`
}

// Service submits orders.
type Service struct {
	pricing    Pricing
	now        func() time.Time
	newOrderID func(time.Time) string
}

func NewService(pricing Pricing) *Service {
	return &Service{
		pricing:    pricing,
		now:        func() time.Time { return time.Now().UTC() },
		newOrderID: newOrderID,
	}
}

func (s *Service) Pricing() Pricing {
	return s.pricing
}

// Quote prices the current cart.
func (s *Service) Quote(c cartState) Quote {
	return s.pricing.Quote(c.TotalPrice())
}

// Submit snapshots the cart into a pending order, appends it to history and
// then clears the cart.
func (s *Service) Submit(ctx context.Context, c cartState, book addressBook, history orderHistory, in SubmitInput) (orders.Order, error) {
	if err := validation.Struct(in, "invalid order"); err != nil {
		return orders.Order{}, err
	}

	lines := c.Snapshot()
	if len(lines) == 0 {
		return orders.Order{}, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}

	address, err := resolveAddress(book, in.Shipping)
	if err != nil {
		return orders.Order{}, err
	}

	items := make([]orders.Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, orders.Item{
			ID:       l.ProductID,
			Name:     l.Name,
			Price:    l.Price,
			Quantity: l.Quantity,
			Variant:  l.Variant,
		})
	}

	now := s.now()
	quote := s.pricing.Quote(c.TotalPrice())
	order := orders.Order{
		ID: s.newOrderID(now),
		Customer: orders.Customer{
			Name:  strings.TrimSpace(in.Customer.Name),
			Phone: strings.TrimSpace(in.Customer.Phone),
			Email: strings.TrimSpace(in.Customer.Email),
		},
		Shipping:     orders.Shipping{Address: address, Method: in.Shipping.Method},
		Payment:      orders.Payment{Method: in.Payment.Method},
		Comment:      strings.TrimSpace(in.Comment),
		Items:        items,
		TotalPrice:   quote.Subtotal,
		DeliveryCost: quote.DeliveryCost,
		GrandTotal:   quote.GrandTotal,
		Date:         now,
		Status:       orders.StatusPending,
	}

	if err := history.Append(ctx, order); err != nil {
		return orders.Order{}, err
	}
	if err := c.Clear(ctx); err != nil {
		return order, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "order saved but cart was not cleared")
	}
	return order, nil
}

func resolveAddress(book addressBook, in ShippingInput) (orders.Address, error) {
	if id := strings.TrimSpace(in.AddressID); id != "" {
		user, ok := book.CurrentUser()
		if !ok {
			return orders.Address{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "saved addresses require login")
		}
		saved, ok := user.FindAddress(id)
		if !ok {
			return orders.Address{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown address").
				WithDetails(map[string]string{"address_id": "is invalid"})
		}
		return orders.Address{
			Title:     saved.Title,
			FullName:  saved.FullName,
			Phone:     saved.Phone,
			City:      saved.City,
			Street:    saved.Street,
			Building:  saved.Building,
			Apartment: saved.Apartment,
		}, nil
	}

	address := orders.Address{City: strings.TrimSpace(in.City), Street: strings.TrimSpace(in.Street)}
	if in.Method != orders.ShippingPickup && (address.City == "" || address.Street == "") {
		return orders.Address{}, pkgerrors.New(pkgerrors.CodeValidation, "delivery address is required").
			WithDetails(map[string]string{"city": "is required", "street": "is required"})
	}
	return address, nil
}
