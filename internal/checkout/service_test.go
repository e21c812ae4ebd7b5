package checkout

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/angelmondragon/barakat-storefront/internal/cart"
	"github.com/angelmondragon/barakat-storefront/internal/orders"
	"github.com/angelmondragon/barakat-storefront/internal/users"
	"github.com/angelmondragon/barakat-storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/barakat-storefront/pkg/errors"
	"github.com/angelmondragon/barakat-storefront/pkg/kv"
	"github.com/shopspring/decimal"
)

type stubBook struct {
	user *users.User
}

func (b stubBook) CurrentUser() (users.User, bool) {
	if b.user == nil {
		return users.User{}, false
	}
	return *b.user, true
}

type failingHistory struct{}

func (failingHistory) Append(context.Context, orders.Order) error {
	return errors.New("history unavailable")
}

func testPricing() Pricing {
	return NewPricing(config.CheckoutConfig{
		DeliveryFee:           decimal.NewFromInt(200),
		FreeDeliveryThreshold: decimal.NewFromInt(5000),
	})
}

func newTestService() *Service {
	svc := NewService(testPricing())
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func loadCart(t *testing.T, store kv.Store) *cart.Cart {
	t.Helper()
	c, err := cart.Load(context.Background(), store)
	if err != nil {
		t.Fatalf("load cart: %v", err)
	}
	return c
}

func addLine(t *testing.T, c *cart.Cart, productID string, price int64, qty int) cart.Line {
	t.Helper()
	line, err := c.AddItem(context.Background(), cart.LineInput{
		ProductID: productID,
		Name:      "Product " + productID,
		Price:     decimal.NewFromInt(price),
		Image:     productID + ".jpg",
		Quantity:  qty,
	})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	return line
}

func validInput() SubmitInput {
	return SubmitInput{
		Customer: CustomerInput{Name: "Amina", Phone: "+996555000111", Email: "amina@example.com"},
		Shipping: ShippingInput{Method: orders.ShippingCourier, City: "Bishkek", Street: "Chui 12"},
		Payment:  PaymentInput{Method: orders.PaymentCash},
		Comment:  " ring twice ",
	}
}

func TestSubmitSnapshotsCartThenClears(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	c := loadCart(t, store)
	history := orders.NewRepository(store)
	addLine(t, c, "p1", 3200, 1)
	addLine(t, c, "p2", 1400, 2)

	order, err := newTestService().Submit(ctx, c, stubBook{}, history, validInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if !order.TotalPrice.Equal(decimal.NewFromInt(6000)) {
		t.Fatalf("expected total 6000, got %s", order.TotalPrice)
	}
	if !order.DeliveryCost.IsZero() || !order.GrandTotal.Equal(decimal.NewFromInt(6000)) {
		t.Fatalf("expected free delivery, got %s / %s", order.DeliveryCost, order.GrandTotal)
	}
	if order.Status != orders.StatusPending || order.Comment != "ring twice" {
		t.Fatalf("unexpected order %+v", order)
	}
	if len(order.Items) != 2 || order.Items[1].ID != "p2" || order.Items[1].Quantity != 2 {
		t.Fatalf("unexpected items %+v", order.Items)
	}
	if !regexp.MustCompile(`^ORD-\d{6}-[0-9A-Z]{3}$`).MatchString(order.ID) {
		t.Fatalf("unexpected order id %q", order.ID)
	}
	if !c.IsEmpty() {
		t.Fatal("expected cart cleared after submission")
	}

	addLine(t, c, "p3", 900, 5)
	stored, ok, err := history.FindByID(ctx, order.ID)
	if err != nil || !ok {
		t.Fatalf("find order: ok=%v err=%v", ok, err)
	}
	if len(stored.Items) != 2 || !stored.TotalPrice.Equal(decimal.NewFromInt(6000)) {
		t.Fatalf("stored order changed after cart mutation: %+v", stored)
	}
}

func TestSubmitAppendsWithoutTouchingPriorOrders(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	c := loadCart(t, store)
	history := orders.NewRepository(store)
	svc := newTestService()

	addLine(t, c, "p1", 1000, 1)
	first, err := svc.Submit(ctx, c, stubBook{}, history, validInput())
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	addLine(t, c, "p2", 2000, 1)
	if _, err := svc.Submit(ctx, c, stubBook{}, history, validInput()); err != nil {
		t.Fatalf("second submit: %v", err)
	}

	list, err := history.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != first.ID || list[0].Items[0].ID != "p1" {
		t.Fatalf("unexpected history %+v", list)
	}
	if !list[0].DeliveryCost.Equal(decimal.NewFromInt(200)) || !list[0].GrandTotal.Equal(decimal.NewFromInt(1200)) {
		t.Fatalf("expected paid delivery below threshold, got %+v", list[0])
	}
}

func TestSubmitRejectsEmptyCart(t *testing.T) {
	store := kv.NewMemory()
	_, err := newTestService().Submit(context.Background(), loadCart(t, store), stubBook{}, orders.NewRepository(store), validInput())
	if !pkgerrors.IsCode(err, pkgerrors.CodeStateConflict) {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestSubmitValidatesForm(t *testing.T) {
	store := kv.NewMemory()
	c := loadCart(t, store)
	addLine(t, c, "p1", 1000, 1)

	cases := map[string]func(*SubmitInput){
		"missing name":     func(in *SubmitInput) { in.Customer.Name = "" },
		"bad email":        func(in *SubmitInput) { in.Customer.Email = "nope" },
		"unknown shipping": func(in *SubmitInput) { in.Shipping.Method = "drone" },
		"unknown payment":  func(in *SubmitInput) { in.Payment.Method = "crypto" },
		"missing street":   func(in *SubmitInput) { in.Shipping.Street = "" },
		"unknown address":  func(in *SubmitInput) { in.Shipping.AddressID = "missing" },
	}
	book := stubBook{user: &users.User{ID: "u1"}}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			mutate(&in)
			_, err := newTestService().Submit(context.Background(), c, book, orders.NewRepository(store), in)
			if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
	if c.IsEmpty() {
		t.Fatal("rejected submissions must not clear the cart")
	}
}

func TestSubmitUsesSavedAddress(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	c := loadCart(t, store)
	addLine(t, c, "p1", 1000, 1)
	user := &users.User{ID: "u1", Addresses: []users.Address{{ID: "a1", Title: "Home", City: "Osh", Street: "Lenina", Building: "4"}}}

	in := validInput()
	in.Shipping = ShippingInput{Method: orders.ShippingPost, AddressID: "a1"}
	order, err := newTestService().Submit(ctx, c, stubBook{user: user}, orders.NewRepository(store), in)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if order.Shipping.Address.City != "Osh" || order.Shipping.Address.Building != "4" {
		t.Fatalf("unexpected shipping address %+v", order.Shipping.Address)
	}

	addLine(t, c, "p1", 1000, 1)
	_, err = newTestService().Submit(ctx, c, stubBook{}, orders.NewRepository(store), in)
	if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized for saved address without login, got %v", err)
	}
}

func TestSubmitPickupNeedsNoAddress(t *testing.T) {
	store := kv.NewMemory()
	c := loadCart(t, store)
	addLine(t, c, "p1", 1000, 1)
	in := validInput()
	in.Shipping = ShippingInput{Method: orders.ShippingPickup}
	if _, err := newTestService().Submit(context.Background(), c, stubBook{}, orders.NewRepository(store), in); err != nil {
		t.Fatalf("pickup submit: %v", err)
	}
}

func TestSubmitKeepsCartWhenHistoryFails(t *testing.T) {
	store := kv.NewMemory()
	c := loadCart(t, store)
	addLine(t, c, "p1", 1000, 1)
	if _, err := newTestService().Submit(context.Background(), c, stubBook{}, failingHistory{}, validInput()); err == nil {
		t.Fatal("expected history failure")
	}
	if c.IsEmpty() {
		t.Fatal("cart must survive a failed append")
	}
}

func TestQuote(t *testing.T) {
	p := testPricing()
	cases := []struct {
		subtotal, delivery, total int64
	}{
		{0, 0, 0},
		{4999, 200, 5199},
		{5000, 0, 5000},
		{6000, 0, 6000},
	}
	for _, tc := range cases {
		q := p.Quote(decimal.NewFromInt(tc.subtotal))
		if !q.DeliveryCost.Equal(decimal.NewFromInt(tc.delivery)) || !q.GrandTotal.Equal(decimal.NewFromInt(tc.total)) {
			t.Fatalf("subtotal %d: got delivery %s total %s", tc.subtotal, q.DeliveryCost, q.GrandTotal)
		}
		if q.FreeDelivery != (tc.delivery == 0) {
			t.Fatalf("subtotal %d: unexpected free flag %v", tc.subtotal, q.FreeDelivery)
		}
	}
}

func TestNewOrderIDFormat(t *testing.T) {
	now := time.UnixMilli(1_700_000_123_456)
	id := newOrderID(now)
	if !regexp.MustCompile(`^ORD-123456-[0-9A-Z]{3}$`).MatchString(id) {
		t.Fatalf("unexpected id %q", id)
	}
	if id := newOrderID(time.UnixMilli(1_700_000_000_042)); id[:11] != "ORD-000042-" {
		t.Fatalf("expected zero padded millis, got %q", id)
	}
}
