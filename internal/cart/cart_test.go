package cart

import (
	"context"
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/angelmondragon/barakat-storefront/pkg/errors"
	"github.com/angelmondragon/barakat-storefront/pkg/kv"
	"github.com/angelmondragon/barakat-storefront/pkg/kv/kvtest"
	"github.com/shopspring/decimal"
)

func input(productID string, price int64, qty int, variant string) LineInput {
	return LineInput{
		ProductID: productID,
		Name:      "Product " + productID,
		Price:     decimal.NewFromInt(price),
		Image:     productID + ".jpg",
		Quantity:  qty,
		Variant:   variant,
	}
}

func newTestCart(t *testing.T, store kv.Store) *Cart {
	t.Helper()
	c, err := Load(context.Background(), store)
	if err != nil {
		t.Fatalf("load cart: %v", err)
	}
	seq := 0
	c.newID = func() string {
		seq++
		return fmt.Sprintf("line-%d", seq)
	}
	return c
}

func assertDerived(t *testing.T, c *Cart) {
	t.Helper()
	count := 0
	total := decimal.Zero
	for _, l := range c.Items() {
		count += l.Quantity
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	if c.ItemCount() != count {
		t.Fatalf("item count %d != fold %d", c.ItemCount(), count)
	}
	if !c.TotalPrice().Equal(total) {
		t.Fatalf("total %s != fold %s", c.TotalPrice(), total)
	}
}

func TestAddItemMergesSameProductAndVariant(t *testing.T) {
	ctx := context.Background()
	c := newTestCart(t, kv.NewMemory())

	for _, qty := range []int{1, 2, 4} {
		if _, err := c.AddItem(ctx, input("p1", 3200, qty, "Size: M")); err != nil {
			t.Fatalf("add item: %v", err)
		}
		assertDerived(t, c)
	}

	items := c.Items()
	if len(items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(items))
	}
	if items[0].Quantity != 7 || items[0].ID != "line-1" {
		t.Fatalf("unexpected merged line %+v", items[0])
	}
}

func TestAddItemSeparatesVariants(t *testing.T) {
	c := newTestCart(t, kv.NewMemory())

	mustAdd(t, c, input("p1", 3200, 1, "Size: M"))
	mustAdd(t, c, input("p1", 3200, 1, "Size: L"))
	mustAdd(t, c, input("p1", 3200, 1, ""))
	mustAdd(t, c, input("p1", 3200, 2, " Size: L "))

	items := c.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(items))
	}
	if items[1].Quantity != 3 {
		t.Fatalf("expected trimmed variant to merge, got %+v", items[1])
	}
	if c.ItemCount() != 5 || !c.TotalPrice().Equal(decimal.NewFromInt(16000)) {
		t.Fatalf("unexpected derived values %d %s", c.ItemCount(), c.TotalPrice())
	}
}

func mustAdd(t *testing.T, c *Cart, in LineInput) Line {
	t.Helper()
	line, err := c.AddItem(context.Background(), in)
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	return line
}

func TestAddItemValidatesInput(t *testing.T) {
	c := newTestCart(t, kv.NewMemory())
	cases := map[string]LineInput{
		"zero price":    input("p1", 0, 1, ""),
		"zero quantity": input("p1", 100, 0, ""),
		"missing id":    input("", 100, 1, ""),
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := c.AddItem(context.Background(), in)
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
	if len(c.Items()) != 0 {
		t.Fatal("invalid input must not create lines")
	}
}

func TestUpdateItemQuantity(t *testing.T) {
	ctx := context.Background()
	c := newTestCart(t, kv.NewMemory())
	line := mustAdd(t, c, input("p1", 1000, 2, ""))

	if err := c.UpdateItemQuantity(ctx, line.ID, 5); err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if got := c.Items()[0].Quantity; got != 5 {
		t.Fatalf("expected quantity set to 5, got %d", got)
	}
	assertDerived(t, c)

	if err := c.UpdateItemQuantity(ctx, "unknown", 3); err != nil {
		t.Fatalf("unknown id must be a no-op: %v", err)
	}
	if got := c.Items()[0].Quantity; got != 5 {
		t.Fatalf("unknown id changed quantity to %d", got)
	}
}

func TestUpdateItemQuantityZeroEqualsRemove(t *testing.T) {
	ctx := context.Background()
	updated := newTestCart(t, kv.NewMemory())
	removed := newTestCart(t, kv.NewMemory())

	for _, c := range []*Cart{updated, removed} {
		mustAdd(t, c, input("p1", 1000, 1, ""))
		mustAdd(t, c, input("p2", 500, 3, ""))
	}

	if err := updated.UpdateItemQuantity(ctx, "line-1", 0); err != nil {
		t.Fatalf("update to zero: %v", err)
	}
	if err := removed.RemoveItem(ctx, "line-1"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if fmt.Sprint(updated.Summary()) != fmt.Sprint(removed.Summary()) {
		t.Fatalf("expected identical carts, got %+v vs %+v", updated.Summary(), removed.Summary())
	}
	if updated.ItemCount() != 3 {
		t.Fatalf("expected 3 items left, got %d", updated.ItemCount())
	}
}

func TestRemoveItemAndClear(t *testing.T) {
	ctx := context.Background()
	c := newTestCart(t, kv.NewMemory())
	mustAdd(t, c, input("p1", 1000, 1, ""))
	mustAdd(t, c, input("p2", 500, 1, ""))

	if err := c.RemoveItem(ctx, "missing"); err != nil {
		t.Fatalf("removing unknown line: %v", err)
	}
	if len(c.Items()) != 2 {
		t.Fatal("unknown removal must not change the cart")
	}

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if !c.IsEmpty() || c.ItemCount() != 0 || !c.TotalPrice().IsZero() {
		t.Fatalf("expected empty cart, got %+v", c.Summary())
	}
}

func TestCartPersistsAcrossLoads(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	c := newTestCart(t, store)
	mustAdd(t, c, input("p1", 3200, 1, ""))
	mustAdd(t, c, input("p2", 1400, 2, ""))

	reloaded, err := Load(ctx, store)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.ItemCount() != 3 || !reloaded.TotalPrice().Equal(decimal.NewFromInt(6000)) {
		t.Fatalf("unexpected reloaded cart %+v", reloaded.Summary())
	}
}

func TestFailedPersistenceLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	store := kvtest.NewFlakyStore()
	c := newTestCart(t, store)
	line := mustAdd(t, c, input("p1", 1000, 1, ""))

	store.FailWrites(true)
	if _, err := c.AddItem(ctx, input("p1", 1000, 1, "")); !errors.Is(err, kvtest.ErrInjected) {
		t.Fatalf("expected injected error, got %v", err)
	}
	if err := c.UpdateItemQuantity(ctx, line.ID, 9); !errors.Is(err, kvtest.ErrInjected) {
		t.Fatalf("expected injected error, got %v", err)
	}
	if err := c.Clear(ctx); !errors.Is(err, kvtest.ErrInjected) {
		t.Fatalf("expected injected error, got %v", err)
	}

	if c.ItemCount() != 1 || c.Items()[0].Quantity != 1 {
		t.Fatalf("state changed after failed writes: %+v", c.Summary())
	}
}

func TestLoadPropagatesStoreErrors(t *testing.T) {
	store := kvtest.NewFlakyStore()
	store.FailReads(true)
	if _, err := Load(context.Background(), store); !errors.Is(err, kvtest.ErrInjected) {
		t.Fatalf("expected injected error, got %v", err)
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	ctx := context.Background()
	c := newTestCart(t, kv.NewMemory())
	line := mustAdd(t, c, input("p1", 1000, 1, ""))

	snap := c.Snapshot()
	if err := c.UpdateItemQuantity(ctx, line.ID, 4); err != nil {
		t.Fatalf("update: %v", err)
	}
	snap[0].Name = "changed"

	if snap[0].Quantity != 1 {
		t.Fatalf("snapshot followed cart mutation: %+v", snap[0])
	}
	if c.Items()[0].Name != "Product p1" {
		t.Fatal("cart followed snapshot mutation")
	}
}
