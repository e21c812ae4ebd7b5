package product

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

//go:embed seed_catalog.json
var seedCatalog []byte

// DefaultTitle is returned by Title when no category matches.
const DefaultTitle = "Catalog"

// Catalog is the static, ordered product list and its category tree.
// It is read-only after construction and safe for concurrent use.
type Catalog struct {
	products   []Product
	categories []Category
	index      map[string]int
}

type catalogFile struct {
	Categories []Category `json:"categories"`
	Products   []Product  `json:"products"`
}

// LoadCatalog reads the catalog from path, or the embedded seed when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	raw := seedCatalog
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		raw = data
	}
	return ParseCatalog(raw)
}

// ParseCatalog decodes a catalog document.
func ParseCatalog(raw []byte) (*Catalog, error) {
	var file catalogFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return NewCatalog(file.Products, file.Categories)
}

// NewCatalog validates and indexes the given products.
func NewCatalog(products []Product, categories []Category) (*Catalog, error) {
	index := make(map[string]int, len(products))
	for i, p := range products {
		if p.ID == "" {
			return nil, fmt.Errorf("product at position %d has no id", i)
		}
		if _, dup := index[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		if !p.Price.IsPositive() {
			return nil, fmt.Errorf("product %q must have a positive price", p.ID)
		}
		index[p.ID] = i
	}
	return &Catalog{
		products:   append([]Product(nil), products...),
		categories: append([]Category(nil), categories...),
		index:      index,
	}, nil
}

// Products returns the catalog in its original order.
func (c *Catalog) Products() []Product {
	return append([]Product(nil), c.products...)
}

func (c *Catalog) Categories() []Category {
	return append([]Category(nil), c.categories...)
}

func (c *Catalog) FindByID(id string) (Product, bool) {
	i, ok := c.index[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

func (c *Catalog) FindCategory(id string) (Category, bool) {
	for _, cat := range c.categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return Category{}, false
}

// PriceBounds returns the lowest and highest price in the catalog.
func (c *Catalog) PriceBounds() (decimal.Decimal, decimal.Decimal) {
	if len(c.products) == 0 {
		return decimal.Zero, decimal.Zero
	}
	lo, hi := c.products[0].Price, c.products[0].Price
	for _, p := range c.products[1:] {
		if p.Price.LessThan(lo) {
			lo = p.Price
		}
		if p.Price.GreaterThan(hi) {
			hi = p.Price
		}
	}
	return lo, hi
}

// Title names a catalog listing: the subcategory name, else the category name.
func (c *Catalog) Title(category, subcategory string) string {
	cat, ok := c.FindCategory(category)
	if !ok {
		return DefaultTitle
	}
	if subcategory != "" {
		for _, sub := range cat.Subcategories {
			if sub.ID == subcategory {
				return sub.Name
			}
		}
	}
	return cat.Name
}

// View filters and sorts the catalog.
func (c *Catalog) View(filter Filter, sortOption SortOption) []Product {
	return View(c.products, filter, sortOption)
}
