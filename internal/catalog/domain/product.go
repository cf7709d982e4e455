package domain

import (
	"strings"
)

// Product is immutable after catalog load. Price is in the smallest currency
// unit; InitialQty is the stock level used when no persisted stock map exists.
type Product struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	InitialQty int    `json:"initial_qty"`
	Category   string `json:"category,omitempty"`
}

// DeriveID slugifies a display name into a product id: lowercase, runs of
// whitespace collapsed to a single hyphen. Applied exactly once at catalog
// load for products without an explicit id; never recomputed afterwards, so a
// renamed product keeps its original id for the whole session.
func DeriveID(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// Catalog is the immutable-after-load product list. Insertion order is kept
// for rendering; lookups go through the id index.
type Catalog struct {
	products []Product
	byID     map[string]Product
}

// NewCatalog indexes an already-validated product list. Ids are assumed
// unique; the loader is responsible for slug derivation and collision policy.
func NewCatalog(products []Product) *Catalog {
	c := &Catalog{
		products: make([]Product, len(products)),
		byID:     make(map[string]Product, len(products)),
	}
	copy(c.products, products)
	for _, p := range c.products {
		c.byID[p.ID] = p
	}
	return c
}

func (c *Catalog) Get(id string) (Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Products returns a copy in catalog order.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// InitialStock derives the default stock map used when hydration finds no
// persisted stock record.
func (c *Catalog) InitialStock() map[string]int {
	stock := make(map[string]int, len(c.products))
	for _, p := range c.products {
		stock[p.ID] = p.InitialQty
	}
	return stock
}

func (c *Catalog) Len() int {
	return len(c.products)
}
