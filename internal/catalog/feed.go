package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	_ "embed"
)

//go:embed data/products.json
var embeddedDataset []byte

// PriceBreak is a quantity threshold at which a lower unit price applies.
// Discount is informational display data; computations always derive the
// percentage from base vs tier price.
type PriceBreak struct {
	MinQty   int      `json:"minQty"`
	Price    float64  `json:"price"`
	Discount *float64 `json:"discount,omitempty"`
}

// Product is one catalog entry. The feed owns these records; the pricing and
// cart modules only ever read them.
type Product struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	SKU         string       `json:"sku"`
	Category    string       `json:"category"`
	Supplier    string       `json:"supplier"`
	BasePrice   float64      `json:"basePrice"`
	Stock       int          `json:"stock"`
	Colors      []string     `json:"colors,omitempty"`
	Sizes       []string     `json:"sizes,omitempty"`
	PriceBreaks []PriceBreak `json:"priceBreaks,omitempty"`
}

// FacetCount pairs a facet value (category or supplier tag) with the number
// of products carrying it.
type FacetCount struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Feed is the read-only in-memory product collection. It is immutable after
// Load and safe for concurrent readers.
type Feed struct {
	products []Product
	byID     map[int]Product
}

// LoadFeed reads the catalog dataset from path, or from the embedded dataset
// when path is empty.
func LoadFeed(path string) (*Feed, error) {
	data := embeddedDataset
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog dataset: %w", err)
		}
		data = raw
	}
	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("parse catalog dataset: %w", err)
	}
	byID := make(map[int]Product, len(products))
	for _, p := range products {
		if p.ID <= 0 {
			return nil, fmt.Errorf("catalog dataset: product %q has invalid id %d", p.Name, p.ID)
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog dataset: duplicate product id %d", p.ID)
		}
		if p.BasePrice < 0 {
			return nil, fmt.Errorf("catalog dataset: product %d has negative base price", p.ID)
		}
		byID[p.ID] = p
	}
	return &Feed{products: products, byID: byID}, nil
}

// Products returns a copy of the full product list in feed order.
func (f *Feed) Products() []Product {
	out := make([]Product, len(f.products))
	copy(out, f.products)
	return out
}

// Get looks up a product by id.
func (f *Feed) Get(id int) (Product, bool) {
	p, ok := f.byID[id]
	return p, ok
}

// Len reports the number of products in the feed.
func (f *Feed) Len() int {
	return len(f.products)
}

// Categories returns category tags with derived product counts, sorted by tag.
func (f *Feed) Categories() []FacetCount {
	return f.facet(func(p Product) string { return p.Category })
}

// Suppliers returns supplier tags with derived product counts, sorted by tag.
func (f *Feed) Suppliers() []FacetCount {
	return f.facet(func(p Product) string { return p.Supplier })
}

func (f *Feed) facet(key func(Product) string) []FacetCount {
	counts := make(map[string]int)
	for _, p := range f.products {
		if k := key(p); k != "" {
			counts[k]++
		}
	}
	out := make([]FacetCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, FacetCount{ID: k, Name: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
