package cart

import (
	"github.com/franco-vega/backend-tienda/internal/catalog"
)

// Line is one distinct (product, variant) entry in the cart. It carries a
// copy of the product's display fields so the cart survives catalog reloads.
type Line struct {
	ProductID     int     `json:"id"`
	Name          string  `json:"name"`
	SKU           string  `json:"sku"`
	Category      string  `json:"category"`
	Supplier      string  `json:"supplier"`
	Quantity      int     `json:"quantity"`
	SelectedColor string  `json:"selectedColor,omitempty"`
	SelectedSize  string  `json:"selectedSize,omitempty"`
	UnitPrice     float64 `json:"unitPrice"`
}

// LineKey identifies a line: same product with different color or size
// selections forms distinct lines.
type LineKey struct {
	ProductID int
	Color     string
	Size      string
}

// Key returns the identity key of the line.
func (l Line) Key() LineKey {
	return LineKey{ProductID: l.ProductID, Color: l.SelectedColor, Size: l.SelectedSize}
}

// State is the cart: lines in insertion order plus aggregates that are always
// recomputed from the full line slice, never patched incrementally.
type State struct {
	Items      []Line  `json:"items"`
	TotalItems int     `json:"totalItems"`
	TotalPrice float64 `json:"totalPrice"`
}

// Action is a cart state transition. The set is closed: AddItem, RemoveItem,
// UpdateQuantity, Clear.
type Action interface {
	// Name labels the action for logs and metrics.
	Name() string
}

// AddItem appends a new line or increments the quantity of the line with the
// same (product, color, size) identity. The unit price recorded is the base
// price at add time; volume breaks are not applied here.
type AddItem struct {
	Product  catalog.Product
	Quantity int
	Color    string
	Size     string
}

// RemoveItem drops every line for the product id, across all variant
// selections.
type RemoveItem struct {
	ProductID int
}

// UpdateQuantity overwrites the quantity of every line for the product id.
// A non-positive quantity behaves like RemoveItem.
type UpdateQuantity struct {
	ProductID int
	Quantity  int
}

// Clear resets the cart to its empty state.
type Clear struct{}

func (AddItem) Name() string        { return "add_item" }
func (RemoveItem) Name() string     { return "remove_item" }
func (UpdateQuantity) Name() string { return "update_quantity" }
func (Clear) Name() string          { return "clear" }

// Apply is the pure reducer: it maps (state, action) to the next state
// without touching the input. Every path ends in a full aggregate
// recomputation.
func Apply(state State, action Action) State {
	switch a := action.(type) {
	case AddItem:
		if a.Quantity <= 0 {
			return state
		}
		key := LineKey{ProductID: a.Product.ID, Color: a.Color, Size: a.Size}
		items := cloneLines(state.Items)
		merged := false
		for i := range items {
			if items[i].Key() == key {
				items[i].Quantity += a.Quantity
				merged = true
				break
			}
		}
		if !merged {
			items = append(items, Line{
				ProductID:     a.Product.ID,
				Name:          a.Product.Name,
				SKU:           a.Product.SKU,
				Category:      a.Product.Category,
				Supplier:      a.Product.Supplier,
				Quantity:      a.Quantity,
				SelectedColor: a.Color,
				SelectedSize:  a.Size,
				UnitPrice:     a.Product.BasePrice,
			})
		}
		return recompute(items)

	case RemoveItem:
		items := make([]Line, 0, len(state.Items))
		for _, line := range state.Items {
			if line.ProductID != a.ProductID {
				items = append(items, line)
			}
		}
		return recompute(items)

	case UpdateQuantity:
		if a.Quantity <= 0 {
			return Apply(state, RemoveItem{ProductID: a.ProductID})
		}
		items := cloneLines(state.Items)
		for i := range items {
			if items[i].ProductID == a.ProductID {
				items[i].Quantity = a.Quantity
			}
		}
		return recompute(items)

	case Clear:
		return State{Items: []Line{}}

	default:
		return state
	}
}

func cloneLines(items []Line) []Line {
	out := make([]Line, len(items))
	copy(out, items)
	return out
}

func recompute(items []Line) State {
	state := State{Items: items}
	for _, line := range items {
		state.TotalItems += line.Quantity
		state.TotalPrice += float64(line.Quantity) * line.UnitPrice
	}
	return state
}

// ItemQuantity returns the quantity of the first line matching the product
// id, or 0 when absent.
func (s State) ItemQuantity(productID int) int {
	for _, line := range s.Items {
		if line.ProductID == productID {
			return line.Quantity
		}
	}
	return 0
}
