package cart

import (
	"encoding/json"
	"testing"

	"github.com/franco-vega/backend-tienda/internal/catalog"
)

var polera = catalog.Product{
	ID: 1, Name: "Polera Algodón Premium", SKU: "POL-001", Category: "textil",
	Supplier: "TextilPro", BasePrice: 5990, Stock: 1200,
	PriceBreaks: []catalog.PriceBreak{{MinQty: 50, Price: 4990}},
}

var tazon = catalog.Product{
	ID: 2, Name: "Tazón Cerámica", SKU: "TAZ-002", Category: "hogar",
	Supplier: "CeramicArt", BasePrice: 3490, Stock: 800,
}

func checkInvariants(t *testing.T, state State) {
	t.Helper()
	items, price := 0, 0.0
	for _, line := range state.Items {
		items += line.Quantity
		price += float64(line.Quantity) * line.UnitPrice
	}
	if state.TotalItems != items {
		t.Fatalf("totalItems %d does not match line sum %d", state.TotalItems, items)
	}
	if state.TotalPrice != price {
		t.Fatalf("totalPrice %v does not match line sum %v", state.TotalPrice, price)
	}
}

func TestAddItemMergesSameVariant(t *testing.T) {
	state := Apply(State{}, AddItem{Product: polera, Quantity: 2, Color: "Rojo", Size: "M"})
	state = Apply(state, AddItem{Product: polera, Quantity: 3, Color: "Rojo", Size: "M"})

	if len(state.Items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(state.Items))
	}
	if state.Items[0].Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %d", state.Items[0].Quantity)
	}
	checkInvariants(t, state)
}

func TestAddItemDistinctVariants(t *testing.T) {
	state := Apply(State{}, AddItem{Product: polera, Quantity: 1, Color: "Rojo", Size: "M"})
	state = Apply(state, AddItem{Product: polera, Quantity: 1, Color: "Azul", Size: "M"})
	state = Apply(state, AddItem{Product: polera, Quantity: 1, Color: "Rojo", Size: "L"})

	if len(state.Items) != 3 {
		t.Fatalf("expected three variant lines, got %d", len(state.Items))
	}
	checkInvariants(t, state)
}

func TestAddItemUsesBasePrice(t *testing.T) {
	// Quantities above the first price break still record the base price;
	// break pricing belongs to quotations, not the cart.
	state := Apply(State{}, AddItem{Product: polera, Quantity: 100})
	if state.Items[0].UnitPrice != polera.BasePrice {
		t.Fatalf("expected base price %v, got %v", polera.BasePrice, state.Items[0].UnitPrice)
	}
	if state.TotalPrice != polera.BasePrice*100 {
		t.Fatalf("unexpected total price %v", state.TotalPrice)
	}
}

func TestAddItemIgnoresNonPositiveQuantity(t *testing.T) {
	state := Apply(State{}, AddItem{Product: polera, Quantity: 0})
	if len(state.Items) != 0 {
		t.Fatalf("expected no lines, got %d", len(state.Items))
	}
}

func TestRemoveItemDropsAllVariants(t *testing.T) {
	state := Apply(State{}, AddItem{Product: polera, Quantity: 1, Color: "Rojo"})
	state = Apply(state, AddItem{Product: polera, Quantity: 1, Color: "Azul"})
	state = Apply(state, AddItem{Product: tazon, Quantity: 2})

	state = Apply(state, RemoveItem{ProductID: polera.ID})
	if len(state.Items) != 1 {
		t.Fatalf("expected only the other product to remain, got %d lines", len(state.Items))
	}
	if state.Items[0].ProductID != tazon.ID {
		t.Fatalf("unexpected surviving line: %+v", state.Items[0])
	}
	checkInvariants(t, state)
}

func TestUpdateQuantityOverwrites(t *testing.T) {
	state := Apply(State{}, AddItem{Product: polera, Quantity: 2})
	state = Apply(state, UpdateQuantity{ProductID: polera.ID, Quantity: 7})
	if state.Items[0].Quantity != 7 {
		t.Fatalf("expected overwritten quantity 7, got %d", state.Items[0].Quantity)
	}
	checkInvariants(t, state)
}

func TestUpdateQuantityZeroRemoves(t *testing.T) {
	state := Apply(State{}, AddItem{Product: polera, Quantity: 2})
	state = Apply(state, UpdateQuantity{ProductID: polera.ID, Quantity: 0})
	if len(state.Items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(state.Items))
	}
	if state.TotalItems != 0 || state.TotalPrice != 0 {
		t.Fatalf("expected zero aggregates, got %d / %v", state.TotalItems, state.TotalPrice)
	}
}

func TestClear(t *testing.T) {
	state := Apply(State{}, AddItem{Product: polera, Quantity: 2})
	state = Apply(state, Clear{})
	if state.Items == nil || len(state.Items) != 0 {
		t.Fatalf("expected empty non-nil item slice, got %#v", state.Items)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	original := Apply(State{}, AddItem{Product: polera, Quantity: 2})
	_ = Apply(original, UpdateQuantity{ProductID: polera.ID, Quantity: 9})
	if original.Items[0].Quantity != 2 {
		t.Fatalf("reducer mutated its input: %+v", original.Items[0])
	}
}

func TestMutationSequenceKeepsInvariants(t *testing.T) {
	state := State{}
	actions := []Action{
		AddItem{Product: polera, Quantity: 3, Color: "Rojo"},
		AddItem{Product: tazon, Quantity: 5},
		AddItem{Product: polera, Quantity: 2, Color: "Rojo"},
		UpdateQuantity{ProductID: tazon.ID, Quantity: 1},
		RemoveItem{ProductID: polera.ID},
		AddItem{Product: polera, Quantity: 10, Size: "L"},
	}
	for _, action := range actions {
		state = Apply(state, action)
		checkInvariants(t, state)
	}
	if state.TotalItems != 11 {
		t.Fatalf("expected 11 items after sequence, got %d", state.TotalItems)
	}
}

func TestStateRoundTrip(t *testing.T) {
	state := Apply(State{}, AddItem{Product: polera, Quantity: 2, Color: "Rojo", Size: "M"})
	state = Apply(state, AddItem{Product: tazon, Quantity: 1})

	data, err := json.Marshal(state)
	if err != nil {
		t.Fatal(err)
	}
	var restored State
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatal(err)
	}
	if restored.TotalItems != state.TotalItems || restored.TotalPrice != state.TotalPrice {
		t.Fatalf("aggregates changed across round trip: %+v vs %+v", restored, state)
	}
	if len(restored.Items) != len(state.Items) {
		t.Fatalf("line count changed across round trip")
	}
	for i := range state.Items {
		if restored.Items[i] != state.Items[i] {
			t.Fatalf("line %d changed across round trip: %+v vs %+v", i, restored.Items[i], state.Items[i])
		}
	}
}
