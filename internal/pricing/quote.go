package pricing

import (
	"github.com/franco-vega/backend-tienda/internal/catalog"
)

// Quotation is the full priced breakdown for a quantity of one product. It is
// an immutable snapshot: quantity changes rebuild the whole value, nothing is
// patched in place. All amounts are full precision; rounding belongs to the
// display layer.
type Quotation struct {
	Quantity        int     `json:"quantity"`
	UnitPrice       float64 `json:"unitPrice"`
	Subtotal        float64 `json:"subtotal"`
	VolumeDiscount  float64 `json:"volumeDiscount"`
	CompanyDiscount float64 `json:"companyDiscount"`
	Shipping        float64 `json:"shipping"`
	Taxes           float64 `json:"taxes"`
	Total           float64 `json:"total"`
}

// companyTiers maps order-quantity thresholds to the business discount
// percentage. Highest applicable threshold wins; tiers do not overlap.
var companyTiers = []struct {
	MinQty  int
	Percent float64
}{
	{MinQty: 1000, Percent: 15},
	{MinQty: 500, Percent: 10},
	{MinQty: 100, Percent: 5},
}

// shippingTiers maps quantity bands to flat shipping cost, applied only
// below the free-shipping threshold.
var shippingTiers = []struct {
	MaxQty int
	Cost   float64
}{
	{MaxQty: 50, Cost: 5000},
	{MaxQty: 200, Cost: 15000},
}

const shippingBulkCost = 25000

// Engine composes the price resolver with company-tier discounting, shipping
// tiers, and tax. Zero values fall back to the standard 19% IVA and the
// 50000 free-shipping threshold.
type Engine struct {
	TaxRateBPS            int
	FreeShippingThreshold float64
}

func (e Engine) taxRate() float64 {
	if e.TaxRateBPS <= 0 {
		return 0.19
	}
	return float64(e.TaxRateBPS) / 10000
}

func (e Engine) freeShippingThreshold() float64 {
	if e.FreeShippingThreshold <= 0 {
		return 50000
	}
	return e.FreeShippingThreshold
}

// BuildQuotation produces the quotation for the given product and quantity.
// Invalid quantities are rejected, never coerced: non-positive quantities
// return ErrInvalidQuantity and quantities above stock return ErrExceedsStock.
func (e Engine) BuildQuotation(p catalog.Product, quantity int) (Quotation, error) {
	if quantity <= 0 {
		return Quotation{}, ErrInvalidQuantity
	}
	if quantity > p.Stock {
		return Quotation{}, ErrExceedsStock
	}

	unitPrice, volumeDiscount := ResolvePrice(p, quantity)
	subtotal := unitPrice * float64(quantity)

	companyDiscount := CompanyDiscountFor(quantity)
	discounted := subtotal * (1 - companyDiscount/100)

	shipping := e.shippingCost(quantity, discounted)
	taxes := (discounted + shipping) * e.taxRate()
	total := discounted + shipping + taxes

	return Quotation{
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		Subtotal:        subtotal,
		VolumeDiscount:  volumeDiscount,
		CompanyDiscount: companyDiscount,
		Shipping:        shipping,
		Taxes:           taxes,
		Total:           total,
	}, nil
}

// CompanyDiscountFor returns the tiered business discount percentage for an
// order quantity.
func CompanyDiscountFor(quantity int) float64 {
	for _, tier := range companyTiers {
		if quantity >= tier.MinQty {
			return tier.Percent
		}
	}
	return 0
}

func (e Engine) shippingCost(quantity int, discountedSubtotal float64) float64 {
	if discountedSubtotal >= e.freeShippingThreshold() {
		return 0
	}
	for _, tier := range shippingTiers {
		if quantity <= tier.MaxQty {
			return tier.Cost
		}
	}
	return shippingBulkCost
}
