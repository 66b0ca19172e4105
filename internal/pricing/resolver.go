package pricing

import (
	"github.com/franco-vega/backend-tienda/internal/catalog"
)

// ResolvePrice maps (product, quantity) to the effective unit price and the
// derived volume-discount percentage.
//
// Among the breaks with MinQty <= quantity the one with the greatest MinQty
// wins, regardless of the order the breaks appear in. With no qualifying
// break (or a non-positive quantity) the base price applies at 0% discount.
// The displayed Discount field on a break is ignored; the percentage is
// always derived from base vs tier price.
func ResolvePrice(p catalog.Product, quantity int) (unitPrice, volumeDiscountPct float64) {
	unitPrice = p.BasePrice
	if quantity <= 0 || len(p.PriceBreaks) == 0 {
		return unitPrice, 0
	}

	bestMin := -1
	for _, pb := range p.PriceBreaks {
		if pb.MinQty <= 0 || pb.MinQty > quantity {
			continue
		}
		// On duplicate MinQty values the last scanned entry wins.
		if pb.MinQty >= bestMin {
			bestMin = pb.MinQty
			unitPrice = pb.Price
		}
	}
	if bestMin < 0 {
		return p.BasePrice, 0
	}

	if p.BasePrice <= 0 {
		return unitPrice, 0
	}
	pct := (p.BasePrice - unitPrice) / p.BasePrice * 100
	if pct <= 0 {
		return unitPrice, 0
	}
	return unitPrice, pct
}
