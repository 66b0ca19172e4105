package export

import (
	"encoding/json"

	"github.com/franco-vega/backend-tienda/internal/pricing"
	"github.com/franco-vega/backend-tienda/internal/quote"
)

type jsonProduct struct {
	Name     string `json:"nombre"`
	SKU      string `json:"sku"`
	Category string `json:"categoria"`
}

type jsonDocument struct {
	Date       string            `json:"fecha"`
	Company    quote.CompanyData `json:"empresa"`
	Product    jsonProduct       `json:"producto"`
	Quotation  pricing.Quotation `json:"cotizacion"`
	Conditions Conditions        `json:"condiciones"`
}

// JSON renders the machine-readable quotation document.
func JSON(doc Document) ([]byte, error) {
	return json.MarshalIndent(jsonDocument{
		Date:    doc.DateString(),
		Company: doc.Company,
		Product: jsonProduct{
			Name:     doc.Product.Name,
			SKU:      doc.Product.SKU,
			Category: doc.Product.Category,
		},
		Quotation:  doc.Quotation,
		Conditions: doc.Conditions,
	}, "", "  ")
}
