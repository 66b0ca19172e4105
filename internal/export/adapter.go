// Package export renders finished quotations as downloadable documents.
package export

import (
	"strings"
	"time"

	"github.com/franco-vega/backend-tienda/internal/catalog"
	"github.com/franco-vega/backend-tienda/internal/pricing"
	"github.com/franco-vega/backend-tienda/internal/quote"
)

// Format selects the output rendering.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Valid reports whether the format is supported.
func (f Format) Valid() bool {
	return f == FormatText || f == FormatJSON
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == FormatJSON {
		return "application/json; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}

func (f Format) extension() string {
	if f == FormatJSON {
		return ".json"
	}
	return ".txt"
}

// Conditions are the commercial terms attached to every quotation.
type Conditions struct {
	Validity       string `json:"validez"`
	ProductionTime string `json:"tiempoProduccion"`
	Warranty       string `json:"garantia"`
	PaymentMethod  string `json:"formaPago"`
}

// DefaultConditions returns the standard commercial terms.
func DefaultConditions() Conditions {
	return Conditions{
		Validity:       "30 días",
		ProductionTime: "7-10 días hábiles",
		Warranty:       "30 días",
		PaymentMethod:  "Transferencia bancaria o cheque",
	}
}

// Document bundles everything a rendered quotation carries.
type Document struct {
	Date       time.Time
	Company    quote.CompanyData
	Product    catalog.Product
	Quotation  pricing.Quotation
	Conditions Conditions
}

// NewDocument assembles a document from a workflow session and its product,
// stamped with the issue date and the standard conditions.
func NewDocument(sess quote.Session, product catalog.Product, date time.Time) Document {
	return Document{
		Date:       date,
		Company:    sess.Company,
		Product:    product,
		Quotation:  sess.Quotation,
		Conditions: DefaultConditions(),
	}
}

// DateString renders the issue date in the Chilean day-first convention.
func (d Document) DateString() string {
	return d.Date.Format("02/01/2006")
}

// Filename builds the download name: cotizacion_<empresa>_<fecha> with
// whitespace collapsed to underscores and date separators to dashes.
func (d Document) Filename(f Format) string {
	company := strings.Join(strings.Fields(d.Company.CompanyName), "_")
	date := strings.ReplaceAll(d.DateString(), "/", "-")
	return "cotizacion_" + company + "_" + date + f.extension()
}
