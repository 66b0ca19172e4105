package export

import (
	"fmt"
	"strings"

	"github.com/franco-vega/backend-tienda/internal/currency"
)

// Text renders the plain-text COTIZACIÓN OFICIAL document. Discount lines
// appear only when the discount is non-zero.
func Text(doc Document) []byte {
	var b strings.Builder

	b.WriteString("COTIZACIÓN OFICIAL\n\n")
	fmt.Fprintf(&b, "Fecha: %s\n", doc.DateString())
	fmt.Fprintf(&b, "Válida por: %s\n\n", doc.Conditions.Validity)

	b.WriteString("DATOS DE LA EMPRESA:\n")
	fmt.Fprintf(&b, "%s\n", doc.Company.CompanyName)
	fmt.Fprintf(&b, "RUT: %s\n", doc.Company.RUT)
	fmt.Fprintf(&b, "Contacto: %s\n", doc.Company.ContactName)
	fmt.Fprintf(&b, "Email: %s\n", doc.Company.Email)
	fmt.Fprintf(&b, "Teléfono: %s\n", doc.Company.Phone)
	fmt.Fprintf(&b, "Dirección: %s, %s, %s\n\n", doc.Company.Address, doc.Company.City, doc.Company.Region)

	b.WriteString("PRODUCTO:\n")
	fmt.Fprintf(&b, "%s (SKU: %s)\n", doc.Product.Name, doc.Product.SKU)
	fmt.Fprintf(&b, "Categoría: %s\n\n", doc.Product.Category)

	q := doc.Quotation
	b.WriteString("DETALLE DE COTIZACIÓN:\n")
	fmt.Fprintf(&b, "Cantidad: %d unidades\n", q.Quantity)
	fmt.Fprintf(&b, "Precio unitario: %s\n", currency.Format(q.UnitPrice))
	fmt.Fprintf(&b, "Subtotal: %s\n", currency.Format(q.Subtotal))
	if q.VolumeDiscount > 0 {
		fmt.Fprintf(&b, "Descuento por volumen: -%s\n", currency.FormatPercent(q.VolumeDiscount))
	}
	if q.CompanyDiscount > 0 {
		fmt.Fprintf(&b, "Descuento empresarial: -%s\n", currency.FormatPercent(q.CompanyDiscount))
	}
	fmt.Fprintf(&b, "Envío: %s\n", currency.Format(q.Shipping))
	fmt.Fprintf(&b, "IVA (19%%): %s\n", currency.Format(q.Taxes))
	fmt.Fprintf(&b, "TOTAL: %s\n\n", currency.Format(q.Total))

	b.WriteString("CONDICIONES:\n")
	fmt.Fprintf(&b, "- Tiempo de producción: %s\n", doc.Conditions.ProductionTime)
	fmt.Fprintf(&b, "- Garantía: %s\n", doc.Conditions.Warranty)
	fmt.Fprintf(&b, "- Forma de pago: %s\n", doc.Conditions.PaymentMethod)

	return []byte(b.String())
}
