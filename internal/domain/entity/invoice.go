package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de cobro de una factura. Solo los escribe la creación (pendiente) y el registro de pagos.
const (
	InvoiceStatusPending = "pendiente"
	InvoiceStatusPartial = "parcial"
	InvoiceStatusPaid    = "pagado"
)

// Invoice representa una factura emitida a un cliente.
type Invoice struct {
	ID           string
	CreatedAt    time.Time
	Client       string
	Number       string
	Amount       decimal.Decimal // total con IVA
	Subtotal     decimal.Decimal
	VAT          decimal.Decimal
	VATRate      int
	Status       string
	DocumentPath string // ruta del PDF en el almacenamiento de objetos
	IssuedAt     *time.Time
}

// EffectiveDate fecha usada para los filtros por período: emisión o, si falta, creación.
func (i *Invoice) EffectiveDate() time.Time {
	if i.IssuedAt != nil && !i.IssuedAt.IsZero() {
		return *i.IssuedAt
	}
	return i.CreatedAt
}
