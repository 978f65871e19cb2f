package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment abono aplicado contra una factura. Nunca se actualiza; se borra con su factura.
type Payment struct {
	ID        string
	InvoiceID string
	Amount    decimal.Decimal
	PaidAt    time.Time
	Note      string
}
