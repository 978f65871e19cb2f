package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de movimiento (valores tal como se guardan en la tabla transactions).
const (
	CategoryDirectSale     = "VENTA_DIRECTA"
	CategoryInvoicePayment = "PAGO_FACTURA"
	CategoryExpense        = "GASTO"
	CategoryPurchase       = "COMPRA"
)

// Valores por defecto de área y cuenta.
const (
	DefaultArea    = "GENERAL"
	DefaultAccount = "BANCO"
)

// Movement representa un ingreso o egreso de caja. Inmutable salvo borrado.
type Movement struct {
	ID           string
	CreatedAt    time.Time
	Category     string
	Amount       decimal.Decimal
	Subtotal     decimal.Decimal
	VAT          decimal.Decimal
	VATRate      int
	Description  string
	Counterparty string // proveedor / quién pagó
	Detail       string
	Area         string
	Account      string
}

// IsIncome indica si la categoría cuenta como ingreso (venta directa o pago de factura).
// Cualquier otra categoría, incluso desconocida, se trata como egreso.
func IsIncome(category string) bool {
	return category == CategoryDirectSale || category == CategoryInvoicePayment
}

// IsIncome atajo sobre la categoría del movimiento.
func (m *Movement) IsIncome() bool { return IsIncome(m.Category) }

// ValidCategory indica si la categoría pertenece a la enumeración conocida.
func ValidCategory(category string) bool {
	switch category {
	case CategoryDirectSale, CategoryInvoicePayment, CategoryExpense, CategoryPurchase:
		return true
	}
	return false
}
