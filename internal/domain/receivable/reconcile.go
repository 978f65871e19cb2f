// Package receivable concilia facturas con sus pagos: pagado, restante y estado
// de cada factura, y el total por cobrar.
package receivable

import (
	"github.com/jhoicas/hst-contabilidad/internal/domain"
	"github.com/jhoicas/hst-contabilidad/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Position situación de cobro de una factura.
type Position struct {
	Paid      decimal.Decimal
	Remaining decimal.Decimal
	Status    string
}

// Result conciliación completa de un snapshot.
type Result struct {
	ByInvoice  map[string]Position
	Receivable decimal.Decimal // suma de restantes > 0
}

// Of devuelve la posición de la factura id (cero/pendiente si no está).
func (r Result) Of(id string) Position {
	if p, ok := r.ByInvoice[id]; ok {
		return p
	}
	return Position{Status: entity.InvoiceStatusPending}
}

// PaidByInvoice agrupa los pagos por factura sumando montos. El orden no importa.
func PaidByInvoice(payments []*entity.Payment) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, p := range payments {
		if p == nil {
			continue
		}
		out[p.InvoiceID] = out[p.InvoiceID].Add(p.Amount)
	}
	return out
}

// PositionOf calcula restante = max(0, monto - pagado) y el estado derivado.
func PositionOf(amount, paid decimal.Decimal) Position {
	remaining := amount.Sub(paid)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	return Position{Paid: paid, Remaining: remaining, Status: DeriveStatus(paid, remaining)}
}

// DeriveStatus: sin pagos -> pendiente; restante cero -> pagado; si no -> parcial.
func DeriveStatus(paid, remaining decimal.Decimal) string {
	switch {
	case !paid.IsPositive():
		return entity.InvoiceStatusPending
	case remaining.IsZero():
		return entity.InvoiceStatusPaid
	default:
		return entity.InvoiceStatusPartial
	}
}

// Reconcile concilia todas las facturas con todos los pagos.
// Los pagos de facturas inexistentes se ignoran.
func Reconcile(invoices []*entity.Invoice, payments []*entity.Payment) Result {
	paid := PaidByInvoice(payments)
	res := Result{ByInvoice: make(map[string]Position, len(invoices))}
	for _, inv := range invoices {
		if inv == nil {
			continue
		}
		pos := PositionOf(inv.Amount, paid[inv.ID])
		res.ByInvoice[inv.ID] = pos
		if pos.Remaining.IsPositive() {
			res.Receivable = res.Receivable.Add(pos.Remaining)
		}
	}
	return res
}

// CheckPayment precondición del registro de pagos sobre la posición actual.
func CheckPayment(pos Position, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	if !pos.Remaining.IsPositive() {
		return domain.ErrAlreadyPaid
	}
	if amount.GreaterThan(pos.Remaining) {
		return domain.ErrOverpayment
	}
	return nil
}

// StatusAfter estado de la factura tras aplicar un pago válido sobre remaining.
func StatusAfter(remaining, amount decimal.Decimal) string {
	if remaining.Sub(amount).IsPositive() {
		return entity.InvoiceStatusPartial
	}
	return entity.InvoiceStatusPaid
}
