// Package ledger contiene las funciones puras del libro de movimientos:
// totales de ingresos/gastos, saldo y desglose de IVA de un período.
package ledger

import (
	"github.com/jhoicas/hst-contabilidad/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Summary totales del libro para un período.
type Summary struct {
	Income       decimal.Decimal
	Expense      decimal.Decimal
	Balance      decimal.Decimal // Income - Expense
	VATGenerated decimal.Decimal // IVA de facturas emitidas en el período
	VATPaid      decimal.Decimal // IVA de gastos del período
	VATPayable   decimal.Decimal // VATGenerated - VATPaid, puede ser negativo
}

// Aggregate calcula el resumen del período sobre movimientos y facturas ya cargados.
func Aggregate(movements []*entity.Movement, invoices []*entity.Invoice, p Period) Summary {
	var s Summary
	for _, m := range movements {
		if m == nil || !p.Contains(m.CreatedAt) {
			continue
		}
		if m.IsIncome() {
			s.Income = s.Income.Add(m.Amount)
			continue
		}
		s.Expense = s.Expense.Add(m.Amount)
		s.VATPaid = s.VATPaid.Add(m.VAT)
	}
	for _, inv := range invoices {
		if inv == nil || !p.Contains(inv.EffectiveDate()) {
			continue
		}
		s.VATGenerated = s.VATGenerated.Add(inv.VAT)
	}
	s.Balance = s.Income.Sub(s.Expense)
	s.VATPayable = s.VATGenerated.Sub(s.VATPaid)
	return s
}

// FilterMovements movimientos cuya fecha cae dentro del período (conserva el orden).
func FilterMovements(movements []*entity.Movement, p Period) []*entity.Movement {
	out := make([]*entity.Movement, 0, len(movements))
	for _, m := range movements {
		if m != nil && p.Contains(m.CreatedAt) {
			out = append(out, m)
		}
	}
	return out
}

// FilterInvoices facturas cuya fecha efectiva cae dentro del período.
func FilterInvoices(invoices []*entity.Invoice, p Period) []*entity.Invoice {
	out := make([]*entity.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if inv != nil && p.Contains(inv.EffectiveDate()) {
			out = append(out, inv)
		}
	}
	return out
}
