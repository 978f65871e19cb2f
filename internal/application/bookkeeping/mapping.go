package bookkeeping

import (
	"github.com/jhoicas/hst-contabilidad/internal/application/dto"
	"github.com/jhoicas/hst-contabilidad/internal/domain/entity"
	"github.com/jhoicas/hst-contabilidad/internal/domain/ledger"
	"github.com/jhoicas/hst-contabilidad/internal/domain/receivable"
)

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:           m.ID,
		CreatedAt:    m.CreatedAt,
		Category:     m.Category,
		Income:       m.IsIncome(),
		Amount:       m.Amount,
		Subtotal:     m.Subtotal,
		VAT:          m.VAT,
		VATRate:      m.VATRate,
		Description:  m.Description,
		Counterparty: m.Counterparty,
		Detail:       m.Detail,
	}
}

func toInvoiceResponse(inv *entity.Invoice, pos receivable.Position) dto.InvoiceResponse {
	return dto.InvoiceResponse{
		ID:          inv.ID,
		CreatedAt:   inv.CreatedAt,
		IssuedAt:    inv.IssuedAt,
		Client:      inv.Client,
		Number:      inv.Number,
		Amount:      inv.Amount,
		Subtotal:    inv.Subtotal,
		VAT:         inv.VAT,
		VATRate:     inv.VATRate,
		Status:      pos.Status,
		StoredState: inv.Status,
		Paid:        pos.Paid,
		Remaining:   pos.Remaining,
		HasDocument: inv.DocumentPath != "",
	}
}

func toPaymentResponse(p *entity.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:        p.ID,
		InvoiceID: p.InvoiceID,
		Amount:    p.Amount,
		PaidAt:    p.PaidAt,
		Note:      p.Note,
	}
}

func toPeriodDTO(p ledger.Period) dto.PeriodDTO {
	var out dto.PeriodDTO
	if p.From != nil {
		out.From = p.From.Format(ledger.DateLayout)
	}
	if p.To != nil {
		out.To = p.To.Format(ledger.DateLayout)
	}
	return out
}
