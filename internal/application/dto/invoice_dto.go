package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceInput datos para crear una factura (multipart en POST /api/invoices).
// Amount llega como texto desde el formulario.
type CreateInvoiceInput struct {
	Client       string
	Number       string
	Amount       string
	VATRate      int
	Document     []byte
	DocumentType string
}

// UpdateInvoiceAmountRequest body para PATCH /api/invoices/:id/amount.
type UpdateInvoiceAmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// InvoiceResponse factura con su posición de cobro.
type InvoiceResponse struct {
	ID          string          `json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	IssuedAt    *time.Time      `json:"issued_at,omitempty"`
	Client      string          `json:"client"`
	Number      string          `json:"number"`
	Amount      decimal.Decimal `json:"amount"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	VAT         decimal.Decimal `json:"vat"`
	VATRate     int             `json:"vat_rate"`
	Status      string          `json:"status"`        // derivado de los pagos
	StoredState string          `json:"stored_status"` // valor guardado en la fila
	Paid        decimal.Decimal `json:"paid"`
	Remaining   decimal.Decimal `json:"remaining"`
	HasDocument bool            `json:"has_document"`
}

// RegisterPaymentRequest body para POST /api/invoices/:id/payments.
type RegisterPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note,omitempty"`
}

// PaymentResponse pago registrado.
type PaymentResponse struct {
	ID        string          `json:"id"`
	InvoiceID string          `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
	PaidAt    time.Time       `json:"paid_at"`
	Note      string          `json:"note,omitempty"`
}

// PaymentResult resultado de registrar un pago: posición nueva de la factura.
type PaymentResult struct {
	Payment   PaymentResponse `json:"payment"`
	Paid      decimal.Decimal `json:"paid"`
	Remaining decimal.Decimal `json:"remaining"`
	Status    string          `json:"status"`
}

// DocumentURLResponse URL firmada temporal del PDF de una factura.
type DocumentURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
