package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMovementRequest body para POST /api/movements.
// Kind: INGRESO | GASTO. Category (opcional) permite COMPRA o VENTA_DIRECTA explícitos.
type CreateMovementRequest struct {
	Kind         string          `json:"kind"`
	Category     string          `json:"category,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	VATRate      int             `json:"vat_rate"`
	Counterparty string          `json:"counterparty"`
	Detail       string          `json:"detail"`
}

// MovementResponse movimiento en respuestas.
type MovementResponse struct {
	ID           string          `json:"id"`
	CreatedAt    time.Time       `json:"created_at"`
	Category     string          `json:"category"`
	Income       bool            `json:"income"`
	Amount       decimal.Decimal `json:"amount"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	VAT          decimal.Decimal `json:"vat"`
	VATRate      int             `json:"vat_rate"`
	Description  string          `json:"description"`
	Counterparty string          `json:"counterparty,omitempty"`
	Detail       string          `json:"detail,omitempty"`
}
