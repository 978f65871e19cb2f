package repository

import (
	"context"

	"github.com/jhoicas/hst-contabilidad/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// PaymentRepository puerto de persistencia para pagos de factura (tabla pagos_factura).
type PaymentRepository interface {
	Create(ctx context.Context, p *entity.Payment) error
	// List devuelve todos los pagos, más recientes primero.
	List(ctx context.Context) ([]*entity.Payment, error)
	ListByInvoice(ctx context.Context, invoiceID string) ([]*entity.Payment, error)
	SumByInvoice(ctx context.Context, invoiceID string) (decimal.Decimal, error)
	DeleteByInvoice(ctx context.Context, invoiceID string) error
}
