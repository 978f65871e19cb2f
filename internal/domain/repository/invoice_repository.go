package repository

import (
	"context"

	"github.com/jhoicas/hst-contabilidad/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// InvoiceRepository puerto de persistencia para facturas.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *entity.Invoice) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	// GetForUpdate igual que GetByID pero bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error)
	// List devuelve todas las facturas, más recientes primero.
	List(ctx context.Context) ([]*entity.Invoice, error)
	UpdateAmount(ctx context.Context, id string, amount, subtotal, vat decimal.Decimal) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	// SearchClients nombres de cliente que empiezan con prefix (sin distinguir mayúsculas).
	SearchClients(ctx context.Context, prefix string, limit int) ([]string, error)
}
