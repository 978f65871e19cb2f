package repository

import (
	"context"

	"github.com/jhoicas/hst-contabilidad/internal/domain/entity"
)

// MovementRepository puerto de persistencia para movimientos (tabla transactions).
type MovementRepository interface {
	Create(ctx context.Context, m *entity.Movement) error
	// List devuelve todos los movimientos, más recientes primero.
	List(ctx context.Context) ([]*entity.Movement, error)
	Delete(ctx context.Context, id string) error
}
