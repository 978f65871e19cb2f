package repository

import (
	"context"

	"github.com/jhoicas/hst-contabilidad/internal/domain/entity"
)

// ShareLinkRepository puerto de lectura de enlaces compartidos.
type ShareLinkRepository interface {
	// GetByToken devuelve (nil, nil) si el token no existe.
	GetByToken(ctx context.Context, token string) (*entity.ShareLink, error)
	Create(ctx context.Context, link *entity.ShareLink) error
}
