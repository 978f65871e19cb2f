// Package access controla el acceso a las vistas de solo lectura mediante enlaces compartidos.
package access

import (
	"context"
	"time"

	"github.com/jhoicas/hst-contabilidad/internal/domain"
	"github.com/jhoicas/hst-contabilidad/internal/domain/entity"
)

// Gate decide si se puede mostrar una vista de solo lectura.
type Gate interface {
	Authorize(ctx context.Context) error
}

// LinkLookup busca un enlace compartido por token; (nil, nil) si no existe.
type LinkLookup interface {
	GetByToken(ctx context.Context, token string) (*entity.ShareLink, error)
}

// Unrestricted sin token: siempre autoriza.
type Unrestricted struct{}

func (Unrestricted) Authorize(context.Context) error { return nil }

// TokenChecked autoriza si el enlace existe, está activo y no ha vencido.
type TokenChecked struct {
	Token  string
	Lookup LinkLookup
	Now    func() time.Time
}

func (g TokenChecked) Authorize(ctx context.Context) error {
	link, err := g.Lookup.GetByToken(ctx, g.Token)
	if err != nil {
		return domain.StoreFailure("buscar enlace", err)
	}
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	if !link.ValidAt(now()) {
		return domain.ErrUnauthorized
	}
	return nil
}

// ForToken elige la variante según haya o no token.
func ForToken(token string, lookup LinkLookup) Gate {
	if token == "" {
		return Unrestricted{}
	}
	return TokenChecked{Token: token, Lookup: lookup}
}
