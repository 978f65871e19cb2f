package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/hst-contabilidad/internal/domain"
	"github.com/jhoicas/hst-contabilidad/internal/domain/entity"
	"github.com/jhoicas/hst-contabilidad/internal/domain/repository"
)

var _ repository.ShareLinkRepository = (*ShareLinkRepo)(nil)

// ShareLinkRepo enlaces de solo lectura en la tabla share_links.
type ShareLinkRepo struct {
	q Querier
}

func NewShareLinkRepository(q Querier) *ShareLinkRepo {
	return &ShareLinkRepo{q: q}
}

// GetByToken (nil, nil) si el token no existe.
func (r *ShareLinkRepo) GetByToken(ctx context.Context, token string) (*entity.ShareLink, error) {
	var (
		l    entity.ShareLink
		name *string
	)
	err := r.q.QueryRow(ctx, `
		SELECT id::text, token, nombre, COALESCE(activo, false), expires_at, created_at
		FROM share_links WHERE token = $1`, token).
		Scan(&l.ID, &l.Token, &name, &l.Active, &l.ExpiresAt, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get share link: %w", err)
	}
	l.Name = derefStr(name)
	return &l, nil
}

func (r *ShareLinkRepo) Create(ctx context.Context, link *entity.ShareLink) error {
	if link.ID == "" {
		link.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO share_links (id, token, nombre, activo, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		link.ID, link.Token, nullIfEmpty(link.Name), link.Active, link.ExpiresAt, link.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: token ya existe", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert share link: %w", err)
	}
	return nil
}
