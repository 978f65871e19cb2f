package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/hst-contabilidad/internal/domain"
	"github.com/jhoicas/hst-contabilidad/internal/domain/entity"
	"github.com/jhoicas/hst-contabilidad/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo movimientos en la tabla transactions (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste el movimiento.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO transactions (id, created_at, type, amount, subtotal, iva, porcentaje_iva,
		                          description, proveedor, detalle, area, account)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.CreatedAt, m.Category, m.Amount, m.Subtotal, m.VAT, m.VATRate,
		m.Description, nullIfEmpty(m.Counterparty), nullIfEmpty(m.Detail), m.Area, m.Account,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// List todos los movimientos, más recientes primero. Montos NULL cuentan como cero.
func (r *MovementRepo) List(ctx context.Context) ([]*entity.Movement, error) {
	query := `
		SELECT id::text, created_at, COALESCE(type, ''), amount, subtotal, iva, porcentaje_iva,
		       description, proveedor, detalle, area, account
		FROM transactions
		ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		var (
			m                      entity.Movement
			total, subtotal, vat   decimal.NullDecimal
			rate                   *int32
			desc, prov, det, a, ac *string
		)
		if err := rows.Scan(&m.ID, &m.CreatedAt, &m.Category, &total, &subtotal, &vat, &rate,
			&desc, &prov, &det, &a, &ac); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		m.Amount = coerce(total)
		m.Subtotal = coerce(subtotal)
		m.VAT = coerce(vat)
		m.VATRate = derefInt(rate)
		m.Description = derefStr(desc)
		m.Counterparty = derefStr(prov)
		m.Detail = derefStr(det)
		m.Area = derefStr(a)
		m.Account = derefStr(ac)
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Delete elimina por id; domain.ErrNotFound si no existía.
func (r *MovementRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM transactions WHERE id::text = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
