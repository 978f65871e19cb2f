package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/hst-contabilidad/internal/domain/entity"
	"github.com/jhoicas/hst-contabilidad/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo pagos en la tabla pagos_factura (usable con pool o tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO pagos_factura (id, factura_id, monto, fecha, nota)
		VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.InvoiceID, p.Amount, p.PaidAt, nullIfEmpty(p.Note))
	if err != nil {
		return fmt.Errorf("insert pago: %w", err)
	}
	return nil
}

func (r *PaymentRepo) List(ctx context.Context) ([]*entity.Payment, error) {
	return r.list(ctx, `
		SELECT id::text, factura_id::text, monto, fecha, nota
		FROM pagos_factura
		ORDER BY fecha DESC`)
}

func (r *PaymentRepo) ListByInvoice(ctx context.Context, invoiceID string) ([]*entity.Payment, error) {
	return r.list(ctx, `
		SELECT id::text, factura_id::text, monto, fecha, nota
		FROM pagos_factura
		WHERE factura_id::text = $1
		ORDER BY fecha DESC`, invoiceID)
}

func (r *PaymentRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Payment, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pagos: %w", err)
	}
	defer rows.Close()

	var list []*entity.Payment
	for rows.Next() {
		var (
			p     entity.Payment
			total decimal.NullDecimal
			note  *string
		)
		if err := rows.Scan(&p.ID, &p.InvoiceID, &total, &p.PaidAt, &note); err != nil {
			return nil, fmt.Errorf("scan pago: %w", err)
		}
		p.Amount = coerce(total)
		p.Note = derefStr(note)
		list = append(list, &p)
	}
	return list, rows.Err()
}

// SumByInvoice total pagado de una factura. Dentro de la tx de registro de pago la
// fila de la factura ya está bloqueada, así que la suma no cambia hasta el commit.
func (r *PaymentRepo) SumByInvoice(ctx context.Context, invoiceID string) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.q.QueryRow(ctx,
		`SELECT SUM(monto) FROM pagos_factura WHERE factura_id::text = $1`, invoiceID).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sumar pagos: %w", err)
	}
	return coerce(sum), nil
}

func (r *PaymentRepo) DeleteByInvoice(ctx context.Context, invoiceID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM pagos_factura WHERE factura_id::text = $1`, invoiceID); err != nil {
		return fmt.Errorf("delete pagos: %w", err)
	}
	return nil
}
