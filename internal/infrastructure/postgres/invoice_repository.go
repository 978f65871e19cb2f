package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/hst-contabilidad/internal/domain"
	"github.com/jhoicas/hst-contabilidad/internal/domain/entity"
	"github.com/jhoicas/hst-contabilidad/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `
	id::text, created_at, COALESCE(cliente, ''), numero, monto, subtotal, iva, porcentaje_iva,
	estado, pdf_url, fecha`

// InvoiceRepo facturas en la tabla facturas (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la factura.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	query := `
		INSERT INTO facturas (id, created_at, cliente, numero, monto, subtotal, iva, porcentaje_iva,
		                      estado, pdf_url, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.CreatedAt, inv.Client, nullIfEmpty(inv.Number), inv.Amount, inv.Subtotal, inv.VAT,
		inv.VATRate, inv.Status, nullIfEmpty(inv.DocumentPath), inv.IssuedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: factura duplicada: %v", domain.ErrInvalidInput, err)
		}
		return fmt.Errorf("insert factura: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por id; (nil, nil) si no existe.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.get(ctx, `SELECT`+invoiceColumns+` FROM facturas WHERE id::text = $1`, id)
}

// GetForUpdate igual que GetByID pero bloquea la fila hasta el fin de la transacción.
// Solo tiene efecto con un Querier transaccional.
func (r *InvoiceRepo) GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.get(ctx, `SELECT`+invoiceColumns+` FROM facturas WHERE id::text = $1 FOR UPDATE`, id)
}

func (r *InvoiceRepo) get(ctx context.Context, query, id string) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get factura: %w", err)
	}
	return inv, nil
}

// List todas las facturas, más recientes primero.
func (r *InvoiceRepo) List(ctx context.Context) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx, `SELECT`+invoiceColumns+` FROM facturas ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list facturas: %w", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan factura: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// UpdateAmount reemplaza monto, subtotal e IVA. No toca el estado.
func (r *InvoiceRepo) UpdateAmount(ctx context.Context, id string, amount, subtotal, vat decimal.Decimal) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE facturas SET monto = $2, subtotal = $3, iva = $4 WHERE id::text = $1`,
		id, amount, subtotal, vat)
	if err != nil {
		return fmt.Errorf("update monto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus guarda el estado pendiente/parcial/pagado.
func (r *InvoiceRepo) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.q.Exec(ctx, `UPDATE facturas SET estado = $2 WHERE id::text = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update estado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la factura. Los pagos deben borrarse antes.
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM facturas WHERE id::text = $1`, id)
	if err != nil {
		return fmt.Errorf("delete factura: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SearchClients nombres que empiezan con prefix (ILIKE), facturas más recientes primero.
func (r *InvoiceRepo) SearchClients(ctx context.Context, prefix string, limit int) ([]string, error) {
	rows, err := r.q.Query(ctx, `
		SELECT cliente FROM facturas
		WHERE cliente ILIKE $1 || '%'
		ORDER BY created_at DESC
		LIMIT $2`, escapeLike(prefix), limit)
	if err != nil {
		return nil, fmt.Errorf("buscar clientes: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var (
		inv                  entity.Invoice
		total, subtotal, vat decimal.NullDecimal
		rate                 *int32
		number, status, path *string
		issued               *time.Time
	)
	if err := row.Scan(&inv.ID, &inv.CreatedAt, &inv.Client, &number, &total, &subtotal, &vat, &rate,
		&status, &path, &issued); err != nil {
		return nil, err
	}
	inv.Number = derefStr(number)
	inv.Amount = coerce(total)
	inv.Subtotal = coerce(subtotal)
	inv.VAT = coerce(vat)
	inv.VATRate = derefInt(rate)
	inv.Status = derefStr(status)
	if inv.Status == "" {
		inv.Status = entity.InvoiceStatusPending
	}
	inv.DocumentPath = derefStr(path)
	inv.IssuedAt = issued
	return &inv, nil
}
