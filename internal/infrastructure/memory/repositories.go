package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/hst-contabilidad/internal/domain"
	"github.com/jhoicas/hst-contabilidad/internal/domain/entity"
	"github.com/jhoicas/hst-contabilidad/internal/domain/repository"
)

var (
	_ repository.MovementRepository  = (*MovementRepository)(nil)
	_ repository.InvoiceRepository   = (*InvoiceRepository)(nil)
	_ repository.PaymentRepository   = (*PaymentRepository)(nil)
	_ repository.ShareLinkRepository = (*ShareLinkRepository)(nil)
)

// Las entidades guardadas nunca se modifican en sitio: se reemplazan por copias,
// así las tablas clonadas de una tx no comparten cambios con las vivas.

// MovementRepository movimientos en memoria.
type MovementRepository struct{ s *scope }

func (r *MovementRepository) Create(_ context.Context, m *entity.Movement) error {
	if err := r.s.faults.check("movements.Create"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *m
	r.s.t.movements[m.ID] = &c
	return nil
}

// List todos los movimientos, más recientes primero.
func (r *MovementRepository) List(_ context.Context) ([]*entity.Movement, error) {
	if err := r.s.faults.check("movements.List"); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Movement, 0, len(r.s.t.movements))
	for _, m := range r.s.t.movements {
		c := *m
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MovementRepository) Delete(_ context.Context, id string) error {
	if err := r.s.faults.check("movements.Delete"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.t.movements[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.t.movements, id)
	return nil
}

// InvoiceRepository facturas en memoria.
type InvoiceRepository struct{ s *scope }

func (r *InvoiceRepository) Create(_ context.Context, inv *entity.Invoice) error {
	if err := r.s.faults.check("invoices.Create"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *inv
	r.s.t.invoices[inv.ID] = &c
	return nil
}

func (r *InvoiceRepository) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	if err := r.s.faults.check("invoices.GetByID"); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	inv, ok := r.s.t.invoices[id]
	if !ok {
		return nil, nil
	}
	c := *inv
	return &c, nil
}

// GetForUpdate igual que GetByID; la exclusión la da la transacción del Store.
func (r *InvoiceRepository) GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	if err := r.s.faults.check("invoices.GetForUpdate"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *InvoiceRepository) List(_ context.Context) ([]*entity.Invoice, error) {
	if err := r.s.faults.check("invoices.List"); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Invoice, 0, len(r.s.t.invoices))
	for _, inv := range r.s.t.invoices {
		c := *inv
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *InvoiceRepository) UpdateAmount(_ context.Context, id string, amount, subtotal, vat decimal.Decimal) error {
	if err := r.s.faults.check("invoices.UpdateAmount"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.t.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	c := *inv
	c.Amount, c.Subtotal, c.VAT = amount, subtotal, vat
	r.s.t.invoices[id] = &c
	return nil
}

func (r *InvoiceRepository) UpdateStatus(_ context.Context, id, status string) error {
	if err := r.s.faults.check("invoices.UpdateStatus"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.t.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	c := *inv
	c.Status = status
	r.s.t.invoices[id] = &c
	return nil
}

func (r *InvoiceRepository) Delete(_ context.Context, id string) error {
	if err := r.s.faults.check("invoices.Delete"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.t.invoices[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.t.invoices, id)
	return nil
}

// SearchClients nombres de cliente que empiezan con prefix (sin distinguir mayúsculas),
// de las facturas más recientes primero. Puede repetir nombres.
func (r *InvoiceRepository) SearchClients(ctx context.Context, prefix string, limit int) ([]string, error) {
	if err := r.s.faults.check("invoices.SearchClients"); err != nil {
		return nil, err
	}
	list, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	prefix = strings.ToLower(prefix)
	out := make([]string, 0, limit)
	for _, inv := range list {
		if strings.HasPrefix(strings.ToLower(inv.Client), prefix) {
			out = append(out, inv.Client)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

// PaymentRepository pagos en memoria.
type PaymentRepository struct{ s *scope }

func (r *PaymentRepository) Create(_ context.Context, p *entity.Payment) error {
	if err := r.s.faults.check("payments.Create"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *p
	r.s.t.payments[p.ID] = &c
	return nil
}

func (r *PaymentRepository) List(_ context.Context) ([]*entity.Payment, error) {
	if err := r.s.faults.check("payments.List"); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.collect(func(*entity.Payment) bool { return true }), nil
}

func (r *PaymentRepository) ListByInvoice(_ context.Context, invoiceID string) ([]*entity.Payment, error) {
	if err := r.s.faults.check("payments.ListByInvoice"); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.collect(func(p *entity.Payment) bool { return p.InvoiceID == invoiceID }), nil
}

func (r *PaymentRepository) SumByInvoice(_ context.Context, invoiceID string) (decimal.Decimal, error) {
	if err := r.s.faults.check("payments.SumByInvoice"); err != nil {
		return decimal.Zero, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sum := decimal.Zero
	for _, p := range r.s.t.payments {
		if p.InvoiceID == invoiceID {
			sum = sum.Add(p.Amount)
		}
	}
	return sum, nil
}

func (r *PaymentRepository) DeleteByInvoice(_ context.Context, invoiceID string) error {
	if err := r.s.faults.check("payments.DeleteByInvoice"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, p := range r.s.t.payments {
		if p.InvoiceID == invoiceID {
			delete(r.s.t.payments, id)
		}
	}
	return nil
}

// collect pagos que cumplen keep, más recientes primero. Requiere el lock tomado.
func (r *PaymentRepository) collect(keep func(*entity.Payment) bool) []*entity.Payment {
	out := make([]*entity.Payment, 0)
	for _, p := range r.s.t.payments {
		if keep(p) {
			c := *p
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PaidAt.Equal(out[j].PaidAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].PaidAt.After(out[j].PaidAt)
	})
	return out
}

// ShareLinkRepository enlaces de solo lectura en memoria.
type ShareLinkRepository struct{ s *scope }

func (r *ShareLinkRepository) GetByToken(_ context.Context, token string) (*entity.ShareLink, error) {
	if err := r.s.faults.check("share_links.GetByToken"); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	l, ok := r.s.t.links[token]
	if !ok {
		return nil, nil
	}
	c := *l
	return &c, nil
}

func (r *ShareLinkRepository) Create(_ context.Context, link *entity.ShareLink) error {
	if err := r.s.faults.check("share_links.Create"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *link
	r.s.t.links[link.Token] = &c
	return nil
}
