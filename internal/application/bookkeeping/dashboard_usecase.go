package bookkeeping

import (
	"context"

	"github.com/jhoicas/hst-contabilidad/internal/application/dto"
	"github.com/jhoicas/hst-contabilidad/internal/domain/ledger"
	"github.com/jhoicas/hst-contabilidad/internal/domain/receivable"
)

// DashboardUseCase cifras del panel. El mismo camino sirve al panel de edición y a
// los visores de solo lectura.
type DashboardUseCase struct {
	snapshots *SnapshotLoader
}

func NewDashboardUseCase(snapshots *SnapshotLoader) *DashboardUseCase {
	return &DashboardUseCase{snapshots: snapshots}
}

// Summary totales del período. Por cobrar considera todas las facturas, sin filtro de fechas.
func (uc *DashboardUseCase) Summary(ctx context.Context, p ledger.Period, readOnly bool) (*dto.DashboardDTO, error) {
	snap, err := uc.snapshots.Get(ctx)
	if err != nil {
		return nil, err
	}
	s := ledger.Aggregate(snap.Movements, snap.Invoices, p)
	rec := receivable.Reconcile(snap.Invoices, snap.Payments)

	return &dto.DashboardDTO{
		Period:       toPeriodDTO(p),
		Income:       s.Income,
		Expense:      s.Expense,
		Balance:      s.Balance,
		VATGenerated: s.VATGenerated,
		VATPaid:      s.VATPaid,
		VATPayable:   s.VATPayable,
		Receivable:   rec.Receivable,
		Movements:    len(ledger.FilterMovements(snap.Movements, p)),
		Invoices:     len(ledger.FilterInvoices(snap.Invoices, p)),
		ReadOnly:     readOnly,
	}, nil
}
