package bookkeeping

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/hst-contabilidad/internal/domain"
	"github.com/jhoicas/hst-contabilidad/internal/domain/entity"
	"github.com/jhoicas/hst-contabilidad/internal/domain/repository"
)

// Snapshot lectura completa de movimientos, facturas y pagos.
type Snapshot struct {
	Movements  []*entity.Movement
	Invoices   []*entity.Invoice
	Payments   []*entity.Payment
	LoadedAt   time.Time
	Generation uint64
}

// SnapshotLoader cachea el snapshot completo. Política de invalidación:
// cada mutación confirmada llama Invalidate y la siguiente lectura recarga todo.
//
// Las recargas concurrentes de una misma generación se colapsan en una sola
// consulta; una carga iniciada antes de una invalidación nunca reemplaza la caché.
type SnapshotLoader struct {
	movements repository.MovementRepository
	invoices  repository.InvoiceRepository
	payments  repository.PaymentRepository

	mu         sync.Mutex
	generation uint64
	cached     *Snapshot
	group      singleflight.Group
	now        func() time.Time
}

// NewSnapshotLoader construye el cargador.
func NewSnapshotLoader(
	movements repository.MovementRepository,
	invoices repository.InvoiceRepository,
	payments repository.PaymentRepository,
) *SnapshotLoader {
	return &SnapshotLoader{
		movements: movements,
		invoices:  invoices,
		payments:  payments,
		now:       time.Now,
	}
}

// Get devuelve el snapshot vigente, recargándolo si fue invalidado.
func (l *SnapshotLoader) Get(ctx context.Context) (*Snapshot, error) {
	l.mu.Lock()
	if l.cached != nil {
		s := l.cached
		l.mu.Unlock()
		return s, nil
	}
	gen := l.generation
	l.mu.Unlock()

	v, err, _ := l.group.Do(strconv.FormatUint(gen, 10), func() (interface{}, error) {
		snap, err := l.load(context.WithoutCancel(ctx), gen)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		if l.generation == gen {
			l.cached = snap
		}
		l.mu.Unlock()
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

// Invalidate descarta la caché; las cargas en curso de generaciones previas se ignoran.
func (l *SnapshotLoader) Invalidate() {
	l.mu.Lock()
	l.generation++
	l.cached = nil
	l.mu.Unlock()
}

// Generation generación actual de la caché.
func (l *SnapshotLoader) Generation() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.generation
}

func (l *SnapshotLoader) load(ctx context.Context, gen uint64) (*Snapshot, error) {
	snap := &Snapshot{Generation: gen}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := l.movements.List(gctx)
		if err != nil {
			return domain.StoreFailure("cargar movimientos", err)
		}
		snap.Movements = list
		return nil
	})
	g.Go(func() error {
		list, err := l.invoices.List(gctx)
		if err != nil {
			return domain.StoreFailure("cargar facturas", err)
		}
		snap.Invoices = list
		return nil
	})
	g.Go(func() error {
		list, err := l.payments.List(gctx)
		if err != nil {
			return domain.StoreFailure("cargar pagos", err)
		}
		snap.Payments = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	snap.LoadedAt = l.now()
	return snap, nil
}
