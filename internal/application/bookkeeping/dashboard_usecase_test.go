package bookkeeping_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hst-contabilidad/internal/application/bookkeeping"
	"github.com/jhoicas/hst-contabilidad/internal/domain"
	"github.com/jhoicas/hst-contabilidad/internal/domain/entity"
	"github.com/jhoicas/hst-contabilidad/internal/domain/ledger"
	"github.com/jhoicas/hst-contabilidad/internal/domain/repository"
	"github.com/jhoicas/hst-contabilidad/internal/infrastructure/memory"
)

func seedMonth(t *testing.T, f *fixture) {
	t.Helper()
	ctx := context.Background()
	movs := f.store.Movements()
	march := func(day int) time.Time { return time.Date(2026, 3, day, 12, 0, 0, 0, time.UTC) }
	require.NoError(t, movs.Create(ctx, &entity.Movement{ID: "m1", Category: entity.CategoryDirectSale, Amount: dec("500.00"), CreatedAt: march(2)}))
	require.NoError(t, movs.Create(ctx, &entity.Movement{ID: "m2", Category: entity.CategoryExpense, Amount: dec("115.00"), VAT: dec("15.00"), CreatedAt: march(3)}))
	require.NoError(t, movs.Create(ctx, &entity.Movement{ID: "m3", Category: entity.CategoryInvoicePayment, Amount: dec("50.00"), CreatedAt: march(4)}))
	require.NoError(t, movs.Create(ctx, &entity.Movement{ID: "m4", Category: entity.CategoryDirectSale, Amount: dec("999"), CreatedAt: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)}))

	inv := f.seedInvoice(t, "f1", "Acme", "230.00", march(5))
	inv.VAT = dec("30.00")
	require.NoError(t, f.store.Invoices().Create(ctx, inv))
	require.NoError(t, f.store.Payments().Create(ctx, &entity.Payment{ID: "p1", InvoiceID: "f1", Amount: dec("50.00"), PaidAt: march(4)}))
	f.snapshots.Invalidate()
}

func TestSummary_Periodo(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seedMonth(t, f)

	p, err := ledger.NewPeriod("2026-03-01", "2026-03-31", time.UTC)
	require.NoError(t, err)
	d, err := f.dashboard.Summary(ctx, p, true)
	require.NoError(t, err)

	assert.True(t, d.Income.Equal(dec("550.00")))
	assert.True(t, d.Expense.Equal(dec("115.00")))
	assert.True(t, d.Balance.Equal(dec("435.00")))
	assert.True(t, d.VATGenerated.Equal(dec("30.00")))
	assert.True(t, d.VATPaid.Equal(dec("15.00")))
	assert.True(t, d.VATPayable.Equal(dec("15.00")))
	assert.True(t, d.Receivable.Equal(dec("180.00")))
	assert.Equal(t, 3, d.Movements)
	assert.Equal(t, 1, d.Invoices)
	assert.True(t, d.ReadOnly)
	assert.Equal(t, "2026-03-01", d.Period.From)
	assert.Equal(t, "2026-03-31", d.Period.To)
}

func TestSummary_ErrorDelAlmacen(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.store.FailOn("payments.List", errors.New("503"))

	_, err := f.dashboard.Summary(ctx, ledgerAll(), false)
	assert.ErrorIs(t, err, domain.ErrStore)

	f.store.FailOn("payments.List", nil)
	_, err = f.dashboard.Summary(ctx, ledgerAll(), false)
	assert.NoError(t, err, "el siguiente intento vuelve a cargar")
}

func TestSnapshot_CacheHastaInvalidar(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, err := f.snapshots.Get(ctx)
	require.NoError(t, err)
	second, err := f.snapshots.Get(ctx)
	require.NoError(t, err)
	assert.Same(t, first, second)

	gen := f.snapshots.Generation()
	f.snapshots.Invalidate()
	assert.Equal(t, gen+1, f.snapshots.Generation())

	third, err := f.snapshots.Get(ctx)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, gen+1, third.Generation)
}

// slowMovements lee la tabla y se detiene antes de devolver, una sola vez.
type slowMovements struct {
	repository.MovementRepository
	once    sync.Once
	read    chan struct{}
	release chan struct{}
}

func (s *slowMovements) List(ctx context.Context) ([]*entity.Movement, error) {
	list, err := s.MovementRepository.List(ctx)
	s.once.Do(func() {
		close(s.read)
		<-s.release
	})
	return list, err
}

func TestSnapshot_CargaViejaNoPisaInvalidacion(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	movs := &slowMovements{
		MovementRepository: store.Movements(),
		read:               make(chan struct{}),
		release:            make(chan struct{}),
	}
	loader := bookkeeping.NewSnapshotLoader(movs, store.Invoices(), store.Payments())

	type result struct {
		snap *bookkeeping.Snapshot
		err  error
	}
	done := make(chan result, 1)
	go func() {
		snap, err := loader.Get(ctx)
		done <- result{snap, err}
	}()

	<-movs.read
	require.NoError(t, store.Movements().Create(ctx, &entity.Movement{
		ID: "m1", Category: entity.CategoryExpense, Amount: dec("10"), CreatedAt: time.Now(),
	}))
	loader.Invalidate()
	close(movs.release)

	stale := <-done
	require.NoError(t, stale.err)
	assert.Empty(t, stale.snap.Movements)
	assert.Equal(t, uint64(0), stale.snap.Generation)

	fresh, err := loader.Get(ctx)
	require.NoError(t, err)
	assert.Len(t, fresh.Movements, 1)
	assert.Equal(t, uint64(1), fresh.Generation)
	assert.NotSame(t, stale.snap, fresh)

	again, err := loader.Get(ctx)
	require.NoError(t, err)
	assert.Same(t, fresh, again)
}

func TestStatement_Render(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seedMonth(t, f)

	p, err := ledger.NewPeriod("2026-03-01", "2026-03-31", time.UTC)
	require.NoError(t, err)
	pdf, name, err := f.statement.Render(ctx, p)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, "estado_cuenta_2026-03-01_a_2026-03-31.pdf", name)

	r := f.pdf.report
	require.NotNil(t, r)
	assert.Len(t, r.Movements, 3)
	require.Len(t, r.Invoices, 1)
	assert.Equal(t, entity.InvoiceStatusPartial, r.Invoices[0].Status)
	assert.True(t, r.Invoices[0].Remaining.Equal(dec("180.00")))
	require.Len(t, r.Summary, 7)
	assert.Equal(t, "Por cobrar", r.Summary[6].Label)
	assert.True(t, r.Summary[6].Amount.Equal(dec("180.00")))
}

func TestStatement_PeriodoAbierto(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, name, err := f.statement.Render(ctx, ledgerAll())
	require.NoError(t, err)
	assert.Equal(t, "estado_cuenta_inicio_a_hoy.pdf", name)
}
