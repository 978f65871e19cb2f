package bookkeeping_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hst-contabilidad/internal/application/bookkeeping"
	"github.com/jhoicas/hst-contabilidad/internal/domain/entity"
	"github.com/jhoicas/hst-contabilidad/internal/domain/ledger"
	"github.com/jhoicas/hst-contabilidad/internal/infrastructure/memory"
	"github.com/jhoicas/hst-contabilidad/pkg/logger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ledgerAll período sin límites.
func ledgerAll() ledger.Period { return ledger.Period{} }

// fakeDocs almacenamiento de documentos en memoria.
type fakeDocs struct {
	mu        sync.Mutex
	objects   map[string][]byte
	uploads   int
	uploadErr error
}

func newFakeDocs() *fakeDocs { return &fakeDocs{objects: make(map[string][]byte)} }

func (f *fakeDocs) Upload(_ context.Context, path string, content []byte, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads++
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.objects[path] = content
	return nil
}

func (f *fakeDocs) SignedURL(_ context.Context, path string, ttl time.Duration) (string, error) {
	return fmt.Sprintf("https://docs.test/%s?ttl=%s", path, ttl), nil
}

func (f *fakeDocs) Delete(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, path)
	return nil
}

func (f *fakeDocs) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

// fakePDF captura el reporte recibido.
type fakePDF struct {
	report *bookkeeping.StatementReport
}

func (f *fakePDF) GenerateStatementPDF(_ context.Context, r *bookkeeping.StatementReport) ([]byte, error) {
	f.report = r
	return []byte("%PDF-1.4 test"), nil
}

type fixture struct {
	store     *memory.Store
	docs      *fakeDocs
	pdf       *fakePDF
	snapshots *bookkeeping.SnapshotLoader
	movements *bookkeeping.MovementUseCase
	invoices  *bookkeeping.InvoiceUseCase
	payments  *bookkeeping.PaymentUseCase
	dashboard *bookkeeping.DashboardUseCase
	statement *bookkeeping.StatementUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	docs := newFakeDocs()
	pdf := &fakePDF{}
	snaps := bookkeeping.NewSnapshotLoader(store.Movements(), store.Invoices(), store.Payments())
	log := logger.Nop()
	return &fixture{
		store:     store,
		docs:      docs,
		pdf:       pdf,
		snapshots: snaps,
		movements: bookkeeping.NewMovementUseCase(store.Movements(), snaps),
		invoices:  bookkeeping.NewInvoiceUseCase(store, store.Invoices(), store.Payments(), docs, snaps, log, 0),
		payments:  bookkeeping.NewPaymentUseCase(store, snaps, log),
		dashboard: bookkeeping.NewDashboardUseCase(snaps),
		statement: bookkeeping.NewStatementUseCase(snaps, pdf, ""),
	}
}

// seedInvoice guarda una factura directamente en el almacén.
func (f *fixture) seedInvoice(t *testing.T, id, client, amount string, created time.Time) *entity.Invoice {
	t.Helper()
	inv := &entity.Invoice{
		ID:        id,
		CreatedAt: created,
		Client:    client,
		Number:    "N-" + id,
		Amount:    dec(amount),
		Subtotal:  dec(amount),
		VAT:       decimal.Zero,
		Status:    entity.InvoiceStatusPending,
	}
	require.NoError(t, f.store.Invoices().Create(context.Background(), inv))
	f.snapshots.Invalidate()
	return inv
}
