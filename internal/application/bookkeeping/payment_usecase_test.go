package bookkeeping_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hst-contabilidad/internal/application/dto"
	"github.com/jhoicas/hst-contabilidad/internal/domain"
	"github.com/jhoicas/hst-contabilidad/internal/domain/entity"
)

func TestRegister_PagoParcialYLuegoTotal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedInvoice(t, "f1", "Acme", "100.00", time.Now())

	res, err := f.payments.Register(ctx, "f1", dto.RegisterPaymentRequest{Amount: dec("40.00"), Note: " abono "})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPartial, res.Status)
	assert.True(t, res.Remaining.Equal(dec("60.00")))
	assert.True(t, res.Paid.Equal(dec("40.00")))
	assert.Equal(t, "abono", res.Payment.Note)

	movs, err := f.store.Movements().List(ctx)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.CategoryInvoicePayment, movs[0].Category)
	assert.Equal(t, "Pago factura #N-f1 - Acme", movs[0].Description)
	assert.True(t, movs[0].Amount.Equal(dec("40.00")))

	res, err = f.payments.Register(ctx, "f1", dto.RegisterPaymentRequest{Amount: dec("60.00")})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, res.Status)
	assert.True(t, res.Remaining.IsZero())

	inv, err := f.store.Invoices().GetByID(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, inv.Status)

	_, err = f.payments.Register(ctx, "f1", dto.RegisterPaymentRequest{Amount: dec("1")})
	assert.ErrorIs(t, err, domain.ErrAlreadyPaid)
}

func TestRegister_SobrepagoNoEscribeNada(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedInvoice(t, "f1", "Acme", "100.00", time.Now())

	_, err := f.payments.Register(ctx, "f1", dto.RegisterPaymentRequest{Amount: dec("150.00")})
	assert.ErrorIs(t, err, domain.ErrOverpayment)

	pays, _ := f.store.Payments().List(ctx)
	movs, _ := f.store.Movements().List(ctx)
	assert.Empty(t, pays)
	assert.Empty(t, movs)
}

func TestRegister_MontoInvalidoYFacturaInexistente(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.payments.Register(ctx, "f1", dto.RegisterPaymentRequest{Amount: dec("0")})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = f.payments.Register(ctx, "nada", dto.RegisterPaymentRequest{Amount: dec("5")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegister_FalloIntermedioHaceRollback(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedInvoice(t, "f1", "Acme", "100.00", time.Now())
	f.store.FailOn("invoices.UpdateStatus", errors.New("timeout"))

	_, err := f.payments.Register(ctx, "f1", dto.RegisterPaymentRequest{Amount: dec("10")})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStore)

	pays, _ := f.store.Payments().List(ctx)
	movs, _ := f.store.Movements().List(ctx)
	assert.Empty(t, pays, "no debe quedar pago huérfano")
	assert.Empty(t, movs, "no debe quedar movimiento huérfano")
}

func TestRegister_ConcurrentesNoSobrepagan(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedInvoice(t, "f1", "Acme", "100.00", time.Now())

	const workers = 10
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok       int
		rejected int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.payments.Register(ctx, "f1", dto.RegisterPaymentRequest{Amount: dec("30.00")})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
				return
			}
			if errors.Is(err, domain.ErrOverpayment) || errors.Is(err, domain.ErrAlreadyPaid) {
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, ok)
	assert.Equal(t, workers-3, rejected)
	paid, err := f.store.Payments().SumByInvoice(ctx, "f1")
	require.NoError(t, err)
	assert.True(t, paid.Equal(dec("90.00")), "pagado=%s", paid)
}

func TestRegister_InvalidaSnapshot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedInvoice(t, "f1", "Acme", "100.00", time.Now())

	before, err := f.dashboard.Summary(ctx, ledgerAll(), false)
	require.NoError(t, err)
	assert.True(t, before.Receivable.Equal(dec("100.00")))

	_, err = f.payments.Register(ctx, "f1", dto.RegisterPaymentRequest{Amount: dec("25")})
	require.NoError(t, err)

	after, err := f.dashboard.Summary(ctx, ledgerAll(), false)
	require.NoError(t, err)
	assert.True(t, after.Receivable.Equal(dec("75.00")))
	assert.True(t, after.Income.Equal(dec("25")))
}
