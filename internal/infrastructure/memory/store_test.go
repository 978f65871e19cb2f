package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hst-contabilidad/internal/domain"
	"github.com/jhoicas/hst-contabilidad/internal/domain/entity"
	"github.com/jhoicas/hst-contabilidad/internal/domain/repository"
	"github.com/jhoicas/hst-contabilidad/internal/infrastructure/memory"
)

func TestRun_ErrorDescartaEscrituras(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	err := store.Run(ctx, func(movRepo repository.MovementRepository, _ repository.InvoiceRepository, _ repository.PaymentRepository) error {
		require.NoError(t, movRepo.Create(ctx, &entity.Movement{ID: "m1", Amount: decimal.NewFromInt(5)}))
		return errors.New("falla")
	})
	require.Error(t, err)

	list, err := store.Movements().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRun_CommitPublicaEscrituras(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Invoices().Create(ctx, &entity.Invoice{ID: "f1", Amount: decimal.NewFromInt(10), Status: entity.InvoiceStatusPending}))

	err := store.Run(ctx, func(_ repository.MovementRepository, invRepo repository.InvoiceRepository, _ repository.PaymentRepository) error {
		return invRepo.UpdateStatus(ctx, "f1", entity.InvoiceStatusPaid)
	})
	require.NoError(t, err)

	inv, err := store.Invoices().GetByID(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, inv.Status)
}

func TestFailOn(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	boom := errors.New("sin conexión")

	store.FailOn("payments.List", boom)
	_, err := store.Payments().List(ctx)
	assert.ErrorIs(t, err, boom)

	store.FailOn("payments.List", nil)
	_, err = store.Payments().List(ctx)
	assert.NoError(t, err)
}

func TestInvoiceRepository_NoEncontrada(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	inv, err := store.Invoices().GetByID(ctx, "nada")
	require.NoError(t, err)
	assert.Nil(t, inv)
	assert.ErrorIs(t, store.Invoices().Delete(ctx, "nada"), domain.ErrNotFound)
	assert.ErrorIs(t, store.Movements().Delete(ctx, "nada"), domain.ErrNotFound)
}

func TestSearchClients_PrefijoSinMayusculas(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"Acme S.A.", "acme s.a.", "Beta", "ACMÉ Norte"} {
		require.NoError(t, store.Invoices().Create(ctx, &entity.Invoice{
			ID: name, Client: name, CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	names, err := store.Invoices().SearchClients(ctx, "ac", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"ACMÉ Norte", "acme s.a.", "Acme S.A."}, names)
}

func TestPayments_SumaPorFactura(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	pays := store.Payments()
	require.NoError(t, pays.Create(ctx, &entity.Payment{ID: "p1", InvoiceID: "f1", Amount: decimal.RequireFromString("10.50")}))
	require.NoError(t, pays.Create(ctx, &entity.Payment{ID: "p2", InvoiceID: "f1", Amount: decimal.RequireFromString("4.50")}))
	require.NoError(t, pays.Create(ctx, &entity.Payment{ID: "p3", InvoiceID: "f2", Amount: decimal.RequireFromString("99")}))

	sum, err := pays.SumByInvoice(ctx, "f1")
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(15)))

	require.NoError(t, pays.DeleteByInvoice(ctx, "f1"))
	list, err := pays.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
