package bookkeeping_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hst-contabilidad/internal/application/bookkeeping"
	"github.com/jhoicas/hst-contabilidad/internal/application/dto"
	"github.com/jhoicas/hst-contabilidad/internal/domain"
	"github.com/jhoicas/hst-contabilidad/internal/domain/entity"
	"github.com/jhoicas/hst-contabilidad/internal/domain/ledger"
)

func TestRecord_GastoConIVA(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	out, err := f.movements.Record(ctx, dto.CreateMovementRequest{
		Kind:         bookkeeping.KindExpense,
		Amount:       dec("115.00"),
		VATRate:      ledger.VATRateStandard,
		Counterparty: " Ferretería ",
		Detail:       "tornillos",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.CategoryExpense, out.Category)
	assert.False(t, out.Income)
	assert.Equal(t, "Ferretería - tornillos", out.Description)
	assert.True(t, out.Subtotal.Equal(dec("100.00")))
	assert.True(t, out.VAT.Equal(dec("15.00")))
}

func TestRecord_CategoriaExplicita(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	out, err := f.movements.Record(ctx, dto.CreateMovementRequest{Category: "compra", Amount: dec("10")})
	require.NoError(t, err)
	assert.Equal(t, entity.CategoryPurchase, out.Category)

	_, err = f.movements.Record(ctx, dto.CreateMovementRequest{Category: entity.CategoryInvoicePayment, Amount: dec("10")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecord_Validaciones(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.movements.Record(ctx, dto.CreateMovementRequest{Kind: "OTRO", Amount: dec("10")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.movements.Record(ctx, dto.CreateMovementRequest{Kind: bookkeeping.KindIncome, Amount: dec("-10")})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	_, err = f.movements.Record(ctx, dto.CreateMovementRequest{Kind: bookkeeping.KindIncome, Amount: dec("10"), VATRate: 8})
	assert.ErrorIs(t, err, domain.ErrInvalidVATRate)

	list, err := f.movements.List(ctx, ledgerAll())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRecord_ErrorDelAlmacen(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.store.FailOn("movements.Create", errors.New("503"))

	_, err := f.movements.Record(ctx, dto.CreateMovementRequest{Kind: bookkeeping.KindIncome, Amount: dec("10")})
	assert.ErrorIs(t, err, domain.ErrStore)
	assert.False(t, domain.IsValidation(err))
}

func TestDeleteMovement(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	out, err := f.movements.Record(ctx, dto.CreateMovementRequest{Kind: bookkeeping.KindIncome, Amount: dec("10")})
	require.NoError(t, err)

	require.NoError(t, f.movements.Delete(ctx, out.ID))
	assert.ErrorIs(t, f.movements.Delete(ctx, out.ID), domain.ErrNotFound)

	d, err := f.dashboard.Summary(ctx, ledgerAll(), false)
	require.NoError(t, err)
	assert.True(t, d.Income.IsZero())
}

func TestListMovements_MasRecientesPrimero(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	repo := f.store.Movements()
	require.NoError(t, repo.Create(ctx, &entity.Movement{ID: "m1", Category: entity.CategoryDirectSale, Amount: dec("1"), CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}))
	require.NoError(t, repo.Create(ctx, &entity.Movement{ID: "m2", Category: entity.CategoryExpense, Amount: dec("2"), CreatedAt: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}))
	f.snapshots.Invalidate()

	list, err := f.movements.List(ctx, ledgerAll())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "m2", list[0].ID)
}
