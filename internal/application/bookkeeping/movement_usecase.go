package bookkeeping

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/hst-contabilidad/internal/application/dto"
	"github.com/jhoicas/hst-contabilidad/internal/domain"
	"github.com/jhoicas/hst-contabilidad/internal/domain/entity"
	"github.com/jhoicas/hst-contabilidad/internal/domain/ledger"
	"github.com/jhoicas/hst-contabilidad/internal/domain/repository"
)

// Tipos de movimiento que elige el operador en el formulario.
const (
	KindIncome  = "INGRESO"
	KindExpense = "GASTO"
)

// MovementUseCase registro, borrado y listado de movimientos.
type MovementUseCase struct {
	repo      repository.MovementRepository
	snapshots *SnapshotLoader
	now       func() time.Time
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(repo repository.MovementRepository, snapshots *SnapshotLoader) *MovementUseCase {
	return &MovementUseCase{repo: repo, snapshots: snapshots, now: time.Now}
}

// Record registra un ingreso o gasto con su desglose de IVA.
func (uc *MovementUseCase) Record(ctx context.Context, in dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	category, err := resolveCategory(in.Kind, in.Category)
	if err != nil {
		return nil, err
	}
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	b, err := ledger.Decompose(in.Amount, in.VATRate)
	if err != nil {
		return nil, err
	}

	counterparty := strings.TrimSpace(in.Counterparty)
	detail := strings.TrimSpace(in.Detail)
	m := &entity.Movement{
		ID:           uuid.New().String(),
		CreatedAt:    uc.now(),
		Category:     category,
		Amount:       in.Amount,
		Subtotal:     b.Subtotal,
		VAT:          b.VAT,
		VATRate:      b.Rate,
		Description:  counterparty + " - " + detail,
		Counterparty: counterparty,
		Detail:       detail,
		Area:         entity.DefaultArea,
		Account:      entity.DefaultAccount,
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, domain.StoreFailure("guardar movimiento", err)
	}
	uc.snapshots.Invalidate()

	out := toMovementResponse(m)
	return &out, nil
}

// Delete elimina un movimiento. El control de capacidad lo hace la capa HTTP.
func (uc *MovementUseCase) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return domain.StoreFailure("eliminar movimiento", err)
	}
	uc.snapshots.Invalidate()
	return nil
}

// List movimientos del período, más recientes primero.
func (uc *MovementUseCase) List(ctx context.Context, p ledger.Period) ([]dto.MovementResponse, error) {
	snap, err := uc.snapshots.Get(ctx)
	if err != nil {
		return nil, err
	}
	filtered := ledger.FilterMovements(snap.Movements, p)
	out := make([]dto.MovementResponse, 0, len(filtered))
	for _, m := range filtered {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}

// resolveCategory traduce INGRESO/GASTO o una categoría explícita. PAGO_FACTURA
// solo se genera al registrar pagos de factura.
func resolveCategory(kind, category string) (string, error) {
	if category != "" {
		category = strings.ToUpper(strings.TrimSpace(category))
		if !entity.ValidCategory(category) || category == entity.CategoryInvoicePayment {
			return "", fmt.Errorf("%w: categoría %q", domain.ErrInvalidInput, category)
		}
		return category, nil
	}
	switch strings.ToUpper(strings.TrimSpace(kind)) {
	case KindIncome:
		return entity.CategoryDirectSale, nil
	case KindExpense:
		return entity.CategoryExpense, nil
	default:
		return "", fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, kind)
	}
}
