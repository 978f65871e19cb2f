package bookkeeping

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/moby/locker"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/hst-contabilidad/internal/application/dto"
	"github.com/jhoicas/hst-contabilidad/internal/domain"
	"github.com/jhoicas/hst-contabilidad/internal/domain/entity"
	"github.com/jhoicas/hst-contabilidad/internal/domain/ledger"
	"github.com/jhoicas/hst-contabilidad/internal/domain/receivable"
	"github.com/jhoicas/hst-contabilidad/internal/domain/repository"
	"github.com/jhoicas/hst-contabilidad/pkg/logger"
)

// PaymentUseCase registro de pagos parciales o totales de facturas.
type PaymentUseCase struct {
	txRunner  TxRunner
	snapshots *SnapshotLoader
	locks     *locker.Locker // por id de factura
	log       *logger.Logger
	now       func() time.Time
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(txRunner TxRunner, snapshots *SnapshotLoader, log *logger.Logger) *PaymentUseCase {
	return &PaymentUseCase{
		txRunner:  txRunner,
		snapshots: snapshots,
		locks:     locker.New(),
		log:       log.Component("payments"),
		now:       time.Now,
	}
}

// Register valida el monto contra el restante y, en una sola transacción, inserta el
// pago, el movimiento PAGO_FACTURA y el estado nuevo de la factura. Dos registros
// sobre la misma factura nunca se solapan: el candado del proceso los ordena y la
// fila se bloquea con FOR UPDATE para cubrir otras instancias.
func (uc *PaymentUseCase) Register(ctx context.Context, invoiceID string, in dto.RegisterPaymentRequest) (*dto.PaymentResult, error) {
	if invoiceID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	uc.locks.Lock(invoiceID)
	defer func() { _ = uc.locks.Unlock(invoiceID) }()

	var (
		payment *entity.Payment
		pos     receivable.Position
	)
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		inv, err := invoiceRepo.GetForUpdate(ctx, invoiceID)
		if err != nil {
			return domain.StoreFailure("obtener factura", err)
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		paid, err := paymentRepo.SumByInvoice(ctx, invoiceID)
		if err != nil {
			return domain.StoreFailure("sumar pagos", err)
		}
		current := receivable.PositionOf(inv.Amount, paid)
		if err := receivable.CheckPayment(current, in.Amount); err != nil {
			return err
		}

		now := uc.now()
		payment = &entity.Payment{
			ID:        uuid.New().String(),
			InvoiceID: inv.ID,
			Amount:    in.Amount,
			PaidAt:    now,
			Note:      strings.TrimSpace(in.Note),
		}
		if err := paymentRepo.Create(ctx, payment); err != nil {
			return domain.StoreFailure("guardar pago", err)
		}

		// el IVA del cobro ya se declaró con la factura
		mov := &entity.Movement{
			ID:           uuid.New().String(),
			CreatedAt:    now,
			Category:     entity.CategoryInvoicePayment,
			Amount:       in.Amount,
			Subtotal:     in.Amount,
			VAT:          decimal.Zero,
			VATRate:      ledger.VATRateZero,
			Description:  fmt.Sprintf("Pago factura #%s - %s", invoiceLabel(inv), inv.Client),
			Counterparty: inv.Client,
			Detail:       payment.Note,
			Area:         entity.DefaultArea,
			Account:      entity.DefaultAccount,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return domain.StoreFailure("guardar movimiento de pago", err)
		}

		status := receivable.StatusAfter(current.Remaining, in.Amount)
		if err := invoiceRepo.UpdateStatus(ctx, inv.ID, status); err != nil {
			return domain.StoreFailure("actualizar estado", err)
		}
		pos = receivable.PositionOf(inv.Amount, paid.Add(in.Amount))
		pos.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.snapshots.Invalidate()

	uc.log.Info().
		Str("invoice_id", invoiceID).
		Str("amount", in.Amount.StringFixed(2)).
		Str("status", pos.Status).
		Msg("pago registrado")

	return &dto.PaymentResult{
		Payment:   toPaymentResponse(payment),
		Paid:      pos.Paid,
		Remaining: pos.Remaining,
		Status:    pos.Status,
	}, nil
}

// invoiceLabel número visible de la factura; el id si no tiene número.
func invoiceLabel(inv *entity.Invoice) string {
	if inv.Number != "" {
		return inv.Number
	}
	return inv.ID
}
