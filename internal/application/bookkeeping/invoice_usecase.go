package bookkeeping

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/jhoicas/hst-contabilidad/internal/application/dto"
	"github.com/jhoicas/hst-contabilidad/internal/domain"
	"github.com/jhoicas/hst-contabilidad/internal/domain/entity"
	"github.com/jhoicas/hst-contabilidad/internal/domain/ledger"
	"github.com/jhoicas/hst-contabilidad/internal/domain/receivable"
	"github.com/jhoicas/hst-contabilidad/internal/domain/repository"
	"github.com/jhoicas/hst-contabilidad/pkg/logger"
)

const (
	documentPrefix   = "hst/"
	maxSuggestions   = 8
	pdfContentType   = "application/pdf"
	defaultSignedTTL = 10 * time.Minute
)

// InvoiceUseCase alta, edición de monto, borrado y consulta de facturas.
type InvoiceUseCase struct {
	txRunner  TxRunner
	invoices  repository.InvoiceRepository
	payments  repository.PaymentRepository
	documents DocumentStore
	snapshots *SnapshotLoader
	log       *logger.Logger
	signedTTL time.Duration
	now       func() time.Time
}

// NewInvoiceUseCase construye el caso de uso. signedTTL <= 0 usa 10 minutos.
func NewInvoiceUseCase(
	txRunner TxRunner,
	invoices repository.InvoiceRepository,
	payments repository.PaymentRepository,
	documents DocumentStore,
	snapshots *SnapshotLoader,
	log *logger.Logger,
	signedTTL time.Duration,
) *InvoiceUseCase {
	if signedTTL <= 0 {
		signedTTL = defaultSignedTTL
	}
	return &InvoiceUseCase{
		txRunner:  txRunner,
		invoices:  invoices,
		payments:  payments,
		documents: documents,
		snapshots: snapshots,
		log:       log.Component("invoices"),
		signedTTL: signedTTL,
		now:       time.Now,
	}
}

// Create valida, sube el PDF a hst/<id>.pdf y guarda la factura en estado pendiente.
// Toda la validación ocurre antes de subir el documento.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.CreateInvoiceInput) (*dto.InvoiceResponse, error) {
	client := strings.TrimSpace(in.Client)
	if client == "" {
		return nil, fmt.Errorf("%w: cliente requerido", domain.ErrInvalidInput)
	}
	amount, err := ledger.ParseAmount(in.Amount)
	if err != nil {
		return nil, err
	}
	b, err := ledger.Decompose(amount, in.VATRate)
	if err != nil {
		return nil, err
	}
	if len(in.Document) == 0 {
		return nil, domain.ErrMissingDocument
	}
	contentType := in.DocumentType
	if contentType == "" {
		contentType = pdfContentType
	}

	path := documentPrefix + strings.ReplaceAll(uuid.New().String(), "-", "") + ".pdf"
	if err := uc.documents.Upload(ctx, path, in.Document, contentType); err != nil {
		return nil, domain.StoreFailure("subir PDF", err)
	}

	now := uc.now()
	inv := &entity.Invoice{
		ID:           uuid.New().String(),
		CreatedAt:    now,
		Client:       client,
		Number:       strings.TrimSpace(in.Number),
		Amount:       amount,
		Subtotal:     b.Subtotal,
		VAT:          b.VAT,
		VATRate:      b.Rate,
		Status:       entity.InvoiceStatusPending,
		DocumentPath: path,
		IssuedAt:     &now,
	}
	if err := uc.invoices.Create(ctx, inv); err != nil {
		if delErr := uc.documents.Delete(ctx, path); delErr != nil {
			uc.log.Warn().Err(delErr).Str("path", path).Msg("PDF huérfano tras fallo al guardar factura")
		}
		return nil, domain.StoreFailure("guardar factura", err)
	}
	uc.snapshots.Invalidate()

	out := toInvoiceResponse(inv, receivable.PositionOf(inv.Amount, decimal.Zero))
	return &out, nil
}

// UpdateAmount reemplaza el monto total. No recalcula el estado ni valida contra
// lo ya pagado; restante y estado derivados se recortan solos.
func (uc *InvoiceUseCase) UpdateAmount(ctx context.Context, id string, amount decimal.Decimal) (*dto.InvoiceResponse, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	inv, err := uc.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, domain.StoreFailure("obtener factura", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	b, err := ledger.Decompose(amount, inv.VATRate)
	if err != nil {
		// tasa heredada fuera de la enumeración: se conserva el monto sin desglose
		b = ledger.Breakdown{Subtotal: amount.Round(2), VAT: decimal.Zero, Rate: inv.VATRate}
	}
	if err := uc.invoices.UpdateAmount(ctx, id, amount, b.Subtotal, b.VAT); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, domain.StoreFailure("actualizar monto", err)
	}
	uc.snapshots.Invalidate()

	paid, err := uc.payments.SumByInvoice(ctx, id)
	if err != nil {
		return nil, domain.StoreFailure("sumar pagos", err)
	}
	if amount.LessThan(paid) {
		uc.log.Warn().
			Str("invoice_id", id).
			Str("amount", amount.StringFixed(2)).
			Str("paid", paid.StringFixed(2)).
			Msg("monto de factura menor que lo ya pagado")
	}

	inv.Amount, inv.Subtotal, inv.VAT = amount, b.Subtotal, b.VAT
	out := toInvoiceResponse(inv, receivable.PositionOf(amount, paid))
	return &out, nil
}

// Delete elimina primero los pagos de la factura y luego la factura, en una transacción.
func (uc *InvoiceUseCase) Delete(ctx context.Context, id string) error {
	err := uc.txRunner.Run(ctx, func(
		_ repository.MovementRepository,
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		inv, err := invoiceRepo.GetForUpdate(ctx, id)
		if err != nil {
			return domain.StoreFailure("obtener factura", err)
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if err := paymentRepo.DeleteByInvoice(ctx, id); err != nil {
			return domain.StoreFailure("eliminar pagos", err)
		}
		if err := invoiceRepo.Delete(ctx, id); err != nil {
			return domain.StoreFailure("eliminar factura", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	uc.snapshots.Invalidate()
	return nil
}

// List facturas con su posición de cobro, más recientes primero.
func (uc *InvoiceUseCase) List(ctx context.Context, p ledger.Period) ([]dto.InvoiceResponse, error) {
	snap, err := uc.snapshots.Get(ctx)
	if err != nil {
		return nil, err
	}
	rec := receivable.Reconcile(snap.Invoices, snap.Payments)
	filtered := ledger.FilterInvoices(snap.Invoices, p)
	out := make([]dto.InvoiceResponse, 0, len(filtered))
	for _, inv := range filtered {
		out = append(out, toInvoiceResponse(inv, rec.Of(inv.ID)))
	}
	return out, nil
}

// DocumentURL URL firmada temporal del PDF de la factura.
func (uc *InvoiceUseCase) DocumentURL(ctx context.Context, id string) (*dto.DocumentURLResponse, error) {
	inv, err := uc.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, domain.StoreFailure("obtener factura", err)
	}
	if inv == nil || inv.DocumentPath == "" {
		return nil, domain.ErrNotFound
	}
	url, err := uc.documents.SignedURL(ctx, inv.DocumentPath, uc.signedTTL)
	if err != nil {
		return nil, domain.StoreFailure("firmar URL", err)
	}
	return &dto.DocumentURLResponse{URL: url, ExpiresAt: uc.now().Add(uc.signedTTL)}, nil
}

// Payments pagos registrados de una factura.
func (uc *InvoiceUseCase) Payments(ctx context.Context, id string) ([]dto.PaymentResponse, error) {
	inv, err := uc.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, domain.StoreFailure("obtener factura", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.payments.ListByInvoice(ctx, id)
	if err != nil {
		return nil, domain.StoreFailure("listar pagos", err)
	}
	out := make([]dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPaymentResponse(p))
	}
	return out, nil
}

// SuggestClients hasta 8 nombres de cliente distintos que empiezan con q.
func (uc *InvoiceUseCase) SuggestClients(ctx context.Context, q string) ([]string, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []string{}, nil
	}
	names, err := uc.invoices.SearchClients(ctx, q, maxSuggestions*4)
	if err != nil {
		return nil, domain.StoreFailure("buscar clientes", err)
	}
	fold := cases.Fold()
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, maxSuggestions)
	for _, n := range names {
		key := fold.String(strings.TrimSpace(n))
		if _, dup := seen[key]; dup || key == "" {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, n)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out, nil
}
