package bookkeeping

import (
	"context"
	"time"

	"github.com/jhoicas/hst-contabilidad/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción del almacén, pasando repositorios atados a ella.
// Si fn retorna error no queda ninguna escritura aplicada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error) error
}

// DocumentStore almacenamiento de objetos para los PDF de facturas.
type DocumentStore interface {
	Upload(ctx context.Context, path string, content []byte, contentType string) error
	// SignedURL URL temporal de lectura válida durante ttl.
	SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, path string) error
}

// StatementPDFGenerator renderiza el estado de cuenta a PDF.
type StatementPDFGenerator interface {
	GenerateStatementPDF(ctx context.Context, report *StatementReport) ([]byte, error)
}
