package bookkeeping

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/hst-contabilidad/internal/domain/ledger"
	"github.com/jhoicas/hst-contabilidad/internal/domain/receivable"
)

// StatementReport datos del estado de cuenta que consume el generador de PDF.
type StatementReport struct {
	Title       string
	PeriodLabel string
	FromLabel   string
	ToLabel     string
	GeneratedAt time.Time
	Summary     []StatementSummaryRow
	Movements   []StatementMovementRow
	Invoices    []StatementInvoiceRow
}

// StatementSummaryRow una fila del resumen (ingresos, gastos, balance, IVA, por cobrar).
type StatementSummaryRow struct {
	Label  string
	Amount decimal.Decimal
}

type StatementMovementRow struct {
	Date        time.Time
	Category    string
	Description string
	Income      bool
	Amount      decimal.Decimal
	Subtotal    decimal.Decimal
	VAT         decimal.Decimal
	VATRate     int
}

type StatementInvoiceRow struct {
	Date      time.Time
	Number    string
	Client    string
	Amount    decimal.Decimal
	Subtotal  decimal.Decimal
	VAT       decimal.Decimal
	VATRate   int
	Status    string
	Remaining decimal.Decimal
}

// StatementUseCase arma el estado de cuenta de un período y lo renderiza a PDF.
type StatementUseCase struct {
	snapshots *SnapshotLoader
	generator StatementPDFGenerator
	title     string
	now       func() time.Time
}

// NewStatementUseCase construye el caso de uso. title encabeza el documento.
func NewStatementUseCase(snapshots *SnapshotLoader, generator StatementPDFGenerator, title string) *StatementUseCase {
	if title == "" {
		title = "Estado de cuenta"
	}
	return &StatementUseCase{snapshots: snapshots, generator: generator, title: title, now: time.Now}
}

// Build construye el payload del reporte para el período.
func (uc *StatementUseCase) Build(ctx context.Context, p ledger.Period) (*StatementReport, error) {
	snap, err := uc.snapshots.Get(ctx)
	if err != nil {
		return nil, err
	}
	s := ledger.Aggregate(snap.Movements, snap.Invoices, p)
	rec := receivable.Reconcile(snap.Invoices, snap.Payments)

	report := &StatementReport{
		Title:       uc.title,
		PeriodLabel: p.Label(),
		FromLabel:   p.FromLabel(),
		ToLabel:     p.ToLabel(),
		GeneratedAt: uc.now(),
		Summary: []StatementSummaryRow{
			{Label: "Ingresos", Amount: s.Income},
			{Label: "Gastos", Amount: s.Expense},
			{Label: "Balance", Amount: s.Balance},
			{Label: "IVA generado", Amount: s.VATGenerated},
			{Label: "IVA pagado", Amount: s.VATPaid},
			{Label: "IVA a pagar", Amount: s.VATPayable},
			{Label: "Por cobrar", Amount: rec.Receivable},
		},
	}
	for _, m := range ledger.FilterMovements(snap.Movements, p) {
		report.Movements = append(report.Movements, StatementMovementRow{
			Date:        m.CreatedAt,
			Category:    m.Category,
			Description: m.Description,
			Income:      m.IsIncome(),
			Amount:      m.Amount,
			Subtotal:    m.Subtotal,
			VAT:         m.VAT,
			VATRate:     m.VATRate,
		})
	}
	for _, inv := range ledger.FilterInvoices(snap.Invoices, p) {
		pos := rec.Of(inv.ID)
		report.Invoices = append(report.Invoices, StatementInvoiceRow{
			Date:      inv.EffectiveDate(),
			Number:    inv.Number,
			Client:    inv.Client,
			Amount:    inv.Amount,
			Subtotal:  inv.Subtotal,
			VAT:       inv.VAT,
			VATRate:   inv.VATRate,
			Status:    pos.Status,
			Remaining: pos.Remaining,
		})
	}
	return report, nil
}

// Render genera el PDF del período.
//
// Retorna (pdfBytes, filename, nil); filename es estado_cuenta_<desde>_a_<hasta>.pdf.
func (uc *StatementUseCase) Render(ctx context.Context, p ledger.Period) (pdfBytes []byte, filename string, err error) {
	report, err := uc.Build(ctx, p)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateStatementPDF(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("estado de cuenta: generación fallida: %w", err)
	}
	filename = fmt.Sprintf("estado_cuenta_%s_a_%s.pdf", report.FromLabel, report.ToLabel)
	return pdfBytes, filename, nil
}
