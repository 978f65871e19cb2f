// Package pdf genera el estado de cuenta en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + período     │  Emitido: fecha/hora         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Ingresos / Gastos / Balance / IVA / Por cobrar     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  MOVIMIENTOS: Fecha | Tipo | Descripción | Total | Sub | IVA │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FACTURAS: Fecha | N° | Cliente | Total | Sub | IVA | % | Est│
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/hst-contabilidad/internal/application/bookkeeping"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 212, Green: 175, Blue: 55} // dorado
	colorDark    = &props.Color{Red: 20, Green: 20, Blue: 20}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// StatementGenerator implementa bookkeeping.StatementPDFGenerator usando Maroto v2.
type StatementGenerator struct {
	author  string
	printer *message.Printer
}

var _ bookkeeping.StatementPDFGenerator = (*StatementGenerator)(nil)

// NewStatementGenerator construye el generador. Los montos se formatean según lang
// (separadores de miles y decimales).
func NewStatementGenerator(author string, lang language.Tag) *StatementGenerator {
	return &StatementGenerator{author: author, printer: message.NewPrinter(lang)}
}

// GenerateStatementPDF genera el PDF y devuelve sus bytes.
func (g *StatementGenerator) GenerateStatementPDF(_ context.Context, r *bookkeeping.StatementReport) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("pdf: reporte vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(r.Title, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.summaryRows(r.Summary)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle(fmt.Sprintf("MOVIMIENTOS (%d)", len(r.Movements))))
	m.AddRows(movementHeaderRow())
	if len(r.Movements) == 0 {
		m.AddRows(emptyRow("Sin movimientos en el período"))
	}
	m.AddRows(g.movementRows(r.Movements)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle(fmt.Sprintf("FACTURAS (%d)", len(r.Invoices))))
	m.AddRows(invoiceHeaderRow())
	if len(r.Invoices) == 0 {
		m.AddRows(emptyRow("Sin facturas en el período"))
	}
	m.AddRows(g.invoiceRows(r.Invoices)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título y período (izq), fecha de emisión (der).
func (g *StatementGenerator) headerRow(r *bookkeeping.StatementReport) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(r.Title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorDark, Top: 1,
			}),
			text.New("Período: "+r.PeriodLabel, props.Text{
				Size: 9, Top: 10, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("ESTADO DE CUENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Emitido: "+r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

// summaryRows: una fila por cifra del resumen, etiqueta y valor alineados a la derecha.
func (g *StatementGenerator) summaryRows(summary []bookkeeping.StatementSummaryRow) []core.Row {
	rows := make([]core.Row, 0, len(summary)+1)
	rows = append(rows, sectionTitle("RESUMEN"))
	for _, s := range summary {
		valueProps := props.Text{Size: 9, Align: align.Right, Right: 1}
		if s.Amount.IsNegative() {
			valueProps.Color = colorRed
		}
		rows = append(rows, row.New(6).Add(
			col.New(4),
			col.New(4).Add(text.New(s.Label+":", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
			})),
			col.New(4).Add(text.New(g.money(s.Amount), valueProps)),
		))
	}
	return rows
}

func sectionTitle(label string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
	))
}

func emptyRow(label string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(label, props.Text{Size: 8, Color: colorGray, Top: 1, Align: align.Center}),
	))
}

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a,
		Color: colorWhite, Top: 2, Left: 1, Right: 1,
	}))
}

func cell(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{Size: 7.5, Align: a, Top: 1, Left: 1, Right: 1}))
}

func darkRow(r core.Row) core.Row {
	return r.WithStyle(&props.Cell{BackgroundColor: colorDark})
}

func movementHeaderRow() core.Row {
	return darkRow(row.New(8).Add(
		headerCell("Fecha", 2, align.Left),
		headerCell("Tipo", 2, align.Left),
		headerCell("Descripción", 3, align.Left),
		headerCell("Total", 2, align.Right),
		headerCell("Subtotal", 1, align.Right),
		headerCell("IVA", 1, align.Right),
		headerCell("%", 1, align.Center),
	))
}

func (g *StatementGenerator) movementRows(movs []bookkeeping.StatementMovementRow) []core.Row {
	result := make([]core.Row, 0, len(movs))
	for _, mv := range movs {
		total := g.money(mv.Amount)
		if !mv.Income {
			total = "-" + total
		}
		result = append(result, row.New(6).Add(
			cell(mv.Date.Format("02/01/2006"), 2, align.Left),
			cell(mv.Category, 2, align.Left),
			cell(truncate(mv.Description, 40), 3, align.Left),
			cell(total, 2, align.Right),
			cell(g.money(mv.Subtotal), 1, align.Right),
			cell(g.money(mv.VAT), 1, align.Right),
			cell(fmt.Sprintf("%d%%", mv.VATRate), 1, align.Center),
		))
	}
	return result
}

// tableColumn encabezado, ancho (de 12) y alineación de una columna.
type tableColumn struct {
	label string
	size  int
	align align.Type
}

var invoiceColumns = []tableColumn{
	{"Fecha", 2, align.Left},
	{"N°", 1, align.Left},
	{"Cliente", 2, align.Left},
	{"Total", 2, align.Right},
	{"Subtotal", 1, align.Right},
	{"IVA", 1, align.Right},
	{"%", 1, align.Center},
	{"Estado", 1, align.Center},
	{"Restante", 1, align.Right},
}

func invoiceHeaderRow() core.Row {
	cols := make([]core.Col, 0, len(invoiceColumns))
	for _, c := range invoiceColumns {
		cols = append(cols, headerCell(c.label, c.size, c.align))
	}
	return darkRow(row.New(8).Add(cols...))
}

// invoiceCells valores de una factura en el orden de invoiceColumns.
func (g *StatementGenerator) invoiceCells(inv bookkeeping.StatementInvoiceRow) []string {
	return []string{
		inv.Date.Format("02/01/2006"),
		nonEmpty(inv.Number, "—"),
		truncate(inv.Client, 24),
		g.money(inv.Amount),
		g.money(inv.Subtotal),
		g.money(inv.VAT),
		fmt.Sprintf("%d%%", inv.VATRate),
		inv.Status,
		g.money(inv.Remaining),
	}
}

func (g *StatementGenerator) invoiceRows(invs []bookkeeping.StatementInvoiceRow) []core.Row {
	result := make([]core.Row, 0, len(invs))
	for _, inv := range invs {
		values := g.invoiceCells(inv)
		cols := make([]core.Col, 0, len(invoiceColumns))
		for i, c := range invoiceColumns {
			cols = append(cols, cell(values[i], c.size, c.align))
		}
		result = append(result, row.New(6).Add(cols...))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

// money formatea con dos decimales y separador de miles del idioma configurado.
func (g *StatementGenerator) money(d decimal.Decimal) string {
	f, _ := d.Abs().Round(2).Float64()
	s := g.printer.Sprintf("$%.2f", f)
	if d.Round(2).IsNegative() {
		return "-" + s
	}
	return s
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// truncate corta s a n runas con "…".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
