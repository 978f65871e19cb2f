package dto

import "github.com/shopspring/decimal"

// DashboardDTO cifras del panel. La misma respuesta sirve al panel de edición
// y a los visores de solo lectura (ReadOnly).
type DashboardDTO struct {
	Period       PeriodDTO       `json:"period"`
	Income       decimal.Decimal `json:"income"`
	Expense      decimal.Decimal `json:"expense"`
	Balance      decimal.Decimal `json:"balance"`
	VATGenerated decimal.Decimal `json:"vat_generated"`
	VATPaid      decimal.Decimal `json:"vat_paid"`
	VATPayable   decimal.Decimal `json:"vat_payable"`
	Receivable   decimal.Decimal `json:"receivable"`
	Movements    int             `json:"movements"`
	Invoices     int             `json:"invoices"`
	ReadOnly     bool            `json:"read_only"`
}
