package ledger

import (
	"strings"

	"github.com/jhoicas/hst-contabilidad/internal/domain"
	"github.com/shopspring/decimal"
)

// Porcentajes de IVA admitidos.
const (
	VATRateZero     = 0
	VATRateStandard = 15
)

var hundred = decimal.NewFromInt(100)

// Breakdown desglose de un total bruto en base imponible e IVA.
type Breakdown struct {
	Subtotal decimal.Decimal
	VAT      decimal.Decimal
	Rate     int
}

// Decompose separa total (IVA incluido) en subtotal e IVA, ambos a 2 decimales.
// Se aplica igual al crear movimientos y facturas.
//
//	rate 0  -> subtotal = total, iva = 0
//	rate 15 -> subtotal = total / 1.15, iva = total - subtotal
func Decompose(total decimal.Decimal, rate int) (Breakdown, error) {
	switch rate {
	case VATRateZero:
		return Breakdown{Subtotal: total.Round(2), VAT: decimal.Zero, Rate: rate}, nil
	case VATRateStandard:
		factor := decimal.NewFromInt(int64(rate)).Div(hundred).Add(decimal.NewFromInt(1))
		sub := total.Div(factor)
		return Breakdown{
			Subtotal: sub.Round(2),
			VAT:      total.Sub(sub).Round(2),
			Rate:     rate,
		}, nil
	default:
		return Breakdown{}, domain.ErrInvalidVATRate
	}
}

// ParseAmount interpreta un monto ingresado por el operador. Acepta coma o punto
// decimal; rechaza vacíos, no numéricos y valores <= 0.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	return d, nil
}

// CoerceAmount convierte un valor numérico almacenado a decimal. Los registros
// existentes pueden traer campos vacíos o mal formados: en ese caso vale cero.
func CoerceAmount(v any) decimal.Decimal {
	switch x := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return x
	case decimal.NullDecimal:
		if !x.Valid {
			return decimal.Zero
		}
		return x.Decimal
	case *decimal.Decimal:
		if x == nil {
			return decimal.Zero
		}
		return *x
	case float64:
		return decimal.NewFromFloat(x)
	case int:
		return decimal.NewFromInt(int64(x))
	case int64:
		return decimal.NewFromInt(x)
	case string:
		d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(x), ",", "."))
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}
