package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hst-contabilidad/internal/domain"
	"github.com/jhoicas/hst-contabilidad/internal/domain/ledger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Escenario A: 115.00 al 15% -> subtotal 100.00, IVA 15.00.
func TestDecompose_Escenario115(t *testing.T) {
	b, err := ledger.Decompose(dec("115.00"), ledger.VATRateStandard)
	require.NoError(t, err)
	assert.True(t, b.Subtotal.Equal(dec("100.00")), "subtotal=%s", b.Subtotal)
	assert.True(t, b.VAT.Equal(dec("15.00")), "iva=%s", b.VAT)
}

func TestDecompose_TasaCero(t *testing.T) {
	b, err := ledger.Decompose(dec("42.567"), ledger.VATRateZero)
	require.NoError(t, err)
	assert.True(t, b.Subtotal.Equal(dec("42.57")))
	assert.True(t, b.VAT.IsZero())
}

// subtotal + iva = total (a 2 decimales) para varios totales y ambas tasas.
func TestDecompose_SumaIgualTotal(t *testing.T) {
	totals := []string{"0.01", "1", "10", "19.99", "33.33", "99.99", "100", "1234.56", "0.07"}
	for _, raw := range totals {
		total := dec(raw)
		for _, rate := range []int{ledger.VATRateZero, ledger.VATRateStandard} {
			b, err := ledger.Decompose(total, rate)
			require.NoError(t, err)
			diff := b.Subtotal.Add(b.VAT).Sub(total.Round(2)).Abs()
			assert.True(t, diff.LessThanOrEqual(dec("0.01")),
				"total=%s rate=%d subtotal=%s iva=%s", raw, rate, b.Subtotal, b.VAT)
		}
	}
}

func TestDecompose_TasaNoSoportada(t *testing.T) {
	_, err := ledger.Decompose(dec("100"), 12)
	assert.ErrorIs(t, err, domain.ErrInvalidVATRate)
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
		err  bool
	}{
		{"12.34", "12.34", false},
		{" 12,5 ", "12.5", false},
		{"0", "", true},
		{"-3", "", true},
		{"abc", "", true},
		{"", "", true},
	}
	for _, c := range cases {
		got, err := ledger.ParseAmount(c.in)
		if c.err {
			assert.ErrorIs(t, err, domain.ErrInvalidAmount, c.in)
			continue
		}
		require.NoError(t, err, c.in)
		assert.True(t, got.Equal(dec(c.want)), c.in)
	}
}

func TestCoerceAmount_DatosMalFormados(t *testing.T) {
	assert.True(t, ledger.CoerceAmount(nil).IsZero())
	assert.True(t, ledger.CoerceAmount("basura").IsZero())
	assert.True(t, ledger.CoerceAmount(decimal.NullDecimal{}).IsZero())
	assert.True(t, ledger.CoerceAmount(struct{}{}).IsZero())
	assert.True(t, ledger.CoerceAmount("7,5").Equal(dec("7.5")))
	assert.True(t, ledger.CoerceAmount(decimal.NullDecimal{Decimal: dec("3"), Valid: true}).Equal(dec("3")))
}
