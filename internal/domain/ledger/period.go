package ledger

import (
	"fmt"
	"time"

	"github.com/jhoicas/hst-contabilidad/internal/domain"
)

// DateLayout formato de fecha de los filtros (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Period rango de fechas inclusivo a granularidad de día. Un extremo nil queda abierto.
// From se ubica a las 00:00:00 y To cubre el día completo hasta 23:59:59.
type Period struct {
	From *time.Time
	To   *time.Time
}

// NewPeriod construye el período a partir de fechas YYYY-MM-DD en la zona loc.
// Cadenas vacías dejan el extremo abierto.
func NewPeriod(from, to string, loc *time.Location) (Period, error) {
	var p Period
	if from != "" {
		d, err := time.ParseInLocation(DateLayout, from, loc)
		if err != nil {
			return Period{}, fmt.Errorf("%w: desde=%q", domain.ErrInvalidInput, from)
		}
		start := startOfDay(d)
		p.From = &start
	}
	if to != "" {
		d, err := time.ParseInLocation(DateLayout, to, loc)
		if err != nil {
			return Period{}, fmt.Errorf("%w: hasta=%q", domain.ErrInvalidInput, to)
		}
		end := endOfDay(d)
		p.To = &end
	}
	if p.From != nil && p.To != nil && p.To.Before(*p.From) {
		return Period{}, fmt.Errorf("%w: hasta anterior a desde", domain.ErrInvalidInput)
	}
	return p, nil
}

// MonthToDate período por defecto: primer día del mes en curso hasta hoy.
func MonthToDate(now time.Time) Period {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := endOfDay(now)
	return Period{From: &start, To: &end}
}

// Contains indica si t cae dentro del período.
func (p Period) Contains(t time.Time) bool {
	if p.From != nil && t.Before(*p.From) {
		return false
	}
	if p.To != nil && t.After(*p.To) {
		return false
	}
	return true
}

// Label representación "desde a hasta" para reportes.
func (p Period) Label() string {
	return p.FromLabel() + " a " + p.ToLabel()
}

// FromLabel fecha de inicio formateada o "inicio".
func (p Period) FromLabel() string {
	if p.From == nil {
		return "inicio"
	}
	return p.From.Format(DateLayout)
}

// ToLabel fecha de fin formateada o "hoy".
func (p Period) ToLabel() string {
	if p.To == nil {
		return "hoy"
	}
	return p.To.Format(DateLayout)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// endOfDay 23:59:59.999999999 del día de t.
func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
