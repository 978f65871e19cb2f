package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hst-contabilidad/internal/domain/ledger"
)

// periodFromQuery lee ?from=&to= (YYYY-MM-DD). Sin parámetros el período queda abierto.
func periodFromQuery(c *fiber.Ctx, loc *time.Location) (ledger.Period, error) {
	return ledger.NewPeriod(c.Query("from"), c.Query("to"), loc)
}

// periodOrMonthToDate como periodFromQuery, pero sin parámetros usa el mes en curso.
func periodOrMonthToDate(c *fiber.Ctx, loc *time.Location, now time.Time) (ledger.Period, error) {
	if c.Query("from") == "" && c.Query("to") == "" {
		return ledger.MonthToDate(now.In(loc)), nil
	}
	return periodFromQuery(c, loc)
}
