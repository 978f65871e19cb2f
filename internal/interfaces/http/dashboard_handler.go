package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hst-contabilidad/internal/application/bookkeeping"
)

// DashboardHandler panel de cifras. Sirve al operador y a los visores con el mismo cálculo.
type DashboardHandler struct {
	uc  *bookkeeping.DashboardUseCase
	loc *time.Location
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *bookkeeping.DashboardUseCase, loc *time.Location) *DashboardHandler {
	return &DashboardHandler{uc: uc, loc: loc}
}

// GetSummary godoc
// @Summary      Resumen del período
// @Description  Ingresos, gastos, balance, IVA y saldo por cobrar. Sin fechas el período es abierto.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        from  query  string  false  "YYYY-MM-DD"
// @Param        to    query  string  false  "YYYY-MM-DD"
// @Success      200   {object}  dto.DashboardDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	return h.summary(c, false)
}

// GetReadOnly godoc
// @Summary      Resumen para visores
// @Tags         viewer
// @Produce      json
// @Param        token  query  string  false  "token del enlace compartido"
// @Param        from   query  string  false  "YYYY-MM-DD"
// @Param        to     query  string  false  "YYYY-MM-DD"
// @Success      200    {object}  dto.DashboardDTO
// @Failure      401    {object}  dto.ErrorResponse
// @Router       /api/viewer/dashboard [get]
func (h *DashboardHandler) GetReadOnly(c *fiber.Ctx) error {
	return h.summary(c, true)
}

func (h *DashboardHandler) summary(c *fiber.Ctx, readOnly bool) error {
	p, err := periodFromQuery(c, h.loc)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Summary(c.UserContext(), p, readOnly)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
