package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hst-contabilidad/internal/application/bookkeeping"
)

// StatementHandler descarga del estado de cuenta en PDF.
type StatementHandler struct {
	uc  *bookkeeping.StatementUseCase
	loc *time.Location
	now func() time.Time
}

// NewStatementHandler construye el handler.
func NewStatementHandler(uc *bookkeeping.StatementUseCase, loc *time.Location) *StatementHandler {
	return &StatementHandler{uc: uc, loc: loc, now: time.Now}
}

// Download godoc
// @Summary      Estado de cuenta PDF
// @Description  Sin fechas usa el mes en curso (primer día del mes hasta hoy).
// @Tags         statement
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        from  query  string  false  "YYYY-MM-DD"
// @Param        to    query  string  false  "YYYY-MM-DD"
// @Success      200   {file}    binary
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/statement.pdf [get]
func (h *StatementHandler) Download(c *fiber.Ctx) error {
	p, err := periodOrMonthToDate(c, h.loc, h.now())
	if err != nil {
		return writeError(c, err)
	}
	pdfBytes, filename, err := h.uc.Render(c.UserContext(), p)
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdfBytes)
}
