package http

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hst-contabilidad/internal/application/bookkeeping"
	"github.com/jhoicas/hst-contabilidad/internal/application/dto"
	"github.com/jhoicas/hst-contabilidad/internal/domain"
)

// maxDocumentSize tope del PDF adjunto a una factura.
const maxDocumentSize = 10 << 20

// InvoiceHandler facturas por cobrar y sus pagos.
type InvoiceHandler struct {
	invoices *bookkeeping.InvoiceUseCase
	payments *bookkeeping.PaymentUseCase
	loc      *time.Location
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(invoices *bookkeeping.InvoiceUseCase, payments *bookkeeping.PaymentUseCase, loc *time.Location) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, payments: payments, loc: loc}
}

// List godoc
// @Summary      Listar facturas
// @Description  Cada factura incluye pagado, restante y estado derivado de sus pagos.
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        from  query  string  false  "YYYY-MM-DD"
// @Param        to    query  string  false  "YYYY-MM-DD"
// @Success      200   {array}   dto.InvoiceResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	p, err := periodFromQuery(c, h.loc)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.invoices.List(c.UserContext(), p)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear factura
// @Tags         invoices
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        client    formData  string  true   "cliente"
// @Param        number    formData  string  false  "número de factura"
// @Param        amount    formData  string  true   "monto total con IVA"
// @Param        vat_rate  formData  int     false  "0 o 15"
// @Param        document  formData  file    true   "PDF de la factura"
// @Success      201  {object}  dto.InvoiceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	in := dto.CreateInvoiceInput{
		Client: c.FormValue("client"),
		Number: c.FormValue("number"),
		Amount: c.FormValue("amount"),
	}
	if raw := strings.TrimSpace(c.FormValue("vat_rate")); raw != "" {
		rate, err := strconv.Atoi(raw)
		if err != nil {
			return writeError(c, fmt.Errorf("%w: vat_rate=%q", domain.ErrInvalidVATRate, raw))
		}
		in.VATRate = rate
	}
	if fh, err := c.FormFile("document"); err == nil {
		if fh.Size > maxDocumentSize {
			return writeError(c, fmt.Errorf("%w: documento mayor a 10 MB", domain.ErrInvalidInput))
		}
		f, err := fh.Open()
		if err != nil {
			return badBody(c)
		}
		defer f.Close()
		content, err := io.ReadAll(f)
		if err != nil {
			return badBody(c)
		}
		in.Document = content
		in.DocumentType = fh.Header.Get(fiber.HeaderContentType)
	}

	out, err := h.invoices.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateAmount godoc
// @Summary      Corregir el monto de una factura
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                          true  "ID de la factura"
// @Param        body  body  dto.UpdateInvoiceAmountRequest  true  "amount"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/amount [patch]
func (h *InvoiceHandler) UpdateAmount(c *fiber.Ctx) error {
	var in dto.UpdateInvoiceAmountRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.invoices.UpdateAmount(c.UserContext(), c.Params("id"), in.Amount)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar factura
// @Description  Borra la factura y sus pagos. Requiere un token elevado (permiso "delete").
// @Tags         invoices
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la factura"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.invoices.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Document godoc
// @Summary      URL temporal del PDF
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {object}  dto.DocumentURLResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/document [get]
func (h *InvoiceHandler) Document(c *fiber.Ctx) error {
	out, err := h.invoices.DocumentURL(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Payments godoc
// @Summary      Pagos de una factura
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {array}   dto.PaymentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/payments [get]
func (h *InvoiceHandler) Payments(c *fiber.Ctx) error {
	out, err := h.invoices.Payments(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RegisterPayment godoc
// @Summary      Registrar pago
// @Description  Guarda el pago, el ingreso PAGO_FACTURA y el nuevo estado en una sola transacción.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                      true  "ID de la factura"
// @Param        body  body  dto.RegisterPaymentRequest  true  "amount, note"
// @Success      201   {object}  dto.PaymentResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/payments [post]
func (h *InvoiceHandler) RegisterPayment(c *fiber.Ctx) error {
	var in dto.RegisterPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.payments.Register(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SuggestClients godoc
// @Summary      Autocompletar clientes
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        q  query  string  true  "prefijo"
// @Success      200  {array}  string
// @Router       /api/clients/suggest [get]
func (h *InvoiceHandler) SuggestClients(c *fiber.Ctx) error {
	out, err := h.invoices.SuggestClients(c.UserContext(), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
