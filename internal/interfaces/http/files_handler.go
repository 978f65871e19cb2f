package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hst-contabilidad/internal/infrastructure/storage"
)

// FilesHandler sirve los documentos del almacenamiento local con URL firmada.
type FilesHandler struct {
	store *storage.LocalStore
}

// NewFilesHandler construye el handler.
func NewFilesHandler(store *storage.LocalStore) *FilesHandler {
	return &FilesHandler{store: store}
}

// Get godoc
// @Summary      Descargar documento
// @Tags         files
// @Produce      application/pdf
// @Param        path  path   string  true  "ruta del objeto"
// @Param        sig   query  string  true  "firma"
// @Success      200   {file}    binary
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /files/{path} [get]
func (h *FilesHandler) Get(c *fiber.Ctx) error {
	full, err := h.store.Open(c.Params("*"), c.Query("sig"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.SendFile(full)
}
