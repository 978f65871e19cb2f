package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hst-contabilidad/internal/application/access"
)

// ShareTokenMiddleware protege las vistas de solo lectura con el token de un enlace compartido.
// El token llega en la ruta (/report/:token) o en ?token=. Sin token la vista queda abierta.
func ShareTokenMiddleware(lookup access.LinkLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Params("token")
		if token == "" {
			token = c.Query("token")
		}
		if err := access.ForToken(token, lookup).Authorize(c.UserContext()); err != nil {
			return writeError(c, err)
		}
		return c.Next()
	}
}
