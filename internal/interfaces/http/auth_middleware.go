package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hst-contabilidad/internal/application/dto"
	"github.com/jhoicas/hst-contabilidad/pkg/jwt"
)

// Locals keys de la sesión en Fiber.
const (
	LocalSubject = "subject"
	LocalScopes  = "scopes"
)

// AuthMiddleware valida el Bearer Token JWT y deja subject y scopes en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalSubject, claims.Subject)
		c.Locals(LocalScopes, claims.Scopes)
		return c.Next()
	}
}

// RequireScope exige que el token de sesión conceda scope. Debe ir después de AuthMiddleware.
// Sin el scope responde 403; para "delete" el operador debe elevar la sesión.
func RequireScope(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, s := range GetScopes(c) {
			if s == scope {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code: "FORBIDDEN", Message: "se requiere el permiso " + scope,
		})
	}
}

// GetSubject devuelve el subject del token (después del middleware de auth).
func GetSubject(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalSubject).(string)
	return s
}

// GetScopes devuelve los scopes del token (después del middleware de auth).
func GetScopes(c *fiber.Ctx) []string {
	s, _ := c.Locals(LocalScopes).([]string)
	return s
}
