package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/s25922/Cwiczenia4/internal/application/dto"
	"github.com/s25922/Cwiczenia4/pkg/jwt"
)

// LocalClientID key de c.Locals para el cliente autenticado.
const LocalClientID = "client_id"

// AuthMiddleware valida el Bearer Token JWT y deja el ClientID en c.Locals.
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
		clientID, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalClientID, clientID)
		return c.Next()
	}
}

// GetClientID devuelve el ClientID del contexto (después del middleware de auth).
func GetClientID(c *fiber.Ctx) string {
	v := c.Locals(LocalClientID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
