package middleware

import (
	"strings"
	"time"

	"passkey_auth_ms/config"
	"passkey_auth_ms/services"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware gates passkey ceremony routes behind an established
// password session. The authenticated user id lands in c.Locals("userId")
// and is the only identity the ceremony handlers trust.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		secret := config.Conf.Application.Security.Secret
		issuer := config.Conf.Application.Security.Issuer
		acctm := config.Conf.Application.Security.TokenValidityInSeconds
		reftm := config.Conf.Application.Security.TokenValidityInSecondsForRememberMe

		jwt := services.NewJWTService([]byte(secret), issuer, time.Duration(acctm), time.Duration(reftm))

		authHeader := c.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing or invalid token",
			})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.ParseJWT(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token parse error",
			})
		}

		claims, err := jwt.GetClaims(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		sub, ok := claims["sub"].(float64)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}
		c.Locals("userId", uint(sub))

		return c.Next()
	}
}
