package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// NewJwtMiddleware authenticates bearer tokens signed with the given secret
// and algorithm. Malformed or wrongly signed tokens get 401; expired tokens
// get 403 so the client knows to log in again rather than retry. The username
// claim is placed in Locals for downstream handlers.
func NewJwtMiddleware(secret, algorithm string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Missing token"))
		}
		tokenStr := authHeader[7:]

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{algorithm}))

		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse(403, "Token has expired, please refresh and log in again"))
			}
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid token"))
		}
		if !token.Valid {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid claims"))
		}
		username, ok := claims["username"].(string)
		if !ok || username == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid claims"))
		}

		ctx.Locals("username", username)
		return ctx.Next()
	}
}
