package serverutils

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware recovers panics and converts stray handler errors
// into a JSON 500 so infrastructure failures never leak stack traces.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[PANIC] %v", r)
				_ = ctx.Status(fiber.StatusInternalServerError).
					JSON(ErrorResponse(500, "Internal server error"))
			}
		}()

		if err := ctx.Next(); err != nil {
			if e, ok := err.(*fiber.Error); ok {
				return ctx.Status(e.Code).JSON(ErrorResponse(e.Code, e.Message))
			}
			// Raw infrastructure errors can carry connection strings or
			// driver detail; log the cause, return a generic message.
			log.Printf("[ERROR] %s %s failed: %v", ctx.Method(), ctx.Path(), err)
			return ctx.Status(fiber.StatusInternalServerError).
				JSON(ErrorResponse(500, "Internal server error"))
		}
		return nil
	}
}
