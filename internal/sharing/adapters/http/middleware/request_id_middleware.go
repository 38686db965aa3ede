package middleware

import (
	"github.com/gofiber/fiber/v3"

	"sharednotes/pkg/logger"
)

// NewRequestIDMiddleware берет идентификатор запроса из заголовка или генерирует новый,
// кладет его в контекст запроса и возвращает в ответе.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := logger.NewRequestIDContext(ctx.Context(), ctx.Get(RequestIDHeader))
		id, _ := logger.GetRequestID(requestCtx)

		ctx.Set(RequestIDHeader, id)
		ctx.Locals(RequestContextKey, requestCtx)

		return ctx.Next()
	}
}
