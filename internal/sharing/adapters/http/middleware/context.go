// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"
)

// RequestContextKey - ключ Locals с контекстом запроса.
const RequestContextKey = "requestContext"

// RequestIDHeader - заголовок с идентификатором запроса.
const RequestIDHeader = "X-Request-ID"

// RequestContext возвращает контекст запроса, подготовленный NewRequestIDMiddleware.
func RequestContext(ctx fiber.Ctx) context.Context {
	if requestCtx, ok := ctx.Locals(RequestContextKey).(context.Context); ok {
		return requestCtx
	}
	return ctx.Context()
}
