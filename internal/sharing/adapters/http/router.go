// Package http содержит HTTP-адаптер сервиса общих заметок на Fiber.
package http

import (
	"github.com/gofiber/fiber/v3"

	"sharednotes/internal/sharing/adapters/http/middleware"
	"sharednotes/internal/sharing/ports/services"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, service services.SharingService, publicURL string) {
	handler := NewHandler(service, publicURL)

	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	apiV1 := app.Group("/api/v1")

	// Редактор.
	notes := apiV1.Group("/notes")
	notes.Post("/", handler.NewNote)
	notes.Put("/:id", handler.SaveNote)
	notes.Get("/:id", handler.GetNote)
	notes.Post("/:id/tokens", handler.CreateToken)
	notes.Get("/:id/tokens", handler.ListTokens)

	// Просмотр.
	apiV1.Get("/view", handler.ViewNote)
	apiV1.Get("/view/:id", handler.ViewNote)

	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: ErrMsgRouteNotFound})
	})
}
