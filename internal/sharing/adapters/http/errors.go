package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"sharednotes/internal/sharing/domain/entities"
)

// Сообщения об ошибках в ответах.
const (
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgNoteNotFound       = "note not found"
	ErrMsgCapExceeded        = "maximum of 3 tokens already generated for this note"
	ErrMsgCannotView         = "cannot view note"
	ErrMsgEmptyNoteID        = "note id is required"
	ErrMsgStorage            = "storage unavailable"
	ErrMsgInternal           = "internal server error"
	ErrMsgRouteNotFound      = "route not found"
)

// statusFor сопоставляет ошибку домена с HTTP статусом и сообщением.
// Любой отказ в просмотре дает один и тот же ответ.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, entities.ErrRejected):
		return fiber.StatusForbidden, ErrMsgCannotView
	case errors.Is(err, entities.ErrNoteNotFound):
		return fiber.StatusNotFound, ErrMsgNoteNotFound
	case errors.Is(err, entities.ErrCapExceeded):
		return fiber.StatusConflict, ErrMsgCapExceeded
	case errors.Is(err, entities.ErrEmptyNoteID):
		return fiber.StatusBadRequest, ErrMsgEmptyNoteID
	case errors.Is(err, entities.ErrStorage):
		return fiber.StatusServiceUnavailable, ErrMsgStorage
	default:
		return fiber.StatusInternalServerError, ErrMsgInternal
	}
}

func handleError(ctx fiber.Ctx, err error) error {
	status, msg := statusFor(err)
	if sendErr := ctx.Status(status).JSON(ErrorResponse{Error: msg}); sendErr != nil {
		return fmt.Errorf("error sending %d response: %w", status, sendErr)
	}
	return nil
}
