package http

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"sharednotes/internal/sharing/adapters/http/middleware"
	"sharednotes/internal/sharing/domain/sharelink"
	"sharednotes/internal/sharing/ports/services"
	"sharednotes/pkg/logger"
)

// Константы сообщений для логирования.
const (
	LogHandlerSaveNote    = "handling save note request"
	LogHandlerNewNote     = "handling new note request"
	LogHandlerGetNote     = "handling get note request"
	LogHandlerCreateToken = "handling create token request"
	LogHandlerListTokens  = "handling list tokens request"
	LogHandlerViewNote    = "handling view note request"
)

// Handler обрабатывает HTTP-запросы к сервису заметок.
type Handler struct {
	service   services.SharingService
	publicURL string
}

// NewHandler создает обработчик. publicURL - база для ссылок на просмотр.
func NewHandler(service services.SharingService, publicURL string) *Handler {
	return &Handler{service: service, publicURL: publicURL}
}

// SaveNote обрабатывает PUT /notes/:id.
func (h *Handler) SaveNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.SaveNote"))
	log.Debug(requestCtx, LogHandlerSaveNote)

	var req NoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendJSON(ctx, fiber.StatusBadRequest, ErrorResponse{Error: ErrMsgInvalidRequestBody})
	}

	if _, err := h.service.SaveNote(requestCtx, ctx.Params("id"), req.Title, req.Content); err != nil {
		log.Error(requestCtx, "failed to save note", zap.Error(err))
		return handleError(ctx, err)
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

// NewNote обрабатывает POST /notes.
func (h *Handler) NewNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.NewNote"))
	log.Debug(requestCtx, LogHandlerNewNote)

	var req NoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendJSON(ctx, fiber.StatusBadRequest, ErrorResponse{Error: ErrMsgInvalidRequestBody})
	}

	note, err := h.service.NewNote(requestCtx, req.Title, req.Content)
	if err != nil {
		log.Error(requestCtx, "failed to create note", zap.Error(err))
		return handleError(ctx, err)
	}

	return sendJSON(ctx, fiber.StatusCreated, noteResponse(note))
}

// GetNote обрабатывает GET /notes/:id.
func (h *Handler) GetNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerGetNote)

	note, err := h.service.GetNote(requestCtx, ctx.Params("id"))
	if err != nil {
		return handleError(ctx, err)
	}

	return sendJSON(ctx, fiber.StatusOK, noteResponse(note))
}

// CreateToken обрабатывает POST /notes/:id/tokens.
func (h *Handler) CreateToken(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.CreateToken"))
	log.Debug(requestCtx, LogHandlerCreateToken)

	noteID := ctx.Params("id")
	token, err := h.service.CreateToken(requestCtx, noteID)
	if err != nil {
		log.Info(requestCtx, "token not created", zap.Error(err))
		return handleError(ctx, err)
	}

	return sendJSON(ctx, fiber.StatusCreated, TokenResponse{
		Token:     token.Token,
		CreatedAt: unixSeconds(token.CreatedAt),
		ShareURL:  sharelink.Build(h.publicURL, sharelink.Viewer(noteID, token.Token)),
	})
}

// ListTokens обрабатывает GET /notes/:id/tokens.
func (h *Handler) ListTokens(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerListTokens)

	noteID := ctx.Params("id")
	tokens, err := h.service.ListTokens(requestCtx, noteID)
	if err != nil {
		return handleError(ctx, err)
	}

	resp := make([]TokenResponse, 0, len(tokens))
	for _, t := range tokens {
		resp = append(resp, TokenResponse{
			Token:     t.Token,
			CreatedAt: unixSeconds(t.CreatedAt),
			ShareURL:  sharelink.Build(h.publicURL, sharelink.Viewer(noteID, t.Token)),
		})
	}
	return sendJSON(ctx, fiber.StatusOK, resp)
}

// ViewNote обрабатывает GET /view?id=&token= и GET /view/:id?token=.
func (h *Handler) ViewNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerViewNote)

	noteID := ctx.Params("id")
	if noteID == "" {
		noteID = ctx.Query(sharelink.KeyID)
	}

	snap, err := h.service.ViewNote(requestCtx, noteID, ctx.Query(sharelink.KeyToken))
	if err != nil {
		return handleError(ctx, err)
	}

	ctx.Set(fiber.HeaderCacheControl, "no-store")
	return sendJSON(ctx, fiber.StatusOK, snapshotResponse(snap))
}

func sendJSON(ctx fiber.Ctx, status int, body any) error {
	if err := ctx.Status(status).JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}
