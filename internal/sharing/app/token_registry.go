package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"sharednotes/internal/sharing/domain/entities"
	"sharednotes/internal/sharing/ports/repositories"
	"sharednotes/internal/sharing/ports/services"
	"sharednotes/pkg/logger"
)

// maxTokenAttempts - сколько раз генерировать новое значение при совпадении с существующим токеном.
const maxTokenAttempts = 3

// ErrTokenGeneration - генератор раз за разом выдает занятые значения.
var ErrTokenGeneration = errors.New("failed to generate unique token")

// TokenRegistry выдает токены доступа и проверяет их.
type TokenRegistry struct {
	tokens repositories.TokenRepository
	ids    services.IDGenerator
	clock  services.Clock
	limit  int
}

// NewTokenRegistry создает TokenRegistry с пределом entities.MaxTokensPerNote.
func NewTokenRegistry(tokens repositories.TokenRepository, ids services.IDGenerator, clock services.Clock) *TokenRegistry {
	return &TokenRegistry{
		tokens: tokens,
		ids:    ids,
		clock:  clock,
		limit:  entities.MaxTokensPerNote,
	}
}

// CreateToken выдает новый токен для существующей заметки.
// Возвращает entities.ErrNoteNotFound или entities.ErrCapExceeded.
func (r *TokenRegistry) CreateToken(ctx context.Context, noteID string) (entities.Token, error) {
	if noteID == "" {
		return entities.Token{}, entities.ErrNoteNotFound
	}
	log := logger.Log(ctx).With(zap.String("noteID", noteID))

	for attempt := 1; attempt <= maxTokenAttempts; attempt++ {
		token := entities.NewToken(r.ids.NewToken(), noteID, r.clock.Now())

		err := r.tokens.CreateWithinLimit(ctx, token, r.limit)
		switch {
		case err == nil:
			log.Info(ctx, "token issued")
			return *token, nil
		case errors.Is(err, repositories.ErrTokenConflict):
			log.Warn(ctx, "token collision, regenerating", zap.Int("attempt", attempt))
			continue
		case isDomainError(err):
			return entities.Token{}, err
		default:
			return entities.Token{}, storageError("create token", err)
		}
	}

	return entities.Token{}, ErrTokenGeneration
}

// ListTokens возвращает токены заметки по возрастанию времени выдачи.
// Пустой список означает, что заметка открыта всем.
func (r *TokenRegistry) ListTokens(ctx context.Context, noteID string) ([]entities.Token, error) {
	stored, err := r.tokens.ListByNoteID(ctx, noteID)
	if err != nil {
		return nil, storageError("list tokens", err)
	}

	tokens := make([]entities.Token, 0, len(stored))
	for _, t := range stored {
		tokens = append(tokens, *t)
	}
	return tokens, nil
}

// IsAuthorized проверяет, открывает ли presented заметку noteID.
// Набор токенов каждый раз читается из хранилища.
func (r *TokenRegistry) IsAuthorized(ctx context.Context, noteID, presented string) (bool, error) {
	stored, err := r.tokens.ListByNoteID(ctx, noteID)
	if err != nil {
		return false, storageError("authorize", err)
	}
	return entities.Grants(stored, presented), nil
}
