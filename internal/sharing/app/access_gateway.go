package app

import (
	"context"

	"go.uber.org/zap"

	"sharednotes/internal/sharing/domain/entities"
	"sharednotes/pkg/logger"
)

// NoteLoader загружает заметку для просмотра. Отсутствие - nil без ошибки.
type NoteLoader interface {
	LoadNote(ctx context.Context, id string) (*entities.Note, error)
}

// Authorizer проверяет токен для заметки.
type Authorizer interface {
	IsAuthorized(ctx context.Context, noteID, presented string) (bool, error)
}

// AccessGateway отдает заметку читателю после проверки токена.
type AccessGateway struct {
	notes NoteLoader
	auth  Authorizer
}

// NewAccessGateway создает AccessGateway.
func NewAccessGateway(notes NoteLoader, auth Authorizer) *AccessGateway {
	return &AccessGateway{notes: notes, auth: auth}
}

// ViewNote возвращает снимок заметки noteID для токена presented.
// Отказ - *entities.RejectedError; сбой хранилища - entities.ErrStorage.
func (g *AccessGateway) ViewNote(ctx context.Context, noteID, presented string) (entities.Snapshot, error) {
	log := logger.Log(ctx).With(zap.String("noteID", noteID))

	note, err := g.notes.LoadNote(ctx, noteID)
	if err != nil {
		return entities.Snapshot{}, err
	}
	if note == nil {
		log.Debug(ctx, "view rejected", zap.Stringer("reason", entities.ReasonNoteNotFound))
		return entities.Snapshot{}, entities.NewRejectedError(entities.ReasonNoteNotFound)
	}

	ok, err := g.auth.IsAuthorized(ctx, noteID, presented)
	if err != nil {
		return entities.Snapshot{}, err
	}
	if !ok {
		log.Debug(ctx, "view rejected", zap.Stringer("reason", entities.ReasonUnauthorized))
		return entities.Snapshot{}, entities.NewRejectedError(entities.ReasonUnauthorized)
	}

	return note.Snapshot(), nil
}
