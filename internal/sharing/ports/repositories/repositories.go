// Package repositories defines repository interfaces for the sharing service.
package repositories

import (
	"context"

	"sharednotes/internal/sharing/domain/entities"
)

// NoteRepository определяет интерфейс хранилища заметок.
type NoteRepository interface {
	// Upsert вставляет или полностью заменяет заметку. Хранимый updated_at
	// не уменьшается; итоговое значение записывается обратно в note.UpdatedAt.
	Upsert(ctx context.Context, note *entities.Note) error
	// GetByID возвращает nil, nil, если заметки нет.
	GetByID(ctx context.Context, noteID string) (*entities.Note, error)
}

// TokenRepository определяет интерфейс хранилища токенов.
type TokenRepository interface {
	// CreateWithinLimit атомарно проверяет число токенов заметки и добавляет новый.
	// Возвращает entities.ErrNoteNotFound, entities.ErrCapExceeded или ErrTokenConflict.
	CreateWithinLimit(ctx context.Context, token *entities.Token, limit int) error
	// ListByNoteID возвращает токены по возрастанию created_at, при равенстве в порядке вставки.
	ListByNoteID(ctx context.Context, noteID string) ([]*entities.Token, error)
}

// Store - общий дескриптор хранилища, разделяемый всеми компонентами процесса.
type Store interface {
	Notes() NoteRepository
	Tokens() TokenRepository
	Ping(ctx context.Context) error
	Close() error
}
