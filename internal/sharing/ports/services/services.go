// Package services defines service interfaces for the sharing service.
package services

import (
	"context"
	"time"

	"sharednotes/internal/sharing/domain/entities"
)

// IDGenerator выдает случайные идентификаторы заметок и значения токенов.
type IDGenerator interface {
	NewNoteID() string
	NewToken() string
}

// Clock возвращает текущее время.
type Clock interface {
	Now() time.Time
}

// SharingService - операции сервиса, доступные внешним адаптерам.
type SharingService interface {
	SaveNote(ctx context.Context, id, title, content string) (entities.Note, error)
	NewNote(ctx context.Context, title, content string) (entities.Note, error)
	GetNote(ctx context.Context, id string) (entities.Note, error)
	CreateToken(ctx context.Context, noteID string) (entities.Token, error)
	ListTokens(ctx context.Context, noteID string) ([]entities.Token, error)
	ViewNote(ctx context.Context, noteID, presented string) (entities.Snapshot, error)
}
