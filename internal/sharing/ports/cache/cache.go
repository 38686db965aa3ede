// Package cache определяет интерфейс кэша снимков заметок.
package cache

import (
	"context"

	"sharednotes/internal/sharing/domain/entities"
)

// NoteCache хранит последние известные версии заметок.
type NoteCache interface {
	// Get возвращает nil, nil при промахе.
	Get(ctx context.Context, noteID string) (*entities.Note, error)
	// PutIfNewer записывает заметку, только если в кэше нет более новой версии.
	PutIfNewer(ctx context.Context, note *entities.Note) error
	Delete(ctx context.Context, noteID string) error
	Close() error
}
