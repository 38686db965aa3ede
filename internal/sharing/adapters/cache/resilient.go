package cache

import (
	"context"

	"sharednotes/internal/sharing/domain/entities"
	"sharednotes/internal/sharing/ports/cache"
	"sharednotes/internal/sharing/resilience"
)

// ResilientNoteCache оборачивает кэш в Circuit Breaker и повторные попытки.
// Пока breaker открыт, Get и PutIfNewer сразу возвращают resilience.ErrCircuitOpen.
type ResilientNoteCache struct {
	inner cache.NoteCache
	res   *resilience.ServiceResilience
}

var _ cache.NoteCache = (*ResilientNoteCache)(nil)

// NewResilientNoteCache создает обертку над inner.
func NewResilientNoteCache(inner cache.NoteCache, res *resilience.ServiceResilience) *ResilientNoteCache {
	return &ResilientNoteCache{inner: inner, res: res}
}

// Get читает заметку из кэша.
func (c *ResilientNoteCache) Get(ctx context.Context, noteID string) (*entities.Note, error) {
	return resilience.ExecuteWithResult(ctx, c.res, "cache.get", func() (*entities.Note, error) {
		return c.inner.Get(ctx, noteID)
	})
}

// PutIfNewer публикует заметку в кэш.
func (c *ResilientNoteCache) PutIfNewer(ctx context.Context, note *entities.Note) error {
	return c.res.ExecuteWithResilience(ctx, "cache.put", func() error {
		return c.inner.PutIfNewer(ctx, note)
	})
}

// Delete удаляет заметку из кэша в обход breaker: инвалидация после неудачной
// публикации должна дойти до Redis, даже если цепь открыта.
func (c *ResilientNoteCache) Delete(ctx context.Context, noteID string) error {
	return c.inner.Delete(ctx, noteID)
}

// Close закрывает вложенный кэш.
func (c *ResilientNoteCache) Close() error {
	return c.inner.Close()
}
