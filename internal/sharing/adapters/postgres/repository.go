package postgres

import (
	"context"
	"fmt"

	"sharednotes/internal/sharing/ports/repositories"
)

// RepositoryFactory владеет пулом соединений и раздает репозитории поверх него.
type RepositoryFactory struct {
	pool   PgxPoolInterface
	notes  repositories.NoteRepository
	tokens repositories.TokenRepository
}

var _ repositories.Store = (*RepositoryFactory)(nil)

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{
		pool:   pool,
		notes:  NewNoteRepository(pool),
		tokens: NewTokenRepository(pool),
	}
}

// Notes возвращает репозиторий заметок.
func (f *RepositoryFactory) Notes() repositories.NoteRepository {
	return f.notes
}

// Tokens возвращает репозиторий токенов.
func (f *RepositoryFactory) Tokens() repositories.TokenRepository {
	return f.tokens
}

// Ping проверяет соединение с базой.
func (f *RepositoryFactory) Ping(ctx context.Context) error {
	if err := f.pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping postgres: %w", err)
	}
	return nil
}

// Close закрывает пул.
func (f *RepositoryFactory) Close() error {
	f.pool.Close()
	return nil
}
