// Package sqlite provides SQLite implementations of repositories on modernc.org/sqlite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"sharednotes/internal/sharing/ports/repositories"
	"sharednotes/pkg/logger"
)

const schema = `
CREATE TABLE IF NOT EXISTS notes (
	id         TEXT PRIMARY KEY,
	title      TEXT    NOT NULL DEFAULT '',
	content    TEXT    NOT NULL DEFAULT '',
	updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS tokens (
	token      TEXT PRIMARY KEY,
	note_id    TEXT    NOT NULL REFERENCES notes(id) ON DELETE CASCADE,
	created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tokens_note_id_created_at ON tokens(note_id, created_at);
`

// Сообщения хранилища.
const (
	LogStoreOpened   = "sqlite store opened"
	ErrCreateDir     = "failed to create database directory"
	ErrOpenDatabase  = "failed to open sqlite database"
	ErrCreateSchema  = "failed to create sqlite schema"
	ErrPingDatabase  = "failed to ping sqlite database"
	ErrCloseDatabase = "failed to close sqlite database"
)

// Store - хранилище на одном файле SQLite.
// Все операции идут через одно соединение, поэтому транзакции выполняются по очереди.
type Store struct {
	db     *sql.DB
	notes  *NoteRepository
	tokens *TokenRepository
}

var _ repositories.Store = (*Store)(nil)

// Open открывает или создает базу по пути path и создает схему.
// Родительские каталоги создаются при необходимости.
func Open(ctx context.Context, path string) (*Store, error) {
	log := logger.Log(ctx).With(zap.String("path", path))

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrCreateDir, err)
		}
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrOpenDatabase, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", ErrCreateSchema, err)
	}

	log.Info(ctx, LogStoreOpened)
	return &Store{
		db:     db,
		notes:  &NoteRepository{db: db},
		tokens: &TokenRepository{db: db},
	}, nil
}

func dsn(path string) string {
	return fmt.Sprintf(
		"file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_txlock=immediate",
		path,
	)
}

// Notes возвращает репозиторий заметок.
func (s *Store) Notes() repositories.NoteRepository {
	return s.notes
}

// Tokens возвращает репозиторий токенов.
func (s *Store) Tokens() repositories.TokenRepository {
	return s.tokens
}

// Ping проверяет, что база доступна.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrPingDatabase, err)
	}
	return nil
}

// Close закрывает базу.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrCloseDatabase, err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *moderncsqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return true
	default:
		return false
	}
}
