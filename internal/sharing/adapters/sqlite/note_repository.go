package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"sharednotes/internal/sharing/domain/entities"
	"sharednotes/pkg/logger"
)

const (
	upsertNoteQuery = `INSERT INTO notes (id, title, content, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET title = excluded.title, content = excluded.content,
updated_at = MAX(notes.updated_at, excluded.updated_at)
RETURNING updated_at`

	getNoteQuery = `SELECT id, title, content, updated_at FROM notes WHERE id = ?`
)

// NoteRepository хранит заметки в SQLite. Время хранится в наносекундах unix.
type NoteRepository struct {
	db *sql.DB
}

// Upsert сохраняет заметку. updated_at в базе не уменьшается.
func (r *NoteRepository) Upsert(ctx context.Context, note *entities.Note) error {
	log := logger.Log(ctx).With(zap.String("method", "sqlite.NoteRepository.Upsert"))
	log.Debug(ctx, "saving note", zap.String("noteID", note.ID))

	var stored int64
	err := r.db.QueryRowContext(ctx, upsertNoteQuery,
		note.ID, note.Title, note.Content, note.UpdatedAt.UnixNano(),
	).Scan(&stored)
	if err != nil {
		log.Error(ctx, "failed to save note", zap.Error(err))
		return fmt.Errorf("failed to save note: %w", err)
	}

	note.UpdatedAt = fromUnixNano(stored)
	return nil
}

// GetByID получает заметку по ID. Отсутствие заметки не ошибка.
func (r *NoteRepository) GetByID(ctx context.Context, noteID string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "sqlite.NoteRepository.GetByID"))

	var (
		note    entities.Note
		updated int64
	)
	err := r.db.QueryRowContext(ctx, getNoteQuery, noteID).
		Scan(&note.ID, &note.Title, &note.Content, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.String("noteID", noteID))
			return nil, nil
		}
		log.Error(ctx, "failed to get note", zap.Error(err))
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	note.UpdatedAt = fromUnixNano(updated)
	return &note, nil
}

func fromUnixNano(ns int64) time.Time {
	return time.Unix(0, ns).UTC()
}
