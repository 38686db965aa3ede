package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"sharednotes/internal/sharing/domain/entities"
	"sharednotes/internal/sharing/ports/repositories"
	"sharednotes/pkg/logger"
)

const (
	upsertNoteQuery = `INSERT INTO notes (id, title, content, updated_at) VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title, content = EXCLUDED.content,
updated_at = GREATEST(notes.updated_at, EXCLUDED.updated_at)
RETURNING updated_at`

	getNoteQuery = `SELECT id, title, content, updated_at FROM notes WHERE id = $1`
)

// NoteRepository реализует интерфейс repositories.NoteRepository.
type NoteRepository struct {
	pool PgxPoolInterface
}

// NewNoteRepository создает новый репозиторий заметок.
func NewNoteRepository(pool PgxPoolInterface) repositories.NoteRepository {
	return &NoteRepository{pool: pool}
}

// Upsert сохраняет заметку. updated_at в базе не уменьшается.
func (r *NoteRepository) Upsert(ctx context.Context, note *entities.Note) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Upsert"))
	log.Debug(ctx, "saving note", zap.String("noteID", note.ID))

	err := r.pool.QueryRow(ctx, upsertNoteQuery,
		note.ID, note.Title, note.Content, note.UpdatedAt,
	).Scan(&note.UpdatedAt)
	if err != nil {
		log.Error(ctx, "failed to save note", zap.Error(err))
		return fmt.Errorf("failed to save note: %w", err)
	}

	return nil
}

// GetByID получает заметку по ID.
func (r *NoteRepository) GetByID(ctx context.Context, noteID string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.GetByID"))
	log.Debug(ctx, "getting note", zap.String("noteID", noteID))

	var note entities.Note
	err := r.pool.QueryRow(ctx, getNoteQuery, noteID).
		Scan(&note.ID, &note.Title, &note.Content, &note.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.String("noteID", noteID))
			return nil, nil
		}
		log.Error(ctx, "failed to get note", zap.Error(err))
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return &note, nil
}
