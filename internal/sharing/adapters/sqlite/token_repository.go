package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"sharednotes/internal/sharing/domain/entities"
	"sharednotes/internal/sharing/ports/repositories"
	"sharednotes/pkg/logger"
)

const (
	noteExistsQuery  = `SELECT 1 FROM notes WHERE id = ?`
	countTokensQuery = `SELECT COUNT(*) FROM tokens WHERE note_id = ?`
	insertTokenQuery = `INSERT INTO tokens (token, note_id, created_at) VALUES (?, ?, ?)`
	listTokensQuery  = `SELECT token, note_id, created_at FROM tokens WHERE note_id = ? ORDER BY created_at, rowid`
)

// TokenRepository хранит токены в SQLite.
type TokenRepository struct {
	db *sql.DB
}

// CreateWithinLimit добавляет токен, если у заметки их меньше limit.
// Транзакция открывается как BEGIN IMMEDIATE и держит блокировку записи до конца.
func (r *TokenRepository) CreateWithinLimit(ctx context.Context, token *entities.Token, limit int) (err error) {
	log := logger.Log(ctx).With(zap.String("method", "sqlite.TokenRepository.CreateWithinLimit"))
	log.Debug(ctx, "creating token", zap.String("noteID", token.NoteID))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				log.Warn(ctx, "failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	var one int
	if err = tx.QueryRowContext(ctx, noteExistsQuery, token.NoteID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = entities.ErrNoteNotFound
			return err
		}
		log.Error(ctx, "failed to check note", zap.Error(err))
		return fmt.Errorf("failed to check note: %w", err)
	}

	var count int
	if err = tx.QueryRowContext(ctx, countTokensQuery, token.NoteID).Scan(&count); err != nil {
		log.Error(ctx, "failed to count tokens", zap.Error(err))
		return fmt.Errorf("failed to count tokens: %w", err)
	}
	if count >= limit {
		log.Debug(ctx, "token limit reached", zap.Int("count", count))
		err = entities.ErrCapExceeded
		return err
	}

	if _, err = tx.ExecContext(ctx, insertTokenQuery, token.Token, token.NoteID, token.CreatedAt.UnixNano()); err != nil {
		if isUniqueViolation(err) {
			log.Warn(ctx, "token value collision")
			err = repositories.ErrTokenConflict
			return err
		}
		log.Error(ctx, "failed to insert token", zap.Error(err))
		return fmt.Errorf("failed to insert token: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListByNoteID возвращает токены заметки в порядке выдачи.
func (r *TokenRepository) ListByNoteID(ctx context.Context, noteID string) ([]*entities.Token, error) {
	log := logger.Log(ctx).With(zap.String("method", "sqlite.TokenRepository.ListByNoteID"))

	rows, err := r.db.QueryContext(ctx, listTokensQuery, noteID)
	if err != nil {
		log.Error(ctx, "failed to list tokens", zap.Error(err))
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}
	defer rows.Close()

	tokens := make([]*entities.Token, 0, entities.MaxTokensPerNote)
	for rows.Next() {
		var (
			t       entities.Token
			created int64
		)
		if err := rows.Scan(&t.Token, &t.NoteID, &created); err != nil {
			log.Error(ctx, "failed to scan token", zap.Error(err))
			return nil, fmt.Errorf("failed to scan token: %w", err)
		}
		t.CreatedAt = fromUnixNano(created)
		tokens = append(tokens, &t)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return tokens, nil
}
