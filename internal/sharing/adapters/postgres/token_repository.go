package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"sharednotes/internal/sharing/domain/entities"
	"sharednotes/internal/sharing/ports/repositories"
	"sharednotes/pkg/logger"
)

const (
	lockNoteQuery    = `SELECT id FROM notes WHERE id = $1 FOR UPDATE`
	countTokensQuery = `SELECT COUNT(*) FROM tokens WHERE note_id = $1`
	insertTokenQuery = `INSERT INTO tokens (token, note_id, created_at) VALUES ($1, $2, $3)`
	listTokensQuery  = `SELECT token, note_id, created_at FROM tokens WHERE note_id = $1 ORDER BY created_at, seq`
)

// TokenRepository реализует интерфейс repositories.TokenRepository.
type TokenRepository struct {
	pool PgxPoolInterface
}

// NewTokenRepository создает новый репозиторий токенов.
func NewTokenRepository(pool PgxPoolInterface) repositories.TokenRepository {
	return &TokenRepository{pool: pool}
}

// CreateWithinLimit добавляет токен, если у заметки их меньше limit.
// Строка заметки блокируется до конца транзакции, поэтому параллельные выдачи
// для одной заметки выполняются по очереди.
func (r *TokenRepository) CreateWithinLimit(ctx context.Context, token *entities.Token, limit int) error {
	log := logger.Log(ctx).With(zap.String("method", "TokenRepository.CreateWithinLimit"))
	log.Debug(ctx, "creating token", zap.String("noteID", token.NoteID))

	return inTx(ctx, r.pool, func(tx pgx.Tx) error {
		var lockedID string
		if err := tx.QueryRow(ctx, lockNoteQuery, token.NoteID).Scan(&lockedID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				log.Debug(ctx, "note not found", zap.String("noteID", token.NoteID))
				return entities.ErrNoteNotFound
			}
			log.Error(ctx, "failed to lock note", zap.Error(err))
			return fmt.Errorf("failed to lock note: %w", err)
		}

		var count int
		if err := tx.QueryRow(ctx, countTokensQuery, token.NoteID).Scan(&count); err != nil {
			log.Error(ctx, "failed to count tokens", zap.Error(err))
			return fmt.Errorf("failed to count tokens: %w", err)
		}
		if count >= limit {
			log.Debug(ctx, "token limit reached", zap.Int("count", count))
			return entities.ErrCapExceeded
		}

		if _, err := tx.Exec(ctx, insertTokenQuery, token.Token, token.NoteID, token.CreatedAt); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
				log.Warn(ctx, "token value collision")
				return repositories.ErrTokenConflict
			}
			log.Error(ctx, "failed to insert token", zap.Error(err))
			return fmt.Errorf("failed to insert token: %w", err)
		}

		return nil
	})
}

// ListByNoteID возвращает токены заметки в порядке выдачи.
func (r *TokenRepository) ListByNoteID(ctx context.Context, noteID string) ([]*entities.Token, error) {
	log := logger.Log(ctx).With(zap.String("method", "TokenRepository.ListByNoteID"))

	rows, err := r.pool.Query(ctx, listTokensQuery, noteID)
	if err != nil {
		log.Error(ctx, "failed to list tokens", zap.Error(err))
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}
	defer rows.Close()

	tokens := make([]*entities.Token, 0, entities.MaxTokensPerNote)
	for rows.Next() {
		var t entities.Token
		if err := rows.Scan(&t.Token, &t.NoteID, &t.CreatedAt); err != nil {
			log.Error(ctx, "failed to scan token", zap.Error(err))
			return nil, fmt.Errorf("failed to scan token: %w", err)
		}
		tokens = append(tokens, &t)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return tokens, nil
}
