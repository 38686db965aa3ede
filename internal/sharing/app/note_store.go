package app

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"sharednotes/internal/sharing/domain/entities"
	"sharednotes/internal/sharing/ports/cache"
	"sharednotes/internal/sharing/ports/repositories"
	"sharednotes/internal/sharing/ports/services"
	"sharednotes/pkg/logger"
)

// Сообщения кэша.
const (
	LogCachePutFailed    = "failed to publish note to cache"
	LogCacheDeleteFailed = "failed to drop stale note from cache"
	LogCacheGetFailed    = "note cache unavailable, reading store"
	LogCacheBypassed     = "cached note may be stale, reading store"
)

// NoteStore управляет заметками: сохранение по ID и чтение.
type NoteStore struct {
	notes repositories.NoteRepository
	cache cache.NoteCache
	ids   services.IDGenerator
	clock services.Clock

	// stale - id, чья последняя публикация в кэш не удалась и ключ не удалось удалить.
	// Для них кэш не читается, пока публикация не пройдет.
	stale sync.Map
}

// NewNoteStore создает NoteStore. noteCache может быть nil.
func NewNoteStore(
	notes repositories.NoteRepository,
	noteCache cache.NoteCache,
	ids services.IDGenerator,
	clock services.Clock,
) *NoteStore {
	return &NoteStore{
		notes: notes,
		cache: noteCache,
		ids:   ids,
		clock: clock,
	}
}

// SaveNote вставляет или полностью заменяет заметку id.
// updated_at берется из часов и не бывает меньше уже сохраненного значения.
func (s *NoteStore) SaveNote(ctx context.Context, id, title, content string) (entities.Note, error) {
	if id == "" {
		return entities.Note{}, entities.ErrEmptyNoteID
	}

	note := entities.NewNote(id, title, content, s.clock.Now())
	if err := s.notes.Upsert(ctx, note); err != nil {
		return entities.Note{}, storageError("save note", err)
	}

	s.publish(ctx, note)
	return *note, nil
}

// NewNote сохраняет заметку под новым сгенерированным ID.
func (s *NoteStore) NewNote(ctx context.Context, title, content string) (entities.Note, error) {
	return s.SaveNote(ctx, s.ids.NewNoteID(), title, content)
}

// GetNote читает заметку из хранилища. Отсутствие - entities.ErrNoteNotFound.
func (s *NoteStore) GetNote(ctx context.Context, id string) (entities.Note, error) {
	if id == "" {
		return entities.Note{}, entities.ErrNoteNotFound
	}

	note, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return entities.Note{}, storageError("get note", err)
	}
	if note == nil {
		return entities.Note{}, entities.ErrNoteNotFound
	}
	return *note, nil
}

// NoteExists сообщает, есть ли заметка id.
func (s *NoteStore) NoteExists(ctx context.Context, id string) (bool, error) {
	if _, err := s.GetNote(ctx, id); err != nil {
		if isDomainError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// LoadNote возвращает заметку для просмотра: сначала из кэша, затем из хранилища.
// Отсутствие заметки дает nil без ошибки. Недоступный кэш не считается ошибкой.
func (s *NoteStore) LoadNote(ctx context.Context, id string) (*entities.Note, error) {
	if id == "" {
		return nil, nil
	}

	if s.cache != nil && s.isStale(id) {
		logger.Log(ctx).Debug(ctx, LogCacheBypassed, zap.String("noteID", id))
	} else if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err == nil && cached != nil {
			return cached, nil
		}
		if err != nil {
			logger.Log(ctx).Warn(ctx, LogCacheGetFailed, zap.String("noteID", id), zap.Error(err))
		}
	}

	note, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return nil, storageError("load note", err)
	}
	if note != nil {
		s.publish(ctx, note)
	}
	return note, nil
}

// publish кладет заметку в кэш. При ошибке ключ удаляется, чтобы не отдавать старую версию.
func (s *NoteStore) publish(ctx context.Context, note *entities.Note) {
	if s.cache == nil {
		return
	}

	log := logger.Log(ctx).With(zap.String("noteID", note.ID))
	err := s.cache.PutIfNewer(ctx, note)
	if err == nil {
		s.stale.Delete(note.ID)
		return
	}

	log.Warn(ctx, LogCachePutFailed, zap.Error(err))
	if err := s.cache.Delete(ctx, note.ID); err != nil {
		log.Warn(ctx, LogCacheDeleteFailed, zap.Error(err))
		s.stale.Store(note.ID, struct{}{})
	}
}

func (s *NoteStore) isStale(id string) bool {
	_, ok := s.stale.Load(id)
	return ok
}
