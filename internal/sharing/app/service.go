package app

import (
	"sharednotes/internal/sharing/ports/cache"
	"sharednotes/internal/sharing/ports/repositories"
	"sharednotes/internal/sharing/ports/services"
)

// Service объединяет операции заметок, токенов и просмотра над одним хранилищем.
type Service struct {
	*NoteStore
	*TokenRegistry
	*AccessGateway
}

// NewService собирает компоненты поверх store. noteCache может быть nil.
func NewService(store repositories.Store, noteCache cache.NoteCache, ids services.IDGenerator, clock services.Clock) *Service {
	notes := NewNoteStore(store.Notes(), noteCache, ids, clock)
	tokens := NewTokenRegistry(store.Tokens(), ids, clock)

	return &Service{
		NoteStore:     notes,
		TokenRegistry: tokens,
		AccessGateway: NewAccessGateway(notes, tokens),
	}
}

var _ services.SharingService = (*Service)(nil)
