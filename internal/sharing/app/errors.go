// Package app implements application business logic for the sharing service.
package app

import (
	"errors"
	"fmt"

	"sharednotes/internal/sharing/domain/entities"
)

// storageError помечает сбой хранилища как entities.ErrStorage, сохраняя исходную причину.
func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", entities.ErrStorage, op, err)
}

// isDomainError сообщает, что err - ожидаемый результат, а не сбой хранилища.
func isDomainError(err error) bool {
	return errors.Is(err, entities.ErrNoteNotFound) ||
		errors.Is(err, entities.ErrCapExceeded) ||
		errors.Is(err, entities.ErrEmptyNoteID)
}
