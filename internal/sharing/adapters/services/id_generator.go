// Package services provides implementations of service ports.
package services

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"sharednotes/internal/sharing/ports/services"
)

// IDLength - длина идентификатора в шестнадцатеричных символах (48 случайных бит).
const IDLength = 12

// UUIDGenerator выдает идентификаторы из префикса UUID v4.
type UUIDGenerator struct{}

var _ services.IDGenerator = UUIDGenerator{}

// NewUUIDGenerator создает генератор идентификаторов.
func NewUUIDGenerator() UUIDGenerator {
	return UUIDGenerator{}
}

// NewNoteID возвращает идентификатор новой заметки.
func (UUIDGenerator) NewNoteID() string {
	return shortID()
}

// NewToken возвращает значение нового токена.
func (UUIDGenerator) NewToken() string {
	return shortID()
}

// Первые 12 символов UUID v4 без дефисов полностью случайны:
// биты версии и варианта лежат дальше.
func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:IDLength]
}

// SystemClock возвращает время системы в UTC.
type SystemClock struct{}

var _ services.Clock = SystemClock{}

// Now возвращает текущее время.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
