package logger

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type requestIDKeyType struct{}

var requestIDKey = requestIDKeyType{}

// MaxRequestIDLength - наибольшая длина идентификатора, принятого от клиента.
const MaxRequestIDLength = 128

// NewRequestIDContext добавляет в контекст идентификатор запроса.
// Пустой или недопустимый идентификатор (см. ValidRequestID) заменяется новым.
func NewRequestIDContext(ctx context.Context, requestID string) context.Context {
	if !ValidRequestID(requestID) {
		requestID = GenerateRequestID()
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

// ValidRequestID сообщает, можно ли записать id в лог как есть: непустой,
// не длиннее MaxRequestIDLength, только видимые ASCII символы.
func ValidRequestID(id string) bool {
	if id == "" || len(id) > MaxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '!' || id[i] > '~' {
			return false
		}
	}
	return true
}

// GetRequestID извлекает идентификатор запроса.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok
}

// GenerateRequestID возвращает новый UUID.
func GenerateRequestID() string {
	return uuid.New().String()
}

// WithRequestID возвращает копию logger с полем request_id, если оно есть в контексте.
func (l *Logger) WithRequestID(ctx context.Context) *Logger {
	if id, ok := GetRequestID(ctx); ok {
		return l.With(zap.String(RequestID, id))
	}
	return l
}
