package entities

import (
	"slices"
	"time"
)

// MaxTokensPerNote - предельное число токенов доступа на одну заметку.
const MaxTokensPerNote = 3

// Token - строка-разрешение на чтение одной заметки. После выдачи не меняется.
type Token struct {
	Token     string    `json:"token" yaml:"token"`
	NoteID    string    `json:"note_id" yaml:"note_id"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// NewToken создает токен для заметки noteID.
func NewToken(value, noteID string, createdAt time.Time) *Token {
	return &Token{
		Token:     value,
		NoteID:    noteID,
		CreatedAt: createdAt,
	}
}

// Grants проверяет правило доступа для набора токенов заметки:
// пустой набор открывает заметку всем, иначе нужен непустой токен из набора.
func Grants(tokens []*Token, presented string) bool {
	if len(tokens) == 0 {
		return true
	}
	if presented == "" {
		return false
	}
	return slices.ContainsFunc(tokens, func(t *Token) bool {
		return t.Token == presented
	})
}
