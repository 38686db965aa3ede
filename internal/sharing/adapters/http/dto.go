package http

import (
	"time"

	"sharednotes/internal/sharing/domain/entities"
)

// NoteRequest - тело запросов сохранения заметки.
type NoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NoteResponse - заметка в ответе. Время - секунды unix с дробной частью.
type NoteResponse struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	UpdatedAt float64 `json:"updated_at"`
}

// TokenResponse - выданный токен.
type TokenResponse struct {
	Token     string  `json:"token"`
	CreatedAt float64 `json:"created_at"`
	ShareURL  string  `json:"share_url,omitempty"`
}

// SnapshotResponse - заметка, видимая читателю.
type SnapshotResponse struct {
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	UpdatedAt float64 `json:"updated_at"`
}

// ErrorResponse - тело ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

func noteResponse(n entities.Note) NoteResponse {
	return NoteResponse{ID: n.ID, Title: n.Title, Content: n.Content, UpdatedAt: unixSeconds(n.UpdatedAt)}
}

func snapshotResponse(s entities.Snapshot) SnapshotResponse {
	return SnapshotResponse{Title: s.Title, Content: s.Content, UpdatedAt: unixSeconds(s.UpdatedAt)}
}
