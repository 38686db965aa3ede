// Package entities defines the domain entities of the note sharing service.
package entities

import "time"

// Note - заметка автора. Запись с тем же ID полностью заменяется при сохранении.
type Note struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content" yaml:"content"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// NewNote создает заметку с отметкой времени updatedAt.
func NewNote(id, title, content string, updatedAt time.Time) *Note {
	return &Note{
		ID:        id,
		Title:     title,
		Content:   content,
		UpdatedAt: updatedAt,
	}
}

// Snapshot возвращает копию полей, видимых читателю.
func (n *Note) Snapshot() Snapshot {
	return Snapshot{
		Title:     n.Title,
		Content:   n.Content,
		UpdatedAt: n.UpdatedAt,
	}
}

// Snapshot - неизменяемая копия заметки, которую получает читатель.
// Передается по значению, поэтому изменить через нее хранимые данные нельзя.
type Snapshot struct {
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content" yaml:"content"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}
