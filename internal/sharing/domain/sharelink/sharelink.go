// Package sharelink собирает и разбирает ссылки на заметку в формате
// ?view=viewer&id=<NOTE_ID>&token=<TOKEN>.
package sharelink

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Mode - режим страницы, на которую ведет ссылка.
type Mode string

// Режимы ссылки.
const (
	ModeEditor Mode = "editor"
	ModeViewer Mode = "viewer"
)

// Ключи query-параметров.
const (
	KeyView  = "view"
	KeyID    = "id"
	KeyToken = "token"
)

// Ошибки разбора ссылки.
var (
	ErrUnknownMode = errors.New("unknown link mode")
	ErrParseQuery  = errors.New("failed to parse link query")
	ErrMissingID   = errors.New("viewer link without note id")
)

// Link - разобранная ссылка.
type Link struct {
	Mode   Mode
	NoteID string
	Token  string
}

// Viewer возвращает ссылку просмотра заметки noteID по токену token.
func Viewer(noteID, token string) Link {
	return Link{Mode: ModeViewer, NoteID: noteID, Token: token}
}

// Query кодирует ссылку в query-строку без ведущего "?".
// Пустые id и token опускаются.
func (l Link) Query() string {
	mode := l.Mode
	if mode == "" {
		mode = ModeEditor
	}

	values := url.Values{}
	values.Set(KeyView, string(mode))
	if l.NoteID != "" {
		values.Set(KeyID, l.NoteID)
	}
	if l.Token != "" {
		values.Set(KeyToken, l.Token)
	}
	return values.Encode()
}

// Build приклеивает ссылку к базовому адресу. Пустой base дает относительную ссылку "?...".
func Build(base string, l Link) string {
	base = strings.TrimRight(base, "?")
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + l.Query()
}

// Parse разбирает query-строку; ведущий "?" допускается.
// Без параметра view ссылка открывает редактор.
func Parse(rawQuery string) (Link, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	if err != nil {
		return Link{}, fmt.Errorf("%w: %w", ErrParseQuery, err)
	}

	link := Link{
		Mode:   Mode(values.Get(KeyView)),
		NoteID: values.Get(KeyID),
		Token:  values.Get(KeyToken),
	}

	switch link.Mode {
	case "":
		link.Mode = ModeEditor
	case ModeEditor:
	case ModeViewer:
		if link.NoteID == "" {
			return Link{}, ErrMissingID
		}
	default:
		return Link{}, fmt.Errorf("%w: %q", ErrUnknownMode, link.Mode)
	}

	return link, nil
}
