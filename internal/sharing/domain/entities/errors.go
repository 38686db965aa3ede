package entities

import "errors"

// Ошибки домена.
var (
	ErrEmptyNoteID  = errors.New("note id cannot be empty")
	ErrNoteNotFound = errors.New("note not found")
	ErrCapExceeded  = errors.New("token limit reached for note")
	ErrUnauthorized = errors.New("token does not grant access to note")
	ErrStorage      = errors.New("storage unavailable")
	ErrRejected     = errors.New("cannot view note")
)

// RejectReason объясняет отказ в просмотре. Наружу причина не раскрывается.
type RejectReason int

// Причины отказа.
const (
	ReasonNoteNotFound RejectReason = iota + 1
	ReasonUnauthorized
)

func (r RejectReason) String() string {
	switch r {
	case ReasonNoteNotFound:
		return "note_not_found"
	case ReasonUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// RejectedError - результат ViewNote при отказе. Текст ошибки одинаков для
// любой причины, чтобы не подтверждать существование заметки.
type RejectedError struct {
	Reason RejectReason
}

// NewRejectedError создает ошибку отказа с причиной reason.
func NewRejectedError(reason RejectReason) *RejectedError {
	return &RejectedError{Reason: reason}
}

func (e *RejectedError) Error() string {
	return ErrRejected.Error()
}

// Is позволяет сравнивать через errors.Is с ErrRejected, а также с
// ErrNoteNotFound или ErrUnauthorized по причине отказа.
func (e *RejectedError) Is(target error) bool {
	switch target {
	case ErrRejected:
		return true
	case ErrNoteNotFound:
		return e.Reason == ReasonNoteNotFound
	case ErrUnauthorized:
		return e.Reason == ReasonUnauthorized
	default:
		return false
	}
}
