package repositories

import "errors"

// ErrTokenConflict - значение токена уже занято. Вызывающий может повторить с новым значением.
var ErrTokenConflict = errors.New("token value already exists")
