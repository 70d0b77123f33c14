package repository

import "errors"

// ErrUserNotFound возвращается, если пользователь не найден в хранилище.
var ErrUserNotFound = errors.New("user not found")
