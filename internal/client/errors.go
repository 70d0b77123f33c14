package client

import "fmt"

// RequestError возвращается, когда запрос к ресурсу пользователей не удался:
// транспортная ошибка или ответ с не-2xx статусом.
type RequestError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

// Error реализует интерфейс error для RequestError.
func (e *RequestError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.Status, e.Message)
	default:
		return fmt.Sprintf("%s: HTTP %d", e.Op, e.Status)
	}
}

// Unwrap возвращает вложенную ошибку для поддержки errors.Is/As.
func (e *RequestError) Unwrap() error {
	return e.Err
}
