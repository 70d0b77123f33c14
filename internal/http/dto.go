// Package http реализует HTTP-обработчики и DTO поверх доменных сервисов.
package http

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type userRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
