package http

import (
	"strconv"
	"strings"

	"user-manager/internal/service"
)

// ValidateUserRequest POST /users и PUT /users/{id} — тело запроса
func ValidateUserRequest(req userRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return service.ErrBadRequest("name is required")
	}
	if strings.TrimSpace(req.Email) == "" {
		return service.ErrBadRequest("email is required")
	}
	return nil
}

// ParseUserID разбирает {id} из пути
func ParseUserID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, service.ErrBadRequest("id must be a positive integer")
	}
	return id, nil
}
