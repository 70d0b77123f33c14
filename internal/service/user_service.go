// Package service содержит бизнес-логику ресурса пользователей.
package service

import (
	"context"
	"errors"
	"strings"

	"user-manager/internal/model"
	"user-manager/internal/repository"
)

// UserRepository описывает контракт репозитория пользователей для бизнес-слоя.
type UserRepository interface {
	List(ctx context.Context) ([]model.User, error)
	Create(ctx context.Context, in model.UserInput) (model.User, error)
	Update(ctx context.Context, id int64, in model.UserInput) (model.User, error)
	Delete(ctx context.Context, id int64) error
}

// UserService содержит бизнес-логику, связанную с пользователями.
type UserService struct {
	repo UserRepository
}

// NewUserService создаёт новый сервис для операций над пользователями.
func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// List возвращает всех пользователей.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, ErrInternal("failed to list users", err)
	}
	return users, nil
}

// Create проверяет входные данные и создаёт пользователя.
func (s *UserService) Create(ctx context.Context, in model.UserInput) (model.User, error) {
	in, err := normalize(in)
	if err != nil {
		return model.User{}, err
	}
	user, err := s.repo.Create(ctx, in)
	if err != nil {
		return model.User{}, ErrInternal("failed to create user", err)
	}
	return user, nil
}

// Update проверяет входные данные и перезаписывает пользователя id.
func (s *UserService) Update(ctx context.Context, id int64, in model.UserInput) (model.User, error) {
	if id <= 0 {
		return model.User{}, ErrBadRequest("id must be a positive integer")
	}
	in, err := normalize(in)
	if err != nil {
		return model.User{}, err
	}
	user, err := s.repo.Update(ctx, id, in)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.User{}, ErrNotFound("user not found")
		}
		return model.User{}, ErrInternal("failed to update user", err)
	}
	return user, nil
}

// Delete удаляет пользователя id.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrBadRequest("id must be a positive integer")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrNotFound("user not found")
		}
		return ErrInternal("failed to delete user", err)
	}
	return nil
}

// normalize обрезает пробелы и требует непустые name и email.
func normalize(in model.UserInput) (model.UserInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.Name == "" || in.Email == "" {
		return in, ErrBadRequest("name and email are required")
	}
	return in, nil
}
