package repository

import (
	"context"
	"sort"
	"sync"

	"user-manager/internal/model"
)

// MemoryUserRepo хранит пользователей в памяти процесса.
// Безопасен для конкурентного использования, id выдаются последовательно с 1.
type MemoryUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]model.User
}

// NewMemoryUserRepo создаёт пустое хранилище в памяти.
func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{
		nextID: 1,
		users:  make(map[int64]model.User),
	}
}

func (r *MemoryUserRepo) List(ctx context.Context) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedUsers(r.users), nil
}

func (r *MemoryUserRepo) Create(ctx context.Context, in model.UserInput) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := model.User{ID: r.nextID, Name: in.Name, Email: in.Email}
	r.users[u.ID] = u
	r.nextID++
	return u, nil
}

func (r *MemoryUserRepo) Update(ctx context.Context, id int64, in model.UserInput) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return model.User{}, ErrUserNotFound
	}
	u := model.User{ID: id, Name: in.Name, Email: in.Email}
	r.users[id] = u
	return u, nil
}

func (r *MemoryUserRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// sortedUsers возвращает пользователей из map, упорядоченных по id.
func sortedUsers(m map[int64]model.User) []model.User {
	users := make([]model.User, 0, len(m))
	for _, u := range m {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}
