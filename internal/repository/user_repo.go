package repository

import (
	"context"
	"errors"
	"fmt"

	"user-manager/internal/model"

	"github.com/jackc/pgx/v5"
)

// UserRepo реализует репозиторий пользователей на базе PostgreSQL.
type UserRepo struct {
	db *Postgres
}

// NewUserRepo создаёт новый экземпляр UserRepo c переданным подключением к PostgreSQL.
func NewUserRepo(db *Postgres) *UserRepo {
	return &UserRepo{db: db}
}

// List возвращает всех пользователей, упорядоченных по id.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT id, name, email
FROM users
ORDER BY id
`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return users, nil
}

// Create вставляет пользователя и возвращает его с присвоенным id.
func (r *UserRepo) Create(ctx context.Context, in model.UserInput) (model.User, error) {
	row := r.db.Pool.QueryRow(ctx, `
INSERT INTO users (name, email)
VALUES ($1, $2)
RETURNING id, name, email
`, in.Name, in.Email)

	var u model.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email); err != nil {
		return model.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// Update перезаписывает имя и email. Если пользователь не найден, возвращает ErrUserNotFound.
func (r *UserRepo) Update(ctx context.Context, id int64, in model.UserInput) (model.User, error) {
	row := r.db.Pool.QueryRow(ctx, `
UPDATE users
SET name = $2,
    email = $3
WHERE id = $1
RETURNING id, name, email
`, id, in.Name, in.Email)

	var u model.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

// Delete удаляет пользователя. Если строка не найдена, возвращает ErrUserNotFound.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
