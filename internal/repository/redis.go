package repository

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	redis "github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"

	"user-manager/internal/model"
)

const (
	redisUsersKey = "users"
	redisSeqKey   = "users:seq"

	// redisTxAttempts — сколько раз повторять транзакцию, прерванную WATCH.
	redisTxAttempts = 5
)

// RedisUserRepo хранит пользователей в хэше "users" (поле — id, значение — JSON),
// идентификаторы выдаются счётчиком "users:seq".
type RedisUserRepo struct {
	client *redis.Client
}

// NewRedisUserRepo подключается к Redis и проверяет соединение через PING.
func NewRedisUserRepo(ctx context.Context, addr, password string, tlsCfg *tls.Config) (*RedisUserRepo, error) {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
		MaintNotificationsConfig: &maintnotifications.Config{
			Mode: maintnotifications.ModeDisabled,
		},
	}
	if tlsCfg != nil {
		opts.TLSConfig = tlsCfg
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisUserRepo{client: client}, nil
}

// Close закрывает соединение с Redis.
func (r *RedisUserRepo) Close() error {
	return r.client.Close()
}

func (r *RedisUserRepo) List(ctx context.Context) ([]model.User, error) {
	raw, err := r.client.HGetAll(ctx, redisUsersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall: %w", err)
	}

	byID := make(map[int64]model.User, len(raw))
	for field, data := range raw {
		var u model.User
		if err := json.Unmarshal([]byte(data), &u); err != nil {
			return nil, fmt.Errorf("decode user %s: %w", field, err)
		}
		byID[u.ID] = u
	}
	return sortedUsers(byID), nil
}

func (r *RedisUserRepo) Create(ctx context.Context, in model.UserInput) (model.User, error) {
	id, err := r.client.Incr(ctx, redisSeqKey).Result()
	if err != nil {
		return model.User{}, fmt.Errorf("redis incr: %w", err)
	}

	u := model.User{ID: id, Name: in.Name, Email: in.Email}
	data, err := json.Marshal(u)
	if err != nil {
		return model.User{}, fmt.Errorf("encode user: %w", err)
	}
	if err := r.client.HSet(ctx, redisUsersKey, userField(id), data).Err(); err != nil {
		return model.User{}, fmt.Errorf("redis hset: %w", err)
	}
	return u, nil
}

// Update перезаписывает пользователя под WATCH, чтобы не воскресить удалённую запись.
func (r *RedisUserRepo) Update(ctx context.Context, id int64, in model.UserInput) (model.User, error) {
	u := model.User{ID: id, Name: in.Name, Email: in.Email}
	data, err := json.Marshal(u)
	if err != nil {
		return model.User{}, fmt.Errorf("encode user: %w", err)
	}

	field := userField(id)
	err = retryTx(ctx, redisTxAttempts, func() error {
		return r.client.Watch(ctx, func(tx *redis.Tx) error {
			exists, err := tx.HExists(ctx, redisUsersKey, field).Result()
			if err != nil {
				return err
			}
			if !exists {
				return ErrUserNotFound
			}
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.HSet(ctx, redisUsersKey, field, data)
				return nil
			})
			return err
		}, redisUsersKey)
	})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("redis update: %w", err)
	}
	return u, nil
}

func (r *RedisUserRepo) Delete(ctx context.Context, id int64) error {
	n, err := r.client.HDel(ctx, redisUsersKey, userField(id)).Result()
	if err != nil {
		return fmt.Errorf("redis hdel: %w", err)
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// retryTx повторяет fn, пока WATCH прерывает транзакцию (redis.TxFailedErr),
// но не более attempts раз.
func retryTx(ctx context.Context, attempts int, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		err = fn()
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
	}
	return err
}

func userField(id int64) string {
	return strconv.FormatInt(id, 10)
}
