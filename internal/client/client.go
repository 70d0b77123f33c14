// Package client реализует HTTP/JSON-клиент ресурса пользователей.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"user-manager/internal/model"
)

// DefaultBaseURL — адрес ресурса пользователей по умолчанию.
const DefaultBaseURL = "http://localhost:8080/users"

// UsersClient ходит в ресурс /users: список, создание, обновление и удаление.
type UsersClient struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// Option настраивает UsersClient.
type Option func(*UsersClient)

// WithTimeout задаёт таймаут HTTP-клиента. По умолчанию таймаута нет.
// Переданный через WithHTTPClient клиент копируется и не меняется.
func WithTimeout(d time.Duration) Option {
	return func(c *UsersClient) {
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
	}
}

// WithHTTPClient полностью заменяет *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *UsersClient) {
		c.http = hc
	}
}

// WithLogger задаёт логгер для запросов.
func WithLogger(log *slog.Logger) Option {
	return func(c *UsersClient) {
		c.log = log
	}
}

// New создаёт клиента для ресурса по адресу baseURL (например, http://host/users).
func New(baseURL string, opts ...Option) *UsersClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &UsersClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL возвращает адрес ресурса.
func (c *UsersClient) BaseURL() string {
	return c.baseURL
}

// List возвращает всю коллекцию пользователей.
func (c *UsersClient) List(ctx context.Context) ([]model.User, error) {
	users := make([]model.User, 0)
	if err := c.do(ctx, "list users", http.MethodGet, c.baseURL, nil, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = make([]model.User, 0)
	}
	return users, nil
}

// Create создаёт пользователя и возвращает его с серверным идентификатором.
func (c *UsersClient) Create(ctx context.Context, in model.UserInput) (model.User, error) {
	var u model.User
	if err := c.do(ctx, "add user", http.MethodPost, c.baseURL, in, &u); err != nil {
		return model.User{}, err
	}
	return u, nil
}

// Update перезаписывает имя и email пользователя id.
func (c *UsersClient) Update(ctx context.Context, id int64, in model.UserInput) (model.User, error) {
	var u model.User
	if err := c.do(ctx, "update user", http.MethodPut, c.userURL(id), in, &u); err != nil {
		return model.User{}, err
	}
	return u, nil
}

// Delete удаляет пользователя id.
func (c *UsersClient) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, "delete user", http.MethodDelete, c.userURL(id), nil, nil)
}

func (c *UsersClient) userURL(id int64) string {
	return c.baseURL + "/" + strconv.FormatInt(id, 10)
}

// do выполняет запрос с JSON-телом body и декодирует успешный ответ в result.
func (c *UsersClient) do(ctx context.Context, op, method, url string, body, result any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &RequestError{Op: op, Err: fmt.Errorf("marshal body: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return &RequestError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("request failed",
			slog.String("op", op),
			slog.String("method", method),
			slog.String("url", url),
			slog.Any("err", err),
		)
		return &RequestError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	c.log.Debug("request done",
		slog.String("op", op),
		slog.String("method", method),
		slog.String("url", url),
		slog.Int("status", resp.StatusCode),
		slog.Duration("took", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{Op: op, Status: resp.StatusCode, Message: errorMessage(respBody)}
	}

	if result != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return &RequestError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return nil
}

// errorMessage достаёт текст ошибки из тела вида {"error":{"message":...}},
// иначе возвращает тело как есть.
func errorMessage(body []byte) string {
	var env struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &env); err == nil && env.Error.Message != "" {
		return env.Error.Message
	}
	return strings.TrimSpace(string(body))
}
