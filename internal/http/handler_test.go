package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpapi "user-manager/internal/http"
	"user-manager/internal/http/mocks"
	"user-manager/internal/model"
	"user-manager/internal/service"
)

func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestHandler_Health(t *testing.T) {
	h := httpapi.NewHandler(new(mocks.UserService), newLogger())

	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHandler_List(t *testing.T) {
	tests := []struct {
		name           string
		mockBehavior   func(us *mocks.UserService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success",
			mockBehavior: func(us *mocks.UserService) {
				us.On("List", mock.Anything).
					Return([]model.User{{ID: 1, Name: "Alice", Email: "alice@x.com"}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[{"id":1,"name":"Alice","email":"alice@x.com"}]`,
		},
		{
			name: "Empty list is an array",
			mockBehavior: func(us *mocks.UserService) {
				us.On("List", mock.Anything).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name: "Internal Error",
			mockBehavior: func(us *mocks.UserService) {
				us.On("List", mock.Anything).Return(nil, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":{"code":"INTERNAL","message":"internal error"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			us := new(mocks.UserService)
			tt.mockBehavior(us)

			h := httpapi.NewHandler(us, newLogger())
			w := httptest.NewRecorder()
			h.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			us.AssertExpectations(t)
		})
	}
}

func TestHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockBehavior   func(us *mocks.UserService)
		expectedStatus int
	}{
		{
			name: "Success",
			body: `{"name":"Alice","email":"alice@x.com"}`,
			mockBehavior: func(us *mocks.UserService) {
				us.On("Create", mock.Anything, model.UserInput{Name: "Alice", Email: "alice@x.com"}).
					Return(model.User{ID: 1, Name: "Alice", Email: "alice@x.com"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Bad Request: Invalid JSON",
			body:           `{"name": "broken`,
			mockBehavior:   func(us *mocks.UserService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Bad Request: Empty email",
			body:           `{"name":"Alice","email":"  "}`,
			mockBehavior:   func(us *mocks.UserService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			us := new(mocks.UserService)
			tt.mockBehavior(us)

			h := httpapi.NewHandler(us, newLogger())
			req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			h.Router().ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			us.AssertExpectations(t)
		})
	}
}

func TestHandler_Update(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		body           string
		mockBehavior   func(us *mocks.UserService)
		expectedStatus int
	}{
		{
			name: "Success",
			path: "/users/3",
			body: `{"name":"Bob","email":"bob@x.com"}`,
			mockBehavior: func(us *mocks.UserService) {
				us.On("Update", mock.Anything, int64(3), model.UserInput{Name: "Bob", Email: "bob@x.com"}).
					Return(model.User{ID: 3, Name: "Bob", Email: "bob@x.com"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Bad Request: id",
			path:           "/users/abc",
			body:           `{"name":"Bob","email":"bob@x.com"}`,
			mockBehavior:   func(us *mocks.UserService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Not Found",
			path: "/users/9",
			body: `{"name":"Bob","email":"bob@x.com"}`,
			mockBehavior: func(us *mocks.UserService) {
				us.On("Update", mock.Anything, int64(9), mock.Anything).
					Return(model.User{}, service.ErrNotFound("user not found"))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			us := new(mocks.UserService)
			tt.mockBehavior(us)

			h := httpapi.NewHandler(us, newLogger())
			req := httptest.NewRequest(http.MethodPut, tt.path, bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			h.Router().ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			us.AssertExpectations(t)
		})
	}
}

func TestHandler_Delete(t *testing.T) {
	us := new(mocks.UserService)
	us.On("Delete", mock.Anything, int64(4)).Return(nil).Once()
	us.On("Delete", mock.Anything, int64(5)).Return(service.ErrNotFound("user not found")).Once()

	h := httpapi.NewHandler(us, newLogger())

	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/users/4", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	h.Router().ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/users/5", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	assert.Equal(t, "user not found", resp.Error.Message)
	us.AssertExpectations(t)
}

func TestHandler_CORSPreflight(t *testing.T) {
	h := httpapi.NewHandler(new(mocks.UserService), newLogger(), "http://localhost:5173")

	req := httptest.NewRequest(http.MethodOptions, "/users/1", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}
