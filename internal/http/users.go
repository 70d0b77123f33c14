package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"user-manager/internal/model"
	"user-manager/internal/service"
)

func (h *Handler) handleUserList(w http.ResponseWriter, r *http.Request) {
	const handlerName = "user_list"

	users, err := h.Users.List(r.Context())
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}
	if users == nil {
		users = make([]model.User, 0)
	}

	h.writeJSON(w, http.StatusOK, users)
}

func (h *Handler) handleUserCreate(w http.ResponseWriter, r *http.Request) {
	const handlerName = "user_create"

	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, handlerName, service.ErrBadRequest("invalid JSON"))
		return
	}

	if err := ValidateUserRequest(req); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	user, err := h.Users.Create(r.Context(), model.UserInput{Name: req.Name, Email: req.Email})
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) handleUserUpdate(w http.ResponseWriter, r *http.Request) {
	const handlerName = "user_update"

	id, err := ParseUserID(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, handlerName, service.ErrBadRequest("invalid JSON"))
		return
	}

	if err := ValidateUserRequest(req); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	user, err := h.Users.Update(r.Context(), id, model.UserInput{Name: req.Name, Email: req.Email})
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	h.writeJSON(w, http.StatusOK, user)
}

func (h *Handler) handleUserDelete(w http.ResponseWriter, r *http.Request) {
	const handlerName = "user_delete"

	id, err := ParseUserID(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	if err := h.Users.Delete(r.Context(), id); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
