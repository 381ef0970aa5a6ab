package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user-directory/engine/internal/api/validators"
	"github.com/user-directory/engine/internal/services"
)

type UsersHandler struct {
	svc services.UserService
}

func NewUsersHandler(svc services.UserService) *UsersHandler {
	return &UsersHandler{svc: svc}
}

// List serves GET /api/users. The body is the bare listing envelope.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := validators.ParseListUsers(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}
	list, err := h.svc.ListUsers(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Get serves GET /api/users/{id}.
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := validators.ParseUserID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.svc.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
