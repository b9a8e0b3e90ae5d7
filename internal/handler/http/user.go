package http

import (
	"net/http"

	"github.com/nitesh01487/natours/internal/store"
	"github.com/nitesh01487/natours/models"
)

func (h *Handler) getMe(w http.ResponseWriter, r *http.Request) {
	user, err := principal(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	found, err := h.services.UserService.Get(r.Context(), user.ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeData(w, r, http.StatusOK, map[string]any{"user": found})
}

func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request) {
	user, err := principal(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req models.UpdateMeRequest
	if err = readJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	updated, err := h.services.UserService.UpdateMe(r.Context(), user.ID, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeData(w, r, http.StatusOK, map[string]any{"user": updated})
}

func (h *Handler) deleteMe(w http.ResponseWriter, r *http.Request) {
	user, err := principal(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = h.services.UserService.DeleteMe(r.Context(), user.ID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getUsers(w http.ResponseWriter, r *http.Request) {
	q, err := h.listQuery(r, store.UserSchema)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	users, err := h.services.UserService.List(r.Context(), q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeList(w, r, q, "users", users, len(users))
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeData(w, r, http.StatusOK, map[string]any{"user": user})
}

// createUser exists so that POST /users points callers to signup.
func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, ErrRouteNotDefined)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var update models.UserUpdate
	if err = readJSON(r, &update); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.Update(r.Context(), id, update)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeData(w, r, http.StatusOK, map[string]any{"user": user})
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = h.services.UserService.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
