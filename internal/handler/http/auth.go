package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nitesh01487/natours/internal/logger"
	"github.com/nitesh01487/natours/models"
)

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := readJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	res, err := h.services.AuthService.Signup(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Debug().Int64("id", res.User.ID).Msg("user signed up")
	h.sendToken(w, r, http.StatusCreated, res)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := readJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	res, err := h.services.AuthService.Login(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Debug().Int64("id", res.User.ID).Msg("user successfully logged in")
	h.sendToken(w, r, http.StatusOK, res)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.clearTokenCookie(w, r)
	h.write(w, r, http.StatusOK, models.Envelope{Status: models.StatusSuccess})
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := readJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.services.AuthService.ForgotPassword(r.Context(), req); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.write(w, r, http.StatusOK, struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}{models.StatusSuccess, "Token sent to email!"})
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := readJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	res, err := h.services.AuthService.ResetPassword(r.Context(), chi.URLParam(r, "token"), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.sendToken(w, r, http.StatusOK, res)
}

func (h *Handler) updateMyPassword(w http.ResponseWriter, r *http.Request) {
	user, err := principal(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req models.UpdatePasswordRequest
	if err = readJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	res, err := h.services.AuthService.UpdatePassword(r.Context(), user, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.sendToken(w, r, http.StatusOK, res)
}
