package api

import (
	"errors"
	"net/http"

	"github.com/apiforge/apiforge/internal/server/services"
	"github.com/apiforge/apiforge/pkg/models"
)

type APIUserHandler struct {
	accountService *services.AccountService
}

func NewAPIUserHandler(accountService *services.AccountService) *APIUserHandler {
	return &APIUserHandler{accountService: accountService}
}

// Signup handles POST /auth/signup. An API account may only be created for
// an email that already has a platform account.
func (h *APIUserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Email and password are required.")
		return
	}

	if err := h.accountService.APIUserSignup(r.Context(), req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, services.ErrNotPlatformUser):
			respondError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, services.ErrAPIUserExists):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	respondJSON(w, http.StatusOK, models.MessageResponse{
		Message: "Signup successful! Check your email for your API token.",
	})
}

// Login re-sends the stored access token; it never rotates.
func (h *APIUserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Email and password are required.")
		return
	}

	if err := h.accountService.APIUserLogin(r.Context(), req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, services.ErrNotPlatformUser):
			respondError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, services.ErrAPIUserNotFound):
			respondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrInvalidPassword):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	respondJSON(w, http.StatusOK, models.MessageResponse{
		Message: "Login successful! Check your email for your API token.",
	})
}
