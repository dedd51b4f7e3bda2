package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/apiforge/apiforge/internal/server/services"
	"github.com/apiforge/apiforge/pkg/models"
)

type VerifyHandler struct {
	accountService *services.AccountService
}

func NewVerifyHandler(accountService *services.AccountService) *VerifyHandler {
	return &VerifyHandler{accountService: accountService}
}

// VerifyToken handles GET /verify/{uniqueId}: it checks a presented token
// against the access token stored on the platform account with that id.
func (h *VerifyHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	uniqueID := chi.URLParam(r, "uniqueId")

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		respondError(w, http.StatusUnauthorized, "Missing Authorization token.")
		return
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

	account, err := h.accountService.GetPlatformUserByID(r.Context(), uniqueID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Internal Server Error. Please try again later.")
		return
	}
	if account == nil {
		respondError(w, http.StatusNotFound, "Invalid API link or user not found.")
		return
	}

	if token != account.AccessToken {
		respondError(w, http.StatusForbidden, "Unauthorized: Invalid API token.")
		return
	}

	respondJSON(w, http.StatusOK, models.MessageResponse{Message: "Token is valid."})
}
