package api

import (
	"net/http"

	"github.com/apiforge/apiforge/internal/server/services"
	"github.com/apiforge/apiforge/pkg/fields"
	"github.com/apiforge/apiforge/pkg/models"
)

type GenerateHandler struct {
	schemaService *services.SchemaService
}

func NewGenerateHandler(schemaService *services.SchemaService) *GenerateHandler {
	return &GenerateHandler{schemaService: schemaService}
}

// GenerateAPI handles POST /auth/generate-signup-url. The session is
// already verified by SessionAuthMiddleware.
func (h *GenerateHandler) GenerateAPI(w http.ResponseWriter, r *http.Request) {
	claims := GetUserClaims(r)
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized: No user found.")
		return
	}

	var req models.GenerateAPIRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Field names and types are required.")
		return
	}

	if len(req.FieldNames) == 0 || len(req.FieldTypes) == 0 || len(req.FieldNames) != len(req.FieldTypes) {
		respondError(w, http.StatusBadRequest, "Field names and types are required.")
		return
	}

	for _, tag := range req.FieldTypes {
		if !fields.IsAllowedType(tag) {
			respondError(w, http.StatusBadRequest, "Invalid field type detected.")
			return
		}
	}

	resp, err := h.schemaService.Generate(r.Context(), claims.Email, req.FieldNames, req.FieldTypes)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, resp)
}
