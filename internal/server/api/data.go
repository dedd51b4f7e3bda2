package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/apiforge/apiforge/internal/server/services"
	"github.com/apiforge/apiforge/pkg/models"
)

type DataHandler struct {
	schemaService *services.SchemaService
	recordService *services.RecordService
}

func NewDataHandler(schemaService *services.SchemaService, recordService *services.RecordService) *DataHandler {
	return &DataHandler{
		schemaService: schemaService,
		recordService: recordService,
	}
}

// authorizeSchema runs the shared precondition chain of every CRUD call:
// unknown schema id is 404 before any auth check, a missing header is 401,
// and anything but an exact match against the stored token (after an
// optional "Bearer " strip) is 403. Signatures are never re-verified here.
func (h *DataHandler) authorizeSchema(w http.ResponseWriter, r *http.Request) *models.SchemaConfig {
	uniqueID := chi.URLParam(r, "uniqueId")

	cfg, err := h.schemaService.GetConfig(r.Context(), uniqueID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return nil
	}
	if cfg == nil {
		respondError(w, http.StatusNotFound, "Invalid API link.")
		return nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		respondError(w, http.StatusUnauthorized, "Missing Authorization token.")
		return nil
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token != cfg.AccessToken {
		respondError(w, http.StatusForbidden, "Unauthorized: Invalid API token.")
		return nil
	}
	return cfg
}

// HandleGet returns the full records array, unfiltered and unpaginated.
func (h *DataHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	cfg := h.authorizeSchema(w, r)
	if cfg == nil {
		return
	}
	respondJSON(w, http.StatusOK, models.RecordListResponse{
		Message: "Fetching API data...",
		Data:    cfg.Records,
	})
}

func (h *DataHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	cfg := h.authorizeSchema(w, r)
	if cfg == nil {
		return
	}

	var body map[string]any
	if err := decodeJSON(r, &body); err != nil || len(body) == 0 {
		respondError(w, http.StatusBadRequest, "No data provided. Please send valid data.")
		return
	}

	record, missing, invalid, err := h.recordService.Create(r.Context(), cfg.ID, body)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	// Missing fields short-circuit the response even when invalid ones
	// were collected in the same pass.
	if len(missing) > 0 {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Missing fields: %s", strings.Join(missing, ", ")))
		return
	}
	if len(invalid) > 0 {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid data format for fields: %s", strings.Join(invalid, ", ")))
		return
	}

	respondJSON(w, http.StatusOK, models.RecordResponse{
		Message: "New data added successfully!",
		Data:    record,
	})
}

func (h *DataHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	cfg := h.authorizeSchema(w, r)
	if cfg == nil {
		return
	}
	recordID := chi.URLParam(r, "recordId")

	// A body that fails to decode merges nothing; the merge itself never
	// re-validates field types.
	patch := map[string]any{}
	_ = decodeJSON(r, &patch)

	record, err := h.recordService.Update(r.Context(), cfg.ID, recordID, patch)
	if err != nil {
		if errors.Is(err, services.ErrRecordNotFound) || errors.Is(err, services.ErrSchemaNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, models.RecordResponse{
		Message: "Record updated successfully!",
		Data:    record,
	})
}

func (h *DataHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	cfg := h.authorizeSchema(w, r)
	if cfg == nil {
		return
	}
	recordID := chi.URLParam(r, "recordId")

	if err := h.recordService.Delete(r.Context(), cfg.ID, recordID); err != nil {
		if errors.Is(err, services.ErrRecordNotFound) || errors.Is(err, services.ErrSchemaNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, models.MessageResponse{Message: "Record deleted successfully!"})
}
