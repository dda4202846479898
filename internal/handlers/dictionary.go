package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"vocabox-backend/internal/models"
)

type dictionaryService interface {
	Lookup(ctx context.Context, query, sourceLang, targetLang string) (*models.DictionaryEntry, error)
}

type DictionaryHandler struct {
	service    dictionaryService
	targetLang string
}

func NewDictionaryHandler(service dictionaryService, defaultTargetLang string) *DictionaryHandler {
	return &DictionaryHandler{service: service, targetLang: defaultTargetLang}
}

func (h *DictionaryHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	var req models.DictionaryLookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "query is required", r))
		return
	}
	if req.SourceLang == "" {
		req.SourceLang = "en"
	}
	if req.TargetLang == "" {
		req.TargetLang = h.targetLang
	}

	entry, err := h.service.Lookup(r.Context(), req.Query, req.SourceLang, req.TargetLang)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}
