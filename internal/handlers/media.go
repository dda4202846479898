package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"vocabox-backend/internal/models"
)

// 8 MB decoded; mobile uploads are resized client-side.
const maxMediaBytes = 8 << 20

type visionService interface {
	ExtractText(ctx context.Context, imageData []byte) (*models.ExtractedText, error)
}

type speechService interface {
	CheckPronunciation(ctx context.Context, audioData []byte, language, expectedTerm string) (*models.PronunciationCheck, error)
}

type MediaHandler struct {
	vision visionService
	speech speechService
}

func NewMediaHandler(vision visionService, speech speechService) *MediaHandler {
	return &MediaHandler{vision: vision, speech: speech}
}

// ExtractText pulls text out of a photo so the learner can look words up
// without typing them.
func (h *MediaHandler) ExtractText(w http.ResponseWriter, r *http.Request) {
	var req models.ExtractTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	imageData, ok := decodeMedia(w, r, req.ImageBase64, "image_base64")
	if !ok {
		return
	}

	result, err := h.vision.ExtractText(r.Context(), imageData)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// CheckPronunciation transcribes a short recording and reports whether the
// expected term was heard.
func (h *MediaHandler) CheckPronunciation(w http.ResponseWriter, r *http.Request) {
	var req models.PronunciationCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if req.ExpectedTerm == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "expected_term is required", r))
		return
	}

	audioData, ok := decodeMedia(w, r, req.AudioBase64, "audio_base64")
	if !ok {
		return
	}

	result, err := h.speech.CheckPronunciation(r.Context(), audioData, req.Language, req.ExpectedTerm)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func decodeMedia(w http.ResponseWriter, r *http.Request, encoded, field string) ([]byte, bool) {
	if encoded == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", field+" is required", r))
		return nil, false
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", field+" is not valid base64", r))
		return nil, false
	}
	if len(data) > maxMediaBytes {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", field+" exceeds the size limit", r))
		return nil, false
	}
	return data, true
}
