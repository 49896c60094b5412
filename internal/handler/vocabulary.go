package handler

import (
	"net/http"

	"github.com/dinoai/dinoai-go/internal/service"
)

// VocabularyHandler handles HTTP requests for daily vocabulary sets.
type VocabularyHandler struct {
	service *service.VocabularyService
}

// NewVocabularyHandler creates a new VocabularyHandler.
func NewVocabularyHandler(svc *service.VocabularyService) *VocabularyHandler {
	return &VocabularyHandler{service: svc}
}

// HandleDaily handles GET /api/vocabulary/daily/{userId} requests. The
// call is generate-or-fetch: it always responds with today's set for the
// caller, creating or refreshing it as needed.
func (h *VocabularyHandler) HandleDaily(w http.ResponseWriter, r *http.Request) {
	username, ok := callerUsername(w, r)
	if !ok {
		return
	}
	ownerID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	set, err := h.service.Daily(r.Context(), username, ownerID)
	if err != nil {
		writeOwnershipErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, set)
}
