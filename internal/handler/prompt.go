package handler

import (
	"errors"
	"net/http"

	"github.com/dinoai/dinoai-go/internal/model"
	"github.com/dinoai/dinoai-go/internal/prompt"
	"github.com/dinoai/dinoai-go/internal/service"
)

// PromptHandler handles HTTP requests for tutor reply generation.
type PromptHandler struct {
	service *service.TutorService
}

// NewPromptHandler creates a new PromptHandler.
func NewPromptHandler(svc *service.TutorService) *PromptHandler {
	return &PromptHandler{service: svc}
}

// HandleGenerate handles POST /api/prompts/generate requests. The reply is
// returned as plain text, not JSON.
func (h *PromptHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	username, ok := callerUsername(w, r)
	if !ok {
		return
	}

	var req model.PromptRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	reply, err := h.service.Reply(r.Context(), username, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGenerationUnavailable):
			writeJSON(w, http.StatusBadGateway, errorResponse(err.Error()))
		case errors.Is(err, prompt.ErrTemplateUnavailable):
			writeJSON(w, http.StatusInternalServerError, errorResponse(err.Error()))
		default:
			writeOwnershipErr(w, err)
		}
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(reply))
}
