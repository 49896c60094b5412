package handler

import (
	"errors"
	"net/http"

	"github.com/dinoai/dinoai-go/internal/model"
	"github.com/dinoai/dinoai-go/internal/service"
)

// MessageHandler handles HTTP requests for session messages.
type MessageHandler struct {
	service *service.MessageService
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(svc *service.MessageService) *MessageHandler {
	return &MessageHandler{service: svc}
}

// HandleListBySession handles GET /api/messages/session/{sessionId} requests.
func (h *MessageHandler) HandleListBySession(w http.ResponseWriter, r *http.Request) {
	username, ok := callerUsername(w, r)
	if !ok {
		return
	}
	sessionID, ok := pathID(w, r, "sessionId")
	if !ok {
		return
	}

	msgs, err := h.service.ListBySession(r.Context(), username, sessionID)
	if err != nil {
		writeOwnershipErr(w, err)
		return
	}
	if msgs == nil {
		msgs = []model.Message{}
	}

	writeJSON(w, http.StatusOK, msgs)
}

// HandleCreate handles POST /api/messages requests.
func (h *MessageHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	username, ok := callerUsername(w, r)
	if !ok {
		return
	}

	var req model.CreateMessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	msg, err := h.service.Append(r.Context(), username, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrContentRequired),
			errors.Is(err, service.ErrInvalidSenderType),
			errors.Is(err, service.ErrCorrectionOnUser):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			writeOwnershipErr(w, err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}
