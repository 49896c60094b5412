package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dinoai/dinoai-go/internal/model"
	"github.com/dinoai/dinoai-go/internal/service"
)

// SessionHandler handles HTTP requests for the chat session lifecycle.
type SessionHandler struct {
	service *service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(svc *service.SessionService) *SessionHandler {
	return &SessionHandler{service: svc}
}

// HandleStart handles POST /api/sessions/start requests. The session
// parameters arrive as query parameters.
func (h *SessionHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	username, ok := callerUsername(w, r)
	if !ok {
		return
	}

	ownerID, err := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	if err != nil || ownerID <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid userId"))
		return
	}
	languageUsed := r.URL.Query().Get("languageUsed")
	topic := r.URL.Query().Get("sessionTopic")

	session, err := h.service.Start(r.Context(), username, ownerID, languageUsed, topic)
	if err != nil {
		if errors.Is(err, service.ErrTopicRequired) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		writeOwnershipErr(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

// HandleEnd handles POST /api/sessions/end/{sessionId} requests.
func (h *SessionHandler) HandleEnd(w http.ResponseWriter, r *http.Request) {
	username, ok := callerUsername(w, r)
	if !ok {
		return
	}
	sessionID, ok := pathID(w, r, "sessionId")
	if !ok {
		return
	}

	session, err := h.service.End(r.Context(), username, sessionID)
	if err != nil {
		writeOwnershipErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// HandleFeedback handles POST /api/sessions/feedback/{sessionId} requests.
// The feedback text arrives as a query parameter.
func (h *SessionHandler) HandleFeedback(w http.ResponseWriter, r *http.Request) {
	username, ok := callerUsername(w, r)
	if !ok {
		return
	}
	sessionID, ok := pathID(w, r, "sessionId")
	if !ok {
		return
	}

	feedback := r.URL.Query().Get("feedback")
	if feedback == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse("feedback is required"))
		return
	}

	session, err := h.service.AttachFeedback(r.Context(), username, sessionID, feedback)
	if err != nil {
		writeOwnershipErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// HandleGet handles GET /api/sessions/{sessionId} requests.
func (h *SessionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	username, ok := callerUsername(w, r)
	if !ok {
		return
	}
	sessionID, ok := pathID(w, r, "sessionId")
	if !ok {
		return
	}

	session, err := h.service.Get(r.Context(), username, sessionID)
	if err != nil {
		writeOwnershipErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// HandleListByUser handles GET /api/sessions/user/{userId} requests.
func (h *SessionHandler) HandleListByUser(w http.ResponseWriter, r *http.Request) {
	username, ok := callerUsername(w, r)
	if !ok {
		return
	}
	ownerID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	sessions, err := h.service.ListByUser(r.Context(), username, ownerID)
	if err != nil {
		writeOwnershipErr(w, err)
		return
	}
	if sessions == nil {
		sessions = []model.ChatSession{}
	}

	writeJSON(w, http.StatusOK, sessions)
}

// HandleDelete handles DELETE /api/sessions/{sessionId} requests.
func (h *SessionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	username, ok := callerUsername(w, r)
	if !ok {
		return
	}
	sessionID, ok := pathID(w, r, "sessionId")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), username, sessionID); err != nil {
		writeOwnershipErr(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeOwnershipErr maps the shared caller/ownership errors. Not-found
// wins over forbidden so foreign IDs read as absent resources only when
// they truly are.
func writeOwnershipErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse(err.Error()))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
	}
}
