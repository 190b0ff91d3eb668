package v1

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/devradar/devradar/application/service"
	"github.com/devradar/devradar/infrastructure/api/middleware"
	"github.com/devradar/devradar/infrastructure/api/v1/dto"
)

// ChatRouter handles the conversational endpoint.
type ChatRouter struct {
	chat   *service.ChatService
	logger *slog.Logger
}

// NewChatRouter creates a ChatRouter.
func NewChatRouter(chat *service.ChatService, logger *slog.Logger) *ChatRouter {
	return &ChatRouter{chat: chat, logger: logger}
}

// Routes returns the chi router for chat endpoints.
func (r *ChatRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", r.Ask)
	router.Delete("/{sessionID}", r.Reset)

	return router
}

// Ask handles POST /api/v1/chat.
func (r *ChatRouter) Ask(w http.ResponseWriter, req *http.Request) {
	var body dto.ChatRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, fmt.Errorf("%w: invalid body: %v", service.ErrInvalidRequest, err), r.logger)
		return
	}
	if body.SessionID == "" {
		middleware.WriteError(w, req, fmt.Errorf("%w: missing session_id", service.ErrInvalidRequest), r.logger)
		return
	}

	answer, err := r.chat.Ask(req.Context(), body.SessionID, body.Message)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.ChatResponse{
		Reply:    answer.Reply(),
		Sources:  answer.Sources(),
		Degraded: answer.Degraded(),
	})
}

// Reset handles DELETE /api/v1/chat/{sessionID}.
func (r *ChatRouter) Reset(w http.ResponseWriter, req *http.Request) {
	sessionID := chi.URLParam(req, "sessionID")
	if err := r.chat.Reset(req.Context(), sessionID); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
