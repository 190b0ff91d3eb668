package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/devradar/devradar/application/service"
	"github.com/devradar/devradar/domain/posting"
	"github.com/devradar/devradar/infrastructure/api/middleware"
	v1 "github.com/devradar/devradar/infrastructure/api/v1"
)

// Dependencies carries the services the route tree needs.
type Dependencies struct {
	Intake    *service.IntakeService
	Retrieval *service.RetrievalService
	Chat      *service.ChatService
	Postings  posting.ClassifiedStore
	Logger    *slog.Logger
}

// MountRoutes registers the health and v1 API routes on the server.
func MountRoutes(s Server, deps Dependencies) {
	router := s.Router()
	router.Use(middleware.Logging(deps.Logger))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Mount("/postings", v1.NewPostingsRouter(deps.Intake, deps.Postings, deps.Logger).Routes())
		r.Mount("/search", v1.NewSearchRouter(deps.Retrieval, deps.Logger).Routes())
		r.Mount("/chat", v1.NewChatRouter(deps.Chat, deps.Logger).Routes())
	})
}
