package v1

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/devradar/devradar/application/service"
	"github.com/devradar/devradar/infrastructure/api/middleware"
	"github.com/devradar/devradar/infrastructure/api/v1/dto"
)

// SearchRouter handles the semantic search endpoint.
type SearchRouter struct {
	retrieval *service.RetrievalService
	logger    *slog.Logger
}

// NewSearchRouter creates a SearchRouter.
func NewSearchRouter(retrieval *service.RetrievalService, logger *slog.Logger) *SearchRouter {
	return &SearchRouter{retrieval: retrieval, logger: logger}
}

// Routes returns the chi router for search endpoints.
func (r *SearchRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", r.Search)

	return router
}

// Search handles POST /api/v1/search.
func (r *SearchRouter) Search(w http.ResponseWriter, req *http.Request) {
	var body dto.SearchRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, fmt.Errorf("%w: invalid body: %v", service.ErrInvalidRequest, err), r.logger)
		return
	}
	if strings.TrimSpace(body.Query) == "" {
		middleware.WriteError(w, req, fmt.Errorf("%w: missing query", service.ErrInvalidRequest), r.logger)
		return
	}

	result, err := r.retrieval.SearchText(req.Context(), body.Query, body.Limit)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	postings := result.Postings()
	out := make([]dto.PostingResponse, len(postings))
	for i, p := range postings {
		out[i] = dto.FromDomain(p)
	}
	middleware.WriteJSON(w, http.StatusOK, dto.SearchResponse{
		Postings: out,
		Degraded: result.Degraded(),
	})
}
