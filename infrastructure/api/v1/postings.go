// Package v1 implements the v1 REST API.
package v1

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/devradar/devradar/application/service"
	"github.com/devradar/devradar/domain/posting"
	"github.com/devradar/devradar/infrastructure/api/middleware"
	"github.com/devradar/devradar/infrastructure/api/v1/dto"
)

// PostingsRouter handles posting intake and listing endpoints.
type PostingsRouter struct {
	intake *service.IntakeService
	store  posting.ClassifiedStore
	logger *slog.Logger
}

// NewPostingsRouter creates a PostingsRouter.
func NewPostingsRouter(intake *service.IntakeService, store posting.ClassifiedStore, logger *slog.Logger) *PostingsRouter {
	return &PostingsRouter{intake: intake, store: store, logger: logger}
}

// Routes returns the chi router for posting endpoints.
func (r *PostingsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", r.Submit)
	router.Get("/", r.List)

	return router
}

// Submit handles POST /api/v1/postings.
func (r *PostingsRouter) Submit(w http.ResponseWriter, req *http.Request) {
	var body dto.SubmitPostingRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, fmt.Errorf("%w: invalid body: %v", service.ErrIntakeRejected, err), r.logger)
		return
	}

	if err := r.intake.Submit(req.Context(), body.ToDomain(), body.Reprocess); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusAccepted, dto.SubmitPostingResponse{
		URL:    body.URL,
		Status: "accepted",
	})
}

// List handles GET /api/v1/postings.
func (r *PostingsRouter) List(w http.ResponseWriter, req *http.Request) {
	filter := posting.ListFilter{
		Platform:  req.URL.Query().Get("platform"),
		Seniority: posting.Seniority(req.URL.Query().Get("seniority")),
		Limit:     queryInt(req, "limit", 50),
		Offset:    queryInt(req, "offset", 0),
	}
	if v, ok := queryFloat(req, "salary_min"); ok {
		filter.SalaryMin = &v
	}
	if v, ok := queryFloat(req, "salary_max"); ok {
		filter.SalaryMax = &v
	}

	postings, total, err := r.store.List(req.Context(), filter)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	out := make([]dto.PostingResponse, len(postings))
	for i, p := range postings {
		out[i] = dto.FromDomain(p)
	}
	middleware.WriteJSON(w, http.StatusOK, dto.ListPostingsResponse{
		Postings: out,
		Total:    total,
	})
}

func queryInt(req *http.Request, name string, fallback int) int {
	raw := req.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

func queryFloat(req *http.Request, name string) (float64, bool) {
	raw := req.URL.Query().Get(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
