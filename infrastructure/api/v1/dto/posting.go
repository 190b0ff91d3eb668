// Package dto defines the wire types for the v1 API.
package dto

import "github.com/devradar/devradar/domain/posting"

// SubmitPostingRequest is the body of POST /api/v1/postings.
type SubmitPostingRequest struct {
	Platform    string `json:"platform"`
	RoleQuery   string `json:"role_query"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Salary      string `json:"salary"`
	Company     string `json:"company"`
	PublishedAt string `json:"published_at"`
	URL         string `json:"url"`
	Reprocess   bool   `json:"reprocess"`
}

// ToDomain converts the request into a RawPosting.
func (r SubmitPostingRequest) ToDomain() posting.RawPosting {
	return posting.NewRawPosting(
		r.Platform, r.RoleQuery, r.Title, r.Description, r.Location,
		r.Salary, r.Company, r.PublishedAt, r.URL,
	)
}

// SubmitPostingResponse is the body returned after a successful submit.
type SubmitPostingResponse struct {
	URL    string `json:"url"`
	Status string `json:"status"`
}

// PostingResponse is one classified posting on the wire.
type PostingResponse struct {
	Platform    string   `json:"platform"`
	RoleQuery   string   `json:"role_query,omitempty"`
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Description string   `json:"description,omitempty"`
	Salary      *float64 `json:"salary"`
	Skills      []string `json:"skills"`
	Seniority   string   `json:"seniority"`
	PublishedAt string   `json:"published_at"`
	URL         string   `json:"url"`
}

// FromDomain converts a ClassifiedPosting into its wire form.
func FromDomain(p posting.ClassifiedPosting) PostingResponse {
	return PostingResponse{
		Platform:    p.Platform(),
		RoleQuery:   p.RoleQuery(),
		Title:       p.Title(),
		Company:     p.Company(),
		Location:    p.Location(),
		Description: p.Description(),
		Salary:      p.Salary(),
		Skills:      p.Skills(),
		Seniority:   string(p.Seniority()),
		PublishedAt: p.PublishedAt(),
		URL:         p.URL(),
	}
}

// ListPostingsResponse is the body of GET /api/v1/postings.
type ListPostingsResponse struct {
	Postings []PostingResponse `json:"postings"`
	Total    int64             `json:"total"`
}
