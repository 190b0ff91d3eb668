package dto

// SearchRequest is the body of POST /api/v1/search.
type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// SearchResponse is the body of a search reply. Degraded marks results from
// the unranked fallback path.
type SearchResponse struct {
	Postings []PostingResponse `json:"postings"`
	Degraded bool              `json:"degraded"`
}

// ChatRequest is the body of POST /api/v1/chat.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// ChatResponse is the body of a chat reply.
type ChatResponse struct {
	Reply    string   `json:"reply"`
	Sources  []string `json:"sources"`
	Degraded bool     `json:"degraded"`
}
