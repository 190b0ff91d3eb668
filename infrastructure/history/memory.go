package history

import (
	"context"
	"sync"

	"github.com/devradar/devradar/domain/chat"
)

// maxExchangesPerSession bounds memory growth for long-lived sessions.
const maxExchangesPerSession = 50

// MemoryHistory keeps session history in process memory. It serves
// single-instance deployments and acts as the fallback when Redis is not
// configured or unreachable.
type MemoryHistory struct {
	mu       sync.RWMutex
	sessions map[string][]chat.Exchange
}

// NewMemoryHistory creates a MemoryHistory.
func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{sessions: make(map[string][]chat.Exchange)}
}

// Append records one exchange at the end of the session history.
func (h *MemoryHistory) Append(_ context.Context, sessionID string, exchange chat.Exchange) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	exchanges := append(h.sessions[sessionID], exchange)
	if len(exchanges) > maxExchangesPerSession {
		exchanges = exchanges[len(exchanges)-maxExchangesPerSession:]
	}
	h.sessions[sessionID] = exchanges
	return nil
}

// Recent returns up to n most recent exchanges, oldest first.
func (h *MemoryHistory) Recent(_ context.Context, sessionID string, n int) ([]chat.Exchange, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	exchanges := h.sessions[sessionID]
	if n <= 0 || len(exchanges) == 0 {
		return nil, nil
	}
	if len(exchanges) > n {
		exchanges = exchanges[len(exchanges)-n:]
	}
	out := make([]chat.Exchange, len(exchanges))
	copy(out, exchanges)
	return out, nil
}

// Clear drops the session history.
func (h *MemoryHistory) Clear(_ context.Context, sessionID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, sessionID)
	return nil
}

var _ chat.HistoryStore = (*MemoryHistory)(nil)
