package history

import (
	"context"
	"log/slog"

	"github.com/devradar/devradar/domain/chat"
)

// FallbackHistory delegates to a primary store and falls back to a secondary
// one per call when the primary errors. History loss is acceptable; blocking
// a chat turn on a Redis hiccup is not.
type FallbackHistory struct {
	primary   chat.HistoryStore
	secondary chat.HistoryStore
	logger    *slog.Logger
}

// NewFallbackHistory creates a FallbackHistory.
func NewFallbackHistory(primary, secondary chat.HistoryStore, logger *slog.Logger) *FallbackHistory {
	return &FallbackHistory{primary: primary, secondary: secondary, logger: logger}
}

// Append records one exchange.
func (h *FallbackHistory) Append(ctx context.Context, sessionID string, exchange chat.Exchange) error {
	if err := h.primary.Append(ctx, sessionID, exchange); err != nil {
		h.logger.Warn("primary history store failed, using fallback", "op", "append", "error", err)
		return h.secondary.Append(ctx, sessionID, exchange)
	}
	return nil
}

// Recent returns up to n most recent exchanges, oldest first.
func (h *FallbackHistory) Recent(ctx context.Context, sessionID string, n int) ([]chat.Exchange, error) {
	exchanges, err := h.primary.Recent(ctx, sessionID, n)
	if err != nil {
		h.logger.Warn("primary history store failed, using fallback", "op", "recent", "error", err)
		return h.secondary.Recent(ctx, sessionID, n)
	}
	return exchanges, nil
}

// Clear drops the session history from both stores.
func (h *FallbackHistory) Clear(ctx context.Context, sessionID string) error {
	err := h.primary.Clear(ctx, sessionID)
	if err != nil {
		h.logger.Warn("primary history store failed, using fallback", "op", "clear", "error", err)
	}
	if ferr := h.secondary.Clear(ctx, sessionID); ferr != nil && err == nil {
		err = ferr
	}
	return err
}

var _ chat.HistoryStore = (*FallbackHistory)(nil)
