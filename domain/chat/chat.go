// Package chat provides domain types for the conversational surface.
package chat

import "context"

// Exchange is one question-and-answer turn in a session.
type Exchange struct {
	question string
	answer   string
}

// NewExchange creates an Exchange.
func NewExchange(question, answer string) Exchange {
	return Exchange{question: question, answer: answer}
}

// Question returns the user message.
func (e Exchange) Question() string { return e.question }

// Answer returns the assistant reply.
func (e Exchange) Answer() string { return e.answer }

// HistoryStore keeps per-session conversation history. Implementations may
// evict aggressively; history is a quality feature, never a correctness one,
// so a lost session simply restarts with empty context.
type HistoryStore interface {
	// Append records one exchange at the end of the session history.
	Append(ctx context.Context, sessionID string, exchange Exchange) error

	// Recent returns up to n most recent exchanges, oldest first.
	Recent(ctx context.Context, sessionID string, n int) ([]Exchange, error)

	// Clear drops the session history.
	Clear(ctx context.Context, sessionID string) error
}
