package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/devradar/devradar/domain/chat"
	"github.com/devradar/devradar/domain/posting"
	"github.com/devradar/devradar/domain/search"
	"github.com/devradar/devradar/infrastructure/provider"
	"github.com/devradar/devradar/internal/config"
)

const offTopicReply = "Solo puedo responder preguntas sobre el mercado laboral tecnológico: empleos, habilidades, salarios y tendencias."

const chatSystemPrompt = `You are a job-market assistant. Answer the user's question using ONLY the job postings provided below.
Be concise and concrete. Cite postings by title and company. If the postings do not contain the answer, say so.
Answer in the user's language.`

// IntentChecker screens a message before retrieval spends any work on it.
type IntentChecker interface {
	Allow(ctx context.Context, message string) bool
}

// QueryEmbedder turns a free-form query into a vector.
type QueryEmbedder interface {
	EmbedQuery(ctx context.Context, query string) ([]float64, error)
}

// Retriever resolves a query vector to ranked postings.
type Retriever interface {
	Search(ctx context.Context, query []float64) (search.Result, error)
}

// Answer is one chat reply plus the postings that grounded it.
type Answer struct {
	reply    string
	sources  []string
	degraded bool
}

// NewAnswer creates an Answer.
func NewAnswer(reply string, sources []string, degraded bool) Answer {
	src := make([]string, len(sources))
	copy(src, sources)
	return Answer{reply: reply, sources: src, degraded: degraded}
}

// Reply returns the assistant reply text.
func (a Answer) Reply() string { return a.reply }

// Sources returns the URLs of the postings the reply is grounded on.
func (a Answer) Sources() []string {
	out := make([]string, len(a.sources))
	copy(out, a.sources)
	return out
}

// Degraded reports whether retrieval served the unranked fallback.
func (a Answer) Degraded() bool { return a.degraded }

// ChatOptions tunes the chat service. Zero values take defaults.
type ChatOptions struct {
	// HistoryWindow is how many past exchanges are replayed to the model.
	HistoryWindow int
}

func (o ChatOptions) withDefaults() ChatOptions {
	if o.HistoryWindow <= 0 {
		o.HistoryWindow = config.DefaultChatHistoryWindow
	}
	return o
}

// ChatService answers questions about the posting corpus with retrieval-
// grounded generation and short per-session memory.
type ChatService struct {
	gate      IntentChecker
	embedder  QueryEmbedder
	retriever Retriever
	generator provider.TextGenerator
	history   chat.HistoryStore
	window    int
	logger    *slog.Logger
}

// NewChatService creates a ChatService.
func NewChatService(
	gate IntentChecker,
	embedder QueryEmbedder,
	retriever Retriever,
	generator provider.TextGenerator,
	history chat.HistoryStore,
	opts ChatOptions,
	logger *slog.Logger,
) *ChatService {
	opts = opts.withDefaults()
	return &ChatService{
		gate:      gate,
		embedder:  embedder,
		retriever: retriever,
		generator: generator,
		history:   history,
		window:    opts.HistoryWindow,
		logger:    logger,
	}
}

// Ask answers one user message within a session. Off-topic messages get a
// fixed redirect without touching retrieval or history.
func (s *ChatService) Ask(ctx context.Context, sessionID, message string) (Answer, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Answer{}, fmt.Errorf("%w: empty message", ErrInvalidRequest)
	}

	if !s.gate.Allow(ctx, message) {
		return NewAnswer(offTopicReply, nil, false), nil
	}

	vector, err := s.embedder.EmbedQuery(ctx, message)
	if err != nil {
		s.logger.Warn("query embedding failed", "error", err)
		vector = nil
	}

	result, err := s.retriever.Search(ctx, vector)
	if err != nil {
		return Answer{}, fmt.Errorf("retrieve context: %w", err)
	}

	messages := s.buildMessages(ctx, sessionID, message, result)
	resp, err := s.generator.ChatCompletion(ctx, provider.NewChatCompletionRequest(messages).WithTemperature(0.3))
	if err != nil {
		return Answer{}, fmt.Errorf("generate answer: %w", err)
	}

	reply := strings.TrimSpace(resp.Content())
	if err := s.history.Append(ctx, sessionID, chat.NewExchange(message, reply)); err != nil {
		s.logger.Warn("history append failed", "session", sessionID, "error", err)
	}

	sources := make([]string, 0, result.Count())
	for _, p := range result.Postings() {
		sources = append(sources, p.URL())
	}
	return NewAnswer(reply, sources, result.Degraded()), nil
}

// Reset drops the session history.
func (s *ChatService) Reset(ctx context.Context, sessionID string) error {
	return s.history.Clear(ctx, sessionID)
}

func (s *ChatService) buildMessages(ctx context.Context, sessionID, message string, result search.Result) []provider.Message {
	var b strings.Builder
	b.WriteString(chatSystemPrompt)
	if result.Degraded() {
		b.WriteString("\nNote: relevance ranking is unavailable; the postings below are a recent sample.")
	}
	b.WriteString("\n\nJob postings:\n")
	if result.Count() == 0 {
		b.WriteString("(none found)\n")
	}
	for i, p := range result.Postings() {
		b.WriteString(formatPosting(i+1, p))
	}

	messages := []provider.Message{provider.SystemMessage(b.String())}

	exchanges, err := s.history.Recent(ctx, sessionID, s.window)
	if err != nil {
		s.logger.Warn("history read failed", "session", sessionID, "error", err)
	}
	for _, ex := range exchanges {
		messages = append(messages,
			provider.UserMessage(ex.Question()),
			provider.AssistantMessage(ex.Answer()),
		)
	}

	return append(messages, provider.UserMessage(message))
}

func formatPosting(n int, p posting.ClassifiedPosting) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d. %s | %s | %s\n", n, p.Title(), p.Company(), p.Location())
	if len(p.Skills()) > 0 {
		fmt.Fprintf(&b, "   Skills: %s\n", strings.Join(p.Skills(), ", "))
	}
	fmt.Fprintf(&b, "   Seniority: %s", p.Seniority())
	if sal := p.Salary(); sal != nil {
		fmt.Fprintf(&b, " | Salary: %.0f USD/month", *sal)
	}
	fmt.Fprintf(&b, "\n   URL: %s\n", p.URL())
	return b.String()
}
