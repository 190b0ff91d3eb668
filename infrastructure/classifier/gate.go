package classifier

import (
	"context"
	"log/slog"
	"strings"

	"github.com/devradar/devradar/infrastructure/provider"
)

const intentGateSystemPrompt = `You decide whether a user message is about technology jobs, careers, skills, salaries, or the tech job market.
Respond with exactly one word: "SI" if it is, "NO" if it is not. No other output.`

// IntentGate screens conversational queries before they reach retrieval.
// Off-topic chatter is rejected without spending an embedding or search call.
type IntentGate struct {
	generator provider.TextGenerator
	policy    Policy
	logger    *slog.Logger
}

// NewIntentGate creates an IntentGate. Interactive surfaces should pass
// FailOpen so a provider outage never blocks users.
func NewIntentGate(generator provider.TextGenerator, policy Policy, logger *slog.Logger) *IntentGate {
	return &IntentGate{generator: generator, policy: policy, logger: logger}
}

// Allow reports whether the message is on-topic. Gate failures resolve
// according to the configured policy and never surface as errors.
func (g *IntentGate) Allow(ctx context.Context, message string) bool {
	req := provider.NewChatCompletionRequest([]provider.Message{
		provider.SystemMessage(intentGateSystemPrompt),
		provider.UserMessage(message),
	}).WithMaxTokens(5).WithTemperature(0)

	resp, err := g.generator.ChatCompletion(ctx, req)
	if err != nil {
		g.logger.Warn("intent gate unavailable", "error", err)
		return g.policy == FailOpen
	}

	verdict := strings.ToUpper(strings.TrimSpace(resp.Content()))
	return strings.HasPrefix(verdict, "SI") || strings.HasPrefix(verdict, "YES")
}
